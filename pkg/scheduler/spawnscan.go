package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/store"
)

// spawnVisibilityWindow is how long a spawn stays up once it hatches.
const spawnVisibilityWindow = 15 * time.Minute

// sidecarSpawn is one entry of the spawnpoint_scanning JSON file: a known
// spawn location plus its appearance second-within-the-hour, the same shape
// storage would otherwise report for the hex.
type sidecarSpawn struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	SpawnPointID string  `json:"spawnpoint_id"`
	Time         int     `json:"time"`
}

// SpawnScan schedules known spawn points at their predicted appearance time.
// Unlike HexSearch it recomputes the full location list every cycle, since
// appearance times are wall-clock and drift forward with every refresh.
type SpawnScan struct {
	staticQueue

	originMu  sync.Mutex
	origin    model.Location
	hasOrigin bool

	stepLimit      int
	stepDistanceKM float64
	sidecarPath    string
	elev           *elevation.Cache
	spawnpoints    store.SpawnPointStore
}

// NewSpawnScan builds a SpawnScan scheduler from configuration.
func NewSpawnScan(cfg config.SchedulerConfig, elev *elevation.Cache, sp store.SpawnPointStore) *SpawnScan {
	return &SpawnScan{
		staticQueue:    staticQueue{scanDelay: time.Duration(cfg.ScanDelay)},
		stepLimit:      cfg.StepLimit,
		stepDistanceKM: geo.StepDistance(cfg.NoPokemon),
		sidecarPath:    cfg.SpawnpointScanning,
		elev:           elev,
		spawnpoints:    sp,
	}
}

func (s *SpawnScan) LocationChanged(ctx context.Context, origin model.Location) error {
	s.originMu.Lock()
	s.origin = origin
	s.hasOrigin = true
	s.originMu.Unlock()

	s.ScanningPaused()
	return nil
}

// Schedule recomputes the spawn list and queue every cycle; spawn appearance
// times are wall-clock, so a cached location list would go stale.
func (s *SpawnScan) Schedule(ctx context.Context) error {
	s.originMu.Lock()
	hasOrigin := s.hasOrigin
	origin := geo.Point{Lat: s.origin.Lat, Lng: s.origin.Lng}
	s.originMu.Unlock()
	if !hasOrigin {
		slog.Warn("cannot schedule work until scan location has been set")
		s.install(nil)
		return nil
	}

	locations, err := s.loadLocations(ctx, origin)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		slog.Warn("no available spawn points for spawnscan; will retry next refresh")
	}

	s.install(s.buildItems(ctx, locations))
	return nil
}

// spawnLocation is one resolved spawn-point target with its predicted
// appear/leave wall-clock times.
type spawnLocation struct {
	Loc          model.Location
	SpawnPointID string
	Appears      time.Time
	Leaves       time.Time
}

func (s *SpawnScan) loadLocations(ctx context.Context, origin geo.Point) ([]spawnLocation, error) {
	raw := s.loadSidecar()

	now := time.Now().UTC()
	nowWithinHour := int(now.Unix() % 3600)

	var locations []spawnLocation
	if len(raw) > 0 {
		slog.Debug("loading spawn points from json file", "path", s.sidecarPath, "count", len(raw))
		for _, r := range raw {
			appears, leaves := appearsLeaves(r.Time, now, nowWithinHour)
			locations = append(locations, spawnLocation{
				Loc:          model.Location{Lat: r.Lat, Lng: r.Lng},
				SpawnPointID: r.SpawnPointID,
				Appears:      appears,
				Leaves:       leaves,
			})
		}
	} else {
		slog.Debug("loading spawn points from database")
		sps, err := s.spawnpoints.SpawnPointsInHex(ctx, origin, s.stepLimit, s.stepDistanceKM)
		if err != nil {
			return nil, fmt.Errorf("load spawn points in hex: %w", err)
		}
		for _, sp := range sps {
			if !sp.Active() {
				continue
			}
			appears, leaves := appearsLeaves(sp.EarliestUnseen, now, nowWithinHour)
			locations = append(locations, spawnLocation{
				Loc:          model.Location{Lat: sp.Lat, Lng: sp.Lng},
				SpawnPointID: sp.ID,
				Appears:      appears,
				Leaves:       leaves,
			})
		}
	}

	slog.Info("total spawns to track", "count", len(locations))

	sort.Slice(locations, func(i, j int) bool { return locations[i].Appears.Before(locations[j].Appears) })
	return locations, nil
}

// loadSidecar attempts to load the spawnpoint_scanning JSON file, returning
// nil (not an error) on any failure so the caller falls back to storage.
func (s *SpawnScan) loadSidecar() []sidecarSpawn {
	if s.sidecarPath == "" || s.sidecarPath == "nofile" {
		return nil
	}

	data, err := os.ReadFile(s.sidecarPath)
	if err != nil {
		slog.Error("error opening spawnpoint json file; will fallback to database", "path", s.sidecarPath, "error", err)
		return nil
	}

	var raw []sidecarSpawn
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Error("invalid spawnpoint json; will fallback to database", "path", s.sidecarPath, "error", err)
		return nil
	}
	return raw
}

// appearsLeaves converts a seconds-within-the-hour appearance time into a
// wall-clock appears/leaves pair. If the spawn hasn't happened yet this hour
// it appears later this hour; otherwise it has already rolled over and
// appears that many seconds into the next hour.
func appearsLeaves(timeWithinHour int, now time.Time, nowWithinHour int) (appears, leaves time.Time) {
	var fromNow time.Duration
	if timeWithinHour > nowWithinHour {
		fromNow = time.Duration(timeWithinHour-nowWithinHour) * time.Second
	} else {
		lateBy := time.Duration(nowWithinHour-timeWithinHour) * time.Second
		fromNow = time.Hour - lateBy
	}
	appears = now.Add(fromNow)
	leaves = appears.Add(spawnVisibilityWindow)
	return appears, leaves
}

func (s *SpawnScan) buildItems(ctx context.Context, locations []spawnLocation) []model.QueueItem {
	items := make([]model.QueueItem, 0, len(locations))
	for step, l := range locations {
		loc := l.Loc
		if s.elev != nil {
			loc.Alt = s.elev.Altitude(ctx, loc)
		}
		items = append(items, model.QueueItem{
			Step:         step + 1,
			Loc:          loc,
			Start:        int(l.Appears.Unix()),
			End:          int(l.Leaves.Unix()),
			SpawnPointID: l.SpawnPointID,
		})
	}
	return items
}
