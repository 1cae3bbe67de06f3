package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// HexSearch schedules every cell of a fixed hex-tiled coverage area with no
// time constraint (appears = leaves = 0). Locations are generated once per
// origin and reused across refreshes.
type HexSearch struct {
	staticQueue

	originMu  sync.Mutex
	origin    model.Location
	hasOrigin bool

	stepLimit      int
	stepDistanceKM float64
	elev           *elevation.Cache

	// genLocations produces the ordered coverage set for the current origin.
	// HexSearchSpawnpoint swaps this out for a spawn-point-filtered variant
	// rather than overriding a method, since Go's embedding does not give
	// HexSearchSpawnpoint's override visibility into HexSearch.Schedule.
	genLocations func(ctx context.Context, origin geo.Point) []geo.Point

	locMu     sync.Mutex
	locations []geo.Point
}

// NewHexSearch builds a HexSearch scheduler from configuration.
func NewHexSearch(cfg config.SchedulerConfig, elev *elevation.Cache) *HexSearch {
	stepDistanceKM := geo.StepDistance(cfg.NoPokemon)
	stepLimit := cfg.StepLimit
	h := &HexSearch{
		staticQueue:    staticQueue{scanDelay: time.Duration(cfg.ScanDelay)},
		stepLimit:      stepLimit,
		stepDistanceKM: stepDistanceKM,
		elev:           elev,
	}
	h.genLocations = func(ctx context.Context, origin geo.Point) []geo.Point {
		return geo.GenerateHexSearch(origin, stepLimit, stepDistanceKM)
	}
	return h
}

func (h *HexSearch) LocationChanged(ctx context.Context, origin model.Location) error {
	h.originMu.Lock()
	h.origin = origin
	h.hasOrigin = true
	h.originMu.Unlock()

	h.ScanningPaused()

	h.locMu.Lock()
	h.locations = nil
	h.locMu.Unlock()

	return nil
}

func (h *HexSearch) Schedule(ctx context.Context) error {
	h.originMu.Lock()
	hasOrigin := h.hasOrigin
	origin := geo.Point{Lat: h.origin.Lat, Lng: h.origin.Lng}
	h.originMu.Unlock()
	if !hasOrigin {
		slog.Warn("cannot schedule work until scan location has been set")
		h.install(nil)
		return nil
	}

	h.locMu.Lock()
	locations := h.locations
	h.locMu.Unlock()
	if locations == nil {
		locations = h.genLocations(ctx, origin)
		h.locMu.Lock()
		h.locations = locations
		h.locMu.Unlock()
	}

	h.install(h.buildItems(ctx, locations))
	return nil
}

// buildItems stamps each location with a jittered altitude and a display
// step number. Shared by HexSearch and HexSearchSpawnpoint.
func (h *HexSearch) buildItems(ctx context.Context, locations []geo.Point) []model.QueueItem {
	items := make([]model.QueueItem, 0, len(locations))
	for step, pt := range locations {
		loc := model.Location{Lat: pt.Lat, Lng: pt.Lng}
		if h.elev != nil {
			loc.Alt = h.elev.Altitude(ctx, loc)
		}
		items = append(items, model.QueueItem{Step: step + 1, Loc: loc})
	}
	return items
}
