package scheduler

import (
	"context"
	"log/slog"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/store"
)

// spawnPointRangeMeters is the great-circle distance within which a cell
// center must have a known spawn point to be kept by HexSearchSpawnpoint.
const spawnPointRangeMeters = 70

// HexSearchSpawnpoint is HexSearch filtered down to cells with at least one
// known spawn point nearby, so workers never waste a scan on empty ground.
type HexSearchSpawnpoint struct {
	*HexSearch
}

// NewHexSearchSpawnpoint builds a HexSearchSpawnpoint scheduler.
func NewHexSearchSpawnpoint(cfg config.SchedulerConfig, elev *elevation.Cache, sp store.SpawnPointStore) *HexSearchSpawnpoint {
	base := NewHexSearch(cfg, elev)
	stepLimit := cfg.StepLimit
	stepDistanceKM := geo.StepDistance(cfg.NoPokemon)

	base.genLocations = func(ctx context.Context, origin geo.Point) []geo.Point {
		all := geo.GenerateHexSearch(origin, stepLimit, stepDistanceKM)

		spawnpoints, err := sp.SpawnPointsInHex(ctx, origin, stepLimit, stepDistanceKM)
		if err != nil {
			slog.Error("failed to load spawn points for hexsearchspawnpoint", "error", err)
			return nil
		}
		if len(spawnpoints) == 0 {
			slog.Warn("no spawnpoints found in the specified area; did you forget to run a normal scan here first?")
			return nil
		}

		kept := make([]geo.Point, 0, len(all))
		for _, pt := range all {
			if anySpawnPointWithinRange(pt, spawnpoints) {
				kept = append(kept, pt)
			}
		}
		return kept
	}

	return &HexSearchSpawnpoint{HexSearch: base}
}

func anySpawnPointWithinRange(pt geo.Point, spawnpoints []model.SpawnPoint) bool {
	for _, s := range spawnpoints {
		if geo.Distance(pt, geo.Point{Lat: s.Lat, Lng: s.Lng}) <= spawnPointRangeMeters {
			return true
		}
	}
	return false
}
