package scheduler

import (
	"fmt"
	"strings"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/store"
)

// New builds the Scheduler named by cfg.Name, case-insensitively. It is the
// only place a deployment's scheduler.name setting is interpreted.
func New(cfg config.SchedulerConfig, elev *elevation.Cache, st store.Store) (Scheduler, error) {
	switch strings.ToLower(cfg.Name) {
	case "hexsearch":
		return NewHexSearch(cfg, elev), nil
	case "hexsearchspawnpoint":
		return NewHexSearchSpawnpoint(cfg, elev, st), nil
	case "spawnscan":
		return NewSpawnScan(cfg, elev, st), nil
	case "speedscan":
		return NewSpeedScan(cfg, elev, st), nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q: want one of hexsearch, hexsearchspawnpoint, spawnscan, speedscan", cfg.Name)
	}
}
