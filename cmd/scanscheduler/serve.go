package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocketmap/scanscheduler/internal/api"
	"github.com/rocketmap/scanscheduler/pkg/cache"
	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/db"
	"github.com/rocketmap/scanscheduler/pkg/elevation"
	"github.com/rocketmap/scanscheduler/pkg/logging"
	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/probe"
	"github.com/rocketmap/scanscheduler/pkg/request"
	"github.com/rocketmap/scanscheduler/pkg/scheduler"
	"github.com/rocketmap/scanscheduler/pkg/store"
	"github.com/rocketmap/scanscheduler/pkg/tracker"
)

// shutdownGrace bounds how long serve waits for in-flight requests to drain
// after a SIGINT/SIGTERM before forcing the listener closed.
const shutdownGrace = 10 * time.Second

// elevationBaseDelay and elevationMaxDelay bound the exponential backoff
// applied to the elevation API after a failed lookup.
const (
	elevationBaseDelay = 2 * time.Second
	elevationMaxDelay  = 60 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the worker API and the background scan scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context(), configPath)
	},
}

func runServer(ctx context.Context, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanup, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanup()
	logging.SetEventLogPath(filepath.Join(filepath.Dir(cfg.Log.Server.Path), "overseer.log"))

	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()

	st := store.NewSQLiteStore(dbConn)
	elev := buildElevationCache(cfg, dbConn)

	checks := []probe.Probe{
		{Name: "database", Critical: true, Check: func(ctx context.Context) error {
			return dbConn.PingContext(ctx)
		}},
	}
	if err := probe.AnalyzeResults(probe.Run(ctx, checks)); err != nil {
		return fmt.Errorf("startup checks failed: %w", err)
	}

	sched, err := scheduler.New(cfg.Scheduler, elev, st)
	if err != nil {
		return fmt.Errorf("failed to build scheduler: %w", err)
	}

	disp := scheduler.NewDispatcher(sched, time.Duration(cfg.Scheduler.RefreshInterval))

	origin := model.Location{Lat: cfg.Scheduler.CenterLat, Lng: cfg.Scheduler.CenterLng}
	if err := disp.LocationChanged(ctx, origin); err != nil {
		return fmt.Errorf("failed to seed initial location: %w", err)
	}
	if err := disp.Schedule(ctx); err != nil {
		return fmt.Errorf("failed to build initial queue: %w", err)
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go disp.Run(runCtx)

	metrics := api.NewMetrics()
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(disp, metrics),
	}

	serveErr := make(chan error, 1)
	go func() {
		logging.LogStatusMessage(cfg.Scheduler.Name, fmt.Sprintf("listening on %s", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	select {
	case <-runCtx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}

// buildElevationCache wires the altitude collaborator from the configured
// Google Maps key, falling back to a getter-less cache (every lookup not
// already in the persisted cache returns DefaultAltitude, jittered) when no
// key is set.
func buildElevationCache(cfg *config.Config, dbConn *db.DB) *elevation.Cache {
	var getter elevation.Getter
	if cfg.Elevation.GoogleMapsKey != "" {
		g, err := elevation.NewGoogleMapsGetter(cfg.Elevation.GoogleMapsKey)
		if err != nil {
			logging.LogStatusMessage(cfg.Scheduler.Name, fmt.Sprintf("elevation getter disabled: %v", err))
		} else {
			getter = g
		}
	}

	return elevation.New(
		getter,
		cache.NewSQLiteCache(dbConn),
		tracker.New(),
		request.NewProviderBackoff(elevationBaseDelay, elevationMaxDelay),
		elevation.Options{
			DefaultAltitude:  float64(cfg.Elevation.DefaultAltitude),
			AltitudeRange:    float64(cfg.Elevation.AltitudeRange),
			CacheFirstResult: cfg.Elevation.CacheFirstResult,
		},
	)
}
