// Package store abstracts the persistence the scheduler treats as opaque:
// scanned-location band state, spawn points and their cell links, and a
// small key/value table for scheduler-carried state between restarts.
package store

import (
	"context"

	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// ScannedLocationStore persists per-cell band-fill state.
type ScannedLocationStore interface {
	// SelectInHex returns every scanned-location record within ringLimit
	// rings of origin, creating any that don't already exist.
	SelectInHex(ctx context.Context, origin geo.Point, ringLimit int, stepDistanceKM float64) ([]model.ScannedLocation, error)
	// UpsertScannedLocation writes back a scanned-location record, creating
	// it if absent.
	UpsertScannedLocation(ctx context.Context, loc model.ScannedLocation) error
	// BandsFilled sums BandsFilled() across the given cells.
	BandsFilled(ctx context.Context, cells []model.CellID) (int, error)
}

// SpawnPointStore persists spawn-point TTH-window learning state.
type SpawnPointStore interface {
	// SpawnPointsInHex returns every known spawn point within ringLimit
	// rings of origin.
	SpawnPointsInHex(ctx context.Context, origin geo.Point, ringLimit int, stepDistanceKM float64) ([]model.SpawnPoint, error)
	// SpawnPointsNear returns spawn points within radiusMeters of loc.
	SpawnPointsNear(ctx context.Context, loc geo.Point, radiusMeters float64) ([]model.SpawnPoint, error)
	// GetSpawnPoint returns a single spawn point by id.
	GetSpawnPoint(ctx context.Context, id string) (model.SpawnPoint, bool, error)
	// UpsertSpawnPoint writes back a spawn point, creating it if absent.
	UpsertSpawnPoint(ctx context.Context, sp model.SpawnPoint) error
}

// ScanSpawnPointStore persists the many-to-many cell/spawn-point link.
type ScanSpawnPointStore interface {
	// Link records that spawnPointID lies within step distance of cell.
	Link(ctx context.Context, cell model.CellID, spawnPointID string) error
	// SpawnPointIDsForCell returns every spawn point linked to cell.
	SpawnPointIDsForCell(ctx context.Context, cell model.CellID) ([]string, error)
}

// StateStore persists small scheduler-carried key/value state across
// restarts (e.g. the last known origin, or next_band_date).
type StateStore interface {
	GetState(ctx context.Context, key string) (string, bool, error)
	SetState(ctx context.Context, key, value string) error
}

// Store is the full storage surface the scheduler package depends on.
type Store interface {
	ScannedLocationStore
	SpawnPointStore
	ScanSpawnPointStore
	StateStore
}
