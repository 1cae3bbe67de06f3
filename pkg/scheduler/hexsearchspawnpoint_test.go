package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/geo"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// spStore is a store.SpawnPointStore stub that returns a fixed set of spawn
// points regardless of the hex it's asked about.
type spStore struct {
	fakeStore
	points []model.SpawnPoint
	err    error
}

func (s *spStore) SpawnPointsInHex(context.Context, geo.Point, int, float64) ([]model.SpawnPoint, error) {
	return s.points, s.err
}

func TestHexSearchSpawnpointKeepsOnlyCellsNearAKnownSpawn(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 2}
	// A spawn point sitting exactly on the origin keeps the origin cell;
	// every other ring_limit=2 cell sits one hex pitch (~121m at the 70m
	// step) away, well outside spawnPointRangeMeters, so only the origin
	// should survive.
	sp := &spStore{points: []model.SpawnPoint{{ID: "sp1", Lat: 0, Lng: 0}}}

	h := NewHexSearchSpawnpoint(cfg, nil, sp)
	ctx := context.Background()
	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, h.Schedule(ctx))

	assert.Equal(t, 1, h.GetSize())
	first := h.NextItem(nil)
	require.NotEqual(t, SentinelStep, first.Step)
	assert.InDelta(t, 0, first.Loc.Lat, 1e-9)
	assert.InDelta(t, 0, first.Loc.Lng, 1e-9)
}

// TestHexSearchSpawnpointEmptySpawnSetYieldsEmptySchedule covers the
// boundary behavior named in spec §8: an empty spawn-point set yields an
// empty schedule.
func TestHexSearchSpawnpointEmptySpawnSetYieldsEmptySchedule(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 2}
	sp := &spStore{points: nil}

	h := NewHexSearchSpawnpoint(cfg, nil, sp)
	ctx := context.Background()
	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, h.Schedule(ctx))

	assert.Equal(t, 0, h.GetSize())
	assert.Equal(t, SentinelStep, h.NextItem(nil).Step)
}

func TestAnySpawnPointWithinRange(t *testing.T) {
	pt := geo.Point{Lat: 0, Lng: 0}

	near := []model.SpawnPoint{{Lat: 0.0001, Lng: 0.0001}}
	assert.True(t, anySpawnPointWithinRange(pt, near))

	far := []model.SpawnPoint{{Lat: 10, Lng: 10}}
	assert.False(t, anySpawnPointWithinRange(pt, far))

	assert.False(t, anySpawnPointWithinRange(pt, nil))
}
