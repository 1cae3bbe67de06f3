package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// TestHexSearchRingLimit2YieldsSevenCellsStartingAtOrigin exercises the
// concrete worked example: ring_limit=2, origin=(0,0) must produce 7 cells,
// the first of which is the origin itself, every item untimed (appears =
// leaves = 0), and a repeated Schedule() call must be idempotent (same set
// of locations, same queue length).
func TestHexSearchRingLimit2YieldsSevenCellsStartingAtOrigin(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 2, ScanDelay: config.Duration(0)}
	h := NewHexSearch(cfg, nil)

	ctx := context.Background()
	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, h.Schedule(ctx))

	require.Equal(t, 7, h.GetSize())

	first := h.NextItem(nil)
	assert.NotEqual(t, SentinelStep, first.Step)
	assert.InDelta(t, 0, first.Loc.Lat, 1e-9)
	assert.InDelta(t, 0, first.Loc.Lng, 1e-9)
	assert.Equal(t, int64(0), first.Appears)
	assert.Equal(t, int64(0), first.Leaves)

	// Drain the rest; every item must also be untimed.
	for i := 0; i < 6; i++ {
		r := h.NextItem(nil)
		require.NotEqual(t, SentinelStep, r.Step)
		assert.Equal(t, int64(0), r.Appears)
		assert.Equal(t, int64(0), r.Leaves)
	}
	assert.Equal(t, SentinelStep, h.NextItem(nil).Step)

	// schedule() twice with identical inputs reuses the cached location
	// set and reinstalls the same queue length.
	require.NoError(t, h.Schedule(ctx))
	assert.Equal(t, 7, h.GetSize())
}

// TestHexSearchRingLimit1YieldsOneLocation covers the boundary case named in
// spec §8: ring_limit=1 yields exactly one location.
func TestHexSearchRingLimit1YieldsOneLocation(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 1}
	h := NewHexSearch(cfg, nil)

	ctx := context.Background()
	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 12, Lng: 34}))
	require.NoError(t, h.Schedule(ctx))

	assert.Equal(t, 1, h.GetSize())
}

// TestHexSearchScheduleWithoutLocationInstallsEmptyQueue covers the "cannot
// schedule work until scan location has been set" path.
func TestHexSearchScheduleWithoutLocationInstallsEmptyQueue(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 2}
	h := NewHexSearch(cfg, nil)

	require.NoError(t, h.Schedule(context.Background()))
	assert.Equal(t, 0, h.GetSize())
	assert.Equal(t, SentinelStep, h.NextItem(nil).Step)
}

// TestHexSearchLocationChangedClearsCachedLocations ensures a relocated
// origin forces regeneration rather than reusing the previous cell set.
func TestHexSearchLocationChangedClearsCachedLocations(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 1}
	h := NewHexSearch(cfg, nil)
	ctx := context.Background()

	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, h.Schedule(ctx))
	first := h.NextItem(nil)
	require.NotEqual(t, SentinelStep, first.Step)
	assert.InDelta(t, 0, first.Loc.Lat, 1e-9)

	require.NoError(t, h.LocationChanged(ctx, model.Location{Lat: 5, Lng: 5}))
	require.NoError(t, h.Schedule(ctx))
	moved := h.NextItem(nil)
	require.NotEqual(t, SentinelStep, moved.Step)
	assert.InDelta(t, 5, moved.Loc.Lat, 1e-9)
}
