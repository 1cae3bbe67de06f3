package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/config"
	"github.com/rocketmap/scanscheduler/pkg/model"
)

// TestAppearsLeavesTwoMinutesPastHour exercises the concrete worked example:
// a spawn at second 120 past the hour (02:00), observed 30 seconds past the
// hour, must appear in 90 seconds and leave 900 seconds after that.
func TestAppearsLeavesTwoMinutesPastHour(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 30, 0, time.UTC)
	appears, leaves := appearsLeaves(120, now, 30)

	assert.Equal(t, now.Add(90*time.Second), appears)
	assert.Equal(t, appears.Add(spawnVisibilityWindow), leaves)
	assert.Equal(t, 900*time.Second, leaves.Sub(appears))
}

// TestAppearsLeavesLaterThisHour covers the straightforward case where the
// spawn second hasn't happened yet this hour.
func TestAppearsLeavesLaterThisHour(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 10, 0, time.UTC)
	appears, leaves := appearsLeaves(40, now, 10)

	assert.Equal(t, now.Add(30*time.Second), appears)
	assert.Equal(t, appears.Add(15*time.Minute), leaves)
}

func TestSpawnScanScheduleWithoutLocationInstallsEmptyQueue(t *testing.T) {
	cfg := config.SchedulerConfig{StepLimit: 1, SpawnpointScanning: "nofile"}
	s := NewSpawnScan(cfg, nil, newFakeStore())

	require.NoError(t, s.Schedule(context.Background()))
	assert.Equal(t, 0, s.GetSize())
	assert.Equal(t, SentinelStep, s.NextItem(nil).Step)
}

// TestSpawnScanLoadsFromDatabaseWhenNoSidecar confirms the storage fallback
// path used when spawnpoint_scanning is "nofile", and that inactive spawn
// points are excluded from the built queue.
func TestSpawnScanLoadsFromDatabaseWhenNoSidecar(t *testing.T) {
	sp := &spStore{points: []model.SpawnPoint{
		{ID: "active", Lat: 1, Lng: 2, EarliestUnseen: 100, LatestSeen: 100},
		{ID: "inactive", Lat: 3, Lng: 4, EarliestUnseen: 100, LatestSeen: 100, MissedCount: model.InactiveMissThreshold + 1},
	}}

	cfg := config.SchedulerConfig{StepLimit: 1, SpawnpointScanning: "nofile"}
	s := NewSpawnScan(cfg, nil, sp)
	require.NoError(t, s.LocationChanged(context.Background(), model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, s.Schedule(context.Background()))

	require.Equal(t, 1, s.GetSize())
	item := s.NextItem(nil)
	require.NotEqual(t, SentinelStep, item.Step)
	assert.InDelta(t, 1, item.Loc.Lat, 1e-9)
}

// TestSpawnScanLoadsFromSidecarFile covers the supplemented
// sidecar-spawnpoint-file loading path.
func TestSpawnScanLoadsFromSidecarFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spawns.json")

	raw, err := json.Marshal([]sidecarSpawn{
		{Lat: 10, Lng: 20, SpawnPointID: "sp-a", Time: 120},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := config.SchedulerConfig{StepLimit: 1, SpawnpointScanning: path}
	s := NewSpawnScan(cfg, nil, newFakeStore())
	require.NoError(t, s.LocationChanged(context.Background(), model.Location{Lat: 0, Lng: 0}))
	require.NoError(t, s.Schedule(context.Background()))

	require.Equal(t, 1, s.GetSize())
	item := s.NextItem(nil)
	require.NotEqual(t, SentinelStep, item.Step)
	assert.InDelta(t, 10, item.Loc.Lat, 1e-9)
	assert.InDelta(t, 20, item.Loc.Lng, 1e-9)
	assert.Greater(t, item.Appears, int64(0))
	assert.Equal(t, item.Appears+int64(spawnVisibilityWindow/time.Second), item.Leaves)
}

func TestLoadSidecarMissingFileFallsBackSilently(t *testing.T) {
	cfg := config.SchedulerConfig{SpawnpointScanning: filepath.Join(t.TempDir(), "missing.json")}
	s := NewSpawnScan(cfg, nil, newFakeStore())
	assert.Nil(t, s.loadSidecar())
}

func TestLoadSidecarInvalidJSONFallsBackSilently(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spawns.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	cfg := config.SchedulerConfig{SpawnpointScanning: path}
	s := NewSpawnScan(cfg, nil, newFakeStore())
	assert.Nil(t, s.loadSidecar())
}
