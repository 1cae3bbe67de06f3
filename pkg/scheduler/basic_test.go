package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

func TestStaticQueuePopsInFIFOOrder(t *testing.T) {
	q := &staticQueue{}
	q.install([]model.QueueItem{
		{Step: 1, Loc: model.Location{Lat: 1}},
		{Step: 2, Loc: model.Location{Lat: 2}},
		{Step: 3, Loc: model.Location{Lat: 3}},
	})

	require.Equal(t, 3, q.GetSize())
	assert.Equal(t, 1, q.NextItem(nil).Step)
	assert.Equal(t, 2, q.NextItem(nil).Step)
	assert.Equal(t, 3, q.NextItem(nil).Step)

	sentinel := q.NextItem(nil)
	assert.Equal(t, SentinelStep, sentinel.Step)
	assert.Equal(t, "Waiting for item from queue", sentinel.Messages.Wait)

	// GetSize reflects the length at the last install(), not what remains.
	assert.Equal(t, 3, q.GetSize())
}

// TestStaticQueueTaskDoneIsNoOp covers the spec §8 idempotence law for these
// strategies: task_done has no per-item state to update, so calling it
// (with any arguments, even nils) must not alter queue contents or panic.
func TestStaticQueueTaskDoneIsNoOp(t *testing.T) {
	q := &staticQueue{}
	q.install([]model.QueueItem{{Step: 1}})

	q.TaskDone(nil, nil)
	q.TaskDone(&model.WorkerStatus{WorkerID: "w1"}, &model.ParsedScan{})

	assert.Equal(t, 1, q.GetSize())
	assert.Equal(t, 1, q.NextItem(nil).Step)
}

func TestStaticQueueScanningPausedDropsPendingItems(t *testing.T) {
	q := &staticQueue{}
	q.install([]model.QueueItem{{Step: 1}, {Step: 2}})
	require.False(t, q.TimeToRefreshQueue())

	q.ScanningPaused()
	assert.True(t, q.TimeToRefreshQueue())
	assert.Equal(t, SentinelStep, q.NextItem(nil).Step)

	// Idempotent: calling it again on an already-empty queue is safe.
	q.ScanningPaused()
	assert.True(t, q.TimeToRefreshQueue())
}

func TestStaticQueueDelayEnforcesTwoSecondFloor(t *testing.T) {
	q := &staticQueue{scanDelay: time.Second}
	d := q.Delay(time.Now())
	assert.GreaterOrEqual(t, d, 2*time.Second)

	q2 := &staticQueue{scanDelay: time.Hour}
	d2 := q2.Delay(time.Now())
	assert.Greater(t, d2, 59*time.Minute)
}

func TestStaticQueueGetOverseerMessage(t *testing.T) {
	q := &staticQueue{}
	assert.Contains(t, q.GetOverseerMessage(), "queue is empty")

	q.install([]model.QueueItem{{Loc: model.Location{Lat: 1.5, Lng: 2.5}}})
	assert.Contains(t, q.GetOverseerMessage(), "1.500000,2.500000")
}

func TestStaticQueueLastCycleReportIsZeroValue(t *testing.T) {
	q := &staticQueue{}
	assert.Equal(t, model.CycleReport{}, q.LastCycleReport())
}
