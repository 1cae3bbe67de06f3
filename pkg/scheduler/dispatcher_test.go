package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

// stubScheduler is a minimal Scheduler used to exercise the Dispatcher's
// pass-through and pacing behavior in isolation from any real strategy.
type stubScheduler struct {
	scheduleCalls int
	nextItemCalls int
	refreshNow    bool
}

func (s *stubScheduler) Schedule(context.Context) error { s.scheduleCalls++; return nil }
func (s *stubScheduler) LocationChanged(context.Context, model.Location) error { return nil }
func (s *stubScheduler) ScanningPaused()                                       {}
func (s *stubScheduler) TimeToRefreshQueue() bool                              { return s.refreshNow }
func (s *stubScheduler) NextItem(*model.WorkerStatus) Result {
	s.nextItemCalls++
	return Result{Step: 7}
}
func (s *stubScheduler) TaskDone(*model.WorkerStatus, *model.ParsedScan) {}
func (s *stubScheduler) Delay(time.Time) time.Duration                  { return 0 }
func (s *stubScheduler) GetSize() int                                   { return 0 }
func (s *stubScheduler) GetOverseerMessage() string                     { return "stub" }
func (s *stubScheduler) LastCycleReport() model.CycleReport             { return model.CycleReport{} }

func TestDispatcherNextItemForwardsToScheduler(t *testing.T) {
	stub := &stubScheduler{}
	d := NewDispatcher(stub, time.Minute)

	result, err := d.NextItem(context.Background(), &model.WorkerStatus{WorkerID: "w1"})
	require.NoError(t, err)
	assert.Equal(t, 7, result.Step)
	assert.Equal(t, 1, stub.nextItemCalls)
}

func TestDispatcherNextItemHonorsContextCancellation(t *testing.T) {
	stub := &stubScheduler{}
	d := NewDispatcher(stub, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Drain the per-worker limiter's single token first so the next call
	// must wait on the cancelled context instead of passing through free.
	status := &model.WorkerStatus{WorkerID: "w2"}
	_, _ = d.NextItem(context.Background(), status)

	_, err := d.NextItem(ctx, status)
	assert.Error(t, err)
}

func TestDispatcherRunSchedulesOnlyWhenDue(t *testing.T) {
	stub := &stubScheduler{refreshNow: true}
	d := NewDispatcher(stub, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()
	d.Run(ctx)

	assert.GreaterOrEqual(t, stub.scheduleCalls, 2)

	idle := &stubScheduler{refreshNow: false}
	dIdle := NewDispatcher(idle, 10*time.Millisecond)

	ctxIdle, cancelIdle := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancelIdle()
	dIdle.Run(ctxIdle)

	assert.Equal(t, 0, idle.scheduleCalls)
}
