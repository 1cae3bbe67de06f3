package scheduler

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/rocketmap/scanscheduler/pkg/model"
	"github.com/rocketmap/scanscheduler/pkg/workerstate"
)

// waitRetryRate bounds how often a single worker may re-poll NextItem while
// the scheduler keeps reporting "wait". It exists purely to keep an
// over-eager worker client from busy-spinning against the queue mutex; it
// has no bearing on scheduling decisions themselves.
const waitRetryRate = 2 // requests per second, per worker

// workerLimiterTTL evicts a worker's retry limiter after this much inactivity.
const workerLimiterTTL = 30 * time.Minute

// Dispatcher runs the background refresh loop that keeps a Scheduler's queue
// current, and paces per-worker retries when NextItem reports nothing
// claimable yet. It is the only thing outside pkg/scheduler that touches a
// Scheduler directly.
type Dispatcher struct {
	sched       Scheduler
	refreshTick time.Duration
	limiters    *workerstate.Store[rate.Limiter]
}

// NewDispatcher wraps sched with a refresh loop polled every refreshTick and
// per-worker retry pacing.
func NewDispatcher(sched Scheduler, refreshTick time.Duration) *Dispatcher {
	return &Dispatcher{
		sched:       sched,
		refreshTick: refreshTick,
		limiters: workerstate.New("next-item-limiter", workerLimiterTTL, func() *rate.Limiter {
			return rate.NewLimiter(rate.Limit(waitRetryRate), 1)
		}),
	}
}

// Run blocks, calling Schedule whenever the wrapped scheduler reports it's
// time to refresh, until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.refreshTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !d.sched.TimeToRefreshQueue() {
				continue
			}
			if err := d.sched.Schedule(ctx); err != nil {
				slog.Error("failed to refresh scan queue", "error", err)
			}
		}
	}
}

// NextItem claims the next item for the worker, pacing repeat polls through
// the worker's own rate limiter so a tight client retry loop on a "wait"
// sentinel never busy-spins against the scheduler's mutex.
func (d *Dispatcher) NextItem(ctx context.Context, status *model.WorkerStatus) (Result, error) {
	if err := d.limiters.Get(status.WorkerID).Wait(ctx); err != nil {
		return Result{}, err
	}
	return d.sched.NextItem(status), nil
}

// TaskDone forwards to the wrapped scheduler.
func (d *Dispatcher) TaskDone(status *model.WorkerStatus, parsed *model.ParsedScan) {
	d.sched.TaskDone(status, parsed)
}

// Schedule forwards to the wrapped scheduler. Callers typically invoke this
// once after LocationChanged before starting Run, so the first queue is
// ready before any worker polls NextItem.
func (d *Dispatcher) Schedule(ctx context.Context) error {
	return d.sched.Schedule(ctx)
}

// LocationChanged forwards to the wrapped scheduler.
func (d *Dispatcher) LocationChanged(ctx context.Context, origin model.Location) error {
	return d.sched.LocationChanged(ctx, origin)
}

// ScanningPaused forwards to the wrapped scheduler.
func (d *Dispatcher) ScanningPaused() {
	d.sched.ScanningPaused()
}

// GetSize forwards to the wrapped scheduler.
func (d *Dispatcher) GetSize() int {
	return d.sched.GetSize()
}

// GetOverseerMessage forwards to the wrapped scheduler.
func (d *Dispatcher) GetOverseerMessage() string {
	return d.sched.GetOverseerMessage()
}

// LastCycleReport forwards to the wrapped scheduler.
func (d *Dispatcher) LastCycleReport() model.CycleReport {
	return d.sched.LastCycleReport()
}
