// Package scheduler implements the four scan-scheduling strategies
// (HexSearch, HexSearchSpawnpoint, SpawnScan, SpeedScan) behind a shared
// contract, plus the refresh/dispatch loop that drives whichever one a
// deployment is configured to run.
package scheduler

import (
	"context"
	"time"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

// SentinelStep is returned by NextItem in place of a real step number when
// there is nothing to scan right now; the caller should read Result.Messages
// for why and retry later.
const SentinelStep = -1

// Result is what NextItem returns: either a claimed item (Step != SentinelStep)
// or the sentinel with a populated Messages.Wait explaining the stall.
type Result struct {
	Step     int
	Loc      model.Location
	Appears  int64
	Leaves   int64
	Messages model.Messages
}

// Sentinel builds a stalled Result carrying wait as the diagnostic message.
func Sentinel(wait string) Result {
	return Result{Step: SentinelStep, Messages: model.Messages{Wait: wait}}
}

// Scheduler is the capability set every strategy implements. The dispatcher
// drives any of the four concrete strategies through this interface alone.
type Scheduler interface {
	// Schedule rebuilds the queue from current state and storage. Idempotent;
	// safe to call while workers are idle.
	Schedule(ctx context.Context) error

	// LocationChanged resets scheduler state for a new scan origin: it
	// regenerates locations and, for strategies that track per-cell state,
	// writes the new ScannedLocation/ScanSpawnPoint records.
	LocationChanged(ctx context.Context, origin model.Location) error

	// ScanningPaused drops all pending items. Safe to call repeatedly.
	ScanningPaused()

	// TimeToRefreshQueue reports whether Schedule should be called again.
	TimeToRefreshQueue() bool

	// NextItem atomically claims the next item for status's worker, or
	// returns the sentinel if nothing is currently claimable.
	NextItem(status *model.WorkerStatus) Result

	// TaskDone acknowledges completion of the item the worker last claimed.
	// parsed is nil if the worker has nothing to report (e.g. the claim was
	// abandoned).
	TaskDone(status *model.WorkerStatus, parsed *model.ParsedScan)

	// Delay returns the minimum wait before the worker may act again.
	Delay(lastScanDate time.Time) time.Duration

	// GetSize reports the queue length, for telemetry. SpeedScan reports the
	// live length; the static strategies report the length of the queue the
	// last Schedule installed.
	GetSize() int

	// GetOverseerMessage returns a human-readable status line for the
	// overseer dashboard.
	GetOverseerMessage() string

	// LastCycleReport returns the statistics computed at the end of the
	// most recent refresh cycle, for telemetry. Strategies that don't
	// compute one return the zero value.
	LastCycleReport() model.CycleReport
}
