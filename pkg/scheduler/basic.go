package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/rocketmap/scanscheduler/pkg/model"
)

// staticQueue implements the FIFO-dequeue plumbing shared by HexSearch,
// HexSearchSpawnpoint and SpawnScan: once Schedule() installs a batch of
// items, NextItem pops them in order and TaskDone is a no-op acknowledgement
// (these strategies carry no per-item retry or learning state).
type staticQueue struct {
	mu    sync.Mutex
	items []model.QueueItem
	size  int

	scanDelay time.Duration
}

func (q *staticQueue) install(items []model.QueueItem) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = items
	q.size = len(items)
}

// ScanningPaused drops all pending items. Safe to call repeatedly.
func (q *staticQueue) ScanningPaused() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}

// TimeToRefreshQueue reports whether the queue has run dry.
func (q *staticQueue) TimeToRefreshQueue() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// GetSize reports the queue length at the last Schedule() call.
func (q *staticQueue) GetSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

// NextItem pops the next item in queue order, or the sentinel if the queue
// is empty.
func (q *staticQueue) NextItem(status *model.WorkerStatus) Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Sentinel("Waiting for item from queue")
	}

	item := q.items[0]
	q.items = q.items[1:]

	return Result{
		Step:     item.Step,
		Loc:      item.Loc,
		Appears:  int64(item.Start),
		Leaves:   int64(item.End),
		Messages: itemMessages(item),
	}
}

// TaskDone is a no-op: these strategies have no per-item retry state to
// update, and the item has already left the queue in NextItem.
func (q *staticQueue) TaskDone(status *model.WorkerStatus, parsed *model.ParsedScan) {}

// Delay enforces the standard movement-pacing formula: wait at least
// scanDelay since the worker's last scan, never less than two seconds.
func (q *staticQueue) Delay(lastScanDate time.Time) time.Duration {
	d := time.Until(lastScanDate.Add(q.scanDelay))
	if d < 2*time.Second {
		return 2 * time.Second
	}
	return d
}

// GetOverseerMessage describes the head of the queue, mirroring the source
// scheduler's generic status line.
func (q *staticQueue) GetOverseerMessage() string {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "Processing search queue, queue is empty"
	}

	next := q.items[0]
	msg := fmt.Sprintf("Processing search queue, next item is %.6f,%.6f", next.Loc.Lat, next.Loc.Lng)
	if next.Start != 0 {
		delta := int64(next.Start) - time.Now().Unix()
		if delta > 0 {
			msg += fmt.Sprintf(" (%ds ahead)", delta)
		} else {
			msg += fmt.Sprintf(" (%ds behind)", -delta)
		}
	}
	return msg
}

// LastCycleReport is always the zero value: these strategies pop a flat
// queue and keep no end-of-cycle statistics.
func (q *staticQueue) LastCycleReport() model.CycleReport {
	return model.CycleReport{}
}

func itemMessages(item model.QueueItem) model.Messages {
	return model.Messages{
		Wait:    "Waiting for item from queue",
		Early:   fmt.Sprintf("Early for %.6f,%.6f; waiting...", item.Loc.Lat, item.Loc.Lng),
		Late:    fmt.Sprintf("Too late for location %.6f,%.6f; skipping", item.Loc.Lat, item.Loc.Lng),
		Search:  fmt.Sprintf("Searching at %.6f,%.6f", item.Loc.Lat, item.Loc.Lng),
		Invalid: fmt.Sprintf("Invalid response at %.6f,%.6f, abandoning location", item.Loc.Lat, item.Loc.Lng),
	}
}
