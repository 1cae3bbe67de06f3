package model

import "time"

// WorkerStatus is the record a worker presents to next_item/task_done, and
// the only state a worker itself owns.
type WorkerStatus struct {
	WorkerID        string
	Latitude        float64
	Longitude       float64
	LastScanDate    time.Time
	IndexOfQueueItem int
}

// ParsedScan is what a worker reports back to TaskDone after executing a
// scan against the upstream game protocol.
type ParsedScan struct {
	SpawnIDs map[string]struct{}
	BadScan  bool
}

// Found reports whether the given spawn point id was observed in this scan.
func (p ParsedScan) Found(spawnPointID string) bool {
	_, ok := p.SpawnIDs[spawnPointID]
	return ok
}
