// Package workerstate provides a generic, thread-safe registry of per-worker
// state. Workers identify themselves with an opaque ID (typically a UUID
// minted by the worker process on startup).
package workerstate

import (
	"log/slog"
	"sync"
	"time"
)

// cleanupInterval is how often Get() triggers lazy eviction of expired entries.
const cleanupInterval = 100

type entry[T any] struct {
	value      *T
	lastAccess time.Time
}

// Store is a typed, thread-safe registry. Each unique worker ID maps to one
// instance of T, created on first access via the newFn factory.
type Store[T any] struct {
	mu       sync.Mutex
	entries  map[string]*entry[T]
	ttl      time.Duration
	newFn    func() *T
	getCalls int

	// label identifies what kind of per-worker state this store holds
	// (e.g. "worker-status", "next-item-limiter"), so eviction log lines
	// are distinguishable when a process runs more than one Store.
	label string
}

// New creates a Store that evicts workers inactive longer than ttl.
// newFn initialises state when a worker ID is seen for the first time.
// label identifies the store in eviction log lines.
func New[T any](label string, ttl time.Duration, newFn func() *T) *Store[T] {
	return &Store[T]{
		entries: make(map[string]*entry[T]),
		ttl:     ttl,
		newFn:   newFn,
		label:   label,
	}
}

// Get returns the state for the given worker, creating it if needed.
// Each call refreshes the worker's last-access timestamp.
func (s *Store[T]) Get(id string) *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.getCalls%cleanupInterval == 0 {
		s.cleanupLocked()
	}

	e, ok := s.entries[id]
	if !ok {
		e = &entry[T]{value: s.newFn()}
		s.entries[id] = e
	}
	e.lastAccess = time.Now()
	return e.value
}

// Cleanup evicts all workers that have been inactive longer than the TTL.
func (s *Store[T]) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked()
}

func (s *Store[T]) cleanupLocked() {
	cutoff := time.Now().Add(-s.ttl)
	evicted := 0
	for id, e := range s.entries {
		if e.lastAccess.Before(cutoff) {
			delete(s.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		slog.Debug("evicted inactive workers", "store", s.label, "count", evicted, "ttl", s.ttl, "remaining", len(s.entries))
	}
}

// Len returns the number of registered workers.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
