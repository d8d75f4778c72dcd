// Package store holds the most recently published Snapshot. The
// pipeline replaces it wholesale at the end of a run and the API layer
// reads it; readers always see either the prior complete snapshot or
// the new complete one, never an interleaving.
package store

import (
	"sync"

	"github.com/jonaslq/vattenkraft-scraper/core"
)

// Store is an atomically replaceable Snapshot holder.
type Store struct {
	mu      sync.RWMutex
	current core.Snapshot
}

// New creates a Store holding an empty (non-nil) Snapshot so the API
// serves [] before the first run completes.
func New() *Store {
	return &Store{current: core.Snapshot{}}
}

// Set replaces the held Snapshot.
func (s *Store) Set(snapshot core.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = snapshot
}

// Get returns the held Snapshot. The returned slice must be treated as
// read-only.
func (s *Store) Get() core.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}
