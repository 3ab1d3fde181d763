package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/pick/internal/window"
)

// Snapshot is the latest loaded data for one list.
type Snapshot struct {
	Items               []window.Item[string]
	Version             uint64 // bumped only when Items changes
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Loaded reports whether at least one load finished, successfully or not.
func (s Snapshot) Loaded() bool {
	return !s.LastUpdated.IsZero()
}

// IsOffline returns true when the source has failed several loads in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds one snapshot per list name and is safe for concurrent use by
// loaders and the UI.
type Store struct {
	mu    sync.RWMutex
	lists map[string]*Snapshot
	order []string
}

// Update records the result of a load. When err is non-nil the previous items
// are kept and the failure is counted.
func (s *Store) Update(name string, items []window.Item[string], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.entry(name)
	snap.LastUpdated = time.Now()
	if err != nil {
		snap.LastError = err
		snap.ConsecutiveFailures++
		return
	}

	if !slices.Equal(snap.Items, items) {
		snap.Items = slices.Clone(items)
		snap.Version++
	}
	snap.LastError = nil
	snap.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the named list's snapshot. Unknown names yield
// the zero Snapshot.
func (s *Store) Snapshot(name string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := s.lists[name]
	if !ok {
		return Snapshot{}
	}
	snap := *cur
	snap.Items = slices.Clone(cur.Items)
	if cur.LastError != nil {
		snap.LastError = fmt.Errorf("%w", cur.LastError)
	}
	return snap
}

// Status returns the named list's snapshot without its items, for callers
// that only show load health.
func (s *Store) Status(name string) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := s.lists[name]
	if !ok {
		return Snapshot{}
	}
	snap := *cur
	snap.Items = nil
	if cur.LastError != nil {
		snap.LastError = fmt.Errorf("%w", cur.LastError)
	}
	return snap
}

// Version returns the named list's item version without copying items.
func (s *Store) Version(name string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cur, ok := s.lists[name]; ok {
		return cur.Version
	}
	return 0
}

// Names returns list names in the order they were first updated.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

func (s *Store) entry(name string) *Snapshot {
	if s.lists == nil {
		s.lists = make(map[string]*Snapshot)
	}
	snap, ok := s.lists[name]
	if !ok {
		snap = &Snapshot{}
		s.lists[name] = snap
		s.order = append(s.order, name)
	}
	return snap
}
