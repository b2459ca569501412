package state

import (
	"fmt"
	"sync"
	"time"
)

// Phase names the background task currently reporting progress.
type Phase int

const (
	// Idle means no background task is running.
	Idle Phase = iota
	// Indexing covers the initial line index build.
	Indexing
	// Searching covers a long search scan.
	Searching
)

func (p Phase) String() string {
	switch p {
	case Indexing:
		return "indexing"
	case Searching:
		return "searching"
	default:
		return "idle"
	}
}

// Snapshot is the latest progress view available to the UI.
type Snapshot struct {
	Phase    Phase
	Fraction float64
	// Updated is the time of the last report.
	Updated time.Time
	// Err is the failure that ended the phase, if any.
	Err error
}

// Busy reports whether a background task is running.
func (s Snapshot) Busy() bool { return s.Phase != Idle }

// Store coordinates concurrent progress updates from background tasks.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin starts reporting for a new phase, resetting the fraction and
// clearing any previous error.
func (s *Store) Begin(phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{Phase: phase, Updated: time.Now()}
}

// Set records a progress fraction for the current phase. Reports arriving
// out of order never move the fraction backwards.
func (s *Store) Set(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fraction > s.snapshot.Fraction {
		s.snapshot.Fraction = fraction
	}
	s.snapshot.Updated = time.Now()
}

// Done ends the current phase successfully.
func (s *Store) Done() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Phase = Idle
	s.snapshot.Fraction = 1
	s.snapshot.Updated = time.Now()
}

// Fail ends the current phase with an error. The error stays visible
// until the next Begin.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Phase = Idle
	s.snapshot.Err = err
	s.snapshot.Updated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snapshot.Err)
	}
	return snap
}
