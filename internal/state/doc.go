// Package state shares background task progress between workers and the UI.
//
// # Overview
//
// The index build and long search scans run off the event loop. They
// report progress into a Store; the UI reads snapshots on its own render
// schedule. The Store is the only point where those goroutines meet.
//
// # Architecture
//
//	Producer (worker):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ document.Build │            │                 │
//	│ search.Find    │            │                 │
//	│      ↓         │            │                 │
//	│ store.Set()    │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render bar     │
//	└────────────────┘            └─────────────────┘
//
// # Concurrency Model
//
// A readers-writer lock guards the snapshot. Workers take the write lock
// for a struct copy; the UI takes the read lock once per frame. Neither
// side holds the lock during I/O or rendering.
//
// # Update Semantics
//
// Progress callbacks may fire out of order when the build fans out over
// chunks, so Set keeps the largest fraction seen for the current phase.
// Starting a new phase resets the fraction. Fail records the error and
// ends the phase; the UI decides how to surface it.
//
// The Store is usable as its zero value and is safe for concurrent use
// from the first call.
package state
