// Package state shares loaded item sets between background loaders and the
// UI.
//
// # Overview
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────────┐        ┌──────────────────────┐
//	│ loader.Load()      │        │                      │
//	│      ↓             │        │                      │
//	│ store.Update(name) │───────→│ store.Version(name)  │
//	│      ↓             │(mutex) │ store.Snapshot(name) │
//	│  repeat...         │        │ engine.SetItems      │
//	└────────────────────┘        └──────────────────────┘
//
// Store keeps one Snapshot per list name behind a sync.RWMutex. Snapshot
// returns copies, so the UI can hand Items to a window engine without
// holding the lock.
//
// # Versions
//
// Version increases only when a successful update carries a different item
// set. Pollers refresh remote lists every few seconds; comparing versions
// lets the UI skip SetItems (which resets scroll and cursor) when nothing
// changed.
//
// # Failures
//
// A failed update keeps the previous items, records LastError and counts
// ConsecutiveFailures. IsOffline is true from the second failure in a row
// and the next success resets the counter.
package state
