// Package app provides the orchestration layer for pick.
//
// # Overview
//
// This package wires together configuration, item loaders, the snapshot
// store and the picker UI. It is the composition root: every dependency is
// built here and handed down.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()     Window settings and configured lists
//	       ├─────> prefs.Load()      Saved theme and last list
//	       ├─────> buildSources()    stdin, --file, --url or configured lists
//	       ├─────> refresh()         Initial load of every list
//	       ├─────> StartPoller()     Background reloads per list
//	       ├─────> ui.Run()          Picker (blocks)
//	       └─────> prefs.Save()      Remember theme and list
//
// # Polling Behavior
//
// Remote lists reload every 30 seconds unless configured otherwise; file
// lists reload only when a poll interval is set. After a failed load the
// next attempt is delayed exponentially, up to five minutes, and the store
// keeps serving the last good items. A load cut short by cancellation is not
// counted as a failure.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - Invalid --url, or nothing to pick from
//   - Window settings rejected by the engine
//
// Recoverable errors (logged, polling continues):
//   - Loader failures, shown in the picker header
//   - Preference save failures
package app
