// Package window implements a virtualized list: given a large item set, a
// fixed row height and a scroll offset, it materializes only the rows that
// are on screen plus a small buffer.
//
// # Components
//
//   - index.go: ComputeRange maps a ScrollState to a half-open Range
//   - filter.go: Filter/FilterWith narrow the item set by query
//   - selection.go: Selection tracks single or multi selection by key
//   - render.go: Materialize turns a Range into Rows with offsets
//   - engine.go: Engine ties the pieces together behind an open/closed state
//   - registry.go: Registry keeps one engine per named list
//
// # Data Flow
//
//	full items ──Filter──> filtered items
//	                          │
//	ScrollState ──ComputeRange(len)──> Range
//	                          │
//	Materialize(filtered, Range, Selection) ──> Window{Rows, OffsetY, TotalHeight}
//
// OffsetY is always Range.Start*ItemHeight and TotalHeight is always
// len(items)*ItemHeight. A caller positions the materialized rows at OffsetY
// inside a spacer of TotalHeight; in a terminal both are plain row counts.
//
// # Invariants
//
//   - 0 <= Start <= End <= len(items); the empty set yields {0, 0}
//   - End-Start <= ViewportCount + 2*Buffer, independent of len(items)
//   - ComputeRange and Materialize are pure
//   - selection is keyed against the full set; keys that are filtered out
//     stay selected and simply are not rendered
//   - in single mode at most one key is selected after every call
//
// # Errors
//
// Only New fails, with a *ConfigurationError, for a non-positive ItemHeight
// or a negative ViewportCount. Everything the engine does afterwards in
// response to scroll, filter or selection input clamps or ignores bad input,
// since it runs inside an input loop that must not stop.
//
// # Concurrency
//
// Engines, selections and registries belong to one goroutine (the Bubble Tea
// update loop in this repository). Item sets loaded in the background reach
// the engine through SetItems on that goroutine.
package window
