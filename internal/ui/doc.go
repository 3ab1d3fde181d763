// Package ui provides the terminal picker for pick.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds one window.Engine per list in a
// window.Registry, so exactly one list is open and materializing rows at a
// time. Items come from state.Store, which the app package keeps fresh with
// background pollers; the model re-reads a list only when its store version
// moves.
//
// # Package Structure
//
//   - model.go: Model, Options, Result, message handling and Run
//   - view.go: header, query line, list and footer rendering
//   - help.go: help overlay built from the key map
//   - keys.go: key bindings and their enabled state per mode
//   - theme.go: color palettes and derived lipgloss styles
//   - layout.go: fixed screen rows and layout breakpoints
//
// # Rendering
//
// The list area is sized from the terminal height and handed to every engine
// as its viewport count. Only the rows of the engine's current range are
// built; buffer rows outside the viewport are materialized but not drawn.
//
// # Key Bindings
//
//   - ↑/↓, ctrl+p/ctrl+n: Move the cursor
//   - pgup/pgdown, home/end: Jump by page or to the ends
//   - tab: Toggle selection (multi-select only)
//   - ctrl+r: Clear selection (multi-select only)
//   - ctrl+←/ctrl+→: Switch lists
//   - enter: Accept
//   - esc: Clear the query, or cancel when it is empty
//   - ctrl+t: Cycle theme
//   - f1: Help
//   - ctrl+c: Cancel
package ui
