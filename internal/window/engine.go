package window

import "math"

// DefaultBuffer is the number of rows materialized above and below the
// viewport when Options.Buffer is zero.
const DefaultBuffer = 5

// State is the engine's open/closed state.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Options configure an Engine.
type Options[K comparable] struct {
	ItemHeight    float64 // must be > 0
	ViewportCount int     // rows visible; must be >= 0
	Buffer        int     // zero uses DefaultBuffer; negative disables buffering
	MultiSelect   bool
	Match         MatchMode

	// OnSelectionChange receives the selected keys after every change.
	OnSelectionChange func([]K)
}

// Engine is a windowed view over an item set: it filters the set, tracks
// scroll position and selection, and materializes only the rows around the
// viewport. It is not safe for concurrent use.
//
// Runtime methods never fail; out-of-range input is clamped and unknown keys
// are ignored.
type Engine[K comparable] struct {
	itemHeight float64
	viewport   int
	buffer     int
	match      MatchMode

	all   []Item[K]
	items []Item[K]
	query string

	state     State
	scrollTop float64
	rng       Range
	cursor    int

	sel *Selection[K]
}

// New builds a closed engine over items. It returns a *ConfigurationError
// when ItemHeight is not positive or ViewportCount is negative.
func New[K comparable](items []Item[K], opts Options[K]) (*Engine[K], error) {
	if math.IsNaN(opts.ItemHeight) || opts.ItemHeight <= 0 || math.IsInf(opts.ItemHeight, 0) {
		return nil, &ConfigurationError{Field: "ItemHeight", Value: opts.ItemHeight, Want: "> 0"}
	}
	if opts.ViewportCount < 0 {
		return nil, &ConfigurationError{Field: "ViewportCount", Value: opts.ViewportCount, Want: ">= 0"}
	}

	buffer := opts.Buffer
	switch {
	case buffer == 0:
		buffer = DefaultBuffer
	case buffer < 0:
		buffer = 0
	}

	mode := SingleSelect
	if opts.MultiSelect {
		mode = MultiSelect
	}

	e := &Engine[K]{
		itemHeight: opts.ItemHeight,
		viewport:   opts.ViewportCount,
		buffer:     buffer,
		match:      opts.Match,
		all:        items,
		items:      items,
		sel:        NewSelection(mode, opts.OnSelectionChange),
	}
	return e, nil
}

// State returns the current state.
func (e *Engine[K]) State() State { return e.state }

// IsOpen reports whether the engine is open.
func (e *Engine[K]) IsOpen() bool { return e.state == StateOpen }

// Open starts tracking the visible range.
func (e *Engine[K]) Open() {
	e.state = StateOpen
	e.recompute()
}

// Close stops materialization. Items, query, scroll and selection are kept.
func (e *Engine[K]) Close() {
	e.state = StateClosed
	e.rng = Range{}
}

// SetItems replaces the full item set and reapplies the current query.
func (e *Engine[K]) SetItems(items []Item[K]) {
	e.all = items
	e.refilter()
}

// SetQuery filters the full item set. Scroll position and cursor return to
// the top.
func (e *Engine[K]) SetQuery(query string) {
	e.query = query
	e.refilter()
}

// SetScrollTop moves the viewport. The offset is clamped to
// [0, MaxScrollTop()].
func (e *Engine[K]) SetScrollTop(px float64) {
	if math.IsNaN(px) || px < 0 {
		px = 0
	}
	e.scrollTop = min(px, e.MaxScrollTop())
	e.recompute()
}

// ScrollBy moves the viewport by delta.
func (e *Engine[K]) ScrollBy(delta float64) {
	e.SetScrollTop(e.scrollTop + delta)
}

// SetViewportCount changes the number of visible rows, typically after the
// container was resized. Negative values are treated as zero.
func (e *Engine[K]) SetViewportCount(n int) {
	e.viewport = max(n, 0)
	e.SetScrollTop(e.scrollTop)
}

// Select marks key as selected.
func (e *Engine[K]) Select(key K) { e.sel.Select(key) }

// Deselect unmarks key.
func (e *Engine[K]) Deselect(key K) { e.sel.Deselect(key) }

// Toggle flips key's selection.
func (e *Engine[K]) Toggle(key K) { e.sel.Toggle(key) }

// Clear drops the whole selection.
func (e *Engine[K]) Clear() { e.sel.Clear() }

// IsSelected reports whether key is selected.
func (e *Engine[K]) IsSelected(key K) bool { return e.sel.IsSelected(key) }

// Selection returns the selected keys in selection order.
func (e *Engine[K]) Selection() []K { return e.sel.Values() }

// SelectionMode returns whether the engine selects one or many keys.
func (e *Engine[K]) SelectionMode() SelectionMode { return e.sel.Mode() }

// VisibleSlice materializes the current range. A closed engine returns an
// empty Window. The row under the cursor is marked Active.
func (e *Engine[K]) VisibleSlice() Window[K] {
	if !e.IsOpen() {
		return Window[K]{}
	}
	w := Materialize(e.items, e.rng, e.itemHeight, e.sel)
	for i := range w.Rows {
		if w.Rows[i].Index == e.cursor {
			w.Rows[i].Active = true
		}
	}
	return w
}

// Cursor returns the index of the highlighted item in the filtered set.
func (e *Engine[K]) Cursor() int { return e.cursor }

// SetCursor highlights index i, clamped to the filtered set, and scrolls it
// into view.
func (e *Engine[K]) SetCursor(i int) {
	if len(e.items) == 0 {
		e.cursor = 0
		return
	}
	e.cursor = min(max(i, 0), len(e.items)-1)
	e.EnsureVisible(e.cursor)
}

// MoveCursor moves the highlight by delta rows.
func (e *Engine[K]) MoveCursor(delta int) {
	n := len(e.items)
	e.SetCursor(e.cursor + min(max(delta, -n), n))
}

// PageDown moves the highlight one viewport down.
func (e *Engine[K]) PageDown() { e.MoveCursor(max(e.viewport, 1)) }

// PageUp moves the highlight one viewport up.
func (e *Engine[K]) PageUp() { e.MoveCursor(-max(e.viewport, 1)) }

// CursorItem returns the highlighted item.
func (e *Engine[K]) CursorItem() (Item[K], bool) {
	if e.cursor < 0 || e.cursor >= len(e.items) {
		return Item[K]{}, false
	}
	return e.items[e.cursor], true
}

// ToggleCursor toggles the highlighted item's selection.
func (e *Engine[K]) ToggleCursor() {
	if it, ok := e.CursorItem(); ok {
		e.sel.Toggle(it.Value)
	}
}

// SelectCursor selects the highlighted item.
func (e *Engine[K]) SelectCursor() {
	if it, ok := e.CursorItem(); ok {
		e.sel.Select(it.Value)
	}
}

// EnsureVisible scrolls the minimum distance that places index i inside the
// viewport. Out-of-range indexes are ignored.
func (e *Engine[K]) EnsureVisible(i int) {
	if i < 0 || i >= len(e.items) {
		return
	}
	top := float64(i) * e.itemHeight
	bottom := top + e.itemHeight
	visible := float64(e.viewport) * e.itemHeight
	switch {
	case e.viewport == 0 || top < e.scrollTop:
		e.SetScrollTop(top)
	case bottom > e.scrollTop+visible:
		e.SetScrollTop(bottom - visible)
	}
}

// Items returns the filtered item set. Callers must not modify it.
func (e *Engine[K]) Items() []Item[K] { return e.items }

// Len returns the size of the filtered set.
func (e *Engine[K]) Len() int { return len(e.items) }

// Total returns the size of the full set.
func (e *Engine[K]) Total() int { return len(e.all) }

// Query returns the current query.
func (e *Engine[K]) Query() string { return e.query }

// ScrollTop returns the current scroll offset.
func (e *Engine[K]) ScrollTop() float64 { return e.scrollTop }

// Range returns the last computed range; empty while closed.
func (e *Engine[K]) Range() Range { return e.rng }

// ItemHeight returns the fixed row height.
func (e *Engine[K]) ItemHeight() float64 { return e.itemHeight }

// ViewportCount returns the number of visible rows.
func (e *Engine[K]) ViewportCount() int { return e.viewport }

// Buffer returns the effective buffer size.
func (e *Engine[K]) Buffer() int { return e.buffer }

// TotalHeight is the height of the whole filtered set.
func (e *Engine[K]) TotalHeight() float64 {
	return float64(len(e.items)) * e.itemHeight
}

// MaxScrollTop is the largest offset that keeps the viewport full.
func (e *Engine[K]) MaxScrollTop() float64 {
	return maxScrollTop(len(e.items), e.itemHeight, e.viewport)
}

func (e *Engine[K]) scrollState() ScrollState {
	return ScrollState{
		ScrollTop:     e.scrollTop,
		ItemHeight:    e.itemHeight,
		ViewportCount: e.viewport,
		Buffer:        e.buffer,
	}
}

func (e *Engine[K]) refilter() {
	e.items = FilterWith(e.all, e.query, e.match)
	e.scrollTop = 0
	e.cursor = 0
	e.recompute()
}

func (e *Engine[K]) recompute() {
	if !e.IsOpen() {
		e.rng = Range{}
		return
	}
	e.rng = ComputeRange(e.scrollState(), len(e.items))
}
