package window

// Row is one materialized item. Index is the item's position in the filtered
// set, Selected is read from the selection when the row was built.
type Row[K comparable] struct {
	Item     Item[K]
	Index    int
	Selected bool
	Active   bool
}

// Window is the output of one materialization pass.
type Window[K comparable] struct {
	Rows        []Row[K]
	Range       Range
	OffsetY     float64
	TotalHeight float64
}

// Materialize builds the rows for r out of items. r is intersected with the
// bounds of items, so no row outside either is ever built. sel may be nil.
//
// OffsetY is Start*itemHeight and TotalHeight is len(items)*itemHeight, both
// computed directly rather than accumulated.
func Materialize[K comparable](items []Item[K], r Range, itemHeight float64, sel *Selection[K]) Window[K] {
	r = clampRange(r, len(items))
	w := Window[K]{
		Range:       r,
		OffsetY:     float64(r.Start) * itemHeight,
		TotalHeight: float64(len(items)) * itemHeight,
	}
	if r.Empty() {
		return w
	}
	w.Rows = make([]Row[K], 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		it := items[i]
		w.Rows = append(w.Rows, Row[K]{
			Item:     it,
			Index:    i,
			Selected: sel.IsSelected(it.Value),
		})
	}
	return w
}

func clampRange(r Range, n int) Range {
	start := min(max(r.Start, 0), n)
	end := min(max(r.End, start), n)
	return Range{Start: start, End: end}
}
