package window

import "math"

// ScrollState is the scroll input to ComputeRange. ScrollTop and ItemHeight
// share a unit (pixels in a browser, terminal rows here).
type ScrollState struct {
	ScrollTop     float64
	ItemHeight    float64
	ViewportCount int
	Buffer        int
}

// ComputeRange maps a scroll position to the range of items that must be
// materialized: the rows in the viewport plus Buffer rows on either side.
//
// It never panics. A negative or NaN ScrollTop is treated as 0, negative
// counts as 0, and a non-positive ItemHeight or itemCount yields the empty
// range. The result always satisfies 0 <= Start <= End <= itemCount.
func ComputeRange(s ScrollState, itemCount int) Range {
	if itemCount <= 0 || !(s.ItemHeight > 0) {
		return Range{}
	}

	top := s.ScrollTop
	if math.IsNaN(top) || top < 0 {
		top = 0
	}
	// No range is wider than the set, so bounding the counts by itemCount
	// keeps every sum below in int range.
	viewport := min(max(s.ViewportCount, 0), itemCount)
	buffer := min(max(s.Buffer, 0), itemCount)

	// Clamp before converting so huge offsets cannot overflow int.
	rows := math.Floor(top / s.ItemHeight)
	rawStart := itemCount
	if rows < float64(itemCount) {
		rawStart = int(rows)
	}

	start := max(0, rawStart-buffer)
	end := rawStart + min(viewport, itemCount-rawStart)
	end += min(buffer, itemCount-end)
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

// maxScrollTop is the largest scroll offset that still fills the viewport.
func maxScrollTop(itemCount int, itemHeight float64, viewportCount int) float64 {
	total := float64(itemCount) * itemHeight
	visible := float64(max(viewportCount, 0)) * itemHeight
	if total <= visible {
		return 0
	}
	return total - visible
}
