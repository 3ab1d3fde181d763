package ui

import "time"

// Screen layout: header, query line, list, footer.
const (
	headerRows = 1
	queryRows  = 1
	footerRows = 1

	// listTop is the first screen row of the list.
	listTop = headerRows + queryRows

	chromeRows = headerRows + queryRows + footerRows
)

// Layout widths below which optional header segments are dropped.
const (
	LayoutCompactWidth = 60
	LayoutWideWidth    = 100
)

const (
	// wheelRows is how many rows one mouse wheel notch scrolls.
	wheelRows = 3

	// DefaultUIInterval is how often the UI checks the store for new items.
	DefaultUIInterval = 500 * time.Millisecond
)
