package window

import "fmt"

// Item is a single entry in an item set. Value is the key used for
// selection; uniqueness is not enforced, duplicate keys share selection state.
type Item[K comparable] struct {
	Label string
	Value K
}

func (it Item[K]) String() string {
	return fmt.Sprintf("%s (%v)", it.Label, it.Value)
}

// Range is a half-open index range [Start, End) into an item set.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indexes covered by the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether index i falls inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Empty reports whether the range covers no indexes.
func (r Range) Empty() bool {
	return r.Len() == 0
}
