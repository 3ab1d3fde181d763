package window

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// MatchMode selects how a query narrows an item set.
type MatchMode int

const (
	// MatchSubstring keeps items whose label contains the query, ignoring case.
	MatchSubstring MatchMode = iota
	// MatchFuzzy keeps items whose label contains the query runes in order,
	// using fzf's matcher.
	MatchFuzzy
)

// String returns the config spelling of the mode.
func (m MatchMode) String() string {
	switch m {
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "substring"
	}
}

// ParseMatchMode maps a config value to a MatchMode. Empty means substring.
func ParseMatchMode(value string) (MatchMode, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "substring":
		return MatchSubstring, true
	case "fuzzy":
		return MatchFuzzy, true
	}
	return MatchSubstring, false
}

// Filter narrows items to those whose label contains query, ignoring case.
// A blank query returns items itself, not a copy.
func Filter[K comparable](items []Item[K], query string) []Item[K] {
	return FilterWith(items, query, MatchSubstring)
}

// FilterWith narrows items using the given match mode. Relative order is
// preserved and items is never modified. A blank query returns items itself;
// any other query is trimmed of surrounding whitespace before matching.
func FilterWith[K comparable](items []Item[K], query string, mode MatchMode) []Item[K] {
	q := strings.TrimSpace(query)
	if q == "" {
		return items
	}

	var match func(label string) bool
	switch mode {
	case MatchFuzzy:
		match = newFuzzyMatcher(q)
	default:
		needle := strings.ToLower(q)
		match = func(label string) bool {
			return strings.Contains(strings.ToLower(label), needle)
		}
	}

	out := make([]Item[K], 0)
	for _, it := range items {
		if match(it.Label) {
			out = append(out, it)
		}
	}
	return out
}

// newFuzzyMatcher returns a case-insensitive fzf matcher for query. The slab
// is reused across calls, so the returned func must stay on one goroutine.
func newFuzzyMatcher(query string) func(string) bool {
	pattern := []rune(strings.ToLower(query))
	slab := util.MakeSlab(16*1024, 2048)
	return func(label string) bool {
		chars := util.ToChars([]byte(label))
		res, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		return res.Start >= 0
	}
}
