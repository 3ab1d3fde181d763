package window

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fruit() []Item[string] {
	return []Item[string]{
		{Label: "Apple", Value: "apple"},
		{Label: "Banana", Value: "banana"},
		{Label: "Pineapple", Value: "pineapple"},
		{Label: "Cherry", Value: "cherry"},
		{Label: "grape", Value: "grape"},
	}
}

func TestFilter_SubstringIgnoresCase(t *testing.T) {
	items := fruit()

	tests := []struct {
		query string
		want  []string
	}{
		{"apple", []string{"apple", "pineapple"}},
		{"APPLE", []string{"apple", "pineapple"}},
		{"  an ", []string{"banana"}},
		{"r", []string{"cherry", "grape"}},
		{"kiwi", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(items, tt.query)
			values := make([]string, 0, len(got))
			for _, it := range got {
				values = append(values, it.Value)
			}
			if diff := cmp.Diff(tt.want, values); diff != "" {
				t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFilter_BlankQueryReturnsSameSlice(t *testing.T) {
	items := fruit()
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Filter(items, q)
		if len(got) != len(items) || &got[0] != &items[0] {
			t.Fatalf("Filter(%q) should return the input slice itself", q)
		}
		if diff := cmp.Diff(items, got); diff != "" {
			t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", q, diff)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := fruit()
	before := append([]Item[string](nil), items...)
	_ = Filter(items, "a")
	_ = FilterWith(items, "pe", MatchFuzzy)
	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestFilter_IntegerKeys(t *testing.T) {
	items := make([]Item[int], 0, 10000)
	for i := 0; i < 10000; i++ {
		items = append(items, Item[int]{Label: fmt.Sprintf("row %05d", i), Value: i})
	}
	items[42].Label = "needle one"
	items[9001].Label = "Needle two"

	got := Filter(items, "needle")
	if len(got) != 2 || got[0].Value != 42 || got[1].Value != 9001 {
		t.Fatalf("Filter = %v, want items 42 and 9001", got)
	}
}

func TestFilterWith_Fuzzy(t *testing.T) {
	items := []Item[string]{
		{Label: "internal/window/engine.go", Value: "a"},
		{Label: "internal/ui/app.go", Value: "b"},
		{Label: "cmd/pick/main.go", Value: "c"},
		{Label: "README", Value: "d"},
	}

	got := FilterWith(items, "iwe", MatchFuzzy)
	if len(got) != 1 || got[0].Value != "a" {
		t.Fatalf("FilterWith(iwe, fuzzy) = %v, want [a]", got)
	}

	got = FilterWith(items, "GO", MatchFuzzy)
	if len(got) != 3 || got[0].Value != "a" || got[2].Value != "c" {
		t.Fatalf("FilterWith(GO, fuzzy) = %v, want a b c in order", got)
	}

	if got := FilterWith(items, "iwe", MatchSubstring); len(got) != 0 {
		t.Fatalf("FilterWith(iwe, substring) = %v, want none", got)
	}
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		in   string
		want MatchMode
		ok   bool
	}{
		{"", MatchSubstring, true},
		{"substring", MatchSubstring, true},
		{" Fuzzy ", MatchFuzzy, true},
		{"regex", MatchSubstring, false},
	}
	for _, tt := range tests {
		got, ok := ParseMatchMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseMatchMode(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if MatchFuzzy.String() != "fuzzy" || MatchSubstring.String() != "substring" {
		t.Fatalf("MatchMode.String mismatch")
	}
}
