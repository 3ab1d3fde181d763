package window

import "slices"

// SelectionMode picks single or multi selection.
type SelectionMode int

const (
	SingleSelect SelectionMode = iota
	MultiSelect
)

// Selection tracks selected keys in the order they were selected. It is keyed
// against the full item set, so a key stays selected while filtered out.
//
// The zero value is an empty single-mode selection.
type Selection[K comparable] struct {
	mode     SelectionMode
	order    []K
	set      map[K]struct{}
	onChange func([]K)
}

// NewSelection returns an empty selection. onChange may be nil; when set it
// receives Values() after every call that changed the selection.
func NewSelection[K comparable](mode SelectionMode, onChange func([]K)) *Selection[K] {
	return &Selection[K]{mode: mode, onChange: onChange}
}

// Mode returns the selection mode.
func (s *Selection[K]) Mode() SelectionMode {
	return s.mode
}

// Select marks key as selected. In single mode any other key is dropped first.
func (s *Selection[K]) Select(key K) {
	if s.IsSelected(key) {
		return
	}
	if s.mode == SingleSelect {
		s.reset()
	}
	s.insert(key)
	s.notify()
}

// Deselect removes key. Unknown keys are ignored.
func (s *Selection[K]) Deselect(key K) {
	if !s.IsSelected(key) {
		return
	}
	delete(s.set, key)
	if i := slices.Index(s.order, key); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.notify()
}

// Toggle selects key when it is not selected and deselects it otherwise.
func (s *Selection[K]) Toggle(key K) {
	if s.IsSelected(key) {
		s.Deselect(key)
		return
	}
	s.Select(key)
}

// Clear drops every selected key.
func (s *Selection[K]) Clear() {
	if len(s.order) == 0 {
		return
	}
	s.reset()
	s.notify()
}

// IsSelected reports whether key is selected.
func (s *Selection[K]) IsSelected(key K) bool {
	if s == nil {
		return false
	}
	_, ok := s.set[key]
	return ok
}

// Values returns the selected keys in selection order. The slice is a copy.
func (s *Selection[K]) Values() []K {
	if s == nil || len(s.order) == 0 {
		return nil
	}
	return slices.Clone(s.order)
}

// Len returns the number of selected keys.
func (s *Selection[K]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

func (s *Selection[K]) insert(key K) {
	if s.set == nil {
		s.set = make(map[K]struct{})
	}
	s.set[key] = struct{}{}
	s.order = append(s.order, key)
}

func (s *Selection[K]) reset() {
	s.order = s.order[:0]
	clear(s.set)
}

func (s *Selection[K]) notify() {
	if s.onChange != nil {
		s.onChange(s.Values())
	}
}
