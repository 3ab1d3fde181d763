package window

import (
	"fmt"
	"slices"
)

// Registry holds named engines for a caller that shows several lists but only
// wants one open at a time. It is owned by the caller; there is no package
// level registry. Not safe for concurrent use.
type Registry[K comparable] struct {
	engines map[string]*Engine[K]
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{engines: make(map[string]*Engine[K])}
}

// Register adds e under name. Names must be unique.
func (r *Registry[K]) Register(name string, e *Engine[K]) error {
	if e == nil {
		return fmt.Errorf("register %q: nil engine", name)
	}
	if _, ok := r.engines[name]; ok {
		return fmt.Errorf("register %q: name already registered", name)
	}
	r.engines[name] = e
	r.order = append(r.order, name)
	return nil
}

// Get returns the engine registered under name.
func (r *Registry[K]) Get(name string) (*Engine[K], bool) {
	e, ok := r.engines[name]
	return e, ok
}

// Remove closes and forgets the engine registered under name.
func (r *Registry[K]) Remove(name string) {
	e, ok := r.engines[name]
	if !ok {
		return
	}
	e.Close()
	delete(r.engines, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// Names returns registered names in registration order.
func (r *Registry[K]) Names() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered engines.
func (r *Registry[K]) Len() int {
	return len(r.order)
}

// Activate opens the engine registered under name and closes every other
// one, mirroring a dropdown that closes its siblings when it opens.
func (r *Registry[K]) Activate(name string) (*Engine[K], bool) {
	e, ok := r.engines[name]
	if !ok {
		return nil, false
	}
	r.CloseOthers(name)
	if !e.IsOpen() {
		e.Open()
	}
	return e, true
}

// CloseOthers closes every engine except the one registered under name.
func (r *Registry[K]) CloseOthers(name string) {
	for n, e := range r.engines {
		if n != name {
			e.Close()
		}
	}
}

// CloseAll closes every engine.
func (r *Registry[K]) CloseAll() {
	for _, e := range r.engines {
		e.Close()
	}
}

// Open returns the names of open engines in registration order.
func (r *Registry[K]) Open() []string {
	var names []string
	for _, n := range r.order {
		if r.engines[n].IsOpen() {
			names = append(names, n)
		}
	}
	return names
}
