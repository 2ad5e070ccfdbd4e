package uigroup

import (
	"fmt"
	"sync"
)

// Registry is an ordered table of groups keyed by name.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*Group
}

// NewRegistry returns a registry holding the built-in groups.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, d := range BuiltinGroups() {
		r.Create(d.Name, d.Title, d.Description, d.Image)
	}
	return r
}

// NewEmptyRegistry returns a registry with no groups.
func NewEmptyRegistry() *Registry {
	return &Registry{byName: make(map[string]*Group)}
}

// Create registers a new group under name and returns it. A group already
// registered under name is replaced; the name keeps its original position.
func (r *Registry) Create(name, title, description, image string) *Group {
	g := newGroup(name, title, description, image)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = g
	return g
}

// Lookup returns the group registered under name.
func (r *Registry) Lookup(name string) (*Group, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byName[name]
	return g, ok
}

// Add appends m to the named group.
func (r *Registry) Add(name string, m Member) error {
	g, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown UI group %q", name)
	}
	g.Add(m)
	return nil
}

// Groups returns all groups in table order.
func (r *Registry) Groups() []*Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Group, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
