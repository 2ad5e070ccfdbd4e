package module

import (
	"fmt"
	"slices"
	"sync"
)

// Definition is a module compiled into the binary.
type Definition struct {
	// Path is the module path the definition answers to, e.g. "part/burntest".
	Path string
	// Bindings are the module's top-level names. Values may be
	// *generator.Type, reflect.Type or anything else the module exports.
	Bindings map[string]any
	// Init runs once when the module is imported.
	Init func(*Context) error
}

// Table maps module paths to compiled-in definitions.
type Table struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{defs: make(map[string]Definition)}
}

// Register adds d to the table. It panics if d has no path or if the path
// is already registered.
func (t *Table) Register(d Definition) {
	if d.Path == "" {
		panic("module: Register with empty path")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.defs[d.Path]; dup {
		panic(fmt.Sprintf("module: Register called twice for %s", d.Path))
	}
	t.defs[d.Path] = d
}

// Lookup returns the definition registered under path.
func (t *Table) Lookup(path string) (Definition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.defs[path]
	return d, ok
}

// Paths returns the registered paths, sorted.
func (t *Table) Paths() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.defs))
	for p := range t.defs {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Default is the table compiled-in generator modules register with.
var Default = NewTable()

// Register adds d to Default.
func Register(d Definition) {
	Default.Register(d)
}
