package module

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/manifest"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

// Module is a loaded generator module.
type Module struct {
	Path     string // slash-separated, relative to Root, e.g. "part/burntest"
	Name     string // last element of Path
	Root     string // root the module was found under
	Dir      string // directory on disk; empty for modules in an embedded root
	Manifest *manifest.ModuleManifest
	Bindings map[string]any
}

// New returns a module handle with no bindings.
func New(modPath, root, dir string, m *manifest.ModuleManifest) *Module {
	return &Module{
		Path:     modPath,
		Name:     path.Base(modPath),
		Root:     root,
		Dir:      dir,
		Manifest: m,
		Bindings: make(map[string]any),
	}
}

// Private reports whether name is excluded from discovery.
func Private(name string) bool {
	return strings.HasPrefix(name, "_")
}

// Bind sets a top-level binding. Generator types declared without a module
// are attributed to m; the base contract is left untouched.
func (m *Module) Bind(name string, v any) {
	if t, ok := v.(*generator.Type); ok && t.Module == "" && !generator.IsBase(t) {
		t.Module = m.Path
	}
	m.Bindings[name] = v
}

// BindingNames returns the module's binding names, sorted.
func (m *Module) BindingNames() []string {
	names := make([]string, 0, len(m.Bindings))
	for n := range m.Bindings {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (m *Module) String() string {
	return m.Path
}

// Context is handed to a module while it is being imported. Group joins
// are held on the context until Commit, so a module that fails part way
// through leaves no members behind.
type Context struct {
	Module *Module
	Groups *uigroup.Registry
	Logger *log.Logger

	pending []membership
}

type membership struct {
	group string
	typ   *generator.Type
}

// Join queues t for the named UI group. The group must exist.
func (c *Context) Join(group string, t *generator.Type) error {
	if _, ok := c.Groups.Lookup(group); !ok {
		return fmt.Errorf("module %s: unknown UI group %q", c.Module.Path, group)
	}
	c.pending = append(c.pending, membership{group: group, typ: t})
	return nil
}

// Pending returns the number of queued joins.
func (c *Context) Pending() int {
	return len(c.pending)
}

// Commit adds every queued type to its group. Nothing is added unless all
// groups still exist.
func (c *Context) Commit() error {
	for _, p := range c.pending {
		if _, ok := c.Groups.Lookup(p.group); !ok {
			return fmt.Errorf("module %s: unknown UI group %q", c.Module.Path, p.group)
		}
	}
	for _, p := range c.pending {
		if err := c.Groups.Add(p.group, p.typ); err != nil {
			return fmt.Errorf("module %s: %w", c.Module.Path, err)
		}
		c.Logger.Debug("joined group", "module", c.Module.Path, "type", p.typ.Name, "group", p.group)
	}
	c.pending = nil
	return nil
}
