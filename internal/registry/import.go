package registry

import (
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/boxes-labs/boxes/internal/logging"
	"github.com/boxes-labs/boxes/internal/manifest"
	"github.com/boxes-labs/boxes/internal/module"
	"github.com/boxes-labs/boxes/internal/roots"
	"github.com/boxes-labs/boxes/internal/runtime"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

// DevVersion is the tool version of untagged builds. It satisfies every
// requires constraint.
const DevVersion = "dev"

// Importer imports modules and remembers the ones that imported cleanly,
// so a module's init side effects run at most once. Failed imports are
// not remembered and are retried on the next scan.
type Importer struct {
	groups  *uigroup.Registry
	table   *module.Table
	version string
	logger  *log.Logger

	mu    sync.Mutex
	cache map[string]*module.Module
}

// Option configures an Importer.
type Option func(*Importer)

// WithVersion sets the tool version checked against manifest requires
// constraints.
func WithVersion(v string) Option {
	return func(i *Importer) { i.version = v }
}

// WithLogger sets the importer's logger.
func WithLogger(l *log.Logger) Option {
	return func(i *Importer) { i.logger = l }
}

// WithTable sets the table builtin modules are resolved against.
func WithTable(t *module.Table) Option {
	return func(i *Importer) { i.table = t }
}

// NewImporter returns an importer that registers generators with groups.
func NewImporter(groups *uigroup.Registry, opts ...Option) *Importer {
	i := &Importer{
		groups:  groups,
		table:   module.Default,
		version: DevVersion,
		logger:  logging.Discard(),
		cache:   make(map[string]*module.Module),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Groups returns the registry the importer populates.
func (i *Importer) Groups() *uigroup.Registry {
	return i.groups
}

// Logger returns the importer's logger.
func (i *Importer) Logger() *log.Logger {
	return i.logger
}

// Import imports the module at modPath, a slash-separated path inside root.
func (i *Importer) Import(root roots.Root, modPath string) (*module.Module, error) {
	fsys, err := root.Open()
	if err != nil {
		return nil, &ImportError{Module: modPath, Path: location(root, modPath), Err: err}
	}
	mf := findManifest(fsys, modPath)
	if mf == "" {
		return nil, &ImportError{Module: modPath, Path: location(root, modPath), Err: errors.New("no module manifest")}
	}
	return i.load(root, fsys, candidate{Path: modPath, Manifest: mf})
}

func (i *Importer) load(root roots.Root, fsys fs.FS, c candidate) (*module.Module, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if mod, ok := i.cache[c.Path]; ok {
		return mod, nil
	}

	loc := location(root, c.Manifest)
	fail := func(err error) (*module.Module, error) {
		return nil, &ImportError{Module: c.Path, Path: loc, Err: err}
	}

	m, err := manifest.LoadFS(fsys, c.Manifest)
	if err != nil {
		return fail(err)
	}
	if err := m.CheckRequires(i.version); err != nil {
		return fail(err)
	}

	mod := module.New(c.Path, root.Path, root.Dir(c.Path), m)
	ctx := &module.Context{Module: mod, Groups: i.groups, Logger: i.logger}
	if err := runtime.Dispatch(m.Runtime, i.table).Load(ctx); err != nil {
		return fail(err)
	}
	if err := ctx.Commit(); err != nil {
		return fail(err)
	}

	i.cache[c.Path] = mod
	i.logger.Debug("imported module", "module", c.Path, "root", root.Path, "runtime", m.Runtime)
	return mod, nil
}

// location renders rel inside root for error messages.
func location(root roots.Root, rel string) string {
	if root.Embedded() {
		return path.Join(root.Path, rel)
	}
	return filepath.Join(root.Path, filepath.FromSlash(rel))
}
