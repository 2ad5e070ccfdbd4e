package registry

import (
	"errors"
	"io/fs"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/module"
	"github.com/boxes-labs/boxes/internal/roots"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

// Policy decides what a scan does when a module fails to import.
type Policy int

const (
	// FailFast stops at the first import error and returns it.
	FailFast Policy = iota
	// BestEffort records the failure and carries on.
	BestEffort
)

func (p Policy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "fail-fast"
}

// Skipped is a module a best-effort scan could not import.
type Skipped struct {
	Module string
	Path   string
	Err    error
}

// ScanResult is the outcome of one scan.
type ScanResult struct {
	Modules      []*module.Module // imported modules, in walk order
	Skipped      []Skipped
	MissingRoots []roots.Root
}

// Generators returns the generator types of the imported modules.
func (r *ScanResult) Generators() map[string]*generator.Type {
	return extractAll(r.Modules)
}

// ByName returns the imported modules keyed by their last path element.
// When two modules share a name the later one in walk order wins.
func (r *ScanResult) ByName() map[string]*module.Module {
	out := make(map[string]*module.Module, len(r.Modules))
	for _, mod := range r.Modules {
		out[mod.Name] = mod
	}
	return out
}

// Catalog discovers generator modules under a list of roots.
type Catalog struct {
	importer *Importer
	roots    func() []roots.Root
}

// NewCatalog returns a catalog that scans the roots returned by rootsFn.
// rootsFn is called on every scan.
func NewCatalog(rootsFn func() []roots.Root, importer *Importer) *Catalog {
	return &Catalog{importer: importer, roots: rootsFn}
}

// Roots returns the roots the next scan will search.
func (c *Catalog) Roots() []roots.Root {
	return c.roots()
}

// Groups returns the UI group registry populated by imports.
func (c *Catalog) Groups() *uigroup.Registry {
	return c.importer.Groups()
}

// Scan walks every root and imports each module found. With FailFast the
// first import error is returned and no result; with BestEffort failures
// are collected in ScanResult.Skipped. Roots that do not exist are
// recorded in ScanResult.MissingRoots under either policy.
func (c *Catalog) Scan(policy Policy) (*ScanResult, error) {
	logger := c.importer.Logger()
	res := &ScanResult{}
	seen := make(map[string]string)

	for _, root := range c.roots() {
		fsys, cands, err := openRoot(root)
		switch {
		case errors.Is(err, roots.ErrPathNotFound):
			logger.Debug("generator root not found", "root", root.Path)
			res.MissingRoots = append(res.MissingRoots, root)
			continue
		case err != nil:
			if policy == FailFast {
				return nil, &ImportError{Module: root.Name, Path: root.Path, Err: err}
			}
			logger.Warn("skipping generator root", "root", root.Path, "err", err)
			res.Skipped = append(res.Skipped, Skipped{Module: root.Name, Path: root.Path, Err: err})
			continue
		}
		if err := c.scanRoot(root, fsys, cands, policy, seen, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func openRoot(root roots.Root) (fs.FS, []candidate, error) {
	fsys, err := root.Open()
	if err != nil {
		return nil, nil, err
	}
	cands, err := walkRoot(fsys)
	if err != nil {
		return nil, nil, err
	}
	return fsys, cands, nil
}

func (c *Catalog) scanRoot(root roots.Root, fsys fs.FS, cands []candidate, policy Policy, seen map[string]string, res *ScanResult) error {
	logger := c.importer.Logger()
	for _, cand := range cands {
		if first, dup := seen[cand.Path]; dup {
			logger.Debug("module shadowed by earlier root", "module", cand.Path, "root", root.Path, "first", first)
			continue
		}
		seen[cand.Path] = root.Path

		mod, err := c.importer.load(root, fsys, cand)
		if err != nil {
			if policy == FailFast {
				return err
			}
			var ie *ImportError
			if !errors.As(err, &ie) {
				ie = &ImportError{Module: cand.Path, Path: location(root, cand.Manifest), Err: err}
			}
			logger.Warn("skipping module", "module", ie.Module, "err", ie.Err)
			res.Skipped = append(res.Skipped, Skipped{Module: ie.Module, Path: ie.Path, Err: ie.Err})
			continue
		}
		res.Modules = append(res.Modules, mod)
	}
	return nil
}

// Generators returns every generator type under the catalog's roots keyed
// "modulePath.TypeName". The first module that fails to import aborts the
// scan and its *ImportError is returned.
func (c *Catalog) Generators() (map[string]*generator.Type, error) {
	res, err := c.Scan(FailFast)
	if err != nil {
		return nil, err
	}
	return res.Generators(), nil
}

// Modules returns every module that imports cleanly, keyed by its last
// path element. Modules that fail to import are logged and left out.
func (c *Catalog) Modules() map[string]*module.Module {
	res, err := c.Scan(BestEffort)
	if err != nil {
		c.importer.Logger().Warn("scanning modules", "err", err)
		return map[string]*module.Module{}
	}
	return res.ByName()
}
