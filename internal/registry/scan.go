package registry

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/boxes-labs/boxes/internal/manifest"
)

// candidate is a directory that holds a module manifest.
type candidate struct {
	Path     string // module path relative to the root
	Manifest string // manifest file path relative to the root
}

// walkRoot returns the module directories under fsys in walk order:
// lexical, parents before their children. The root directory itself is
// never a module. Unreadable subdirectories are skipped.
func walkRoot(fsys fs.FS) ([]candidate, error) {
	var result []candidate
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			return nil // skip inaccessible entries
		}
		if !d.IsDir() || p == "." {
			return nil
		}
		if hidden(d.Name()) {
			return fs.SkipDir
		}
		if mf := findManifest(fsys, p); mf != "" {
			result = append(result, candidate{Path: p, Manifest: mf})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking generator root: %w", err)
	}
	return result, nil
}

// hidden reports whether a directory is excluded from discovery.
func hidden(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}

// findManifest returns the highest-priority manifest in dir, or "".
func findManifest(fsys fs.FS, dir string) string {
	for _, name := range manifest.FileNames {
		p := path.Join(dir, name)
		if info, err := fs.Stat(fsys, p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}
