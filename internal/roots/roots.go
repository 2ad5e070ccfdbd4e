package roots

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/config"
)

// GeneratorsDir is the directory name used for generator roots under the
// home, development and install locations.
const GeneratorsDir = "generators"

// EmbeddedPath is the Path of the root compiled into the binary.
const EmbeddedPath = "embedded:" + GeneratorsDir

// ErrPathNotFound is returned by Root.Open for a root that does not exist.
// Scanners treat it as non-fatal.
var ErrPathNotFound = errors.New("generator root not found")

// Root is a directory searched for generator modules.
type Root struct {
	Name string // label shown by `boxes roots`, e.g. "home" or "env"
	Path string // directory on disk, or EmbeddedPath
	FS   fs.FS  // set for the embedded root; nil means Path on disk
}

// Open returns the root's file system. A root on disk that does not exist
// or is not a directory yields an error wrapping ErrPathNotFound.
func (r Root) Open() (fs.FS, error) {
	if r.FS != nil {
		return r.FS, nil
	}
	info, err := os.Stat(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, r.Path)
		}
		return nil, fmt.Errorf("opening generator root %s: %w", r.Path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, r.Path)
	}
	return os.DirFS(r.Path), nil
}

// Dir returns the on-disk directory for rel, a slash-separated path inside
// the root. It is empty for the embedded root.
func (r Root) Dir(rel string) string {
	if r.FS != nil {
		return ""
	}
	return filepath.Join(r.Path, filepath.FromSlash(rel))
}

// Embedded reports whether the root is compiled into the binary.
func (r Root) Embedded() bool {
	return r.FS != nil
}

func (r Root) String() string {
	return r.Path
}

// Resolve appends the entries of override, a filepath.SplitList-style path
// list, to builtin. Empty entries are dropped and a path that appears more
// than once keeps its first position. Existence is not checked.
func Resolve(builtin []Root, override string) []Root {
	all := make([]Root, 0, len(builtin))
	all = append(all, builtin...)
	if override != "" {
		for _, p := range filepath.SplitList(override) {
			if p == "" {
				continue
			}
			all = append(all, Root{Name: "env", Path: p})
		}
	}

	seen := make(map[string]bool, len(all))
	out := all[:0:0]
	for _, r := range all {
		key := r.Path
		if r.FS == nil {
			key = filepath.Clean(r.Path)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Paths returns the Path of each root.
func Paths(rs []Root) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Path
	}
	return out
}

// Override returns the extra roots path list: BOXES_GENERATOR_PATH if set,
// else the generator_path config key.
func Override() string {
	if v := os.Getenv(branding.EnvVar("GENERATOR_PATH")); v != "" {
		return v
	}
	return config.Get(config.KeyGeneratorPath)
}

// Builtin returns the built-in roots in search order: the embedded root,
// $BOXES_HOME/generators, the generators directory next to the installed
// binary, ~/.boxes/generators and the generator_roots config list.
// A nil embedded FS omits the embedded root.
func Builtin(embedded fs.FS) []Root {
	var rs []Root
	if embedded != nil {
		rs = append(rs, Root{Name: "builtin", Path: EmbeddedPath, FS: embedded})
	}
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		rs = append(rs, Root{Name: "dev", Path: filepath.Join(v, GeneratorsDir)})
	}
	if dir, err := installDir(); err == nil {
		rs = append(rs, Root{Name: "install", Path: filepath.Join(dir, GeneratorsDir)})
	}
	if home, err := os.UserHomeDir(); err == nil {
		rs = append(rs, Root{Name: "home", Path: filepath.Join(home, branding.HomeDir(), GeneratorsDir)})
	}
	for _, p := range config.GetStringSlice(config.KeyGeneratorRoots) {
		if p != "" {
			rs = append(rs, Root{Name: "config", Path: p})
		}
	}
	return rs
}

// Default resolves the built-in roots plus the configured override.
func Default(embedded fs.FS) []Root {
	return Resolve(Builtin(embedded), Override())
}

// installDir returns the parent of the directory holding the executable,
// so that <prefix>/bin/boxes finds <prefix>/generators.
func installDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolving executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
