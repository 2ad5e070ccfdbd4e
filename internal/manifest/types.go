package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ModuleManifest is the parsed content of a module manifest.
type ModuleManifest struct {
	Name        string          `yaml:"name" json:"name" toml:"name"`
	Version     string          `yaml:"version" json:"version" toml:"version"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Runtime     string          `yaml:"runtime" json:"runtime" toml:"runtime"`
	Module      string          `yaml:"module,omitempty" json:"module,omitempty" toml:"module,omitempty"`
	Requires    string          `yaml:"requires,omitempty" json:"requires,omitempty" toml:"requires,omitempty"`
	Entry       string          `yaml:"entry,omitempty" json:"entry,omitempty" toml:"entry,omitempty"`
	Tags        []string        `yaml:"tags,omitempty" json:"tags,omitempty" toml:"tags,omitempty"`
	Generators  []GeneratorDecl `yaml:"generators,omitempty" json:"generators,omitempty" toml:"generators,omitempty"`
}

// GeneratorDecl declares a generator implemented outside the binary.
type GeneratorDecl struct {
	Name        string        `yaml:"name" json:"name" toml:"name"`
	DisplayName string        `yaml:"display_name,omitempty" json:"display_name,omitempty" toml:"display_name,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Group       string        `yaml:"group,omitempty" json:"group,omitempty" toml:"group,omitempty"`
	Settings    []SettingDecl `yaml:"settings,omitempty" json:"settings,omitempty" toml:"settings,omitempty"`
}

// SettingDecl declares one parameter of an external generator.
type SettingDecl struct {
	Name    string `yaml:"name" json:"name" toml:"name"`
	Default any    `yaml:"default,omitempty" json:"default,omitempty" toml:"default,omitempty"`
	Help    string `yaml:"help,omitempty" json:"help,omitempty" toml:"help,omitempty"`
}

// DefaultString renders the default as generator arguments carry it.
func (s SettingDecl) DefaultString() string {
	if s.Default == nil {
		return ""
	}
	return fmt.Sprint(s.Default)
}

// Runtime identifiers.
const (
	RuntimeBuiltin = "builtin"
	RuntimeExec    = "exec"
)

// FileNames lists the recognized manifest file names in priority order.
var FileNames = []string{"module.yaml", "module.yml", "module.json", "module.toml"}

// IsManifestFile reports whether name is a recognized manifest file name.
func IsManifestFile(name string) bool {
	for _, n := range FileNames {
		if n == name {
			return true
		}
	}
	return false
}

// CheckRequires reports whether toolVersion satisfies the manifest's
// requires constraint. Manifests without a constraint always pass, and so
// do development builds whose version is not valid semver.
func (m *ModuleManifest) CheckRequires(toolVersion string) error {
	if m.Requires == "" {
		return nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", m.Requires, err)
	}
	v, err := semver.NewVersion(toolVersion)
	if err != nil {
		return nil
	}
	if ok, errs := c.Validate(v); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("module %s requires %s: %w", m.Name, m.Requires, errs[0])
		}
		return fmt.Errorf("module %s requires %s, running %s", m.Name, m.Requires, toolVersion)
	}
	return nil
}

// SemVer parses the manifest's version field.
func (m *ModuleManifest) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q of module %s: %w", m.Version, m.Name, err)
	}
	return v, nil
}
