package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Format identifies the encoding of a manifest file.
type Format string

// Supported manifest encodings.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the encoding implied by a manifest file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest format %q", filepath.Ext(path))
	}
}

// ParseFile reads and decodes a manifest file without validating it.
func ParseFile(path string) (*ModuleManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest bytes in the given format.
func Parse(data []byte, format Format) (*ModuleManifest, error) {
	var m ModuleManifest
	if err := unmarshal(data, format, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile parses a manifest file and validates it against the schema.
// Schema violations are returned as a *ValidationError.
func LoadFile(path string) (*ModuleManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data, path)
}

// LoadFS is LoadFile for a manifest inside fsys.
func LoadFS(fsys fs.FS, name string) (*ModuleManifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", name, err)
	}
	return Load(data, name)
}

// Load validates manifest bytes against the schema and decodes them. name
// selects the format and labels errors.
func Load(data []byte, name string) (*ModuleManifest, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data, format)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", name, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Path: name, Issues: result.Issues}
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	return m, nil
}

// unmarshal decodes data in format into v.
func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatJSON:
		return json.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported manifest format %q", format)
	}
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
