package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/boxes-labs/boxes/internal/branding"
	"github.com/boxes-labs/boxes/internal/manifest"
)

var (
	namePattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name        string // module name, e.g. "sorting-tray"
	Generator   string // generator type name, e.g. "SortingTray"
	Group       string // UI group the generator joins, e.g. "Tray"
	Runtime     string // "exec" or "builtin"
	Description string // Human-readable description
	Version     string // Semver, e.g. "0.1.0"
	ModulePath  string // Derived: <group>/<name>, lowercased
	Package     string // Derived: Go package name for builtin modules
	GoModule    string // Go module path of boxes itself
	Year        int    // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated. An
// empty generator name is derived from the module name.
func NewScaffoldData(name, generatorName, group, runtime string) *ScaffoldData {
	if generatorName == "" {
		generatorName = typeName(name)
	}
	d := &ScaffoldData{
		Name:      name,
		Generator: generatorName,
		Group:     group,
		Runtime:   runtime,
		Version:   "0.1.0",
		Package:   packageName(name),
		GoModule:  branding.GoModule(),
		Year:      time.Now().Year(),
	}
	d.Description = fmt.Sprintf("%s generator module: %s", branding.DisplayName(), name)
	d.ModulePath = path.Join(strings.ToLower(group), strings.ToLower(name))
	return d
}

// Check reports the first field that cannot produce a valid module.
func (d *ScaffoldData) Check() error {
	switch {
	case !namePattern.MatchString(d.Name):
		return fmt.Errorf("invalid module name %q: use letters, digits, '-' and '_'", d.Name)
	case !identifierPattern.MatchString(d.Generator):
		return fmt.Errorf("invalid generator name %q: must be an identifier", d.Generator)
	case d.Group == "":
		return fmt.Errorf("a UI group is required")
	case d.Runtime != manifest.RuntimeExec && d.Runtime != manifest.RuntimeBuiltin:
		return fmt.Errorf("unknown runtime %q", d.Runtime)
	case d.Runtime == manifest.RuntimeBuiltin && d.Package == "":
		return fmt.Errorf("module name %q does not yield a Go package name", d.Name)
	}
	return nil
}

// typeName turns "sorting-tray" into "SortingTray".
func typeName(name string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(title.String(part))
	}
	return b.String()
}

// packageName keeps the lowercase letters and digits of name.
func packageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (b.Len() > 0 && r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Generate creates a new module in outputDir from the template set for
// data.Runtime and validates the resulting manifest. Schema problems are
// reported as warnings, not errors.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	if err := data.Check(); err != nil {
		return nil, err
	}

	templatesDir := path.Join("scaffolds", data.Runtime)

	// Verify template set exists in embedded FS.
	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", data.Runtime, err)
	}

	// Create output directory.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		// Strip .tmpl extension for the output filename.
		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		perm := os.FileMode(0644)
		if strings.HasSuffix(outName, ".sh") {
			perm = 0755
		}
		if err := os.WriteFile(outPath, buf.Bytes(), perm); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, manifest.FileNames[0])
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}
