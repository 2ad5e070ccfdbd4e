package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/boxes-labs/boxes/generators"
	"github.com/boxes-labs/boxes/internal/roots"
)

// resetFlags restores every flag in the command tree to its default, since
// cobra commands are package-level and keep state between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupCLI points the CLI at the embedded root plus extra, and isolates
// the config file.
func setupCLI(t *testing.T, extra ...string) {
	t.Helper()
	t.Setenv("BOXES_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("BOXES_LOG_LEVEL", "")
	viper.Reset()

	prev := rootsFunc
	rootsFunc = func() []roots.Root {
		builtin := []roots.Root{{Name: "builtin", Path: roots.EmbeddedPath, FS: generators.FS()}}
		return roots.Resolve(builtin, strings.Join(extra, string(filepath.ListSeparator)))
	}
	t.Cleanup(func() {
		rootsFunc = prev
		viper.Reset()
	})
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	catalogOnce = sync.Once{}
	sharedCatalog = nil

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatal(err)
	}
}

// brokenRoot returns a root holding a module that cannot be imported.
func brokenRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken", "module.yaml"),
		"name: broken\nversion: 1.0.0\nruntime: builtin\nmodule: nowhere/broken\n", 0o644)
	return dir
}

const traysScript = `#!/bin/sh
echo "<svg><!-- $2 $3 --></svg>"
`

// execRoot returns a root holding an exec module with one generator.
func execRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ext", "trays", "module.yaml"), `name: trays
version: 1.0.0
runtime: exec
entry: generate.sh
tags: [storage]
generators:
  - name: SortingTray
    display_name: Sorting Tray
    group: Tray
    settings:
      - name: sx
        default: 50
`, 0o644)
	writeFile(t, filepath.Join(dir, "ext", "trays", "generate.sh"), traysScript, 0o755)
	return dir
}

func TestGroupsCommand(t *testing.T) {
	setupCLI(t)
	out, _, err := executeCommand(t, "groups")
	if err != nil {
		t.Fatalf("groups error: %v", err)
	}
	for _, want := range []string{"Burn Test", "part/burntest.BurnTest", "Hole Grid", "Unstable", "(no generators)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGroupsCommand_JSON(t *testing.T) {
	setupCLI(t, execRoot(t))
	out, _, err := executeCommand(t, "groups", "--json")
	if err != nil {
		t.Fatalf("groups error: %v", err)
	}
	var entries []groupEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 9 || entries[0].Name != "Box" {
		t.Fatalf("got %d groups starting with %q", len(entries), entries[0].Name)
	}
	for _, e := range entries {
		switch e.Name {
		case "Part":
			if len(e.Generators) != 1 || e.Generators[0].ID != "part/burntest.BurnTest" {
				t.Errorf("Part generators = %+v", e.Generators)
			}
		case "Tray":
			if len(e.Generators) != 1 || e.Generators[0].DisplayName != "Sorting Tray" {
				t.Errorf("Tray generators = %+v", e.Generators)
			}
		}
	}
}

func TestGroupsCommand_Policy(t *testing.T) {
	setupCLI(t, brokenRoot(t))

	if _, _, err := executeCommand(t, "groups"); err == nil {
		t.Fatal("expected groups to fail on a broken module")
	}

	out, stderr, err := executeCommand(t, "groups", "--best-effort")
	if err != nil {
		t.Fatalf("groups --best-effort error: %v", err)
	}
	if !strings.Contains(stderr, "broken") {
		t.Errorf("stderr does not report the broken module: %q", stderr)
	}
	if !strings.Contains(out, "Burn Test") {
		t.Errorf("output missing built-in generators:\n%s", out)
	}
}

func TestGeneratorsCommand(t *testing.T) {
	setupCLI(t, execRoot(t))

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{"all", nil, []string{"part/burntest.BurnTest", "holes/holegrid.HoleGrid", "ext/trays.SortingTray"}, nil},
		{"group filter", []string{"--group", "holes"}, []string{"holes/holegrid.HoleGrid"}, []string{"BurnTest"}},
		{"query", []string{"burn"}, []string{"part/burntest.BurnTest"}, []string{"HoleGrid"}},
		{"tag filter", []string{"--tag", "storage"}, []string{"ext/trays.SortingTray"}, []string{"BurnTest"}},
		{"no match", []string{"nothing-like-this"}, []string{"No generators found"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := executeCommand(t, append([]string{"generators"}, tt.args...)...)
			if err != nil {
				t.Fatalf("generators error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestGeneratorsCommand_JSON(t *testing.T) {
	setupCLI(t)
	out, _, err := executeCommand(t, "generators", "--json")
	if err != nil {
		t.Fatalf("generators error: %v", err)
	}
	var entries []generatorEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d generators, want 2", len(entries))
	}
	if entries[0].ID != "holes/holegrid.HoleGrid" || entries[0].Groups[0] != "Holes" {
		t.Errorf("first entry = %+v", entries[0])
	}
	if len(entries[1].Settings) == 0 {
		t.Error("BurnTest has no settings")
	}
}

func TestGeneratorsCommand_FailFast(t *testing.T) {
	setupCLI(t, brokenRoot(t))
	_, _, err := executeCommand(t, "generators")
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Errorf("error = %v, want import failure for broken", err)
	}
}

func TestModulesCommand(t *testing.T) {
	setupCLI(t, brokenRoot(t))
	out, stderr, err := executeCommand(t, "modules")
	if err != nil {
		t.Fatalf("modules error: %v", err)
	}
	for _, want := range []string{"burntest", "holegrid", "part/burntest"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "broken") {
		t.Errorf("broken module listed:\n%s", out)
	}
	if !strings.Contains(stderr, "skipped") {
		t.Errorf("stderr = %q, want skipped report", stderr)
	}
}

func TestRootsCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	setupCLI(t, missing)
	out, _, err := executeCommand(t, "roots")
	if err != nil {
		t.Fatalf("roots error: %v", err)
	}
	if !strings.Contains(out, roots.EmbeddedPath) {
		t.Errorf("output missing embedded root:\n%s", out)
	}
	if !strings.Contains(out, "missing") {
		t.Errorf("output does not mark the missing root:\n%s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	setupCLI(t)
	good := filepath.Join(execRoot(t), "ext", "trays")
	out, _, err := executeCommand(t, "validate", good)
	if err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if !strings.Contains(out, "valid") || !strings.Contains(out, "trays") {
		t.Errorf("output = %q", out)
	}

	bad := filepath.Join(t.TempDir(), "module.json")
	writeFile(t, bad, `{"name": "x", "runtime": "python"}`, 0o644)
	out, _, err = executeCommand(t, "validate", bad)
	if err == nil {
		t.Fatal("expected error for invalid manifest")
	}
	if !strings.Contains(out, "/runtime") {
		t.Errorf("output does not list the runtime issue:\n%s", out)
	}

	if _, _, err := executeCommand(t, "validate", t.TempDir()); err == nil {
		t.Error("expected error for directory without manifest")
	}
}

func TestNewCommand(t *testing.T) {
	setupCLI(t)
	dir := filepath.Join(t.TempDir(), "shelves")
	out, stderr, err := executeCommand(t, "new", dir, "--group", "Shelf")
	if err != nil {
		t.Fatalf("new error: %v", err)
	}
	if stderr != "" {
		t.Errorf("unexpected warnings: %s", stderr)
	}
	if !strings.Contains(out, "generate.sh") || !strings.Contains(out, "BOXES_GENERATOR_PATH") {
		t.Errorf("output = %q", out)
	}

	if _, _, err := executeCommand(t, "validate", dir); err != nil {
		t.Errorf("scaffolded module does not validate: %v", err)
	}
}

func TestNewCommand_Discoverable(t *testing.T) {
	parent := t.TempDir()
	setupCLI(t, parent)
	if _, _, err := executeCommand(t, "new", filepath.Join(parent, "shelves"), "--group", "Shelf"); err != nil {
		t.Fatalf("new error: %v", err)
	}
	out, _, err := executeCommand(t, "generators", "--group", "Shelf")
	if err != nil {
		t.Fatalf("generators error: %v", err)
	}
	if !strings.Contains(out, "shelves.Shelves") {
		t.Errorf("scaffolded generator not listed:\n%s", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	setupCLI(t)
	out, _, err := executeCommand(t, "generate", "part/burntest.BurnTest", "--set", "pieces=2")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if n := strings.Count(out, "<rect"); n != 2 {
		t.Errorf("got %d pieces, want 2:\n%s", n, out)
	}

	file := filepath.Join(t.TempDir(), "grid.svg")
	if _, _, err := executeCommand(t, "generate", "holes/holegrid.HoleGrid", "-o", file); err != nil {
		t.Fatalf("generate -o error: %v", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<circle") {
		t.Errorf("output file missing holes:\n%s", data)
	}
}

func TestGenerateCommand_Exec(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}
	setupCLI(t, execRoot(t))
	out, _, err := executeCommand(t, "generate", "ext/trays.SortingTray", "--set", "sx=70")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !strings.Contains(out, `SortingTray {"sx":"70"}`) {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateCommand_Errors(t *testing.T) {
	setupCLI(t)
	tests := [][]string{
		{"generate", "part/burntest.Nope"},
		{"generate", "part/burntest.BurnTest", "--set", "colour=red"},
		{"generate", "part/burntest.BurnTest", "--set", "pieces"},
		{"generate", "part/burntest.BurnTest", "--set", "pieces=lots"},
	}
	for _, args := range tests {
		if _, _, err := executeCommand(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestGenerateCommand_FailureRemovesOutput(t *testing.T) {
	setupCLI(t)
	file := filepath.Join(t.TempDir(), "strip.svg")
	_, _, err := executeCommand(t, "generate", "part/burntest.BurnTest", "--set", "pieces=lots", "-o", file)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(file); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("output file left behind after failed generate: %v", statErr)
	}
}

func TestConfigCommand(t *testing.T) {
	setupCLI(t)
	if _, _, err := executeCommand(t, "config", "set", "log_level", "debug"); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	viper.Reset()
	out, _, err := executeCommand(t, "config", "get", "log_level")
	if err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if strings.TrimSpace(out) != "debug" {
		t.Errorf("config get = %q, want debug", out)
	}
}

func TestVersionCommand(t *testing.T) {
	setupCLI(t)
	out, _, err := executeCommand(t, "version", "--short")
	if err != nil {
		t.Fatalf("version error: %v", err)
	}
	if strings.TrimSpace(out) != buildVersion {
		t.Errorf("version --short = %q, want %q", out, buildVersion)
	}
}

func TestParseSettings(t *testing.T) {
	got, err := parseSettings([]string{"a=1", "b=x=y", " c =", "d="})
	if err != nil {
		t.Fatalf("parseSettings error: %v", err)
	}
	if got["a"] != "1" || got["b"] != "x=y" || got["c"] != "" || len(got) != 4 {
		t.Errorf("parseSettings = %v", got)
	}
	for _, bad := range []string{"novalue", "=1"} {
		if _, err := parseSettings([]string{bad}); err == nil {
			t.Errorf("parseSettings(%q) expected error", bad)
		}
	}
}

func TestMatchesGenerator(t *testing.T) {
	e := generatorEntry{
		ID:          "part/burntest.BurnTest",
		DisplayName: "Burn Test",
		Description: "Strip of test cuts for measuring the burn width",
		Groups:      []string{"Part"},
		Tags:        []string{"calibration"},
	}

	tests := []struct {
		name     string
		query    string
		group    string
		tags     []string
		expected bool
	}{
		{"empty query matches all", "", "", nil, true},
		{"id match", "burntest", "", nil, true},
		{"display name match", "burn test", "", nil, true},
		{"case insensitive", "BURN", "", nil, true},
		{"description match", "measuring", "", nil, true},
		{"no match", "hinge", "", nil, false},
		{"group match", "", "part", nil, true},
		{"group mismatch", "", "Tray", nil, false},
		{"tag match", "", "", []string{"laser", "Calibration"}, true},
		{"tag mismatch", "", "", []string{"laser"}, false},
		{"all filters", "burn", "Part", []string{"calibration"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesGenerator(e, tt.query, tt.group, tt.tags)
			if got != tt.expected {
				t.Errorf("matchesGenerator(%q, %q, %v) = %v, want %v", tt.query, tt.group, tt.tags, got, tt.expected)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitList = %v", got)
	}
	if splitList("") != nil {
		t.Error("splitList(\"\") should be nil")
	}
}
