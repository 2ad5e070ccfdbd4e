package manifest

import (
	"strings"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	files := []string{"valid-builtin.yaml", "valid-exec.yaml", "valid-exec.json", "valid-exec.toml"}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got issues: %v", result.Issues)
			}
		})
	}
}

func TestValidate_Issues(t *testing.T) {
	tests := []struct {
		file     string
		wantPath string
	}{
		{"invalid-runtime.yaml", "/runtime"},
		{"invalid-generator-name.yaml", "/generators/0/name"},
		{"invalid-version.json", "/version"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile error: %v", err)
			}
			if result.Valid {
				t.Fatal("expected invalid")
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s in %v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidate_ExecRequiresEntry(t *testing.T) {
	result, err := ValidateFile(testPath("invalid-exec-no-entry.yaml"))
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected exec manifest without entry to be invalid")
	}
	joined := ""
	for _, issue := range result.Issues {
		joined += issue.String() + "\n"
	}
	if !strings.Contains(joined, "entry") {
		t.Errorf("issues do not mention entry:\n%s", joined)
	}
}

func TestValidate_BuiltinRejectsGenerators(t *testing.T) {
	data := []byte("name: mixed\nversion: 1.0.0\nruntime: builtin\ngenerators:\n  - name: X\n")
	result, err := Validate(data, FormatYAML)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Error("expected builtin manifest declaring generators to be invalid")
	}
}

func TestValidate_UnknownField(t *testing.T) {
	data := []byte(`{"name":"x","version":"1.0.0","runtime":"builtin","colour":"red"}`)
	result, err := Validate(data, FormatJSON)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Error("expected unknown field to be rejected")
	}
}

func TestValidate_DecodeError(t *testing.T) {
	if _, err := Validate([]byte("{"), FormatJSON); err == nil {
		t.Error("expected decode error")
	}
	if _, err := Validate([]byte("x"), Format("ini")); err == nil {
		t.Error("expected unsupported format error")
	}
}

func TestDeduplicateIssues(t *testing.T) {
	in := []ValidationIssue{
		{Path: "/a", Keyword: "type", Message: "m"},
		{Path: "/a", Keyword: "type", Message: "m"},
		{Path: "/b", Keyword: "type", Message: "m"},
	}
	if got := deduplicateIssues(in); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestValidationIssueString(t *testing.T) {
	if got := (ValidationIssue{Message: "root"}).String(); got != "root" {
		t.Errorf("String() = %q", got)
	}
	if got := (ValidationIssue{Path: "/x", Message: "bad"}).String(); got != "/x: bad" {
		t.Errorf("String() = %q", got)
	}
}
