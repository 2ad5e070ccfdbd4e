package module

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/logging"
	"github.com/boxes-labs/boxes/internal/uigroup"
)

type widget struct{}

func (widget) Settings() []generator.Setting                             { return nil }
func (widget) Generate(context.Context, io.Writer, generator.Args) error { return nil }

func TestTableRegisterLookup(t *testing.T) {
	tbl := NewTable()
	tbl.Register(Definition{Path: "b/two"})
	tbl.Register(Definition{Path: "a/one"})

	if _, ok := tbl.Lookup("a/one"); !ok {
		t.Error("Lookup(a/one) not found")
	}
	if _, ok := tbl.Lookup("missing"); ok {
		t.Error("Lookup(missing) found")
	}
	got := strings.Join(tbl.Paths(), ",")
	if got != "a/one,b/two" {
		t.Errorf("Paths() = %s, want a/one,b/two", got)
	}
}

func TestTableRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"empty path", []Definition{{}}},
		{"duplicate", []Definition{{Path: "x"}, {Path: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tbl := NewTable()
			for _, d := range tt.defs {
				tbl.Register(d)
			}
		})
	}
}

func TestNew(t *testing.T) {
	m := New("part/burntest", "/roots/a", "/roots/a/part/burntest", nil)
	if m.Name != "burntest" {
		t.Errorf("Name = %q, want burntest", m.Name)
	}
	if m.Bindings == nil {
		t.Error("Bindings is nil")
	}
}

func TestBindAttributesTypes(t *testing.T) {
	m := New("pkg/good", "", "", nil)
	wt := generator.Declare[widget]()
	m.Bind("Widget", wt)
	m.Bind("Generator", generator.Base)
	m.Bind("Version", "1.0")

	if wt.Module != "pkg/good" {
		t.Errorf("Module = %q, want pkg/good", wt.Module)
	}
	if generator.Base.Module != "" {
		t.Errorf("base contract was attributed to %q", generator.Base.Module)
	}
	if got := strings.Join(m.BindingNames(), ","); got != "Generator,Version,Widget" {
		t.Errorf("BindingNames() = %s", got)
	}

	other := generator.Declare[widget]()
	other.Module = "elsewhere"
	m.Bind("Reexport", other)
	if other.Module != "elsewhere" {
		t.Errorf("re-exported type moved to %q", other.Module)
	}
}

func TestPrivate(t *testing.T) {
	if !Private("_hidden") || Private("good") || Private("") {
		t.Error("Private returned wrong result")
	}
}

func TestContextJoin(t *testing.T) {
	groups := uigroup.NewRegistry()
	ctx := &Context{
		Module: New("pkg/good", "", "", nil),
		Groups: groups,
		Logger: logging.Discard(),
	}
	wt := generator.Declare[widget]()
	if err := ctx.Join("Part", wt); err != nil {
		t.Fatalf("Join(Part) error: %v", err)
	}
	g, _ := groups.Lookup("Part")
	if g.Len() != 0 {
		t.Errorf("Part has %d members before Commit, want 0", g.Len())
	}
	if err := ctx.Join("Nope", wt); err == nil {
		t.Error("expected error joining unknown group")
	}
	if ctx.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", ctx.Pending())
	}

	if err := ctx.Commit(); err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Part has %d members, want 1", g.Len())
	}
	if ctx.Pending() != 0 {
		t.Errorf("Pending() = %d after Commit, want 0", ctx.Pending())
	}
}

func TestContextCommitChecksAllGroups(t *testing.T) {
	groups := uigroup.NewEmptyRegistry()
	groups.Create("Part", "", "", "")
	groups.Create("Tray", "", "", "")
	ctx := &Context{
		Module: New("pkg/good", "", "", nil),
		Groups: groups,
		Logger: logging.Discard(),
	}
	wt := generator.Declare[widget]()
	if err := ctx.Join("Part", wt); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Join("Tray", wt); err != nil {
		t.Fatal(err)
	}

	// Replacing the registry contents drops Tray before Commit.
	ctx.Groups = uigroup.NewEmptyRegistry()
	ctx.Groups.Create("Part", "", "", "")
	if err := ctx.Commit(); err == nil {
		t.Fatal("expected error committing to a missing group")
	}
	g, _ := ctx.Groups.Lookup("Part")
	if g.Len() != 0 {
		t.Errorf("Part has %d members after failed Commit, want 0", g.Len())
	}
}
