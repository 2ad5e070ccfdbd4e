// Package holegrid draws rectangular plates with a grid of round holes.
package holegrid

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/module"
)

// HoleGrid is a plate with x by y holes spaced evenly.
type HoleGrid struct{}

// Type describes HoleGrid.
var Type = generator.Declare[HoleGrid](
	generator.WithDisplayName("Hole Grid"),
	generator.WithDescription("Plate with a regular grid of round holes"),
)

// Pattern is how rows are laid out relative to each other.
type Pattern string

const (
	Square    Pattern = "square"
	Staggered Pattern = "staggered"
)

type sketch struct{ HoleGrid }

func init() {
	module.Register(module.Definition{
		Path: "holes/holegrid",
		Bindings: map[string]any{
			"HoleGrid":  Type,
			"Generator": reflect.TypeFor[generator.Generator](),
			"_Sketch":   generator.Declare[sketch](generator.WithName("_Sketch")),
			"Pattern":   reflect.TypeFor[Pattern](),
		},
		Init: func(c *module.Context) error {
			return c.Join("Holes", Type)
		},
	})
}

func (HoleGrid) Settings() []generator.Setting {
	return []generator.Setting{
		{Name: "x", Default: "5", Help: "holes per row"},
		{Name: "y", Default: "3", Help: "number of rows"},
		{Name: "diameter", Default: "4", Help: "hole diameter in mm"},
		{Name: "spacing", Default: "10", Help: "distance between hole centers in mm"},
		{Name: "pattern", Default: string(Square), Help: "square or staggered"},
	}
}

func (h HoleGrid) Generate(ctx context.Context, w io.Writer, args generator.Args) error {
	a := args.WithDefaults(h.Settings())
	nx, err := a.Int("x")
	if err != nil {
		return err
	}
	ny, err := a.Int("y")
	if err != nil {
		return err
	}
	d, err := a.Float("diameter")
	if err != nil {
		return err
	}
	s, err := a.Float("spacing")
	if err != nil {
		return err
	}
	pattern := Pattern(a["pattern"])
	if pattern != Square && pattern != Staggered {
		return fmt.Errorf("unknown pattern %q", pattern)
	}
	if nx < 1 || ny < 1 || d <= 0 || s < d {
		return fmt.Errorf("need at least one hole and spacing no smaller than the diameter")
	}

	width := float64(nx+1) * s
	if pattern == Staggered {
		width += s / 2
	}
	height := float64(ny+1) * s

	if _, err := fmt.Fprintf(w, svgHeader, width, height, width, height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  <rect x=\"0\" y=\"0\" width=\"%.2f\" height=\"%.2f\"/>\n", width, height); err != nil {
		return err
	}
	for row := 0; row < ny; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		offset := 0.0
		if pattern == Staggered && row%2 == 1 {
			offset = s / 2
		}
		cy := float64(row+1) * s
		for col := 0; col < nx; col++ {
			cx := float64(col+1)*s + offset
			if _, err := fmt.Fprintf(w, "  <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\"/>\n", cx, cy, d/2); err != nil {
				return err
			}
		}
	}
	_, err = io.WriteString(w, "</svg>\n")
	return err
}

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" width="%.2fmm" height="%.2fmm" viewBox="0 0 %.2f %.2f" fill="none" stroke="black" stroke-width="0.1">
`
