// Package burntest draws strips of test cuts used to measure the width of
// the laser kerf.
package burntest

import (
	"context"
	"fmt"
	"io"
	"reflect"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/module"
)

// BurnTest draws a strip cut into pieces whose gaps grow by a fixed step.
// Fitting the pieces back together shows which gap matches the kerf.
type BurnTest struct{}

// Type describes BurnTest.
var Type = generator.Declare[BurnTest](
	generator.WithDisplayName("Burn Test"),
	generator.WithDescription("Strip of test cuts for measuring the burn width"),
)

// Kerf is a measured burn width in millimetres.
type Kerf float64

func (k Kerf) String() string {
	return fmt.Sprintf("%.2fmm", float64(k))
}

// draft is an unfinished variant kept out of the catalog.
type draft struct{ BurnTest }

func init() {
	module.Register(module.Definition{
		Path: "part/burntest",
		Bindings: map[string]any{
			"BurnTest":  Type,
			"Generator": generator.Base,
			"_Draft":    generator.Declare[draft](generator.WithName("_Draft")),
			"Kerf":      reflect.TypeFor[Kerf](),
		},
		Init: func(c *module.Context) error {
			return c.Join("Part", Type)
		},
	})
}

func (BurnTest) Settings() []generator.Setting {
	return []generator.Setting{
		{Name: "width", Default: "20", Help: "width of each piece in mm"},
		{Name: "height", Default: "30", Help: "height of the strip in mm"},
		{Name: "pieces", Default: "5", Help: "number of pieces"},
		{Name: "start", Default: "0.05", Help: "smallest burn width to test in mm"},
		{Name: "step", Default: "0.05", Help: "burn width increment between pieces in mm"},
	}
}

func (b BurnTest) Generate(ctx context.Context, w io.Writer, args generator.Args) error {
	p, err := b.params(args)
	if err != nil {
		return err
	}

	total := float64(p.pieces) * p.width
	if _, err := fmt.Fprintf(w, svgHeader, total, p.height, total, p.height); err != nil {
		return err
	}

	x := 0.0
	for i := 0; i < p.pieces; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		kerf := Kerf(p.start + float64(i)*p.step)
		if _, err := fmt.Fprintf(w, "  <rect x=\"%.2f\" y=\"0\" width=\"%.2f\" height=\"%.2f\"/>\n", x, p.width, p.height); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  <text x=\"%.2f\" y=\"%.2f\" font-size=\"3\">%s</text>\n", x+1, p.height/2, kerf); err != nil {
			return err
		}
		x += p.width
	}
	_, err = io.WriteString(w, "</svg>\n")
	return err
}

type params struct {
	width, height, start, step float64
	pieces                     int
}

func (b BurnTest) params(args generator.Args) (params, error) {
	a := args.WithDefaults(b.Settings())
	var p params
	var err error
	if p.width, err = a.Float("width"); err != nil {
		return p, err
	}
	if p.height, err = a.Float("height"); err != nil {
		return p, err
	}
	if p.start, err = a.Float("start"); err != nil {
		return p, err
	}
	if p.step, err = a.Float("step"); err != nil {
		return p, err
	}
	if p.pieces, err = a.Int("pieces"); err != nil {
		return p, err
	}
	if p.pieces < 1 || p.width <= 0 || p.height <= 0 {
		return p, fmt.Errorf("pieces, width and height must be positive")
	}
	return p, nil
}

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" width="%.2fmm" height="%.2fmm" viewBox="0 0 %.2f %.2f" fill="none" stroke="black" stroke-width="0.1">
`
