package generator

import (
	"context"
	"fmt"
	"io"
	"strconv"
)

// Generator is the capability base contract. Every type the catalog lists
// implements it.
type Generator interface {
	// Settings lists the parameters the generator accepts, with defaults.
	Settings() []Setting
	// Generate renders a design for args into w.
	Generate(ctx context.Context, w io.Writer, args Args) error
}

// Setting describes one generator parameter.
type Setting struct {
	Name    string `json:"name" yaml:"name"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Help    string `json:"help,omitempty" yaml:"help,omitempty"`
}

// Args holds user-supplied parameter values keyed by setting name.
type Args map[string]string

// WithDefaults returns a copy of a where every setting missing from a is
// filled in from its default.
func (a Args) WithDefaults(settings []Setting) Args {
	out := make(Args, len(settings)+len(a))
	for _, s := range settings {
		if s.Default != "" {
			out[s.Name] = s.Default
		}
	}
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Float parses the named argument as a float.
func (a Args) Float(name string) (float64, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", name, err)
	}
	return f, nil
}

// Int parses the named argument as an int.
func (a Args) Int(name string) (int, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", name, err)
	}
	return n, nil
}
