package generator

import (
	"reflect"
)

// Type describes a generator type. Its identity is (Module, Name).
type Type struct {
	// Name is the type name as written in its declaring module.
	Name string
	// Module is the path of the declaring module. It is filled in when the
	// module is registered if the declaration left it empty.
	Module string
	// Description is a one-line summary shown by front ends.
	Description string

	displayName string
	rtype       reflect.Type
	newFn       func() Generator
}

// Option configures a Type created by Declare or NewType.
type Option func(*Type)

// WithDisplayName overrides the name front ends show for the type.
func WithDisplayName(name string) Option {
	return func(t *Type) { t.displayName = name }
}

// WithDescription sets the type's description.
func WithDescription(desc string) Option {
	return func(t *Type) { t.Description = desc }
}

// WithName overrides the type name derived from the Go type.
func WithName(name string) Option {
	return func(t *Type) { t.Name = name }
}

// Declare describes the generator type T. The constraint on PT makes the
// conformance check a compile-time one.
func Declare[T any, PT interface {
	*T
	Generator
}](opts ...Option) *Type {
	rt := reflect.TypeFor[T]()
	t := &Type{
		Name:  rt.Name(),
		rtype: rt,
		newFn: func() Generator { return PT(new(T)) },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewType describes a generator whose instances come from newFn rather than
// from a Go type, such as one implemented by an external program.
func NewType(name string, newFn func() Generator, opts ...Option) *Type {
	t := &Type{Name: name, newFn: newFn}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DisplayName returns the override if one was given, else Name.
func (t *Type) DisplayName() string {
	if t.displayName != "" {
		return t.displayName
	}
	return t.Name
}

// New returns a fresh generator instance.
func (t *Type) New() Generator {
	return t.newFn()
}

// ReflectType returns the underlying Go type, or nil for types created
// with NewType.
func (t *Type) ReflectType() reflect.Type {
	return t.rtype
}

// String returns the qualified "module.Name" form.
func (t *Type) String() string {
	if t.Module == "" {
		return t.Name
	}
	return t.Module + "." + t.Name
}
