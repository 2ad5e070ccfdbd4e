package generator

import (
	"context"
	"errors"
	"io"
	"reflect"
)

// interfaceType is the reflect form of the base contract.
var interfaceType = reflect.TypeFor[Generator]()

// abstract stands in for the base contract when a module binds it by name.
type abstract struct{}

func (abstract) Settings() []Setting { return nil }

func (abstract) Generate(context.Context, io.Writer, Args) error {
	return errors.New("generator: the base contract cannot generate")
}

// Base is the descriptor of the base contract itself. Modules may bind it
// (the way a module re-exports what it builds on) but discovery never lists it.
var Base = &Type{
	Name:  "Generator",
	rtype: interfaceType,
	newFn: func() Generator { return abstract{} },
}

// IsBase reports whether v is the base contract, in either of the forms a
// module can bind it.
func IsBase(v any) bool {
	switch b := v.(type) {
	case *Type:
		return b == Base
	case reflect.Type:
		return b == interfaceType
	}
	return false
}

// displayNamer is implemented by generators that override their display name.
type displayNamer interface {
	DisplayName() string
}

// describer is implemented by generators that describe themselves.
type describer interface {
	Description() string
}

// FromReflect describes rt as a generator type if it is a concrete type
// whose value or pointer implements Generator. The base contract and
// interface types never qualify.
func FromReflect(rt reflect.Type) (*Type, bool) {
	if rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt == interfaceType || rt.Kind() == reflect.Interface || rt.Name() == "" {
		return nil, false
	}

	var newFn func() Generator
	switch {
	case reflect.PointerTo(rt).Implements(interfaceType):
		newFn = func() Generator { return reflect.New(rt).Interface().(Generator) }
	case rt.Implements(interfaceType):
		newFn = func() Generator { return reflect.New(rt).Elem().Interface().(Generator) }
	default:
		return nil, false
	}

	t := &Type{Name: rt.Name(), rtype: rt, newFn: newFn}
	sample := newFn()
	if dn, ok := sample.(displayNamer); ok {
		t.displayName = dn.DisplayName()
	}
	if d, ok := sample.(describer); ok {
		t.Description = d.Description()
	}
	return t, true
}
