package registry

import (
	"maps"
	"reflect"

	"github.com/boxes-labs/boxes/internal/generator"
	"github.com/boxes-labs/boxes/internal/module"
)

// Extract returns the generator types bound by mod, keyed
// "modulePath.TypeName". The base contract, private types and bindings
// that do not implement generator.Generator are left out.
func Extract(mod *module.Module) map[string]*generator.Type {
	out := make(map[string]*generator.Type)
	for _, name := range mod.BindingNames() {
		t := asType(mod, mod.Bindings[name])
		if t == nil || module.Private(t.Name) {
			continue
		}
		out[mod.Path+"."+t.Name] = t
	}
	return out
}

func asType(mod *module.Module, v any) *generator.Type {
	if generator.IsBase(v) {
		return nil
	}
	switch b := v.(type) {
	case *generator.Type:
		return b
	case reflect.Type:
		t, ok := generator.FromReflect(b)
		if !ok {
			return nil
		}
		t.Module = mod.Path
		return t
	}
	return nil
}

// extractAll merges the types of every module in mods.
func extractAll(mods []*module.Module) map[string]*generator.Type {
	out := make(map[string]*generator.Type)
	for _, mod := range mods {
		maps.Copy(out, Extract(mod))
	}
	return out
}
