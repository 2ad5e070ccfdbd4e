package runtime

import (
	"fmt"

	"github.com/boxes-labs/boxes/internal/module"
)

// BuiltinRuntime binds modules compiled into the binary.
type BuiltinRuntime struct {
	Table *module.Table
}

// Load finds the definition for the module, copies its bindings and runs
// its Init hook. The definition is looked up by the manifest's module key,
// falling back to the module path. A panic in Init is returned as an error.
func (b *BuiltinRuntime) Load(ctx *module.Context) error {
	mod := ctx.Module
	key := mod.Path
	if mod.Manifest != nil && mod.Manifest.Module != "" {
		key = mod.Manifest.Module
	}

	def, ok := b.Table.Lookup(key)
	if !ok {
		return fmt.Errorf("no compiled-in module registered as %q", key)
	}

	for name, v := range def.Bindings {
		mod.Bind(name, v)
	}

	if def.Init == nil {
		return nil
	}
	return runInit(def.Init, ctx)
}

func runInit(fn func(*module.Context) error, ctx *module.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during init: %v", r)
		}
	}()
	return fn(ctx)
}
