package runtime

import (
	"fmt"

	"github.com/boxes-labs/boxes/internal/manifest"
	"github.com/boxes-labs/boxes/internal/module"
)

// Runtime loads a module's bindings and runs its import side effects.
type Runtime interface {
	// Load fills ctx.Module.Bindings and registers the module's
	// generators with ctx.Groups.
	Load(ctx *module.Context) error
}

// Dispatch returns the Runtime for the given runtime identifier. Builtin
// modules are resolved against table. Unknown identifiers yield a runtime
// whose Load always fails.
func Dispatch(name string, table *module.Table) Runtime {
	switch name {
	case manifest.RuntimeBuiltin:
		return &BuiltinRuntime{Table: table}
	case manifest.RuntimeExec:
		return &ExecRuntime{}
	default:
		return &unknownRuntime{name: name}
	}
}

// unknownRuntime is returned when the runtime identifier is not recognized.
type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Load(_ *module.Context) error {
	return fmt.Errorf("unknown runtime %q: supported runtimes are %q and %q", u.name, manifest.RuntimeBuiltin, manifest.RuntimeExec)
}
