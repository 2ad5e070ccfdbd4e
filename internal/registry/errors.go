package registry

import "fmt"

// ImportError reports a module that could not be imported.
type ImportError struct {
	Module string // module path, e.g. "pkg/broken"
	Path   string // location of the module's manifest
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importing module %s (%s): %v", e.Module, e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
