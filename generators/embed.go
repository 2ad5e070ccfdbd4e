// Package generators holds the generator modules compiled into boxes and
// the embedded root that makes them discoverable.
package generators

import (
	"embed"
	"io/fs"

	_ "github.com/boxes-labs/boxes/generators/holes/holegrid"
	_ "github.com/boxes-labs/boxes/generators/part/burntest"
)

//go:embed */*/module.yaml
var builtin embed.FS

// FS returns the embedded root holding the built-in module manifests.
func FS() fs.FS {
	return builtin
}
