// Package module holds loaded generator modules and the table of modules
// compiled into the binary.
//
// A compiled-in module registers a Definition from an init function, the
// same way database/sql drivers do. The importer later binds a module found
// on disk (or in the embedded built-in root) to its Definition, copies the
// definition's bindings into the Module and runs its Init hook with a
// Context that carries the group registry.
package module
