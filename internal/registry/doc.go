// Package registry discovers generator modules and catalogs the generator
// types they provide.
//
// A scan walks every root in order. Each directory holding a module
// manifest is imported: the manifest is validated, its requires constraint
// is checked and the runtime it names binds the module and runs its init
// side effects, which populate the UI groups. The types a module binds are
// then filtered down to public implementations of generator.Generator and
// keyed "modulePath.TypeName".
//
// Directories whose name starts with "_" or "." are skipped together with
// everything below them. A module path found under more than one root is
// taken from the first.
package registry
