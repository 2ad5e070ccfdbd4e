// Package scaffold generates new generator modules from embedded templates.
// It powers the "boxes new" command: an exec module gets a manifest and a
// shell entry point, a builtin module gets a manifest and a Go file that
// registers itself with the compiled-in module table.
package scaffold
