// Package runtime binds a module manifest to the code that implements it.
// The builtin runtime looks the module up in the compiled-in definition
// table; the exec runtime declares generators backed by an external
// program. Dispatch selects the runtime named by the manifest.
package runtime
