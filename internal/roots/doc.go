// Package roots resolves the ordered list of directories searched for
// generator modules: the built-in roots followed by any extra roots named
// in BOXES_GENERATOR_PATH or the generator_path config key.
package roots
