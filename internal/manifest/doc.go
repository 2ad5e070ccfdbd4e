// Package manifest handles parsing and validation of generator module
// manifests. A manifest (module.yaml, module.yml, module.json or module.toml)
// marks a directory as a generator module and tells the importer how to bind
// it. Validation runs against the embedded JSON Schema in schema/.
package manifest
