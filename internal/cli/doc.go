// Package cli implements the boxes command tree. Every command that reads
// the catalog goes through a single shared catalog so that module imports,
// and the group registrations they make, happen once per process.
package cli
