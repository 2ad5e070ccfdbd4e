// Package generator defines the capability every discoverable generator
// implements, and the Type descriptor the catalog records for each one.
//
// A generator module binds its types either with Declare, which checks
// conformance at compile time, or as a plain reflect.Type, which FromReflect
// checks at discovery time.
package generator
