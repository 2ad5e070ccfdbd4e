// Package uigroup holds the named display groups front ends use to present
// generators. A Registry is built once at startup, populated while generator
// modules are imported, and only read afterwards.
package uigroup
