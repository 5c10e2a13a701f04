// Package stategraph provides the public façade for building and executing
// state graphs without importing internal packages. It re-exports the core
// builder and runtime types and exposes a Runtime wiring an in-memory
// execution recorder, suitable for local usage and tests.
package stategraph
