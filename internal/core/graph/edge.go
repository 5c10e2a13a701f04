// Package graph provides edge definitions.
package graph

import "github.com/stategraph/stategraph/internal/core/state"

// Resolver computes the next node name from the current state. It returns a
// registered node name or End. An unknown name fails at resolution time,
// not at build time, because resolver code is opaque to the compiler.
type Resolver func(st state.Values) string

// Edge is a fixed transition between two nodes. To may be End.
type Edge struct {
	From string
	To   string
}

// ConditionalEdge is a dynamic transition whose target is computed at run
// time from the state.
type ConditionalEdge struct {
	From    string
	Resolve Resolver
}
