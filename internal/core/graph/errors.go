// Package graph defines domain-specific errors
package graph

import "errors"

// Build-time errors - raised while assembling or validating a graph, never
// mid-run.
var (
	ErrInvalidGraphName = errors.New("invalid graph name")
	ErrNoEntryPoint     = errors.New("no entry point specified")
	ErrEntryPointSet    = errors.New("entry point already set")

	ErrNilNode          = errors.New("node cannot be nil")
	ErrInvalidNodeName  = errors.New("invalid node name")
	ErrDuplicateNode    = errors.New("duplicate node name")
	ErrUnknownNode      = errors.New("unknown node")
	ErrReservedNodeName = errors.New("node name is reserved")

	ErrDuplicateEdge     = errors.New("duplicate outgoing edge")
	ErrNilResolver       = errors.New("resolver cannot be nil")
	ErrDuplicateResolver = errors.New("duplicate conditional edge")
	ErrUnreachableNode   = errors.New("node not reachable from entry point")
)
