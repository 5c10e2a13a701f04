package dto

import "errors"

// Run-time errors - surfaced from Invoke/Stream, never from the builder.
var (
	// ErrExecutionLimit marks a run stopped by the iteration cap: the graph
	// is stuck looping, as opposed to broken.
	ErrExecutionLimit = errors.New("execution iteration limit exceeded")

	// ErrUnknownNode marks a resolution failure: a resolver or redirect
	// named a node that was never registered.
	ErrUnknownNode = errors.New("route to unknown node")

	// ErrNodeFailed wraps the error a node returned or panicked with.
	ErrNodeFailed = errors.New("node execution failed")
)
