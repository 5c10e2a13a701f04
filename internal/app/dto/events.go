// Package dto carries the data shapes crossing the engine's boundaries:
// the stream event protocol and run configuration.
package dto

import (
	"time"

	"github.com/stategraph/stategraph/internal/core/state"
)

// EventType identifies a lifecycle event emitted during a run.
type EventType string

const (
	// EventStart opens a run
	EventStart EventType = "start"
	// EventNodeStart precedes a node's execution
	EventNodeStart EventType = "node_start"
	// EventNodeStreaming carries one intermediate result of a streaming node
	EventNodeStreaming EventType = "node_streaming"
	// EventNodeComplete carries a node's final state patch
	EventNodeComplete EventType = "node_complete"
	// EventNodeError carries a node's terminal failure
	EventNodeError EventType = "node_error"
	// EventFinal closes a run with the final state
	EventFinal EventType = "final"
)

// Event is one item of the stream protocol. Within a run, node_start always
// precedes that node's streaming/complete/error events, and a node's
// terminal event precedes the next node's node_start.
type Event struct {
	Type      EventType      `json:"type"`
	GraphName string         `json:"graph_name,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	Node      string         `json:"node,omitempty"`
	// Output holds the node's state patch for node_complete and the full
	// final state for final.
	Output state.Values `json:"output,omitempty"`
	// Intermediate holds one partial result for node_streaming.
	Intermediate state.Values   `json:"intermediate_result,omitempty"`
	Error        string         `json:"error,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}
