// Package record provides the durable audit trail of graph runs,
// following Clean Architecture principles with zero external dependencies.
package record

import (
	"time"

	"github.com/stategraph/stategraph/internal/core/graph"
	"github.com/stategraph/stategraph/internal/core/state"
)

// ExecutionState is the lifecycle state of one node execution.
type ExecutionState string

const (
	StatePending   ExecutionState = "pending"
	StateRunning   ExecutionState = "running"
	StateSuccess   ExecutionState = "success"
	StateFailed    ExecutionState = "failed"
	StateCancelled ExecutionState = "cancelled"
)

// Terminal reports whether the state is final.
func (s ExecutionState) Terminal() bool {
	return s == StateSuccess || s == StateFailed || s == StateCancelled
}

// NodeResult captures one node execution inside a run.
// PRINCIPLES:
// - KISS: Plain data, created fresh per step, immutable once appended
type NodeResult struct {
	NodeName       string         `json:"node_name" msgpack:"node_name"`
	NodeType       graph.NodeType `json:"node_type" msgpack:"node_type"`
	StateUpdate    state.Values   `json:"state_update" msgpack:"state_update"`
	ExecutionState ExecutionState `json:"execution_state" msgpack:"execution_state"`
	StartTime      time.Time      `json:"start_time" msgpack:"start_time"`
	EndTime        time.Time      `json:"end_time" msgpack:"end_time"`
	Error          string         `json:"error,omitempty" msgpack:"error"`
	Metadata       map[string]any `json:"metadata,omitempty" msgpack:"metadata"`
}

// Duration returns the node's execution time.
func (r NodeResult) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return 0
	}
	return r.EndTime.Sub(r.StartTime)
}

// Success reports whether the node completed successfully.
func (r NodeResult) Success() bool { return r.ExecutionState == StateSuccess }

// Record is the audit trail of one run: input and output snapshots, the
// ordered node results and the outcome. Immutable once persisted.
type Record struct {
	ID              string       `json:"id" validate:"required"`
	GraphName       string       `json:"graph_name" validate:"required"`
	InputData       state.Values `json:"input_data"`
	OutputResult    state.Values `json:"output_result"`
	NodeResults     []NodeResult `json:"node_results"`
	StartTime       time.Time    `json:"start_time" validate:"required"`
	EndTime         time.Time    `json:"end_time" validate:"required"`
	DurationSeconds float64      `json:"duration_seconds" validate:"gte=0"`
	Success         bool         `json:"success"`
	ErrorMessage    string       `json:"error_message,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}
