package dto

// DefaultMaxIterations bounds the resolution loop when the caller does not
// configure a cap. Back-edges intentionally support "process next batch
// until exhausted" patterns, so the cap is generous.
const DefaultMaxIterations = 100

// DefaultStreamBuffer is the event channel capacity for Stream.
const DefaultStreamBuffer = 64

// RunConfig contains per-runner execution settings.
type RunConfig struct {
	// MaxIterations caps node executions within one run; exceeding it fails
	// the run with ErrExecutionLimit.
	MaxIterations int `json:"max_iterations"`
	// StreamBuffer sizes the event channel handed to Stream consumers.
	StreamBuffer int `json:"stream_buffer"`
}

// Normalize fills zero fields with defaults.
func (c *RunConfig) Normalize() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.StreamBuffer <= 0 {
		c.StreamBuffer = DefaultStreamBuffer
	}
}
