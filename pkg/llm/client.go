// Package llm provides the long-running-call hook available to node
// authors: a generation client boundary whose streamed partial results are
// accumulated and optionally forwarded to an observer.
package llm

import (
	"context"
	"strings"
)

// Message roles mirror the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a generation conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is one partial result of a streamed generation. A chunk with a
// non-nil Err terminates the stream with that error.
type Chunk struct {
	Content string
	Err     error
}

// Client is the engine's view of a generation backend. Concrete providers
// are external collaborators; nodes depend only on this interface.
type Client interface {
	// Generate returns the complete response for the conversation.
	Generate(ctx context.Context, messages []Message) (string, error)

	// StreamGenerate returns the response incrementally. The channel is
	// closed when generation finishes.
	StreamGenerate(ctx context.Context, messages []Message) <-chan Chunk
}

// Collect drains a chunk stream, accumulating the full response. Each delta
// is forwarded to onDelta (when non-nil) as it arrives, so callers can
// surface progress while the call runs.
func Collect(ctx context.Context, chunks <-chan Chunk, onDelta func(delta string)) (string, error) {
	var b strings.Builder
	for {
		select {
		case <-ctx.Done():
			return b.String(), ctx.Err()
		case chunk, ok := <-chunks:
			if !ok {
				return b.String(), nil
			}
			if chunk.Err != nil {
				return b.String(), chunk.Err
			}
			b.WriteString(chunk.Content)
			if onDelta != nil {
				onDelta(chunk.Content)
			}
		}
	}
}
