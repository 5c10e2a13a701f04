package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunkChannel(chunks ...Chunk) <-chan Chunk {
	out := make(chan Chunk, len(chunks))
	for _, c := range chunks {
		out <- c
	}
	close(out)
	return out
}

func TestCollect(t *testing.T) {
	t.Run("accumulates deltas in order", func(t *testing.T) {
		var deltas []string
		got, err := Collect(context.Background(),
			chunkChannel(Chunk{Content: "hel"}, Chunk{Content: "lo"}),
			func(d string) { deltas = append(deltas, d) })
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
		assert.Equal(t, []string{"hel", "lo"}, deltas)
	})

	t.Run("nil delta callback is allowed", func(t *testing.T) {
		got, err := Collect(context.Background(), chunkChannel(Chunk{Content: "x"}), nil)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})

	t.Run("chunk error stops accumulation", func(t *testing.T) {
		boom := errors.New("backend down")
		got, err := Collect(context.Background(),
			chunkChannel(Chunk{Content: "par"}, Chunk{Err: boom}, Chunk{Content: "tial"}),
			nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "par", got)
	})

	t.Run("cancelled context returns partial result", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		open := make(chan Chunk)
		defer close(open)

		_, err := Collect(ctx, open, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewOpenAIClient_Defaults(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{APIKey: "test"})
	require.NotNil(t, c)
	assert.NotEmpty(t, c.model)
}
