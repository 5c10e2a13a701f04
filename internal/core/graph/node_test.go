package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stategraph/stategraph/internal/core/state"
)

func TestNodeFunc_Execute(t *testing.T) {
	n := NodeFunc(func(_ context.Context, st state.Values) (Command, error) {
		return Patch(state.Values{"seen": st.GetString("in", "")}), nil
	})

	cmd, err := n.Execute(context.Background(), state.Values{"in": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", cmd.Update.GetString("seen", ""))
}

func TestBaseNode(t *testing.T) {
	b := NewBaseNode("planner", NodeTypeLLM).WithDescription("plans the work")

	assert.Equal(t, "planner", b.Name())
	assert.Equal(t, NodeTypeLLM, b.NodeType())
	assert.Equal(t, "plans the work", b.Description())

	t.Run("empty type defaults to custom", func(t *testing.T) {
		assert.Equal(t, NodeTypeCustom, NewBaseNode("x", "").NodeType())
	})
}

type typedNode struct {
	BaseNode
}

func (typedNode) Execute(_ context.Context, _ state.Values) (Command, error) {
	return Command{}, nil
}

func TestTypeOf(t *testing.T) {
	t.Run("typed node reports its tag", func(t *testing.T) {
		n := typedNode{BaseNode: NewBaseNode("r", NodeTypeRouter)}
		assert.Equal(t, NodeTypeRouter, TypeOf(n))
	})

	t.Run("plain function defaults to custom", func(t *testing.T) {
		n := NodeFunc(func(_ context.Context, _ state.Values) (Command, error) {
			return Command{}, nil
		})
		assert.Equal(t, NodeTypeCustom, TypeOf(n))
	})
}

func TestCommand(t *testing.T) {
	t.Run("patch leaves routing to edges", func(t *testing.T) {
		cmd := Patch(state.Values{"k": "v"})
		assert.False(t, cmd.HasRedirect())
		assert.False(t, cmd.IsEnd())
	})

	t.Run("goto overrides routing", func(t *testing.T) {
		cmd := Goto("next", state.Values{"k": "v"})
		assert.True(t, cmd.HasRedirect())
		assert.False(t, cmd.IsEnd())
		assert.Equal(t, "next", cmd.Goto)
	})

	t.Run("goto End is terminal", func(t *testing.T) {
		cmd := Goto(End, nil)
		assert.True(t, cmd.HasRedirect())
		assert.True(t, cmd.IsEnd())
	})
}
