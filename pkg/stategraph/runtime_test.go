package stategraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPipeline(t *testing.T) *Graph {
	t.Helper()
	g := New("pipeline")

	require.NoError(t, g.AddNode("greet", NodeFunc(
		func(_ context.Context, st Values) (Command, error) {
			return Patch(Values{"greeting": "hello " + st.GetString("who", "world")}), nil
		})))
	require.NoError(t, g.AddNode("shout", NodeFunc(
		func(_ context.Context, st Values) (Command, error) {
			return Patch(Values{"greeting": st.GetString("greeting", "") + "!"}), nil
		})))
	require.NoError(t, g.AddEdge("greet", "shout"))
	require.NoError(t, g.AddEdge("shout", End))
	require.NoError(t, g.SetEntryPoint("greet"))
	return g
}

func TestCompile(t *testing.T) {
	runner, err := Compile(buildPipeline(t))
	require.NoError(t, err)

	final, err := runner.Invoke(context.Background(), Values{"who": "gopher"})
	require.NoError(t, err)
	assert.Equal(t, "hello gopher!", final.GetString("greeting", ""))
}

func TestRuntime_Run(t *testing.T) {
	rt := NewRuntime()
	ctx := context.Background()

	final, err := rt.Run(ctx, buildPipeline(t), Values{"who": "gopher"})
	require.NoError(t, err)
	assert.Equal(t, "hello gopher!", final.GetString("greeting", ""))

	t.Run("run is recorded", func(t *testing.T) {
		records, err := rt.RecentRecords(ctx, "pipeline", 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Success)
		assert.Len(t, records[0].NodeResults, 2)

		byID, err := rt.RecordByID(ctx, records[0].ID)
		require.NoError(t, err)
		assert.Equal(t, records[0].ID, byID.ID)
	})
}

func TestRuntime_RunInvalidGraph(t *testing.T) {
	rt := NewRuntime()
	g := New("broken")
	require.NoError(t, g.AddNode("a", NodeFunc(
		func(_ context.Context, _ Values) (Command, error) {
			return Command{}, nil
		})))

	_, err := rt.Run(context.Background(), g, nil)
	assert.Error(t, err)
}

func TestRuntime_Stream(t *testing.T) {
	rt := NewRuntime()
	runner, err := rt.Compile(buildPipeline(t))
	require.NoError(t, err)

	var types []EventType
	for ev := range runner.Stream(context.Background(), Values{"who": "x"}) {
		types = append(types, ev.Type)
	}
	require.NotEmpty(t, types)
	assert.Equal(t, EventType("start"), types[0])
	assert.Equal(t, EventType("final"), types[len(types)-1])
}
