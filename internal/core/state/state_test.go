package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_Clone(t *testing.T) {
	t.Run("copies keys", func(t *testing.T) {
		original := Values{"a": 1, "b": "two"}
		clone := original.Clone()

		assert.Equal(t, original, clone)

		clone["a"] = 99
		assert.Equal(t, 1, original["a"])
	})

	t.Run("nil clones to empty writable map", func(t *testing.T) {
		var v Values
		clone := v.Clone()
		require.NotNil(t, clone)
		clone["x"] = 1
		assert.Equal(t, 1, clone["x"])
	})
}

func TestValues_TypedAccessors(t *testing.T) {
	v := Values{
		"str":     "hello",
		"int":     42,
		"int64":   int64(7),
		"float":   3.5,
		"jsonInt": float64(5),
		"bool":    true,
		"slice":   []any{"a", "b"},
		"map":     map[string]any{"k": "v"},
	}

	assert.Equal(t, "hello", v.GetString("str", ""))
	assert.Equal(t, "fallback", v.GetString("missing", "fallback"))
	assert.Equal(t, "fallback", v.GetString("int", "fallback"))

	assert.Equal(t, 42, v.GetInt("int", 0))
	assert.Equal(t, 7, v.GetInt("int64", 0))
	assert.Equal(t, 5, v.GetInt("jsonInt", 0))
	assert.Equal(t, -1, v.GetInt("missing", -1))

	assert.Equal(t, 3.5, v.GetFloat("float", 0))
	assert.Equal(t, 42.0, v.GetFloat("int", 0))
	assert.Equal(t, 1.5, v.GetFloat("missing", 1.5))

	assert.True(t, v.GetBool("bool", false))
	assert.True(t, v.GetBool("missing", true))

	assert.Equal(t, []any{"a", "b"}, v.GetSlice("slice"))
	assert.Nil(t, v.GetSlice("missing"))

	assert.Equal(t, map[string]any{"k": "v"}, v.GetMap("map"))
	assert.Nil(t, v.GetMap("str"))

	val, ok := v.Get("str")
	assert.True(t, ok)
	assert.Equal(t, "hello", val)
	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		current Values
		patch   Values
		want    Values
	}{
		{
			name:    "patch overwrites existing keys",
			current: Values{"a": 1, "b": 2},
			patch:   Values{"b": 20, "c": 30},
			want:    Values{"a": 1, "b": 20, "c": 30},
		},
		{
			name:    "empty patch keeps current",
			current: Values{"a": 1},
			patch:   Values{},
			want:    Values{"a": 1},
		},
		{
			name:    "nil current",
			current: nil,
			patch:   Values{"a": 1},
			want:    Values{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.current, tt.patch)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("inputs are not mutated", func(t *testing.T) {
		current := Values{"a": 1}
		patch := Values{"a": 2}
		_ = Merge(current, patch)
		assert.Equal(t, 1, current["a"])
		assert.Equal(t, 2, patch["a"])
	})
}
