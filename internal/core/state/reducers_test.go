package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		name     string
		existing any
		incoming any
		want     any
	}{
		{
			name:     "concatenates slices",
			existing: []any{"a"},
			incoming: []any{"b", "c"},
			want:     []any{"a", "b", "c"},
		},
		{
			name:     "nil existing takes incoming",
			existing: nil,
			incoming: []any{"a"},
			want:     []any{"a"},
		},
		{
			name:     "nil incoming keeps existing",
			existing: []any{"a"},
			incoming: nil,
			want:     []any{"a"},
		},
		{
			name:     "non-slice falls back to overwrite",
			existing: "old",
			incoming: "new",
			want:     "new",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Append(tt.existing, tt.incoming))
		})
	}
}

func TestMergeMaps(t *testing.T) {
	t.Run("incoming wins per key", func(t *testing.T) {
		got := MergeMaps(
			map[string]any{"a": 1, "b": 2},
			map[string]any{"b": 20, "c": 30},
		)
		assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 30}, got)
	})

	t.Run("non-map falls back to overwrite", func(t *testing.T) {
		assert.Equal(t, "new", MergeMaps("old", "new"))
	})
}

func TestReducers_Apply(t *testing.T) {
	reducers := Reducers{
		"history": Append,
		"meta":    MergeMaps,
	}

	current := Values{
		"history": []any{"first"},
		"meta":    map[string]any{"a": 1},
		"plain":   "old",
	}
	patch := Values{
		"history": []any{"second"},
		"meta":    map[string]any{"b": 2},
		"plain":   "new",
	}

	got := reducers.Apply(current, patch)

	assert.Equal(t, []any{"first", "second"}, got["history"])
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, got["meta"])
	assert.Equal(t, "new", got["plain"])

	// Neither input changed.
	assert.Equal(t, []any{"first"}, current["history"])
	assert.Equal(t, []any{"second"}, patch["history"])
}

func TestReducers_ApplyNilReducers(t *testing.T) {
	var reducers Reducers
	got := reducers.Apply(Values{"a": 1}, Values{"a": 2, "b": 3})
	assert.Equal(t, Values{"a": 2, "b": 3}, got)
}
