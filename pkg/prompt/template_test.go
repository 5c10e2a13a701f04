package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplate_Variables(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"single variable", "Hello {name}!", []string{"name"}},
		{"repeated variable counted once", "{x} and {x}", []string{"x"}},
		{"sorted distinct variables", "{b} {a} {c}", []string{"a", "b", "c"}},
		{"no variables", "plain text", nil},
		{"escaped braces ignored", "{{literal}} {real}", []string{"real"}},
		{"unclosed brace ignored", "{oops and {ok}", []string{"ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.raw).Variables()
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTemplate_Format(t *testing.T) {
	t.Run("substitutes values", func(t *testing.T) {
		tpl := New("Solve {problem} in {language}")
		out, err := tpl.Format(map[string]any{"problem": "sorting", "language": "Go"})
		require.NoError(t, err)
		assert.Equal(t, "Solve sorting in Go", out)
	})

	t.Run("non-string values formatted", func(t *testing.T) {
		tpl := New("attempt {n}")
		out, err := tpl.Format(map[string]any{"n": 3})
		require.NoError(t, err)
		assert.Equal(t, "attempt 3", out)
	})

	t.Run("escaped braces pass through", func(t *testing.T) {
		tpl := New("JSON looks like {{\"k\": {v}}}")
		out, err := tpl.Format(map[string]any{"v": 1})
		require.NoError(t, err)
		assert.Equal(t, "JSON looks like {\"k\": 1}", out)
	})

	t.Run("missing variables named in error", func(t *testing.T) {
		tpl := New("{a} {b} {c}")
		_, err := tpl.Format(map[string]any{"b": 1})
		require.ErrorIs(t, err, ErrMissingVariable)
		assert.Contains(t, err.Error(), "a")
		assert.Contains(t, err.Error(), "c")
	})

	t.Run("extra variables are allowed", func(t *testing.T) {
		tpl := New("only {used}")
		out, err := tpl.Format(map[string]any{"used": "this", "ignored": "that"})
		require.NoError(t, err)
		assert.Equal(t, "only this", out)
	})
}
