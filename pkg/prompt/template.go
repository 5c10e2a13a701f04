// Package prompt provides the template-formatting hook available to node
// authors: named placeholders filled from state values, failing clearly
// when a referenced variable is missing.
package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingVariable marks a Format call that did not supply every variable
// the template references.
var ErrMissingVariable = errors.New("missing template variable")

// Template is a prompt with {name} placeholders. Parsed once, reusable and
// safe for concurrent Format calls.
type Template struct {
	raw       string
	variables []string
}

// New parses a template. Placeholders are {identifier}; "{{" and "}}"
// escape literal braces.
func New(raw string) *Template {
	return &Template{raw: raw, variables: scanVariables(raw)}
}

// Variables returns the distinct placeholder names, sorted.
func (t *Template) Variables() []string {
	out := make([]string, len(t.variables))
	copy(out, t.variables)
	return out
}

// Format substitutes the variables into the template. Every referenced
// variable must be present; the error names all missing ones.
func (t *Template) Format(vars map[string]any) (string, error) {
	var missing []string
	for _, name := range t.variables {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", "))
	}

	var b strings.Builder
	b.Grow(len(t.raw))
	for i := 0; i < len(t.raw); i++ {
		c := t.raw[i]
		switch {
		case c == '{' && i+1 < len(t.raw) && t.raw[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(t.raw) && t.raw[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			name, end, ok := scanPlaceholder(t.raw, i)
			if !ok {
				b.WriteByte(c)
				continue
			}
			fmt.Fprintf(&b, "%v", vars[name])
			i = end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// scanPlaceholder reads {identifier} starting at the opening brace and
// returns the name and the index of the closing brace.
func scanPlaceholder(s string, start int) (string, int, bool) {
	end := start + 1
	for end < len(s) && isIdentChar(s[end]) {
		end++
	}
	if end == start+1 || end >= len(s) || s[end] != '}' {
		return "", 0, false
	}
	return s[start+1 : end], end, true
}

func scanVariables(raw string) []string {
	seen := make(map[string]bool)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '{' {
			if i+1 < len(raw) && raw[i+1] == '{' {
				i++
				continue
			}
			if name, end, ok := scanPlaceholder(raw, i); ok {
				seen[name] = true
				i = end
			}
		} else if raw[i] == '}' && i+1 < len(raw) && raw[i+1] == '}' {
			i++
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isIdentChar(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
