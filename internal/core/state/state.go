// Package state provides the shared state bag threaded through one graph run,
// following Clean Architecture principles with zero external dependencies.
package state

// Values is the open string-keyed state mapping for a single run.
// PRINCIPLES:
// - KISS: A plain map; per-run data lives here, never on nodes
// - SRP: Only responsible for state data, not routing or execution
type Values map[string]any

// Clone returns a shallow copy of the values. A nil receiver clones to an
// empty, writable map so an empty initial state is always valid.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Get returns the raw value for key and whether it was present.
func (v Values) Get(key string) (any, bool) {
	val, ok := v[key]
	return val, ok
}

// GetString returns the string stored under key, or fallback when the key is
// absent or holds a different type.
func (v Values) GetString(key, fallback string) string {
	if s, ok := v[key].(string); ok {
		return s
	}
	return fallback
}

// GetInt returns the integer stored under key. Float values are truncated so
// numbers round-tripped through JSON decoding still read back as ints.
func (v Values) GetInt(key string, fallback int) int {
	switch n := v[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return fallback
}

// GetFloat returns the float64 stored under key, or fallback.
func (v Values) GetFloat(key string, fallback float64) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return fallback
}

// GetBool returns the bool stored under key, or fallback.
func (v Values) GetBool(key string, fallback bool) bool {
	if b, ok := v[key].(bool); ok {
		return b
	}
	return fallback
}

// GetSlice returns the slice stored under key, or nil.
func (v Values) GetSlice(key string) []any {
	s, _ := v[key].([]any)
	return s
}

// GetMap returns the nested map stored under key, or nil.
func (v Values) GetMap(key string) map[string]any {
	m, _ := v[key].(map[string]any)
	return m
}

// Merge applies a patch to the current values and returns the merged result.
// Later writers overwrite earlier keys; neither input is mutated.
func Merge(current Values, patch Values) Values {
	out := current.Clone()
	for k, val := range patch {
		out[k] = val
	}
	return out
}
