// Package state provides per-key merge strategies for state updates.
package state

// Reducer merges an existing value with an incoming one for a single key.
type Reducer func(existing, incoming any) any

// Reducers maps state keys to the reducer used when a patch touches them.
// Keys without a reducer are overwritten (left-biased merge).
// PRINCIPLES:
// - OCP: New merge strategies register without touching the executor
// - SRP: Only responsible for key-level merge policy
type Reducers map[string]Reducer

// Overwrite replaces the existing value. This is the default behavior and
// exists so callers can register it explicitly.
func Overwrite(_, incoming any) any {
	return incoming
}

// Append concatenates slice values, so nodes can accumulate lists such as
// message histories across steps. Non-slice inputs fall back to overwrite.
func Append(existing, incoming any) any {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	prev, ok1 := existing.([]any)
	next, ok2 := incoming.([]any)
	if !ok1 || !ok2 {
		return incoming
	}
	out := make([]any, 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}

// MergeMaps merges nested string-keyed maps key by key, incoming wins.
// Non-map inputs fall back to overwrite.
func MergeMaps(existing, incoming any) any {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	prev, ok1 := existing.(map[string]any)
	next, ok2 := incoming.(map[string]any)
	if !ok1 || !ok2 {
		return incoming
	}
	out := make(map[string]any, len(prev)+len(next))
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}

// Apply merges a patch into current using the registered reducers. Keys with
// no reducer are overwritten. Neither input is mutated.
func (r Reducers) Apply(current Values, patch Values) Values {
	out := current.Clone()
	for k, incoming := range patch {
		if reduce, ok := r[k]; ok {
			out[k] = reduce(out[k], incoming)
			continue
		}
		out[k] = incoming
	}
	return out
}
