// Package graph provides the Command control-flow value.
package graph

import "github.com/stategraph/stategraph/internal/core/state"

// End is the terminal sentinel: routing to End finishes the run.
const End = "__end__"

// Command bundles a partial state update with an optional explicit routing
// directive. An empty Goto means "resolve the next node from the edge
// table"; a non-empty Goto always wins over registered edges.
// PRINCIPLES:
// - KISS: Two fields cover both "plain patch" and "patch + redirect"
type Command struct {
	Update state.Values
	Goto   string
}

// Patch returns a command that only updates state, leaving routing to the
// edge table.
func Patch(update state.Values) Command {
	return Command{Update: update}
}

// Goto returns a command that updates state and redirects the run to the
// named node (or End).
func Goto(target string, update state.Values) Command {
	return Command{Update: update, Goto: target}
}

// HasRedirect reports whether the command overrides edge resolution.
func (c Command) HasRedirect() bool { return c.Goto != "" }

// IsEnd reports whether the command redirects to the terminal sentinel.
func (c Command) IsEnd() bool { return c.Goto == End }
