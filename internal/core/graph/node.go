// Package graph provides the node execution contract.
package graph

import (
	"context"

	"github.com/stategraph/stategraph/internal/core/state"
)

// NodeType classifies a node for audit records and diagnostics. It carries
// no behavior; all business variants are realized by implementing Execute.
type NodeType string

const (
	// NodeTypeFunction represents plain computation over state
	NodeTypeFunction NodeType = "function"
	// NodeTypeLLM represents a node wrapping a long-running generation call
	NodeTypeLLM NodeType = "llm"
	// NodeTypeParser represents a node parsing generated content
	NodeTypeParser NodeType = "parser"
	// NodeTypeRouter represents a node whose main output is a redirect
	NodeTypeRouter NodeType = "router"
	// NodeTypeStorage represents a node persisting state to a collaborator
	NodeTypeStorage NodeType = "storage"
	// NodeTypeCustom is the default classification
	NodeTypeCustom NodeType = "custom"
)

// Node is the atomic unit of work: given the accumulated run state, produce
// a state patch and optionally an explicit redirect.
// PRINCIPLES:
// - SRP: One capability only - "state in, command out"
// - LSP: Any implementation is substitutable inside the executor
//
// Implementations must hold no per-run mutable fields: one node instance is
// reused across many concurrent runs and all per-run data travels in the
// state values.
type Node interface {
	Execute(ctx context.Context, st state.Values) (Command, error)
}

// StreamChunk is one item of a streaming node's output. A chunk with a
// non-nil Err terminates the node with that error; otherwise Command carries
// an intermediate or final result.
type StreamChunk struct {
	Command Command
	Err     error
}

// StreamingNode is an optional capability for nodes that surface partial
// results while they work. The executor forwards every intermediate chunk as
// a node_streaming event and merges only the final command into state.
type StreamingNode interface {
	Node
	ExecuteStream(ctx context.Context, st state.Values) <-chan StreamChunk
}

// Typed is an optional capability for nodes that classify themselves.
// Nodes without it are recorded as NodeTypeCustom.
type Typed interface {
	NodeType() NodeType
}

// NodeFunc adapts a plain function to the Node interface.
type NodeFunc func(ctx context.Context, st state.Values) (Command, error)

// Execute implements Node.
func (f NodeFunc) Execute(ctx context.Context, st state.Values) (Command, error) {
	return f(ctx, st)
}

// BaseNode carries the identity shared by all node implementations: a stable
// name and a type tag. Embed it and implement Execute.
// PRINCIPLES:
// - KISS: Identity only; no execution state, no hooks into the merge logic
type BaseNode struct {
	name        string
	nodeType    NodeType
	description string
}

// NewBaseNode creates the identity portion of a node.
func NewBaseNode(name string, nodeType NodeType) BaseNode {
	if nodeType == "" {
		nodeType = NodeTypeCustom
	}
	return BaseNode{name: name, nodeType: nodeType}
}

// WithDescription attaches a human-readable description.
func (b BaseNode) WithDescription(desc string) BaseNode {
	b.description = desc
	return b
}

// Name returns the node's stable name.
func (b BaseNode) Name() string { return b.name }

// NodeType implements Typed.
func (b BaseNode) NodeType() NodeType { return b.nodeType }

// Description returns the optional description.
func (b BaseNode) Description() string { return b.description }

// TypeOf returns a node's classification, falling back to NodeTypeCustom
// for nodes that do not implement Typed.
func TypeOf(n Node) NodeType {
	if t, ok := n.(Typed); ok {
		return t.NodeType()
	}
	return NodeTypeCustom
}
