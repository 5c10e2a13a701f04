// Package graph provides the mutable graph builder: nodes, edges and the
// entry point registered before compilation, following Clean Architecture
// principles with zero external dependencies.
package graph

import "fmt"

// Graph is the mutable collection of nodes, edges and the entry point.
// It is assembled once at setup time and handed to the runner's compile
// step; the builder itself is not safe for concurrent mutation.
// PRINCIPLES:
// - SRP: Only responsible for graph structure, not execution
// - KISS: Maps keyed by node name, one outgoing route of each kind per node
type Graph struct {
	name       string
	nodes      map[string]Node
	edges      map[string]string
	resolvers  map[string]Resolver
	entryPoint string
}

// New creates an empty graph with the given name.
func New(name string) *Graph {
	return &Graph{
		name:      name,
		nodes:     make(map[string]Node),
		edges:     make(map[string]string),
		resolvers: make(map[string]Resolver),
	}
}

// Name returns the graph's name.
func (g *Graph) Name() string { return g.name }

// AddNode registers a node under a unique name.
func (g *Graph) AddNode(name string, node Node) error {
	if node == nil {
		return ErrNilNode
	}
	if name == "" {
		return ErrInvalidNodeName
	}
	if name == End {
		return fmt.Errorf("%w: %s", ErrReservedNodeName, name)
	}
	if _, exists := g.nodes[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
	}
	g.nodes[name] = node
	return nil
}

// AddEdge registers a static transition from one node to another. The target
// may be End. A node finishing with neither a static edge, a conditional
// edge nor a redirect terminates the run implicitly, exactly as if it had
// routed to End.
func (g *Graph) AddEdge(from, to string) error {
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("%w: source %s", ErrUnknownNode, from)
	}
	if to != End {
		if _, exists := g.nodes[to]; !exists {
			return fmt.Errorf("%w: target %s", ErrUnknownNode, to)
		}
	}
	if _, exists := g.edges[from]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEdge, from)
	}
	g.edges[from] = to
	return nil
}

// AddConditionalEdges registers a resolver computing the transition out of
// from at run time. One resolver per source; when both a resolver and a
// static edge are registered, the resolver is consulted first.
func (g *Graph) AddConditionalEdges(from string, resolve Resolver) error {
	if resolve == nil {
		return ErrNilResolver
	}
	if _, exists := g.nodes[from]; !exists {
		return fmt.Errorf("%w: source %s", ErrUnknownNode, from)
	}
	if _, exists := g.resolvers[from]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateResolver, from)
	}
	g.resolvers[from] = resolve
	return nil
}

// SetEntryPoint marks the node the run starts at. Exactly one per graph.
func (g *Graph) SetEntryPoint(name string) error {
	if _, exists := g.nodes[name]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNode, name)
	}
	if g.entryPoint != "" {
		return fmt.Errorf("%w: %s", ErrEntryPointSet, g.entryPoint)
	}
	g.entryPoint = name
	return nil
}

// EntryPoint returns the configured entry node name, or "".
func (g *Graph) EntryPoint() string { return g.entryPoint }

// NodeByName returns the node registered under name.
func (g *Graph) NodeByName(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// NodeNames returns the registered node names in no particular order.
func (g *Graph) NodeNames() []string {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	return names
}

// StaticEdge returns the static transition out of from, if registered.
func (g *Graph) StaticEdge(from string) (string, bool) {
	to, ok := g.edges[from]
	return to, ok
}

// Edges returns every static edge, in no particular order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for from, to := range g.edges {
		out = append(out, Edge{From: from, To: to})
	}
	return out
}

// ConditionalEdges returns every conditional edge, in no particular order.
func (g *Graph) ConditionalEdges() []ConditionalEdge {
	out := make([]ConditionalEdge, 0, len(g.resolvers))
	for from, resolve := range g.resolvers {
		out = append(out, ConditionalEdge{From: from, Resolve: resolve})
	}
	return out
}

// ResolverFor returns the conditional-edge resolver out of from, if
// registered.
func (g *Graph) ResolverFor(from string) (Resolver, bool) {
	r, ok := g.resolvers[from]
	return r, ok
}

// Validate ensures graph integrity before compilation: an entry point is
// set, every edge endpoint is a registered node, and every node is
// reachable from the entry point. Reachability is only enforced when the
// graph has no conditional edges; resolver targets are opaque until run
// time, so any node may be a dynamic target.
func (g *Graph) Validate() error {
	if g.name == "" {
		return ErrInvalidGraphName
	}
	if g.entryPoint == "" {
		return ErrNoEntryPoint
	}
	if _, exists := g.nodes[g.entryPoint]; !exists {
		return fmt.Errorf("%w: entry point %s", ErrUnknownNode, g.entryPoint)
	}
	for from, to := range g.edges {
		if _, exists := g.nodes[from]; !exists {
			return fmt.Errorf("%w: source %s", ErrUnknownNode, from)
		}
		if to != End {
			if _, exists := g.nodes[to]; !exists {
				return fmt.Errorf("%w: target %s", ErrUnknownNode, to)
			}
		}
	}
	if len(g.resolvers) == 0 {
		if unreachable := g.findUnreachable(); len(unreachable) > 0 {
			return fmt.Errorf("%w: %v", ErrUnreachableNode, unreachable)
		}
	}
	return nil
}

// findUnreachable walks static edges from the entry point and returns nodes
// never visited.
func (g *Graph) findUnreachable() []string {
	visited := map[string]bool{g.entryPoint: true}
	queue := []string{g.entryPoint}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if to, ok := g.edges[current]; ok && to != End && !visited[to] {
			visited[to] = true
			queue = append(queue, to)
		}
	}
	var unreachable []string
	for name := range g.nodes {
		if !visited[name] {
			unreachable = append(unreachable, name)
		}
	}
	return unreachable
}
