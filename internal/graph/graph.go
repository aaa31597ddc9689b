package graph

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/compgraph/internal/value"
)

// Graph is the container of nodes and of the edges connecting them. A graph
// defines connectivity scope: the connection protocol refuses edges between
// nodes of different graphs.
type Graph struct {
	mu     sync.Mutex
	nodes  []*Node
	byName map[string]*Node
	serial int64

	edges  *arena
	logger *slog.Logger

	listenerMu sync.RWMutex
	onAdded    []func(*Edge)
	onRemoved  []func(*Edge)
	onChanged  []func(*Input, value.Rat, value.Rat)
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byName: make(map[string]*Node),
		edges:  newArena(),
		logger: slog.Default(),
	}
}

// SetLogger replaces the logger used for connection-protocol diagnostics.
func (g *Graph) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// NewNode creates a node owned by this graph. The name must be unique
// within the graph; it is how composition files and the CLI refer to the
// node. The compute function produces the node's output values and may be
// nil for nodes whose outputs are never evaluated.
func (g *Graph) NewNode(name, kind string, compute ComputeFunc) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("node name cannot be empty")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.byName[name]; ok {
		return nil, fmt.Errorf("node %q already exists in graph", name)
	}

	g.serial++
	n := &Node{
		graph:   g,
		serial:  g.serial,
		name:    name,
		kind:    kind,
		compute: compute,
		byID:    make(map[string]Param),
	}
	g.nodes = append(g.nodes, n)
	g.byName[name] = n
	return n, nil
}

// Node returns the node with the given name, or nil.
func (g *Graph) Node(name string) *Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byName[name]
}

// Nodes returns all nodes in creation order. The slice is a copy.
func (g *Graph) Nodes() []*Node {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Node(nil), g.nodes...)
}

// EdgeCount returns the number of live edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edges.len()
}

// RemoveNode disconnects every edge touching the node's parameters and
// removes the node from the graph. Removing an unknown name is a no-op.
func (g *Graph) RemoveNode(name string) {
	g.mu.Lock()
	n, ok := g.byName[name]
	g.mu.Unlock()
	if !ok {
		return
	}

	for _, p := range n.Params() {
		for _, e := range p.Edges() {
			Disconnect(e)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.byName, name)
	for i, other := range g.nodes {
		if other == n {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
}

// OnEdgeAdded registers a listener invoked after an edge has been created
// and all locks released. Listeners run synchronously on the mutating
// goroutine and must not call back into the connection protocol.
func (g *Graph) OnEdgeAdded(fn func(*Edge)) {
	g.listenerMu.Lock()
	defer g.listenerMu.Unlock()
	g.onAdded = append(g.onAdded, fn)
}

// OnEdgeRemoved registers a listener invoked after an edge has been
// destroyed and all locks released.
func (g *Graph) OnEdgeRemoved(fn func(*Edge)) {
	g.listenerMu.Lock()
	defer g.listenerMu.Unlock()
	g.onRemoved = append(g.onRemoved, fn)
}

// OnValueChanged registers a listener invoked when an input's authored
// value changes (static value set, keyframe added or removed). The two
// times bound the span whose resolved values may have changed.
func (g *Graph) OnValueChanged(fn func(in *Input, start, end value.Rat)) {
	g.listenerMu.Lock()
	defer g.listenerMu.Unlock()
	g.onChanged = append(g.onChanged, fn)
}

func (g *Graph) notifyEdgeAdded(e *Edge) {
	g.listenerMu.RLock()
	fns := g.onAdded
	g.listenerMu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (g *Graph) notifyEdgeRemoved(e *Edge) {
	g.listenerMu.RLock()
	fns := g.onRemoved
	g.listenerMu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}

func (g *Graph) notifyValueChanged(in *Input, start, end value.Rat) {
	g.listenerMu.RLock()
	fns := g.onChanged
	g.listenerMu.RUnlock()
	for _, fn := range fns {
		fn(in, start, end)
	}
}
