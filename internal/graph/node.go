package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/compgraph/internal/value"
)

// ComputeFunc produces the value of one of a node's outputs at a time. It
// typically reads the node's inputs at the same time and combines them.
// What a node computes is the node kind's business; the graph core only
// routes the results.
type ComputeFunc func(ctx context.Context, n *Node, out *Output, t value.Rat) (value.Value, error)

// Node is a unit of computation owning an ordered list of parameters. The
// parameter order is significant: it is preserved for persistence and
// indexing, while the parameter identifier is the stable key that survives
// reordering across versions.
type Node struct {
	graph   *Graph
	serial  int64
	name    string
	kind    string
	compute ComputeFunc

	mu     sync.Mutex
	params []Param
	byID   map[string]Param
}

// Graph returns the graph this node belongs to.
func (n *Node) Graph() *Graph { return n.graph }

// Name returns the node's unique name within its graph.
func (n *Node) Name() string { return n.name }

// Kind returns the node-kind string the node was instantiated from.
func (n *Node) Kind() string { return n.kind }

// Lock acquires the node's structural lock. The connection protocol holds
// it while mutating edge lists; anything else reshaping the node's
// parameters should hold it too.
func (n *Node) Lock() { n.mu.Lock() }

// Unlock releases the structural lock.
func (n *Node) Unlock() { n.mu.Unlock() }

// AddInput appends an input parameter to the node. The parameter identifier
// must be unique within the node and is immutable once assigned.
func (n *Node) AddInput(in *Input) error {
	return n.addParam(in)
}

// AddOutput appends an output parameter to the node.
func (n *Node) AddOutput(out *Output) error {
	return n.addParam(out)
}

func (n *Node) addParam(p Param) error {
	pb := p.base()
	if pb.id == "" {
		return fmt.Errorf("node %q: parameter identifier cannot be empty", n.name)
	}
	if pb.node != nil {
		return fmt.Errorf("node %q: parameter %q already owned by node %q", n.name, pb.id, pb.node.name)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.byID[pb.id]; ok {
		return fmt.Errorf("node %q: duplicate parameter identifier %q", n.name, pb.id)
	}
	pb.node = n
	n.params = append(n.params, p)
	n.byID[pb.id] = p
	return nil
}

// Params returns the node's parameters in declaration order. The slice is
// a copy.
func (n *Node) Params() []Param {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Param(nil), n.params...)
}

// Param returns the parameter with the given identifier, or nil.
func (n *Node) Param(id string) Param {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.byID[id]
}

// Input returns the input with the given identifier, or nil if absent or
// not an input.
func (n *Node) Input(id string) *Input {
	in, _ := n.Param(id).(*Input)
	return in
}

// Output returns the output with the given identifier, or nil if absent or
// not an output.
func (n *Node) Output(id string) *Output {
	out, _ := n.Param(id).(*Output)
	return out
}

// Inputs returns the node's inputs in declaration order.
func (n *Node) Inputs() []*Input {
	n.mu.Lock()
	defer n.mu.Unlock()
	var ins []*Input
	for _, p := range n.params {
		if in, ok := p.(*Input); ok {
			ins = append(ins, in)
		}
	}
	return ins
}

// Outputs returns the node's outputs in declaration order.
func (n *Node) Outputs() []*Output {
	n.mu.Lock()
	defer n.mu.Unlock()
	var outs []*Output
	for _, p := range n.params {
		if out, ok := p.(*Output); ok {
			outs = append(outs, out)
		}
	}
	return outs
}

// IndexOf returns the position of the parameter in the node's ordered
// parameter list, or -1 if the parameter belongs to another node.
func (n *Node) IndexOf(p Param) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, other := range n.params {
		if other == p {
			return i
		}
	}
	return -1
}
