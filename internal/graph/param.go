package graph

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/vk/compgraph/internal/value"
)

// Param is the capability surface shared by inputs and outputs: a stable
// identifier, a display name, an owning node, and an edge list. The two
// concrete types are Input and Output; nothing else can implement Param.
type Param interface {
	// ID returns the parameter's stable identifier, unique within its node.
	// Identifiers survive parameter reordering across versions and must
	// never change once assigned.
	ID() string
	// Name returns the display name, falling back to the data type's
	// default label when no explicit name is set.
	Name() string
	// SetName sets the display name.
	SetName(name string)
	// Node returns the owning node, or nil before the parameter is added.
	Node() *Node
	// Index returns the parameter's position in the owning node's ordered
	// parameter list.
	Index() int
	// DataType returns the parameter's primary data type.
	DataType() value.DataType
	// Edges returns a snapshot of the edges this parameter participates in.
	Edges() []*Edge
	// Connected reports whether at least one edge touches this parameter.
	Connected() bool
	// IsInput reports the parameter's direction.
	IsInput() bool

	base() *param
}

// param carries the state common to both directions. The edge list is
// published as an immutable snapshot of handles behind an atomic pointer;
// writers (holding the node locks) copy, modify and swap.
type param struct {
	id   string
	name string
	node *Node

	edges atomic.Pointer[[]uuid.UUID]
}

func (p *param) ID() string        { return p.id }
func (p *param) SetName(name string) { p.name = name }
func (p *param) Node() *Node       { return p.node }
func (p *param) base() *param      { return p }

func (p *param) Index() int {
	if p.node == nil {
		return -1
	}
	return p.node.IndexOf(p.node.Param(p.id))
}

// edgeHandles returns the current snapshot. The returned slice must not be
// mutated.
func (p *param) edgeHandles() []uuid.UUID {
	hs := p.edges.Load()
	if hs == nil {
		return nil
	}
	return *hs
}

// appendEdge publishes a new snapshot with the handle appended. Callers
// hold the owning node's structural lock.
func (p *param) appendEdge(h uuid.UUID) {
	old := p.edgeHandles()
	next := make([]uuid.UUID, 0, len(old)+1)
	next = append(next, old...)
	next = append(next, h)
	p.edges.Store(&next)
}

// removeEdge publishes a new snapshot without the handle. Callers hold the
// owning node's structural lock.
func (p *param) removeEdge(h uuid.UUID) {
	old := p.edgeHandles()
	next := make([]uuid.UUID, 0, len(old))
	for _, other := range old {
		if other != h {
			next = append(next, other)
		}
	}
	p.edges.Store(&next)
}

func (p *param) resolveEdges() []*Edge {
	if p.node == nil || p.node.graph == nil {
		return nil
	}
	handles := p.edgeHandles()
	es := make([]*Edge, 0, len(handles))
	for _, h := range handles {
		// A handle can outlive its edge for the instant between the list
		// swap and the arena removal; skip the dead ones.
		if e := p.node.graph.edges.get(h); e != nil {
			es = append(es, e)
		}
	}
	return es
}

// Compatible determines which of the two parameters is the input and which
// is the output, then applies the type rules. The argument order does not
// matter. Two parameters of the same direction are never compatible.
func Compatible(a, b Param) bool {
	if a.IsInput() == b.IsInput() {
		return false
	}

	var in *Input
	var out *Output
	if a.IsInput() {
		in = a.(*Input)
		out = b.(*Output)
	} else {
		in = b.(*Input)
		out = a.(*Output)
	}

	return value.CompatibleAny(out.DataType(), in.AcceptedTypes())
}
