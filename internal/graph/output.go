package graph

import (
	"context"
	"fmt"

	"github.com/vk/compgraph/internal/value"
)

// Output is a parameter that produces values of one fixed data type. It has
// no timeline: its value at a time is whatever the owning node computes.
type Output struct {
	param
	typ value.DataType
}

// NewOutput creates an output producing the given type.
func NewOutput(id string, t value.DataType) *Output {
	return &Output{param: param{id: id}, typ: t}
}

func (out *Output) IsInput() bool { return false }

// DataType returns the output's fixed type.
func (out *Output) DataType() value.DataType { return out.typ }

// Name returns the display name or the type's default label.
func (out *Output) Name() string {
	if out.name != "" {
		return out.name
	}
	return out.typ.Label()
}

// Edges returns a snapshot of the edges currently fed by this output.
func (out *Output) Edges() []*Edge { return out.resolveEdges() }

// Connected reports whether the output feeds at least one input.
func (out *Output) Connected() bool { return len(out.edgeHandles()) > 0 }

// ValueAt asks the owning node's computation for this output's value at
// the given time.
func (out *Output) ValueAt(ctx context.Context, t value.Rat) (value.Value, error) {
	n := out.node
	if n == nil {
		return value.Nil, fmt.Errorf("output %q is not owned by a node", out.id)
	}
	if n.compute == nil {
		return value.Nil, fmt.Errorf("node %q (%s) has no computation for output %q", n.name, n.kind, out.id)
	}
	return n.compute(ctx, n, out, t)
}
