package graph

import (
	"github.com/google/uuid"

	"github.com/vk/compgraph/internal/value"
)

// Connect creates an edge from output to input, enforcing the connection
// invariants:
//
//   - the output's type must be compatible with the input's accepted set;
//   - both nodes must belong to the same graph;
//   - an identical edge is never duplicated (the call is an idempotent
//     no-op returning nil);
//   - a single-connection input implicitly disconnects its existing edge
//     first — a side effect of a valid connect, never of a rejected one.
//
// Every rejection leaves the graph untouched and returns nil after logging
// a diagnostic. On success the new edge is returned and the "edge added"
// notification fires once, after all locks are released.
func Connect(output *Output, input *Input) *Edge {
	if output == nil || input == nil {
		return nil
	}

	outNode, inNode := output.node, input.node
	if outNode == nil || inNode == nil || outNode.graph == nil {
		return nil
	}
	logger := outNode.graph.logger

	// Validation happens before any mutation so that a rejected connect
	// cannot have disconnected anything.
	for _, e := range input.Edges() {
		if e.output == output {
			logger.Debug("connection already exists",
				"output", output.id, "input", input.id)
			return nil
		}
	}

	if !input.Accepts(output.typ) {
		logger.Warn("refusing incompatible node connection",
			"output", output.id, "output_type", output.typ.String(),
			"input", input.id, "accepts", typeNames(input.accepts))
		return nil
	}

	if outNode.graph != inNode.graph {
		logger.Warn("refusing to connect nodes from different graphs",
			"output_node", outNode.name, "input_node", inNode.name)
		return nil
	}

	// The input takes one connection unless it opted into several.
	if !input.multi {
		if es := input.Edges(); len(es) > 0 {
			Disconnect(es[0])
		}
	}

	e := &Edge{handle: uuid.New(), output: output, input: input}

	unlock := lockPair(outNode, inNode)
	outNode.graph.edges.put(e)
	output.appendEdge(e.handle)
	input.appendEdge(e.handle)
	input.invalidateCache()
	unlock()

	outNode.graph.notifyEdgeAdded(e)
	return e
}

// Disconnect destroys an edge, removing it from both endpoints' lists and
// invalidating the input's cached value. Disconnecting an edge that is no
// longer alive is a no-op, not an error. The "edge removed" notification
// fires once the locks are released.
func Disconnect(e *Edge) {
	if e == nil || e.output == nil || e.output.node == nil {
		return
	}
	g := e.output.node.graph

	unlock := lockPair(e.output.node, e.input.node)
	if !g.edges.remove(e.handle) {
		unlock()
		return
	}
	e.output.removeEdge(e.handle)
	e.input.removeEdge(e.handle)
	e.input.invalidateCache()
	unlock()

	g.notifyEdgeRemoved(e)
}

// DisconnectParams locates the edge between the two parameters by scanning
// the output's edge list and disconnects it. A missing edge is a no-op.
func DisconnectParams(output *Output, input *Input) {
	if output == nil || input == nil {
		return
	}
	for _, e := range output.Edges() {
		if e.input == input {
			Disconnect(e)
			return
		}
	}
}

// lockPair acquires both nodes' structural locks in ascending serial
// order. Node serials are unique per graph, giving a fixed total order
// that prevents cross-deadlock when two nodes feed each other through
// different parameter pairs. The returned function releases both locks.
func lockPair(a, b *Node) func() {
	if a == b {
		a.Lock()
		return a.Unlock
	}
	first, second := a, b
	if second.serial < first.serial {
		first, second = second, first
	}
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}

func typeNames(ts []value.DataType) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return names
}
