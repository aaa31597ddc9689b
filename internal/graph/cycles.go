package graph

import "fmt"

// DetectCycles walks the graph along its edges and returns a non-nil error
// naming a node involved in the first cycle found. The connection protocol
// itself does not forbid cycles; this is a diagnostic for validators that
// want to guarantee evaluation terminates.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three node sets: fully visited,
	// currently on the recursion stack, and unvisited.
	permanent := make(map[*Node]bool)
	temporary := make(map[*Node]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		if permanent[n] {
			return nil
		}
		if temporary[n] {
			return fmt.Errorf("cycle detected involving node %q", n.name)
		}

		temporary[n] = true
		for _, succ := range g.successors(n) {
			if err := visit(succ); err != nil {
				return err
			}
		}
		delete(temporary, n)
		permanent[n] = true
		return nil
	}

	for _, n := range g.Nodes() {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// successors returns the nodes fed by n's outputs, deduplicated.
func (g *Graph) successors(n *Node) []*Node {
	seen := make(map[*Node]bool)
	var succs []*Node
	for _, out := range n.Outputs() {
		for _, e := range out.Edges() {
			next := e.Input().Node()
			if next != nil && !seen[next] {
				seen[next] = true
				succs = append(succs, next)
			}
		}
	}
	return succs
}
