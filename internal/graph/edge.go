package graph

import (
	"sync"

	"github.com/google/uuid"
)

// Edge is a directed connection from one output to one input. Edges are
// allocated in the graph's arena and identified by a stable handle; both
// endpoints store the handle, and the arena, not either endpoint, owns
// destruction. An edge dies only through an explicit Disconnect.
type Edge struct {
	handle uuid.UUID
	output *Output
	input  *Input
}

// Handle returns the edge's stable identifier.
func (e *Edge) Handle() uuid.UUID { return e.handle }

// Output returns the producing endpoint.
func (e *Edge) Output() *Output { return e.output }

// Input returns the consuming endpoint.
func (e *Edge) Input() *Input { return e.input }

// arena owns every live edge in a graph, keyed by handle. Lookups on the
// evaluation path take the read lock for a bounded map access.
type arena struct {
	mu    sync.RWMutex
	edges map[uuid.UUID]*Edge
}

func newArena() *arena {
	return &arena{edges: make(map[uuid.UUID]*Edge)}
}

func (a *arena) get(h uuid.UUID) *Edge {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.edges[h]
}

func (a *arena) put(e *Edge) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.edges[e.handle] = e
}

// remove deletes the edge and reports whether it was present. The second
// return distinguishes a real disconnect from a redundant one.
func (a *arena) remove(h uuid.UUID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.edges[h]; !ok {
		return false
	}
	delete(a.edges, h)
	return true
}

func (a *arena) len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.edges)
}
