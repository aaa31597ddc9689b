package nodedef

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/compgraph/internal/graph"
	"github.com/vk/compgraph/internal/value"
)

// InputSpec describes one input parameter of a node kind.
type InputSpec struct {
	ID      string
	Name    string
	Accepts []value.DataType
	Default value.Value
	Multi   bool
	Min     value.Value
	Max     value.Value
}

// OutputSpec describes one output parameter of a node kind.
type OutputSpec struct {
	ID   string
	Name string
	Type value.DataType
}

// Definition is the shared shape of a node kind: its parameter layout and
// the computation every instance runs.
type Definition struct {
	Kind    string
	Inputs  []InputSpec
	Outputs []OutputSpec
	Compute graph.ComputeFunc
}

// Registry holds the node definitions for a single application instance.
type Registry struct {
	definitions map[string]*Definition
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{definitions: make(map[string]*Definition)}
}

// Register adds a definition to the registry. A duplicate kind or a
// malformed definition panics.
func (r *Registry) Register(def *Definition) {
	if def.Kind == "" {
		panic("node definition has no kind")
	}
	if _, exists := r.definitions[def.Kind]; exists {
		panic(fmt.Sprintf("node definition with kind '%s' already registered", def.Kind))
	}
	if def.Compute == nil && len(def.Outputs) > 0 {
		panic(fmt.Sprintf("node definition '%s' declares outputs but has no computation", def.Kind))
	}
	for _, in := range def.Inputs {
		if len(in.Accepts) == 0 {
			panic(fmt.Sprintf("node definition '%s': input '%s' accepts no types", def.Kind, in.ID))
		}
	}

	slog.Debug("Registering node definition.", "kind", def.Kind)
	r.definitions[def.Kind] = def
}

// Definition retrieves a registered definition by kind, or nil.
func (r *Registry) Definition(kind string) *Definition {
	return r.definitions[kind]
}

// Kinds returns the registered kind strings in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.definitions))
	for k := range r.definitions {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Instantiate creates a node of the given kind in the graph, building its
// parameters from the definition.
func (r *Registry) Instantiate(g *graph.Graph, kind, name string) (*graph.Node, error) {
	def := r.definitions[kind]
	if def == nil {
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}

	n, err := g.NewNode(name, kind, def.Compute)
	if err != nil {
		return nil, err
	}

	for _, spec := range def.Inputs {
		in := graph.NewInput(spec.ID, spec.Accepts...)
		if spec.Name != "" {
			in.SetName(spec.Name)
		}
		in.SetAllowsMultiple(spec.Multi)
		if !spec.Min.IsNil() {
			in.SetMinimum(spec.Min)
		}
		if !spec.Max.IsNil() {
			in.SetMaximum(spec.Max)
		}
		if !spec.Default.IsNil() {
			in.SetValue(spec.Default)
		}
		if err := n.AddInput(in); err != nil {
			g.RemoveNode(name)
			return nil, fmt.Errorf("kind %q: %w", kind, err)
		}
	}

	for _, spec := range def.Outputs {
		out := graph.NewOutput(spec.ID, spec.Type)
		if spec.Name != "" {
			out.SetName(spec.Name)
		}
		if err := n.AddOutput(out); err != nil {
			g.RemoveNode(name)
			return nil, fmt.Errorf("kind %q: %w", kind, err)
		}
	}

	return n, nil
}
