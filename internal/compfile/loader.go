package compfile

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/compgraph/internal/address"
	"github.com/vk/compgraph/internal/graph"
	"github.com/vk/compgraph/internal/nodedef"
	"github.com/vk/compgraph/internal/timeline"
	"github.com/vk/compgraph/internal/value"
)

// Loader builds graphs from composition files using a definition registry.
type Loader struct {
	logger   *slog.Logger
	registry *nodedef.Registry
}

// NewLoader creates a composition loader over the given registry.
func NewLoader(logger *slog.Logger, registry *nodedef.Registry) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, registry: registry}
}

// Load parses the given composition files and builds a single graph from
// them. Nodes from every file share one namespace, and connections may
// span files.
func (l *Loader) Load(paths ...string) (*graph.Graph, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	parser := hclparse.NewParser()

	var roots []*fileRoot
	for _, path := range paths {
		file, parseDiags := parser.ParseHCLFile(path)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}

		root := &fileRoot{}
		diags = append(diags, gohcl.DecodeBody(file.Body, nil, root)...)
		roots = append(roots, root)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	g := graph.New()
	g.SetLogger(l.logger)

	// Instantiate every node before wiring so connections can reference
	// nodes declared later or in another file.
	for _, root := range roots {
		for _, nb := range root.Nodes {
			diags = append(diags, l.buildNode(g, nb)...)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	for _, root := range roots {
		for _, cb := range root.Connects {
			diags = append(diags, l.buildConnection(g, cb)...)
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	l.logger.Debug("loaded composition", "files", len(paths), "nodes", len(g.Nodes()), "edges", g.EdgeCount())
	return g, diags
}

func (l *Loader) buildNode(g *graph.Graph, nb *nodeBlock) hcl.Diagnostics {
	n, err := l.registry.Instantiate(g, nb.Kind, nb.Name)
	if err != nil {
		return errDiag("Invalid node block", err.Error())
	}

	var diags hcl.Diagnostics
	for _, ib := range nb.Inputs {
		in := n.Input(ib.ID)
		if in == nil {
			diags = append(diags, errDiag("Unknown input",
				fmt.Sprintf("node %q (kind %q) has no input %q", nb.Name, nb.Kind, ib.ID))...)
			continue
		}
		diags = append(diags, l.applyInput(nb, in, ib)...)
	}
	return diags
}

func (l *Loader) applyInput(nb *nodeBlock, in *graph.Input, ib *inputBlock) hcl.Diagnostics {
	if !ib.Value.IsNull() && len(ib.Keyframes) > 0 {
		return errDiag("Conflicting input configuration",
			fmt.Sprintf("input %q of node %q sets both a static value and keyframes", ib.ID, nb.Name))
	}

	if !ib.Value.IsNull() {
		v, err := toValue(ib.Value, in.AcceptedTypes())
		if err != nil {
			return errDiag("Invalid input value",
				fmt.Sprintf("input %q of node %q: %s", ib.ID, nb.Name, err))
		}
		in.SetValue(v)
		return nil
	}

	if len(ib.Keyframes) == 0 {
		return nil
	}

	in.SetKeyframing(true)
	var diags hcl.Diagnostics
	for _, kb := range ib.Keyframes {
		t, err := value.ParseRat(kb.Time)
		if err != nil {
			diags = append(diags, errDiag("Invalid keyframe time",
				fmt.Sprintf("input %q of node %q: %s", ib.ID, nb.Name, err))...)
			continue
		}

		interp := timeline.Linear
		if kb.Interp != "" {
			if interp, err = timeline.ParseInterpolation(kb.Interp); err != nil {
				diags = append(diags, errDiag("Invalid keyframe interpolation",
					fmt.Sprintf("input %q of node %q: %s", ib.ID, nb.Name, err))...)
				continue
			}
		}

		v, err := toValue(kb.Value, in.AcceptedTypes())
		if err != nil {
			diags = append(diags, errDiag("Invalid keyframe value",
				fmt.Sprintf("input %q of node %q at %s: %s", ib.ID, nb.Name, kb.Time, err))...)
			continue
		}

		in.SetKeyframe(timeline.Keyframe{Time: t, Value: v, Interp: interp})
	}
	return diags
}

func (l *Loader) buildConnection(g *graph.Graph, cb *connectBlock) hcl.Diagnostics {
	out, diags := l.lookupOutput(g, cb.From)
	if diags.HasErrors() {
		return diags
	}
	in, diags := l.lookupInput(g, cb.To)
	if diags.HasErrors() {
		return diags
	}

	if graph.Connect(out, in) == nil {
		return errDiag("Connection rejected",
			fmt.Sprintf("cannot connect %q to %q: the types are incompatible or the connection already exists", cb.From, cb.To))
	}
	return nil
}

func (l *Loader) lookupOutput(g *graph.Graph, addr string) (*graph.Output, hcl.Diagnostics) {
	a, err := address.Parse(addr)
	if err != nil {
		return nil, errDiag("Invalid connection address", err.Error())
	}
	n := g.Node(a.Node)
	if n == nil {
		return nil, errDiag("Unknown node", fmt.Sprintf("connection refers to undeclared node %q", a.Node))
	}
	out := n.Output(a.Param)
	if out == nil {
		return nil, errDiag("Unknown output", fmt.Sprintf("node %q has no output %q", a.Node, a.Param))
	}
	return out, nil
}

func (l *Loader) lookupInput(g *graph.Graph, addr string) (*graph.Input, hcl.Diagnostics) {
	a, err := address.Parse(addr)
	if err != nil {
		return nil, errDiag("Invalid connection address", err.Error())
	}
	n := g.Node(a.Node)
	if n == nil {
		return nil, errDiag("Unknown node", fmt.Sprintf("connection refers to undeclared node %q", a.Node))
	}
	in := n.Input(a.Param)
	if in == nil {
		return nil, errDiag("Unknown input", fmt.Sprintf("node %q has no input %q", a.Node, a.Param))
	}
	return in, nil
}

func errDiag(summary, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
	}}
}
