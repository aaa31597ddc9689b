package compfile

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is the top-level structure of a composition file.
type fileRoot struct {
	Nodes    []*nodeBlock    `hcl:"node,block"`
	Connects []*connectBlock `hcl:"connect,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

// nodeBlock declares one node instance: node "<kind>" "<name>" { ... }.
type nodeBlock struct {
	Kind   string        `hcl:"kind,label"`
	Name   string        `hcl:"name,label"`
	Inputs []*inputBlock `hcl:"input,block"`
}

// inputBlock configures one input of the enclosing node. A static value
// and keyframes are mutually exclusive; setting keyframes enables
// keyframing on the input.
type inputBlock struct {
	ID        string           `hcl:"id,label"`
	Value     cty.Value        `hcl:"value,optional"`
	Keyframes []*keyframeBlock `hcl:"keyframe,block"`
}

// keyframeBlock is one control point: a rational time, a value, and an
// optional interpolation mode (linear by default).
type keyframeBlock struct {
	Time   string    `hcl:"time"`
	Value  cty.Value `hcl:"value"`
	Interp string    `hcl:"interpolation,optional"`
}

// connectBlock wires an output parameter to an input parameter, both
// addressed as "node.param".
type connectBlock struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}
