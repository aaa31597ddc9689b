package nodedef

import (
	"context"
	"fmt"

	"github.com/vk/compgraph/internal/graph"
	"github.com/vk/compgraph/internal/media"
	"github.com/vk/compgraph/internal/value"
)

// RegisterBuiltins populates the registry with the standard node kinds.
// The footage kind resolves file references through the given library.
func RegisterBuiltins(r *Registry, lib *media.Library) {
	r.Register(floatValue())
	r.Register(intValue())
	r.Register(colorValue())
	r.Register(mathAdd())
	r.Register(mathMultiply())
	r.Register(colorMix())
	r.Register(mediaFootage(lib))
}

// inputAt resolves one of the node's inputs at the given time.
func inputAt(ctx context.Context, n *graph.Node, id string, t value.Rat) (value.Value, error) {
	in := n.Input(id)
	if in == nil {
		return value.Nil, fmt.Errorf("node %q has no input %q", n.Name(), id)
	}
	return in.ValueAt(ctx, t)
}

// floatValue emits a single float, static or animated.
func floatValue() *Definition {
	return &Definition{
		Kind: "value/float",
		Inputs: []InputSpec{
			{ID: "value", Name: "Value", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(0)},
		},
		Outputs: []OutputSpec{
			{ID: "out", Name: "Value", Type: value.Float},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			return inputAt(ctx, n, "value", t)
		},
	}
}

// intValue emits a single integer, static or animated.
func intValue() *Definition {
	return &Definition{
		Kind: "value/int",
		Inputs: []InputSpec{
			{ID: "value", Name: "Value", Accepts: []value.DataType{value.Int}, Default: value.NewInt(0)},
		},
		Outputs: []OutputSpec{
			{ID: "out", Name: "Value", Type: value.Int},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			return inputAt(ctx, n, "value", t)
		},
	}
}

// colorValue emits a single RGBA color.
func colorValue() *Definition {
	return &Definition{
		Kind: "value/color",
		Inputs: []InputSpec{
			{ID: "color", Name: "Color", Accepts: []value.DataType{value.Color}, Default: value.NewColor(value.RGBA{A: 1})},
		},
		Outputs: []OutputSpec{
			{ID: "out", Name: "Color", Type: value.Color},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			return inputAt(ctx, n, "color", t)
		},
	}
}

func mathAdd() *Definition {
	return &Definition{
		Kind: "math/add",
		Inputs: []InputSpec{
			{ID: "a", Name: "A", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(0)},
			{ID: "b", Name: "B", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(0)},
		},
		Outputs: []OutputSpec{
			{ID: "sum", Name: "Sum", Type: value.Float},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			a, err := inputAt(ctx, n, "a", t)
			if err != nil {
				return value.Nil, err
			}
			b, err := inputAt(ctx, n, "b", t)
			if err != nil {
				return value.Nil, err
			}
			return value.NewFloat(a.Float64() + b.Float64()), nil
		},
	}
}

func mathMultiply() *Definition {
	return &Definition{
		Kind: "math/multiply",
		Inputs: []InputSpec{
			{ID: "a", Name: "A", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(0)},
			{ID: "b", Name: "B", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(1)},
		},
		Outputs: []OutputSpec{
			{ID: "product", Name: "Product", Type: value.Float},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			a, err := inputAt(ctx, n, "a", t)
			if err != nil {
				return value.Nil, err
			}
			b, err := inputAt(ctx, n, "b", t)
			if err != nil {
				return value.Nil, err
			}
			return value.NewFloat(a.Float64() * b.Float64()), nil
		},
	}
}

// colorMix linearly blends two colors by a factor clamped to [0, 1].
func colorMix() *Definition {
	return &Definition{
		Kind: "color/mix",
		Inputs: []InputSpec{
			{ID: "base", Name: "Base", Accepts: []value.DataType{value.Color}, Default: value.NewColor(value.RGBA{A: 1})},
			{ID: "blend", Name: "Blend", Accepts: []value.DataType{value.Color}, Default: value.NewColor(value.RGBA{A: 1})},
			{ID: "factor", Name: "Factor", Accepts: []value.DataType{value.Float}, Default: value.NewFloat(0.5), Min: value.NewFloat(0), Max: value.NewFloat(1)},
		},
		Outputs: []OutputSpec{
			{ID: "color", Name: "Color", Type: value.Color},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			base, err := inputAt(ctx, n, "base", t)
			if err != nil {
				return value.Nil, err
			}
			blend, err := inputAt(ctx, n, "blend", t)
			if err != nil {
				return value.Nil, err
			}
			factor, err := inputAt(ctx, n, "factor", t)
			if err != nil {
				return value.Nil, err
			}

			bc, oc, f := base.AsColor(), blend.AsColor(), factor.Float64()
			mix := func(x, y float64) float64 { return x + (y-x)*f }
			return value.NewColor(value.RGBA{
				R: mix(bc.R, oc.R),
				G: mix(bc.G, oc.G),
				B: mix(bc.B, oc.B),
				A: mix(bc.A, oc.A),
			}), nil
		},
	}
}

// mediaFootage resolves a filename to a footage reference through the
// library, adding and probing the file on first use.
func mediaFootage(lib *media.Library) *Definition {
	return &Definition{
		Kind: "media/footage",
		Inputs: []InputSpec{
			{ID: "filename", Name: "Filename", Accepts: []value.DataType{value.File}},
		},
		Outputs: []OutputSpec{
			{ID: "footage", Name: "Footage", Type: value.Footage},
		},
		Compute: func(ctx context.Context, n *graph.Node, out *graph.Output, t value.Rat) (value.Value, error) {
			v, err := inputAt(ctx, n, "filename", t)
			if err != nil {
				return value.Nil, err
			}
			if v.IsNil() || v.AsString() == "" {
				return value.Nil, fmt.Errorf("node %q has no filename set", n.Name())
			}

			name := v.AsString()
			f, ok := lib.GetByFilename(name)
			if !ok {
				if f, err = lib.Add(ctx, name); err != nil {
					return value.Nil, fmt.Errorf("probe %q: %w", name, err)
				}
			}
			if f.Status() != media.Ready {
				return value.Nil, fmt.Errorf("footage %q is not ready (%s)", name, f.Status())
			}
			return value.NewFootageRef(f.ID()), nil
		},
	}
}
