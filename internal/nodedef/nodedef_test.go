package nodedef

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/compgraph/internal/graph"
	"github.com/vk/compgraph/internal/media"
	"github.com/vk/compgraph/internal/timeline"
	"github.com/vk/compgraph/internal/value"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	RegisterBuiltins(r, media.NewLibrary(nil))
	return r
}

func TestRegister(t *testing.T) {
	t.Run("duplicate kind panics", func(t *testing.T) {
		r := New()
		def := &Definition{Kind: "value/float"}
		r.Register(def)
		assert.Panics(t, func() { r.Register(def) })
	})

	t.Run("empty kind panics", func(t *testing.T) {
		assert.Panics(t, func() { New().Register(&Definition{}) })
	})

	t.Run("outputs without computation panic", func(t *testing.T) {
		assert.Panics(t, func() {
			New().Register(&Definition{
				Kind:    "broken",
				Outputs: []OutputSpec{{ID: "out", Type: value.Float}},
			})
		})
	})

	t.Run("input accepting no types panics", func(t *testing.T) {
		assert.Panics(t, func() {
			New().Register(&Definition{
				Kind:   "broken",
				Inputs: []InputSpec{{ID: "in"}},
			})
		})
	})

	t.Run("kinds are sorted", func(t *testing.T) {
		r := newRegistry(t)
		kinds := r.Kinds()
		require.NotEmpty(t, kinds)
		assert.True(t, sort.StringsAreSorted(kinds))
		assert.Contains(t, kinds, "math/add")
		assert.Contains(t, kinds, "media/footage")
	})
}

func TestInstantiate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		r := newRegistry(t)
		_, err := r.Instantiate(graph.New(), "does/not/exist", "n")
		require.Error(t, err)
	})

	t.Run("parameters follow the definition", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()

		n, err := r.Instantiate(g, "color/mix", "mix")
		require.NoError(t, err)

		require.Len(t, n.Inputs(), 3)
		require.Len(t, n.Outputs(), 1)

		factor := n.Input("factor")
		require.NotNil(t, factor)
		assert.Equal(t, "Factor", factor.Name())
		assert.True(t, factor.HasMinimum())
		assert.True(t, factor.HasMaximum())

		v, err := factor.ValueAt(ctx, value.NewRat(0, 1))
		require.NoError(t, err)
		assert.InDelta(t, 0.5, v.AsFloat(), 1e-9)
	})

	t.Run("duplicate names are rejected by the graph", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()
		_, err := r.Instantiate(g, "value/float", "n")
		require.NoError(t, err)
		_, err = r.Instantiate(g, "math/add", "n")
		require.Error(t, err)
	})
}

func TestMathNodes(t *testing.T) {
	ctx := context.Background()
	at := value.NewRat(0, 1)

	t.Run("add", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()
		n, err := r.Instantiate(g, "math/add", "add")
		require.NoError(t, err)

		n.Input("a").SetValue(value.NewFloat(2))
		n.Input("b").SetValue(value.NewFloat(3.5))

		v, err := n.Output("sum").ValueAt(ctx, at)
		require.NoError(t, err)
		assert.InDelta(t, 5.5, v.AsFloat(), 1e-9)
	})

	t.Run("multiply", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()
		n, err := r.Instantiate(g, "math/multiply", "mul")
		require.NoError(t, err)

		n.Input("a").SetValue(value.NewFloat(4))
		n.Input("b").SetValue(value.NewFloat(2.5))

		v, err := n.Output("product").ValueAt(ctx, at)
		require.NoError(t, err)
		assert.InDelta(t, 10, v.AsFloat(), 1e-9)
	})

	t.Run("chained through a connection", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()

		src, err := r.Instantiate(g, "value/float", "src")
		require.NoError(t, err)
		add, err := r.Instantiate(g, "math/add", "add")
		require.NoError(t, err)

		src.Input("value").SetValue(value.NewFloat(7))
		require.NotNil(t, graph.Connect(src.Output("out"), add.Input("a")))
		add.Input("b").SetValue(value.NewFloat(1))

		v, err := add.Output("sum").ValueAt(ctx, at)
		require.NoError(t, err)
		assert.InDelta(t, 8, v.AsFloat(), 1e-9)
	})

	t.Run("animated operand", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()
		n, err := r.Instantiate(g, "math/add", "add")
		require.NoError(t, err)

		a := n.Input("a")
		a.SetKeyframing(true)
		require.True(t, a.SetKeyframe(timeline.Keyframe{Time: value.NewRat(0, 1), Value: value.NewFloat(0), Interp: timeline.Linear}))
		require.True(t, a.SetKeyframe(timeline.Keyframe{Time: value.NewRat(2, 1), Value: value.NewFloat(10), Interp: timeline.Linear}))

		v, err := n.Output("sum").ValueAt(ctx, value.NewRat(1, 1))
		require.NoError(t, err)
		assert.InDelta(t, 5, v.AsFloat(), 1e-9)
	})
}

func TestColorMix(t *testing.T) {
	ctx := context.Background()
	r := newRegistry(t)
	g := graph.New()

	n, err := r.Instantiate(g, "color/mix", "mix")
	require.NoError(t, err)

	n.Input("base").SetValue(value.NewColor(value.RGBA{R: 1, A: 1}))
	n.Input("blend").SetValue(value.NewColor(value.RGBA{B: 1, A: 1}))
	n.Input("factor").SetValue(value.NewFloat(0.25))

	v, err := n.Output("color").ValueAt(ctx, value.NewRat(0, 1))
	require.NoError(t, err)

	c := v.AsColor()
	assert.InDelta(t, 0.75, c.R, 1e-9)
	assert.InDelta(t, 0, c.G, 1e-9)
	assert.InDelta(t, 0.25, c.B, 1e-9)
	assert.InDelta(t, 1, c.A, 1e-9)
}

func TestMediaFootage(t *testing.T) {
	ctx := context.Background()
	at := value.NewRat(0, 1)

	t.Run("resolves to a library record", func(t *testing.T) {
		lib := media.NewLibrary(nil)
		r := New()
		RegisterBuiltins(r, lib)
		g := graph.New()

		n, err := r.Instantiate(g, "media/footage", "clip")
		require.NoError(t, err)

		path := writePNGFixture(t)
		n.Input("filename").SetValue(value.NewFile(path))

		v, err := n.Output("footage").ValueAt(ctx, at)
		require.NoError(t, err)
		require.Equal(t, value.Footage, v.Type())

		f, ok := lib.Get(v.AsFootageRef())
		require.True(t, ok)
		assert.Equal(t, path, f.Filename())
		assert.Equal(t, media.Ready, f.Status())
	})

	t.Run("missing filename errors", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()

		n, err := r.Instantiate(g, "media/footage", "clip")
		require.NoError(t, err)

		_, err = n.Output("footage").ValueAt(ctx, at)
		require.Error(t, err)
	})

	t.Run("invalid file errors", func(t *testing.T) {
		r := newRegistry(t)
		g := graph.New()

		n, err := r.Instantiate(g, "media/footage", "clip")
		require.NoError(t, err)

		n.Input("filename").SetValue(value.NewFile("/does/not/exist.png"))
		_, err = n.Output("footage").ValueAt(ctx, at)
		require.Error(t, err)
	})
}
