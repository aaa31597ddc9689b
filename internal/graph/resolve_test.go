package graph

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/compgraph/internal/timeline"
	"github.com/vk/compgraph/internal/value"
)

func TestValueAtStatic(t *testing.T) {
	g := New()
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetValue(value.NewFloat(4.5))

	// Unconnected, not keyframing: the same value at every time.
	for _, tm := range []value.Rat{value.NewRat(0, 1), value.NewRat(7, 2), value.NewRat(100, 1)} {
		v, err := in.ValueAt(context.Background(), tm)
		require.NoError(t, err)
		assert.Equal(t, 4.5, v.AsFloat(), "t=%s", tm)
	}
}

func TestValueAtKeyframed(t *testing.T) {
	g := New()
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetKeyframing(true)
	require.True(t, in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(0, 1), Value: value.NewFloat(0), Interp: timeline.Linear}))
	require.True(t, in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(10, 1), Value: value.NewFloat(10), Interp: timeline.Linear}))

	ctx := context.Background()

	t.Run("exact keyframe times return exact values", func(t *testing.T) {
		v, err := in.ValueAt(ctx, value.NewRat(10, 1))
		require.NoError(t, err)
		assert.Equal(t, 10.0, v.AsFloat())
	})

	t.Run("linear interpolation between keyframes", func(t *testing.T) {
		v, err := in.ValueAt(ctx, value.NewRat(5, 1))
		require.NoError(t, err)
		assert.InDelta(t, 5.0, v.AsFloat(), 1e-9)
	})

	t.Run("clamps outside the keyframed range", func(t *testing.T) {
		v, err := in.ValueAt(ctx, value.NewRat(-5, 1))
		require.NoError(t, err)
		assert.Equal(t, 0.0, v.AsFloat())

		v, err = in.ValueAt(ctx, value.NewRat(50, 1))
		require.NoError(t, err)
		assert.Equal(t, 10.0, v.AsFloat())
	})

	t.Run("disabling keyframing falls back to the static value", func(t *testing.T) {
		in.SetValue(value.NewFloat(7))
		in.SetKeyframing(false)
		v, err := in.ValueAt(ctx, value.NewRat(5, 1))
		require.NoError(t, err)
		assert.Equal(t, 7.0, v.AsFloat())
		in.SetKeyframing(true)
	})

	t.Run("keyframes cannot be authored while keyframing is off", func(t *testing.T) {
		in.SetKeyframing(false)
		assert.False(t, in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(1, 1), Value: value.NewFloat(99)}))
		assert.False(t, in.RemoveKeyframe(value.NewRat(0, 1)))
		in.SetKeyframing(true)
		assert.Len(t, in.Keyframes(), 2)
	})
}

func TestValueAtConnected(t *testing.T) {
	g := New()
	_, out := constNode(t, g, "src", value.NewFloat(42))
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetValue(value.NewFloat(1))
	require.NotNil(t, Connect(out, in))

	v, err := in.ValueAt(context.Background(), value.NewRat(0, 1))
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.AsFloat(), "connection overrides authored value")
}

func TestValueAtWidensIntOutputs(t *testing.T) {
	g := New()
	_, out := constNode(t, g, "src", value.NewInt(3))
	_, in := sinkNode(t, g, "dst", value.Float)
	require.NotNil(t, Connect(out, in))

	v, err := in.ValueAt(context.Background(), value.NewRat(0, 1))
	require.NoError(t, err)
	require.Equal(t, value.Float, v.Type())
	assert.Equal(t, 3.0, v.AsFloat())
}

func TestValueAtMultiConnection(t *testing.T) {
	g := New()
	_, out1 := constNode(t, g, "src1", value.NewFloat(1))
	_, out2 := constNode(t, g, "src2", value.NewFloat(2))
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetAllowsMultiple(true)
	require.NotNil(t, Connect(out1, in))
	require.NotNil(t, Connect(out2, in))

	v, err := in.ValueAt(context.Background(), value.NewRat(0, 1))
	require.NoError(t, err)
	require.Equal(t, value.Track, v.Type())

	vs := v.AsTrack()
	require.Len(t, vs, 2)
	assert.Equal(t, 1.0, vs[0].AsFloat())
	assert.Equal(t, 2.0, vs[1].AsFloat())
}

func TestValueAtCaching(t *testing.T) {
	g := New()
	computes := 0
	n, err := g.NewNode("src", "test/counting", func(context.Context, *Node, *Output, value.Rat) (value.Value, error) {
		computes++
		return value.NewFloat(5), nil
	})
	require.NoError(t, err)
	out := NewOutput("out", value.Float)
	require.NoError(t, n.AddOutput(out))

	_, in := sinkNode(t, g, "dst", value.Float)
	require.NotNil(t, Connect(out, in))

	ctx := context.Background()

	t.Run("repeat resolution at the same time is memoized", func(t *testing.T) {
		_, err := in.ValueAt(ctx, value.NewRat(1, 1))
		require.NoError(t, err)
		_, err = in.ValueAt(ctx, value.NewRat(1, 1))
		require.NoError(t, err)
		assert.Equal(t, 1, computes)
	})

	t.Run("a different time recomputes", func(t *testing.T) {
		_, err := in.ValueAt(ctx, value.NewRat(2, 1))
		require.NoError(t, err)
		assert.Equal(t, 2, computes)
	})

	t.Run("disabling caching recomputes every call", func(t *testing.T) {
		in.SetValueCachingEnabled(false)
		_, err := in.ValueAt(ctx, value.NewRat(2, 1))
		require.NoError(t, err)
		_, err = in.ValueAt(ctx, value.NewRat(2, 1))
		require.NoError(t, err)
		assert.Equal(t, 4, computes)
		in.SetValueCachingEnabled(true)
	})
}

func TestValueAtInvalidationDuringResolve(t *testing.T) {
	g := New()

	// The source detaches its own edge while its value is being computed,
	// so the resolution in flight finishes against a topology that no
	// longer exists.
	var edge *Edge
	src, err := g.NewNode("src", "test/selfdetach", func(context.Context, *Node, *Output, value.Rat) (value.Value, error) {
		Disconnect(edge)
		return value.NewFloat(1), nil
	})
	require.NoError(t, err)
	out := NewOutput("out", value.Float)
	require.NoError(t, src.AddOutput(out))

	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetValue(value.NewFloat(5))

	edge = Connect(out, in)
	require.NotNil(t, edge)

	ctx := context.Background()
	at := value.NewRat(0, 1)

	v, err := in.ValueAt(ctx, at)
	require.NoError(t, err)
	assert.InDelta(t, 1, v.AsFloat(), 1e-9)
	assert.False(t, in.Connected())

	// The value computed against the pre-disconnect topology must not have
	// been memoized; the same request now yields the static fallback.
	v, err = in.ValueAt(ctx, at)
	require.NoError(t, err)
	assert.InDelta(t, 5, v.AsFloat(), 1e-9)
}

func TestValueAtBounds(t *testing.T) {
	g := New()
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetMinimum(value.NewFloat(0))
	in.SetMaximum(value.NewFloat(1))

	in.SetValue(value.NewFloat(7))
	assert.Equal(t, 1.0, in.Value().AsFloat())

	in.SetValue(value.NewFloat(-2))
	assert.Equal(t, 0.0, in.Value().AsFloat())

	in.SetValue(value.NewFloat(0.25))
	assert.Equal(t, 0.25, in.Value().AsFloat())

	// Non-numeric values pass through unclamped.
	_, sin := sinkNode(t, g, "s", value.String)
	sin.SetMinimum(value.NewFloat(0))
	sin.SetValue(value.NewString("abc"))
	assert.Equal(t, "abc", sin.Value().AsString())
}

func TestValueChangedNotifications(t *testing.T) {
	g := New()
	_, in := sinkNode(t, g, "dst", value.Float)

	type change struct{ start, end value.Rat }
	var changes []change
	g.OnValueChanged(func(_ *Input, start, end value.Rat) {
		changes = append(changes, change{start, end})
	})

	in.SetValue(value.NewFloat(1))
	require.Len(t, changes, 1)
	assert.Equal(t, TimeMin, changes[0].start)
	assert.Equal(t, TimeMax, changes[0].end)

	in.SetKeyframing(true)
	in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(0, 1), Value: value.NewFloat(0)})
	in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(10, 1), Value: value.NewFloat(1)})
	changes = nil

	// A middle keyframe only dirties the span between its neighbors.
	in.SetKeyframe(timeline.Keyframe{Time: value.NewRat(5, 1), Value: value.NewFloat(9)})
	require.Len(t, changes, 1)
	assert.Equal(t, value.NewRat(0, 1), changes[0].start)
	assert.Equal(t, value.NewRat(10, 1), changes[0].end)
}

func TestConcurrentResolveDuringMutation(t *testing.T) {
	// Editing and evaluation race on purpose; the run is only expected to
	// be free of panics and data corruption, not to observe any
	// particular interleaving.
	g := New()
	_, out := constNode(t, g, "src", value.NewFloat(1))
	_, in := sinkNode(t, g, "dst", value.Float)
	in.SetValue(value.NewFloat(0))

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if e := Connect(out, in); e != nil {
				Disconnect(e)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			v, err := in.ValueAt(ctx, value.NewRat(int64(i), 7))
			if !assert.NoError(t, err) {
				continue
			}
			f := v.AsFloat()
			assert.True(t, f == 0 || f == 1, "resolved value must come from one side or the other, got %v", f)
		}
	}()

	wg.Wait()
}
