package graph

import (
	"context"

	"github.com/vk/compgraph/internal/value"
)

// ValueAt resolves the input's value at time t.
//
// A connected single-connection input returns the connected output's value,
// computed by its owning node. A multi-connection input returns a
// Track-tagged ordered aggregate of every connected output's value.
// Unconnected inputs fall back to authored data: the static value when
// keyframing is disabled, otherwise the timeline interpolated at t.
//
// When value caching is enabled and t equals the last resolved time with no
// intervening edge or value mutation, the memoized value is returned
// without recomputation.
func (in *Input) ValueAt(ctx context.Context, t value.Rat) (value.Value, error) {
	in.mu.Lock()
	if in.cacheEnabled && !in.cachedTime.Negative() && in.cachedTime.Equal(t) {
		v := in.cachedValue
		in.mu.Unlock()
		return v, nil
	}
	gen := in.cacheGen
	in.mu.Unlock()

	v, err := in.resolve(ctx, t)
	if err != nil {
		return value.Nil, err
	}

	// Store only if no invalidation raced the resolution; a result computed
	// against a topology that has since changed must not become the
	// memoized value.
	in.mu.Lock()
	if in.cacheEnabled && in.cacheGen == gen {
		in.cachedTime = t
		in.cachedValue = v
	}
	in.mu.Unlock()
	return v, nil
}

func (in *Input) resolve(ctx context.Context, t value.Rat) (value.Value, error) {
	if edges := in.Edges(); len(edges) > 0 {
		if in.multi {
			vs := make([]value.Value, 0, len(edges))
			for _, e := range edges {
				v, err := e.Output().ValueAt(ctx, t)
				if err != nil {
					return value.Nil, err
				}
				vs = append(vs, in.widen(v))
			}
			return value.NewTrack(vs...), nil
		}

		v, err := edges[0].Output().ValueAt(ctx, t)
		if err != nil {
			return value.Nil, err
		}
		return in.widen(v), nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if !in.keyframing || in.tl.Len() == 0 {
		return in.static, nil
	}
	return in.tl.At(t), nil
}

// widen converts Int values into Float when the input accepts floats but
// not ints, completing the one lossless conversion the compatibility rules
// allow at connection time.
func (in *Input) widen(v value.Value) value.Value {
	if v.Type() != value.Int {
		return v
	}
	for _, t := range in.accepts {
		if t == value.Int || t == value.Any {
			return v
		}
	}
	for _, t := range in.accepts {
		if t == value.Float {
			return value.NewFloat(float64(v.AsInt()))
		}
	}
	return v
}
