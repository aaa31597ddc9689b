package timeline

import (
	"sort"

	"github.com/vk/compgraph/internal/value"
)

// Timeline is an ordered-by-time sequence of keyframes with at most one
// keyframe per exact time. The zero value is an empty timeline ready for
// use. Timeline is not internally synchronized; the owning input serializes
// access to it.
type Timeline struct {
	keys []Keyframe
}

// Len returns the number of keyframes.
func (tl *Timeline) Len() int {
	return len(tl.keys)
}

// Keyframes returns the keyframes in time order. The slice is a copy.
func (tl *Timeline) Keyframes() []Keyframe {
	return append([]Keyframe(nil), tl.keys...)
}

// Set inserts a keyframe, replacing any existing keyframe at the exact same
// time.
func (tl *Timeline) Set(k Keyframe) {
	i := tl.search(k.Time)
	if i < len(tl.keys) && tl.keys[i].Time.Equal(k.Time) {
		tl.keys[i] = k
		return
	}
	tl.keys = append(tl.keys, Keyframe{})
	copy(tl.keys[i+1:], tl.keys[i:])
	tl.keys[i] = k
}

// Remove deletes the keyframe at the exact time, if one exists. Removing a
// time with no keyframe is a no-op.
func (tl *Timeline) Remove(t value.Rat) bool {
	i := tl.search(t)
	if i >= len(tl.keys) || !tl.keys[i].Time.Equal(t) {
		return false
	}
	tl.keys = append(tl.keys[:i], tl.keys[i+1:]...)
	return true
}

// At evaluates the timeline at time t.
//
// An exact keyframe hit returns that keyframe's value as-is. Times before
// the first keyframe or after the last clamp to the boundary value; there
// is no extrapolation. Between two keyframes the earlier keyframe's
// interpolation mode decides how the values blend. An empty timeline
// evaluates to the nil value.
func (tl *Timeline) At(t value.Rat) value.Value {
	if len(tl.keys) == 0 {
		return value.Nil
	}

	i := tl.search(t)
	if i < len(tl.keys) && tl.keys[i].Time.Equal(t) {
		return tl.keys[i].Value
	}
	if i == 0 {
		return tl.keys[0].Value
	}
	if i == len(tl.keys) {
		return tl.keys[len(tl.keys)-1].Value
	}

	prev, next := tl.keys[i-1], tl.keys[i]
	if prev.Interp == Hold {
		return prev.Value
	}

	span := next.Time.Float64() - prev.Time.Float64()
	if span <= 0 {
		return prev.Value
	}
	frac := (t.Float64() - prev.Time.Float64()) / span
	if prev.Interp == Smooth {
		frac = frac * frac * (3 - 2*frac)
	}
	return lerp(prev.Value, next.Value, frac)
}

// search returns the index of the first keyframe at or after t.
func (tl *Timeline) search(t value.Rat) int {
	return sort.Search(len(tl.keys), func(i int) bool {
		return tl.keys[i].Time.Cmp(t) >= 0
	})
}

// lerp blends two values of the same tag. Tags with no meaningful blend
// (strings, booleans, references) hold the earlier value.
func lerp(a, b value.Value, frac float64) value.Value {
	if a.Type() != b.Type() {
		return a
	}

	mix := func(x, y float64) float64 { return x + (y-x)*frac }

	switch a.Type() {
	case value.Int:
		f := mix(float64(a.AsInt()), float64(b.AsInt()))
		return value.NewInt(int64(f + copysignHalf(f)))
	case value.Float:
		return value.NewFloat(mix(a.AsFloat(), b.AsFloat()))
	case value.Color:
		ca, cb := a.AsColor(), b.AsColor()
		return value.NewColor(value.RGBA{
			R: mix(ca.R, cb.R),
			G: mix(ca.G, cb.G),
			B: mix(ca.B, cb.B),
			A: mix(ca.A, cb.A),
		})
	case value.Vec2:
		va, vb := a.AsVec2(), b.AsVec2()
		return value.NewVec2(value.V2{X: mix(va.X, vb.X), Y: mix(va.Y, vb.Y)})
	case value.Vec3:
		va, vb := a.AsVec3(), b.AsVec3()
		return value.NewVec3(value.V3{X: mix(va.X, vb.X), Y: mix(va.Y, vb.Y), Z: mix(va.Z, vb.Z)})
	case value.Vec4:
		va, vb := a.AsVec4(), b.AsVec4()
		return value.NewVec4(value.V4{X: mix(va.X, vb.X), Y: mix(va.Y, vb.Y), Z: mix(va.Z, vb.Z), W: mix(va.W, vb.W)})
	default:
		return a
	}
}

func copysignHalf(f float64) float64 {
	if f < 0 {
		return -0.5
	}
	return 0.5
}
