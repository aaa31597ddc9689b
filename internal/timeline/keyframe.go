package timeline

import (
	"fmt"

	"github.com/vk/compgraph/internal/value"
)

// Interpolation selects how the span between a keyframe and its successor
// is evaluated.
type Interpolation int

const (
	// Linear blends the two bracketing values proportionally.
	Linear Interpolation = iota
	// Hold keeps the earlier keyframe's value for the whole span.
	Hold
	// Smooth applies hermite smoothstep easing across the span.
	Smooth
)

func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Hold:
		return "hold"
	case Smooth:
		return "smooth"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation resolves the names used in composition files.
func ParseInterpolation(name string) (Interpolation, error) {
	switch name {
	case "linear":
		return Linear, nil
	case "hold":
		return Hold, nil
	case "smooth":
		return Smooth, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation %q", name)
	}
}

// Keyframe is a single (time, value) sample. Interp governs the span
// between this keyframe and the next one; the last keyframe's mode is
// irrelevant because times past it clamp.
type Keyframe struct {
	Time   value.Rat
	Value  value.Value
	Interp Interpolation
}
