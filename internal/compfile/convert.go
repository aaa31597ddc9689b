package compfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/compgraph/internal/value"
)

// toValue converts a cty value from a composition file into a graph value
// matching one of the input's accepted types. The accepted types are tried
// in declaration order, so an input accepting Int before Float keeps whole
// numbers integral.
func toValue(v cty.Value, accepts []value.DataType) (value.Value, error) {
	if v.IsNull() {
		return value.Nil, fmt.Errorf("value is null")
	}

	var firstErr error
	for _, t := range accepts {
		got, err := toTyped(v, t)
		if err == nil {
			return got, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("input accepts no convertible type")
	}
	return value.Nil, firstErr
}

func toTyped(v cty.Value, t value.DataType) (value.Value, error) {
	switch t {
	case value.Int:
		n, err := toNumber(v)
		if err != nil {
			return value.Nil, err
		}
		if n != float64(int64(n)) {
			return value.Nil, fmt.Errorf("%v is not a whole number", n)
		}
		return value.NewInt(int64(n)), nil

	case value.Float:
		n, err := toNumber(v)
		if err != nil {
			return value.Nil, err
		}
		return value.NewFloat(n), nil

	case value.Boolean:
		c, err := convert.Convert(v, cty.Bool)
		if err != nil {
			return value.Nil, err
		}
		return value.NewBool(c.True()), nil

	case value.String:
		s, err := toString(v)
		if err != nil {
			return value.Nil, err
		}
		return value.NewString(s), nil

	case value.Font:
		s, err := toString(v)
		if err != nil {
			return value.Nil, err
		}
		return value.NewFont(s), nil

	case value.File:
		s, err := toString(v)
		if err != nil {
			return value.Nil, err
		}
		return value.NewFile(s), nil

	case value.Color:
		return toColor(v)

	case value.Rational:
		s, err := toString(v)
		if err == nil {
			r, perr := value.ParseRat(s)
			if perr != nil {
				return value.Nil, perr
			}
			return value.NewRational(r), nil
		}
		n, err := toNumber(v)
		if err != nil {
			return value.Nil, err
		}
		return value.NewRational(value.RatFromFloat(n)), nil

	case value.Vec2:
		fs, err := toFloats(v, 2)
		if err != nil {
			return value.Nil, err
		}
		return value.NewVec2(value.V2{X: fs[0], Y: fs[1]}), nil

	case value.Vec3:
		fs, err := toFloats(v, 3)
		if err != nil {
			return value.Nil, err
		}
		return value.NewVec3(value.V3{X: fs[0], Y: fs[1], Z: fs[2]}), nil

	case value.Vec4:
		fs, err := toFloats(v, 4)
		if err != nil {
			return value.Nil, err
		}
		return value.NewVec4(value.V4{X: fs[0], Y: fs[1], Z: fs[2], W: fs[3]}), nil

	case value.Matrix:
		fs, err := toFloats(v, 16)
		if err != nil {
			return value.Nil, err
		}
		var m value.Mat4
		for i, f := range fs {
			m[i] = float32(f)
		}
		return value.NewMatrix(m), nil

	default:
		return value.Nil, fmt.Errorf("type %s cannot be written in a composition file", t)
	}
}

func toNumber(v cty.Value) (float64, error) {
	c, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, err
	}
	f, _ := c.AsBigFloat().Float64()
	return f, nil
}

func toString(v cty.Value) (string, error) {
	if v.Type() != cty.String {
		return "", fmt.Errorf("expected a string, got %s", v.Type().FriendlyName())
	}
	return v.AsString(), nil
}

// toFloats converts a tuple or list of exactly n numbers.
func toFloats(v cty.Value, n int) ([]float64, error) {
	t := v.Type()
	if !t.IsTupleType() && !t.IsListType() {
		return nil, fmt.Errorf("expected %d numbers, got %s", n, t.FriendlyName())
	}
	if v.LengthInt() != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, v.LengthInt())
	}

	fs := make([]float64, 0, n)
	for it := v.ElementIterator(); it.Next(); {
		_, el := it.Element()
		f, err := toNumber(el)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, nil
}

// toColor accepts either a "#rrggbb"/"#rrggbbaa" hex string or a tuple of
// 3 or 4 floats in [0, 1].
func toColor(v cty.Value) (value.Value, error) {
	if v.Type() == cty.String {
		c, err := parseHexColor(v.AsString())
		if err != nil {
			return value.Nil, err
		}
		return value.NewColor(c), nil
	}

	fs, err := toFloats(v, 4)
	if err != nil {
		var err3 error
		if fs, err3 = toFloats(v, 3); err3 != nil {
			return value.Nil, err
		}
		fs = append(fs, 1)
	}
	return value.NewColor(value.RGBA{R: fs[0], G: fs[1], B: fs[2], A: fs[3]}), nil
}

func parseHexColor(s string) (value.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return value.RGBA{}, fmt.Errorf("color %q is not #rrggbb or #rrggbbaa", s)
	}

	channel := func(i int) (float64, error) {
		n, err := strconv.ParseUint(s[i:i+2], 16, 8)
		return float64(n) / 255, err
	}

	r, err := channel(0)
	if err != nil {
		return value.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	g, err := channel(2)
	if err != nil {
		return value.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	b, err := channel(4)
	if err != nil {
		return value.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}

	a := 1.0
	if len(s) == 8 {
		if a, err = channel(6); err != nil {
			return value.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
	}

	return value.RGBA{R: r, G: g, B: b, A: a}, nil
}
