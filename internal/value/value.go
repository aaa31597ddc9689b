package value

import (
	"fmt"

	"github.com/google/uuid"
)

// RGBA is a color with float components. No range is enforced so that
// scene-linear values above 1.0 survive the graph untouched.
type RGBA struct {
	R, G, B, A float64
}

// V2, V3 and V4 are small float vectors.
type V2 struct{ X, Y float64 }
type V3 struct{ X, Y, Z float64 }
type V4 struct{ X, Y, Z, W float64 }

// Mat4 is a 4x4 transformation matrix in column-major order.
type Mat4 [16]float32

// Identity returns the identity transformation.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Value is a closed tagged union over DataType. Exactly one payload field is
// meaningful for any given tag; accessors panic when called for the wrong
// tag so that a mismatch surfaces at the call site instead of silently
// producing a zero.
type Value struct {
	typ DataType

	i   int64
	f   float64
	b   bool
	s   string
	col RGBA
	mat Mat4
	rat Rat
	v2  V2
	v3  V3
	v4  V4
	fid uuid.UUID
	ref any
	agg []Value
}

// Nil is the None-tagged value; it is also the zero Value.
var Nil = Value{}

// Constructors, one per tag.

func NewInt(v int64) Value        { return Value{typ: Int, i: v} }
func NewFloat(v float64) Value    { return Value{typ: Float, f: v} }
func NewBool(v bool) Value        { return Value{typ: Boolean, b: v} }
func NewString(v string) Value    { return Value{typ: String, s: v} }
func NewFont(family string) Value { return Value{typ: Font, s: family} }
func NewFile(path string) Value   { return Value{typ: File, s: path} }
func NewColor(c RGBA) Value       { return Value{typ: Color, col: c} }
func NewMatrix(m Mat4) Value      { return Value{typ: Matrix, mat: m} }
func NewRational(r Rat) Value     { return Value{typ: Rational, rat: r} }
func NewVec2(v V2) Value          { return Value{typ: Vec2, v2: v} }
func NewVec3(v V3) Value          { return Value{typ: Vec3, v3: v} }
func NewVec4(v V4) Value          { return Value{typ: Vec4, v4: v} }

// NewFootageRef wraps the stable identifier of a probed media record.
func NewFootageRef(id uuid.UUID) Value { return Value{typ: Footage, fid: id} }

// NewTexture and NewBlock wrap opaque references produced and consumed by
// collaborators outside the graph core. They have no persisted form.
func NewTexture(handle any) Value { return Value{typ: Texture, ref: handle} }
func NewBlock(ref any) Value      { return Value{typ: Block, ref: ref} }

// NewTrack aggregates the ordered values of a multi-connection input.
func NewTrack(vs ...Value) Value {
	return Value{typ: Track, agg: append([]Value(nil), vs...)}
}

// Type returns the tag of the value.
func (v Value) Type() DataType { return v.typ }

// IsNil reports whether the value carries the None tag.
func (v Value) IsNil() bool { return v.typ == None }

func (v Value) expect(t DataType) {
	if v.typ != t {
		panic(fmt.Sprintf("value: %s accessor called on %s value", t, v.typ))
	}
}

func (v Value) AsInt() int64 {
	v.expect(Int)
	return v.i
}

func (v Value) AsFloat() float64 {
	v.expect(Float)
	return v.f
}

// Float64 widens Int values into floats; all other tags must be Float.
// This mirrors the one permitted lossless conversion in the compatibility
// rules.
func (v Value) Float64() float64 {
	if v.typ == Int {
		return float64(v.i)
	}
	v.expect(Float)
	return v.f
}

func (v Value) AsBool() bool {
	v.expect(Boolean)
	return v.b
}

func (v Value) AsString() string {
	if v.typ != String && v.typ != Font && v.typ != File {
		panic(fmt.Sprintf("value: string accessor called on %s value", v.typ))
	}
	return v.s
}

func (v Value) AsColor() RGBA {
	v.expect(Color)
	return v.col
}

func (v Value) AsMatrix() Mat4 {
	v.expect(Matrix)
	return v.mat
}

func (v Value) AsRat() Rat {
	v.expect(Rational)
	return v.rat
}

func (v Value) AsVec2() V2 {
	v.expect(Vec2)
	return v.v2
}

func (v Value) AsVec3() V3 {
	v.expect(Vec3)
	return v.v3
}

func (v Value) AsVec4() V4 {
	v.expect(Vec4)
	return v.v4
}

func (v Value) AsFootageRef() uuid.UUID {
	v.expect(Footage)
	return v.fid
}

func (v Value) AsRef() any {
	if v.typ != Texture && v.typ != Block {
		panic(fmt.Sprintf("value: reference accessor called on %s value", v.typ))
	}
	return v.ref
}

// AsTrack returns the ordered aggregate held by a Track value. The slice is
// shared; callers must not mutate it.
func (v Value) AsTrack() []Value {
	v.expect(Track)
	return v.agg
}

// Equal reports payload equality for values of the same tag. Values of
// different tags are never equal.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case None, Any:
		return true
	case Int:
		return v.i == other.i
	case Float:
		return v.f == other.f
	case Boolean:
		return v.b == other.b
	case String, Font, File:
		return v.s == other.s
	case Color:
		return v.col == other.col
	case Matrix:
		return v.mat == other.mat
	case Rational:
		return v.rat.Equal(other.rat)
	case Vec2:
		return v.v2 == other.v2
	case Vec3:
		return v.v3 == other.v3
	case Vec4:
		return v.v4 == other.v4
	case Footage:
		return v.fid == other.fid
	case Texture, Block:
		return v.ref == other.ref
	case Track:
		if len(v.agg) != len(other.agg) {
			return false
		}
		for i := range v.agg {
			if !v.agg[i].Equal(other.agg[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	switch v.typ {
	case None:
		return "<none>"
	case Int:
		return fmt.Sprintf("%d", v.i)
	case Float:
		return fmt.Sprintf("%g", v.f)
	case Boolean:
		return fmt.Sprintf("%t", v.b)
	case String, Font, File:
		return v.s
	case Color:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.col.R, v.col.G, v.col.B, v.col.A)
	case Rational:
		return v.rat.String()
	case Vec2:
		return fmt.Sprintf("(%g, %g)", v.v2.X, v.v2.Y)
	case Vec3:
		return fmt.Sprintf("(%g, %g, %g)", v.v3.X, v.v3.Y, v.v3.Z)
	case Vec4:
		return fmt.Sprintf("(%g, %g, %g, %g)", v.v4.X, v.v4.Y, v.v4.Z, v.v4.W)
	case Footage:
		return fmt.Sprintf("footage:%s", v.fid)
	case Track:
		return fmt.Sprintf("track(%d)", len(v.agg))
	default:
		return fmt.Sprintf("<%s>", v.typ)
	}
}
