package value

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Fixed-width binary layouts for each persisted tag, little-endian:
//
//	Int       8 bytes  int64
//	Float     8 bytes  float64
//	Boolean   1 byte
//	Color     32 bytes 4 x float64 (R, G, B, A)
//	Matrix    64 bytes 16 x float32, column-major
//	Rational  16 bytes 2 x int64 (num, den)
//	Vec2/3/4  16/24/32 bytes, float64 components
//	Footage   16 bytes raw UUID
//
// String, Font and File persist as their raw byte content. None, Texture,
// Block, Track and Any have no stable persisted form and encode to an empty
// sequence.

// Encode serializes a value of the given tag for storage and diffing. The
// caller is trusted to supply a value already matching the declared type;
// no runtime validation is performed.
func Encode(t DataType, v Value) []byte {
	switch t {
	case Int:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, uint64(v.i))
		return b
	case Float:
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(v.f))
		return b
	case Boolean:
		if v.b {
			return []byte{1}
		}
		return []byte{0}
	case String, Font, File:
		return []byte(v.s)
	case Color:
		b := make([]byte, 32)
		putFloats64(b, v.col.R, v.col.G, v.col.B, v.col.A)
		return b
	case Matrix:
		b := make([]byte, 64)
		for i, f := range v.mat {
			binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
		}
		return b
	case Rational:
		b := make([]byte, 16)
		binary.LittleEndian.PutUint64(b, uint64(v.rat.Num))
		binary.LittleEndian.PutUint64(b[8:], uint64(v.rat.Den))
		return b
	case Vec2:
		b := make([]byte, 16)
		putFloats64(b, v.v2.X, v.v2.Y)
		return b
	case Vec3:
		b := make([]byte, 24)
		putFloats64(b, v.v3.X, v.v3.Y, v.v3.Z)
		return b
	case Vec4:
		b := make([]byte, 32)
		putFloats64(b, v.v4.X, v.v4.Y, v.v4.Z, v.v4.W)
		return b
	case Footage:
		id := v.fid
		return id[:]
	}

	// None, Texture, Block, Track, Any: no persistent form.
	return nil
}

// Decode reconstructs a value of the given tag from its persisted bytes.
// Tags without a persisted form decode to Nil. A length mismatch for a
// fixed-width tag is an error.
func Decode(t DataType, data []byte) (Value, error) {
	switch t {
	case Int:
		if err := wantLen(t, data, 8); err != nil {
			return Nil, err
		}
		return NewInt(int64(binary.LittleEndian.Uint64(data))), nil
	case Float:
		if err := wantLen(t, data, 8); err != nil {
			return Nil, err
		}
		return NewFloat(math.Float64frombits(binary.LittleEndian.Uint64(data))), nil
	case Boolean:
		if err := wantLen(t, data, 1); err != nil {
			return Nil, err
		}
		return NewBool(data[0] != 0), nil
	case String:
		return NewString(string(data)), nil
	case Font:
		return NewFont(string(data)), nil
	case File:
		return NewFile(string(data)), nil
	case Color:
		if err := wantLen(t, data, 32); err != nil {
			return Nil, err
		}
		f := getFloats64(data, 4)
		return NewColor(RGBA{f[0], f[1], f[2], f[3]}), nil
	case Matrix:
		if err := wantLen(t, data, 64); err != nil {
			return Nil, err
		}
		var m Mat4
		for i := range m {
			m[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return NewMatrix(m), nil
	case Rational:
		if err := wantLen(t, data, 16); err != nil {
			return Nil, err
		}
		num := int64(binary.LittleEndian.Uint64(data))
		den := int64(binary.LittleEndian.Uint64(data[8:]))
		return NewRational(Rat{Num: num, Den: den}), nil
	case Vec2:
		if err := wantLen(t, data, 16); err != nil {
			return Nil, err
		}
		f := getFloats64(data, 2)
		return NewVec2(V2{f[0], f[1]}), nil
	case Vec3:
		if err := wantLen(t, data, 24); err != nil {
			return Nil, err
		}
		f := getFloats64(data, 3)
		return NewVec3(V3{f[0], f[1], f[2]}), nil
	case Vec4:
		if err := wantLen(t, data, 32); err != nil {
			return Nil, err
		}
		f := getFloats64(data, 4)
		return NewVec4(V4{f[0], f[1], f[2], f[3]}), nil
	case Footage:
		if err := wantLen(t, data, 16); err != nil {
			return Nil, err
		}
		var id uuid.UUID
		copy(id[:], data)
		return NewFootageRef(id), nil
	}

	return Nil, nil
}

func wantLen(t DataType, data []byte, n int) error {
	if len(data) != n {
		return fmt.Errorf("decode %s: want %d bytes, got %d", t, n, len(data))
	}
	return nil
}

func putFloats64(b []byte, fs ...float64) {
	for i, f := range fs {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(f))
	}
}

func getFloats64(b []byte, n int) []float64 {
	fs := make([]float64, n)
	for i := range fs {
		fs[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return fs
}
