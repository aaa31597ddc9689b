package value

import "fmt"

// DataType identifies the kind of value a connection point carries. The set
// is closed; a DataType is an immutable tag with no payload of its own.
type DataType int

const (
	None DataType = iota
	Int
	Float
	Color
	String
	Boolean
	Font
	File
	Texture
	Matrix
	Block
	Footage
	Track
	Rational
	Vec2
	Vec3
	Vec4
	Any
)

var typeNames = map[DataType]string{
	None:     "none",
	Int:      "int",
	Float:    "float",
	Color:    "color",
	String:   "string",
	Boolean:  "bool",
	Font:     "font",
	File:     "file",
	Texture:  "texture",
	Matrix:   "matrix",
	Block:    "block",
	Footage:  "footage",
	Track:    "track",
	Rational: "rational",
	Vec2:     "vec2",
	Vec3:     "vec3",
	Vec4:     "vec4",
	Any:      "any",
}

var typeLabels = map[DataType]string{
	None:     "None",
	Int:      "Integer",
	Float:    "Float",
	Color:    "Color",
	String:   "String",
	Boolean:  "Boolean",
	Font:     "Font",
	File:     "File",
	Texture:  "Texture",
	Matrix:   "Matrix",
	Block:    "Block",
	Footage:  "Footage",
	Track:    "Track",
	Rational: "Rational",
	Vec2:     "Vector2D",
	Vec3:     "Vector3D",
	Vec4:     "Vector4D",
	Any:      "Any",
}

// String returns the stable machine-readable name of the type, as used in
// composition files.
func (t DataType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// Label returns the human-readable display name for the type. Parameters
// without an explicit display name fall back to this.
func (t DataType) Label() string {
	if s, ok := typeLabels[t]; ok {
		return s
	}
	return t.String()
}

// ParseDataType resolves a machine-readable type name back to its tag.
func ParseDataType(name string) (DataType, error) {
	for t, s := range typeNames {
		if s == name {
			return t, nil
		}
	}
	return None, fmt.Errorf("unknown data type %q", name)
}
