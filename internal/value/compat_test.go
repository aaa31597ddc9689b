package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allTypes = []DataType{
	None, Int, Float, Color, String, Boolean, Font, File, Texture,
	Matrix, Block, Footage, Track, Rational, Vec2, Vec3, Vec4, Any,
}

func TestCompatible(t *testing.T) {
	t.Run("pairwise rules hold for every combination", func(t *testing.T) {
		for _, out := range allTypes {
			for _, in := range allTypes {
				want := out == in || in == Any || (out == Int && in == Float)
				if in == None {
					want = false
				}
				assert.Equal(t, want, Compatible(out, in), "output=%s input=%s", out, in)
			}
		}
	})

	t.Run("narrowing float into int is rejected", func(t *testing.T) {
		assert.False(t, Compatible(Float, Int))
	})

	t.Run("none input never accepts, even none output", func(t *testing.T) {
		assert.False(t, Compatible(None, None))
	})
}

func TestCompatibleAny(t *testing.T) {
	t.Run("matches when at least one member accepts", func(t *testing.T) {
		assert.True(t, CompatibleAny(Float, []DataType{Int, Float}))
		assert.True(t, CompatibleAny(Int, []DataType{Float}))
	})

	t.Run("rejects when no member accepts", func(t *testing.T) {
		assert.False(t, CompatibleAny(String, []DataType{Int, Float}))
		assert.False(t, CompatibleAny(Float, nil))
	})
}
