package nodedef

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePNGFixture writes a tiny PNG and returns its path.
func writePNGFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.png")

	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	require.NoError(t, fh.Close())
	return path
}
