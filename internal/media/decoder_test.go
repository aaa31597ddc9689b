package media

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/compgraph/internal/value"
)

// writePNG writes a small solid-color PNG and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.png")

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	fh, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(fh, img))
	require.NoError(t, fh.Close())
	return path
}

// writeWAV writes a short mono PCM file and returns its path.
func writeWAV(t *testing.T, sampleRate, samples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.wav")

	fh, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(fh, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, samples),
	}
	for i := range buf.Data {
		buf.Data[i] = i % 128
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	require.NoError(t, fh.Close())
	return path
}

func TestProbeMedia(t *testing.T) {
	ctx := context.Background()

	t.Run("empty filename is invalid", func(t *testing.T) {
		f := NewFootage("")
		err := ProbeMedia(ctx, nil, f)
		require.Error(t, err)
		assert.Equal(t, Invalid, f.Status())
	})

	t.Run("missing file is invalid", func(t *testing.T) {
		f := NewFootage(filepath.Join(t.TempDir(), "nope.png"))
		err := ProbeMedia(ctx, nil, f)
		require.Error(t, err)
		assert.Equal(t, Invalid, f.Status())
	})

	t.Run("png is accepted by the image decoder", func(t *testing.T) {
		f := NewFootage(writePNG(t, 32, 16))
		require.NoError(t, ProbeMedia(ctx, nil, f))

		assert.Equal(t, Ready, f.Status())
		assert.Equal(t, "image", f.Decoder())
		assert.False(t, f.Timestamp().IsZero())

		streams := f.Streams()
		require.Len(t, streams, 1)
		assert.Equal(t, ImageStream, streams[0].Type)
		assert.Equal(t, 32, streams[0].Width)
		assert.Equal(t, 16, streams[0].Height)
	})

	t.Run("wav is accepted by the wav decoder", func(t *testing.T) {
		f := NewFootage(writeWAV(t, 8000, 8000))
		require.NoError(t, ProbeMedia(ctx, nil, f))

		assert.Equal(t, Ready, f.Status())
		assert.Equal(t, "wav", f.Decoder())

		streams := f.Streams()
		require.Len(t, streams, 1)
		assert.Equal(t, AudioStream, streams[0].Type)
		assert.Equal(t, 8000, streams[0].SampleRate)
		assert.Equal(t, 1, streams[0].Channels)
	})

	t.Run("unrecognized file is invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("not media"), 0o644))

		f := NewFootage(path)
		err := ProbeMedia(ctx, nil, f)
		require.Error(t, err)
		assert.Equal(t, Invalid, f.Status())
		assert.Empty(t, f.Decoder())
		assert.Zero(t, f.StreamCount())
	})

	t.Run("re-probe clears the previous result first", func(t *testing.T) {
		f := NewFootage(writePNG(t, 4, 4))
		require.NoError(t, ProbeMedia(ctx, nil, f))
		require.NoError(t, ProbeMedia(ctx, nil, f))
		assert.Equal(t, 1, f.StreamCount())
	})
}

func TestCreateFromID(t *testing.T) {
	t.Run("known decoders", func(t *testing.T) {
		for _, id := range []string{"image", "wav"} {
			d := CreateFromID(id)
			require.NotNil(t, d, id)
			assert.Equal(t, id, d.ID())
		}
	})

	t.Run("unknown decoder", func(t *testing.T) {
		assert.Nil(t, CreateFromID("ffmpeg"))
	})
}

func TestImageDecoder(t *testing.T) {
	ctx := context.Background()
	f := NewFootage(writePNG(t, 8, 4))
	require.NoError(t, ProbeMedia(ctx, nil, f))

	d := CreateFromID(f.Decoder())
	require.NotNil(t, d)
	require.NoError(t, d.Open(f))
	defer d.Close()

	frame, err := d.Retrieve(ctx, value.NewRat(0, 1), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, frame.Width)
	assert.Equal(t, 4, frame.Height)
	require.Len(t, frame.Pixels, 8*4*4)
	assert.EqualValues(t, 200, frame.Pixels[0])
	assert.EqualValues(t, 100, frame.Pixels[1])
	assert.EqualValues(t, 50, frame.Pixels[2])
	assert.EqualValues(t, 255, frame.Pixels[3])

	assert.Zero(t, d.TimestampFromTime(value.NewRat(5, 1)))
}

func TestWavDecoder(t *testing.T) {
	ctx := context.Background()
	f := NewFootage(writeWAV(t, 1000, 1000))
	require.NoError(t, ProbeMedia(ctx, nil, f))

	d := CreateFromID(f.Decoder())
	require.NotNil(t, d)
	require.NoError(t, d.Open(f))
	defer d.Close()

	t.Run("timestamp conversion", func(t *testing.T) {
		assert.EqualValues(t, 500, d.TimestampFromTime(value.NewRat(1, 2)))
	})

	t.Run("retrieve mid-stream", func(t *testing.T) {
		frame, err := d.Retrieve(ctx, value.NewRat(1, 100), 4)
		require.NoError(t, err)
		assert.Equal(t, []int{10 % 128, 11 % 128, 12 % 128, 13 % 128}, frame.Samples)
	})

	t.Run("retrieve past the end pads with silence", func(t *testing.T) {
		frame, err := d.Retrieve(ctx, value.NewRat(2, 1), 3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0}, frame.Samples)
	})
}
