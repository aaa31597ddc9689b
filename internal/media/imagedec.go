package media

import (
	"context"
	"fmt"
	"image"
	"os"

	// Register the still-image formats the generic decoder understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/vk/compgraph/internal/value"
)

// imageDecoder is the still-image backend. It recognizes its formats from
// their headers cheaply, so it probes before the generic audio backend.
type imageDecoder struct {
	footage *Footage
	img     image.Image
}

func newImageDecoder() *imageDecoder { return &imageDecoder{} }

func (d *imageDecoder) ID() string { return "image" }

func (d *imageDecoder) Probe(ctx context.Context, f *Footage) bool {
	fh, err := os.Open(f.Filename())
	if err != nil {
		return false
	}
	defer fh.Close()

	cfg, _, err := image.DecodeConfig(fh)
	if err != nil {
		return false
	}

	f.AddStream(Stream{
		Type:   ImageStream,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	return true
}

func (d *imageDecoder) Open(f *Footage) error {
	if d.footage != nil {
		return fmt.Errorf("decoder already open")
	}

	fh, err := os.Open(f.Filename())
	if err != nil {
		return err
	}
	defer fh.Close()

	img, _, err := image.Decode(fh)
	if err != nil {
		return fmt.Errorf("decode %q: %w", f.Filename(), err)
	}

	d.footage = f
	d.img = img
	return nil
}

// Retrieve returns the image as RGBA pixels. Still images have a single
// frame, so the time and length are ignored.
func (d *imageDecoder) Retrieve(ctx context.Context, t value.Rat, length int64) (*Frame, error) {
	if d.img == nil {
		return nil, fmt.Errorf("decoder is not open")
	}

	bounds := d.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 0, w*h*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := d.img.At(x, y).RGBA()
			pixels = append(pixels, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}

	return &Frame{Width: w, Height: h, Pixels: pixels}, nil
}

func (d *imageDecoder) Close() error {
	d.footage = nil
	d.img = nil
	return nil
}

// TimestampFromTime is trivial for stills: there is only frame zero.
func (d *imageDecoder) TimestampFromTime(t value.Rat) int64 { return 0 }
