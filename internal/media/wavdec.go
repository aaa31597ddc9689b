package media

import (
	"context"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/vk/compgraph/internal/value"
)

// wavDecoder is the PCM audio backend built on RIFF/WAVE containers.
type wavDecoder struct {
	footage *Footage
	buf     *audio.IntBuffer
}

func newWavDecoder() *wavDecoder { return &wavDecoder{} }

func (d *wavDecoder) ID() string { return "wav" }

func (d *wavDecoder) Probe(ctx context.Context, f *Footage) bool {
	fh, err := os.Open(f.Filename())
	if err != nil {
		return false
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	if !dec.IsValidFile() {
		return false
	}

	dur, err := dec.Duration()
	if err != nil {
		return false
	}

	f.AddStream(Stream{
		Type:       AudioStream,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Duration:   dur,
	})
	return true
}

func (d *wavDecoder) Open(f *Footage) error {
	if d.footage != nil {
		return fmt.Errorf("decoder already open")
	}

	fh, err := os.Open(f.Filename())
	if err != nil {
		return err
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decode %q: %w", f.Filename(), err)
	}

	d.footage = f
	d.buf = buf
	return nil
}

// Retrieve returns length interleaved samples starting at the sample
// nearest to t, zero-padded past the end of the stream.
func (d *wavDecoder) Retrieve(ctx context.Context, t value.Rat, length int64) (*Frame, error) {
	if d.buf == nil {
		return nil, fmt.Errorf("decoder is not open")
	}

	channels := d.buf.Format.NumChannels
	start := d.TimestampFromTime(t) * int64(channels)
	want := length * int64(channels)

	samples := make([]int, want)
	for i := int64(0); i < want; i++ {
		if idx := start + i; idx >= 0 && idx < int64(len(d.buf.Data)) {
			samples[i] = d.buf.Data[idx]
		}
	}

	return &Frame{Samples: samples}, nil
}

func (d *wavDecoder) Close() error {
	d.footage = nil
	d.buf = nil
	return nil
}

// TimestampFromTime converts a timeline position into a sample offset.
func (d *wavDecoder) TimestampFromTime(t value.Rat) int64 {
	if d.buf == nil {
		return 0
	}
	return int64(t.Float64() * float64(d.buf.Format.SampleRate))
}
