package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/compgraph/internal/value"
)

// Frame is a decoded slice of media: a pixel buffer for visual streams or
// an interleaved sample buffer for audio.
type Frame struct {
	Stream  int
	Width   int
	Height  int
	Pixels  []byte
	Samples []int
}

// Decoder is the contract a media backend implements. Probe must be cheap
// and side-effect free beyond filling the footage's stream list; Open
// prepares a decode session for Retrieve; TimestampFromTime converts a
// timeline position into the backend's native timestamp unit.
type Decoder interface {
	ID() string
	Probe(ctx context.Context, f *Footage) bool
	Open(f *Footage) error
	Retrieve(ctx context.Context, t value.Rat, length int64) (*Frame, error)
	Close() error
	TimestampFromTime(t value.Rat) int64
}

// candidates returns fresh decoder instances in probe order. Specialized
// decoders come before generic ones so that a container a specific backend
// understands is never claimed by a catch-all first.
func candidates() []Decoder {
	return []Decoder{
		newImageDecoder(),
		newWavDecoder(),
	}
}

// CreateFromID returns a fresh instance of the decoder with the given
// identifier, or nil if no such decoder exists.
func CreateFromID(id string) Decoder {
	for _, d := range candidates() {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// ProbeMedia runs the footage through the decoder candidates in order and
// records the outcome on the record. A footage with an empty filename or a
// missing file becomes Invalid without consulting any decoder. The first
// decoder to accept wins; its identifier is stored and the footage becomes
// Ready. If every candidate declines, the footage is Invalid.
//
// The record is cleared before probing, so ProbeMedia can be used to
// re-probe footage whose file changed on disk.
func ProbeMedia(ctx context.Context, logger *slog.Logger, f *Footage) error {
	if logger == nil {
		logger = slog.Default()
	}

	f.Clear()

	name := f.Filename()
	if name == "" {
		f.SetStatus(Invalid)
		return fmt.Errorf("footage has no filename")
	}

	info, err := os.Stat(name)
	if err != nil {
		f.SetStatus(Invalid)
		return fmt.Errorf("stat %q: %w", name, err)
	}
	f.SetTimestamp(info.ModTime())

	for _, d := range candidates() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.Probe(ctx, f) {
			f.SetDecoder(d.ID())
			f.SetStatus(Ready)
			logger.Debug("probed media", "filename", name, "decoder", d.ID(), "streams", f.StreamCount())
			return nil
		}
		// A declining decoder may have partially filled the stream
		// list before bailing out.
		f.Clear()
	}

	f.SetStatus(Invalid)
	logger.Warn("no decoder accepted media", "filename", name)
	return fmt.Errorf("no decoder accepted %q", name)
}
