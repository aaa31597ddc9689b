package media

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the probe state of a footage record.
type Status int

const (
	// Unprobed footage has not been passed through the decoders yet.
	Unprobed Status = iota
	// Unindexed footage has a decoder but still needs indexing before
	// frame-accurate retrieval.
	Unindexed
	// Ready footage probed successfully and can be decoded.
	Ready
	// Invalid footage was rejected by every decoder candidate.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Unprobed:
		return "unprobed"
	case Unindexed:
		return "unindexed"
	case Ready:
		return "ready"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// StreamType classifies one stream inside a media container.
type StreamType int

const (
	VideoStream StreamType = iota
	AudioStream
	ImageStream
	DataStream
)

// Stream is the metadata of a single stream in a probed file. Fields apply
// per type: dimensions for video and images, rate and channels for audio.
type Stream struct {
	Type       StreamType
	Index      int
	Width      int
	Height     int
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// Footage is a reference to an external media file: the filename, the
// file's last-modified timestamp, the probed stream list, the probe
// status, and the identifier of the decoder that accepted the file.
//
// Footage is safe for concurrent use; probing rewrites the record while
// evaluation threads may be reading it.
type Footage struct {
	id uuid.UUID

	mu        sync.RWMutex
	filename  string
	timestamp time.Time
	streams   []Stream
	status    Status
	decoder   string
}

// NewFootage creates an unprobed footage record for the given file.
func NewFootage(filename string) *Footage {
	return &Footage{id: uuid.New(), filename: filename}
}

// ID returns the footage's stable identifier, used by Footage-typed graph
// values to refer back to the record.
func (f *Footage) ID() uuid.UUID { return f.id }

// Filename returns the path of the referenced file.
func (f *Footage) Filename() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filename
}

// SetFilename relinks the footage to a new file. The streams are not
// re-probed automatically.
func (f *Footage) SetFilename(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filename = name
}

// Timestamp returns the file's last-modified time recorded at probe.
func (f *Footage) Timestamp() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.timestamp
}

// SetTimestamp records the file's last-modified time.
func (f *Footage) SetTimestamp(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timestamp = t
}

// Status returns the probe state.
func (f *Footage) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.status
}

// SetStatus sets the probe state. Only the probing orchestration should
// call this.
func (f *Footage) SetStatus(s Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = s
}

// Decoder returns the identifier of the decoder that accepted the file, or
// the empty string.
func (f *Footage) Decoder() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.decoder
}

// SetDecoder attaches the accepting decoder's identifier.
func (f *Footage) SetDecoder(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decoder = id
}

// AddStream appends a stream's metadata, usually from a decoder's Probe.
func (f *Footage) AddStream(s Stream) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.Index = len(f.streams)
	f.streams = append(f.streams, s)
}

// Streams returns the probed stream list in file order. The slice is a
// copy.
func (f *Footage) Streams() []Stream {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]Stream(nil), f.streams...)
}

// StreamCount returns the number of probed streams.
func (f *Footage) StreamCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.streams)
}

// Clear resets the record to a freshly created state, keeping the
// filename, so the file can be probed again after it changed on disk.
func (f *Footage) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streams = nil
	f.status = Unprobed
	f.decoder = ""
}
