package media

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Library is the project's footage index. It maps both footage IDs and
// filenames to records using sync.Map for fine-grained concurrent access:
// evaluation threads resolve Footage values by ID while the watcher and
// the loader add and re-probe records.
type Library struct {
	logger *slog.Logger

	byID   sync.Map // Key: uuid.UUID, Value: *Footage
	byName sync.Map // Key: filename string, Value: *Footage
}

// NewLibrary creates an empty footage library.
func NewLibrary(logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{logger: logger}
}

// Add probes the given file and indexes the resulting record. If the file
// is already indexed, the existing record is re-probed and returned
// instead of creating a duplicate. The record is returned even when
// probing fails; its status tells the caller what happened.
func (l *Library) Add(ctx context.Context, filename string) (*Footage, error) {
	if existing, ok := l.byName.Load(filename); ok {
		f := existing.(*Footage)
		err := ProbeMedia(ctx, l.logger, f)
		return f, err
	}

	f := NewFootage(filename)
	err := ProbeMedia(ctx, l.logger, f)

	l.byID.Store(f.ID(), f)
	l.byName.Store(filename, f)
	l.logger.Debug("added footage", "filename", filename, "id", f.ID(), "status", f.Status().String())
	return f, err
}

// Get retrieves a footage record by its ID.
func (l *Library) Get(id uuid.UUID) (*Footage, bool) {
	v, ok := l.byID.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Footage), true
}

// GetByFilename retrieves a footage record by its filename.
func (l *Library) GetByFilename(filename string) (*Footage, bool) {
	v, ok := l.byName.Load(filename)
	if !ok {
		return nil, false
	}
	return v.(*Footage), true
}

// Remove drops a record from both indexes.
func (l *Library) Remove(id uuid.UUID) {
	v, ok := l.byID.LoadAndDelete(id)
	if !ok {
		return
	}
	l.byName.Delete(v.(*Footage).Filename())
}

// Len returns the number of indexed records.
func (l *Library) Len() int {
	n := 0
	l.byID.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Range calls fn for each record until fn returns false.
func (l *Library) Range(fn func(*Footage) bool) {
	l.byID.Range(func(_, v any) bool {
		return fn(v.(*Footage))
	})
}
