package media

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-probes footage whose backing file changes on disk, so that a
// record's stream list and status track the file instead of going stale.
type Watcher struct {
	logger  *slog.Logger
	library *Library
	fsw     *fsnotify.Watcher
}

// NewWatcher creates a watcher over the given library. Call Watch to add
// files and Run to start dispatching events.
func NewWatcher(logger *slog.Logger, library *Library) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		library: library,
		fsw:     fsw,
	}, nil
}

// Watch starts watching the given file for changes.
func (w *Watcher) Watch(filename string) error {
	return w.fsw.Add(filename)
}

// Run dispatches filesystem events until the context is cancelled or the
// watcher is closed. Writes and creations re-probe the matching record;
// removals invalidate it.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ctx, ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("media watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	f, ok := w.library.GetByFilename(ev.Name)
	if !ok {
		return
	}

	switch {
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		w.logger.Debug("media file changed, re-probing", "filename", ev.Name)
		if err := ProbeMedia(ctx, w.logger, f); err != nil {
			w.logger.Warn("re-probe failed", "filename", ev.Name, "error", err)
		}
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		w.logger.Debug("media file removed", "filename", ev.Name)
		f.Clear()
		f.SetStatus(Invalid)
	}
}

// Close stops the watcher. Run returns once the event channel drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
