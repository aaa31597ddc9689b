package app

import (
	"io"
	"log/slog"

	"github.com/vk/compgraph/internal/compfile"
	"github.com/vk/compgraph/internal/media"
	"github.com/vk/compgraph/internal/nodedef"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *nodedef.Registry
	library  *media.Library
	loader   *compfile.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry,
// and footage library.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	library := media.NewLibrary(logger)
	registry := nodedef.New()
	nodedef.RegisterBuiltins(registry, library)
	logger.Debug("Node definitions registered.", "kinds", registry.Kinds())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry,
		library:  library,
		loader:   compfile.NewLoader(logger, registry),
	}
}

// Library exposes the app's footage library, mainly for tests.
func (a *App) Library() *media.Library { return a.library }
