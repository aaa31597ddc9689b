package app

import (
	"context"
	"fmt"

	"github.com/vk/compgraph/internal/address"
	"github.com/vk/compgraph/internal/ctxlog"
	"github.com/vk/compgraph/internal/fsutil"
	"github.com/vk/compgraph/internal/graph"
	"github.com/vk/compgraph/internal/media"
	"github.com/vk/compgraph/internal/value"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindFilesByExtension(cfg.CompPath, ".hcl")
	if err != nil {
		return fmt.Errorf("failed to discover composition files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no .hcl composition files under %q", cfg.CompPath)
	}
	a.logger.Debug("Discovered composition files.", "count", len(files))

	g, diags := a.loader.Load(files...)
	if diags.HasErrors() {
		return fmt.Errorf("failed to load composition: %s", diags.Error())
	}

	if err := g.DetectCycles(); err != nil {
		return fmt.Errorf("invalid composition: %w", err)
	}
	a.logger.Info("Composition loaded.", "nodes", len(g.Nodes()), "edges", g.EdgeCount())

	if cfg.Param != "" {
		if err := a.evaluate(ctx, g, cfg); err != nil {
			return err
		}
	} else {
		a.summarize(g)
	}

	if cfg.Watch {
		return a.watch(ctx)
	}
	return nil
}

// evaluate resolves one addressed parameter at the configured time and
// prints the result.
func (a *App) evaluate(ctx context.Context, g *graph.Graph, cfg *Config) error {
	addr, err := address.Parse(cfg.Param)
	if err != nil {
		return fmt.Errorf("invalid param address: %w", err)
	}
	at, err := value.ParseRat(cfg.At)
	if err != nil {
		return fmt.Errorf("invalid evaluation time: %w", err)
	}

	n := g.Node(addr.Node)
	if n == nil {
		return fmt.Errorf("composition has no node %q", addr.Node)
	}

	var v value.Value
	switch {
	case n.Output(addr.Param) != nil:
		v, err = n.Output(addr.Param).ValueAt(ctx, at)
	case n.Input(addr.Param) != nil:
		v, err = n.Input(addr.Param).ValueAt(ctx, at)
	default:
		return fmt.Errorf("node %q has no parameter %q", addr.Node, addr.Param)
	}
	if err != nil {
		return fmt.Errorf("evaluate %s at %s: %w", cfg.Param, cfg.At, err)
	}

	fmt.Fprintf(a.outW, "%s @ %s = %s\n", cfg.Param, at, v)
	return nil
}

// summarize prints one line per node with its parameters.
func (a *App) summarize(g *graph.Graph) {
	for _, n := range g.Nodes() {
		fmt.Fprintf(a.outW, "%s (%s)\n", n.Name(), n.Kind())
		for _, p := range n.Params() {
			direction := "out"
			if p.IsInput() {
				direction = "in"
			}
			fmt.Fprintf(a.outW, "  %-3s %s: %s\n", direction, p.ID(), p.DataType())
		}
	}
}

// watch re-probes footage whose files change on disk until the context is
// cancelled.
func (a *App) watch(ctx context.Context) error {
	watcher, err := media.NewWatcher(a.logger, a.library)
	if err != nil {
		return fmt.Errorf("failed to start media watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	a.library.Range(func(f *media.Footage) bool {
		if err := watcher.Watch(f.Filename()); err != nil {
			a.logger.Warn("Cannot watch footage file.", "filename", f.Filename(), "error", err)
		} else {
			watched++
		}
		return true
	})

	a.logger.Info("Watching footage files.", "count", watched)
	watcher.Run(ctx)
	return ctx.Err()
}
