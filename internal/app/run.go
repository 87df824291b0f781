package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridsweep/internal/config"
	"github.com/specialistvlad/gridsweep/internal/ctxlog"
	"github.com/specialistvlad/gridsweep/internal/presets"
	"github.com/specialistvlad/gridsweep/internal/sweep"
)

// Run executes the main application logic: it loads every sweep, builds the
// configured sinks and dispatches each selected sweep in turn. It returns an
// error if loading fails, a sweep is aborted, or any job failed.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := a.load(ctx)
	if err != nil {
		return err
	}

	selected, err := m.Select(a.config.Only...)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		a.logger.Warn("No sweeps selected, nothing to dispatch.")
		return nil
	}

	sink, closeSinks, err := a.buildSink(ctx, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSinks(); err != nil {
			a.logger.Error("Failed to close sinks.", "error", err)
		}
	}()

	opts := sweep.Options{
		OnSinkError: sweep.SinkErrorPolicy(a.config.OnSinkError),
		Limit:       a.config.Limit,
	}

	var failed []string
	for _, s := range selected {
		report, err := sweep.Run(ctx, s, sink, opts)
		if err != nil {
			return fmt.Errorf("sweep %q: %w", s.Name, err)
		}
		if report.Failed() {
			failed = append(failed, fmt.Sprintf("sweep %q: %d template errors, %d sink errors", s.Name, report.TemplateErrors, report.SinkErrors))
		}
	}

	a.logger.Debug("App.Run method finished.")
	if len(failed) > 0 {
		return fmt.Errorf("some jobs failed:\n- %s", strings.Join(failed, "\n- "))
	}
	return nil
}

// load merges the sweeps from the configured paths with the selected presets.
func (a *App) load(ctx context.Context) (*config.Model, error) {
	m := &config.Model{}

	if len(a.config.SweepPaths) > 0 {
		loaded, err := a.loader.Load(ctx, a.config.SweepPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load sweeps: %w", err)
		}
		if err := m.Add(loaded.Sweeps...); err != nil {
			return nil, err
		}
	}

	if len(a.config.Presets) > 0 {
		p, err := presets.Load(ctx, a.config.Presets...)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
		if err := m.Add(p.Sweeps...); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Sweeps loaded.", "count", len(m.Sweeps), "names", m.Names())
	return m, nil
}
