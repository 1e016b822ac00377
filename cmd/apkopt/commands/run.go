package commands

import (
	"context"
	"log/slog"
	"os"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/apkopt/internal/config"
	"git.home.luguber.info/inful/apkopt/internal/errors"
	"git.home.luguber.info/inful/apkopt/internal/launcher"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
	"git.home.luguber.info/inful/apkopt/internal/metrics"
	"git.home.luguber.info/inful/apkopt/internal/trace"
	"git.home.luguber.info/inful/apkopt/internal/workspace"
)

// Execute runs the launcher and returns the process exit code. Workspace
// cleanup and the metrics textfile are deferred here, so they happen on
// every return path.
func (c *CLI) Execute(ctx context.Context, g *Global) int {
	adapter := errors.NewCLIErrorAdapter(c.Verbose, g.Logger).WithOutput(g.Stderr)

	if loaded, err := config.LoadEnvFiles(""); err != nil {
		g.Logger.Warn("Ignoring unreadable .env file", logfields.Error(err))
	} else if len(loaded) > 0 {
		g.Logger.Debug("Loaded environment files", "files", loaded)
	}

	cfg, err := c.resolveConfig()
	if err != nil {
		return adapter.Report(err)
	}

	mgr := workspace.NewManager(cfg.Workspace.BaseDir)
	defer func() {
		if err := mgr.Cleanup(); err != nil {
			g.Logger.Warn("Workspace cleanup failed", logfields.Error(err))
		}
	}()

	recorder := metrics.Recorder(metrics.NoopRecorder{})
	if cfg.MetricsFile != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		defer func() {
			if err := metrics.WriteTextfile(reg, cfg.MetricsFile); err != nil {
				g.Logger.Warn("Could not write metrics", logfields.Path(cfg.MetricsFile), logfields.Error(err))
			}
		}()
	}

	l := launcher.New(mgr,
		launcher.WithTracer(trace.NewLogger(trace.FromEnv(), g.Stderr)),
		launcher.WithRecorder(recorder),
		launcher.WithStdout(g.Stdout),
	)

	g.Logger.Debug("Starting run",
		logfields.Archive(cfg.InputAPK),
		slog.String("workspace_base", mgr.BaseDir()),
		logfields.Path(cfg.OutputAPK),
		logfields.Debug(cfg.DebugMode()))

	if _, err := l.Run(ctx, cfg); err != nil {
		return adapter.Report(err)
	}
	return 0
}

// resolveConfig layers flags over the settings file over built-in
// defaults, then validates the result.
func (c *CLI) resolveConfig() (*config.Config, error) {
	settings, err := config.LoadSettings(c.Settings)
	if err != nil {
		return nil, err
	}

	cfg := c.ToConfig()
	cfg.ApplySettings(settings)
	cfg.ApplyDefaults(os.Getenv("HOME"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
