package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/apkopt/internal/archive"
	"git.home.luguber.info/inful/apkopt/internal/config"
	"git.home.luguber.info/inful/apkopt/internal/errors"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
	"git.home.luguber.info/inful/apkopt/internal/metrics"
	"git.home.luguber.info/inful/apkopt/internal/optimizer"
	"git.home.luguber.info/inful/apkopt/internal/trace"
	"git.home.luguber.info/inful/apkopt/internal/workspace"
)

// Workspace name patterns; the random part replaces the "*".
const (
	ExtractedPattern = "*.redex_extracted_apk"
	DexPattern       = "*.redex_dexen"
)

// Run outcomes reported to the metrics recorder.
const (
	OutcomeSuccess  = "success"
	OutcomeUnpacked = "unpacked"
	OutcomeDebug    = "debug"
	OutcomeFailed   = "failed"
)

// Launcher runs the pipeline. Construct it with New.
type Launcher struct {
	workspaces *workspace.Manager
	tracer     *trace.Logger
	recorder   metrics.Recorder
	runner     optimizer.Runner
	stdout     io.Writer
	now        func() time.Time
	getwd      func() (string, error)
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithTracer sets the diagnostic logger used for TRACE output.
func WithTracer(t *trace.Logger) Option {
	return func(l *Launcher) { l.tracer = t }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Launcher) {
		if r != nil {
			l.recorder = r
		}
	}
}

// WithRunner sets how external commands are executed.
func WithRunner(r optimizer.Runner) Option {
	return func(l *Launcher) {
		if r != nil {
			l.runner = r
		}
	}
}

// WithStdout sets where user-facing results (workspace paths, debug
// command lines) are printed.
func WithStdout(w io.Writer) Option {
	return func(l *Launcher) {
		if w != nil {
			l.stdout = w
		}
	}
}

// New returns a Launcher creating its workspaces through m.
func New(m *workspace.Manager, opts ...Option) *Launcher {
	l := &Launcher{
		workspaces: m,
		recorder:   metrics.NoopRecorder{},
		runner:     optimizer.ExecRunner{Stdout: os.Stderr, Stderr: os.Stderr},
		stdout:     os.Stdout,
		now:        time.Now,
		getwd:      os.Getwd,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result describes what a run produced.
type Result struct {
	ExtractedDir string
	DexDir       string
	Index        archive.CompressionIndex
	DexFiles     []string
	Command      optimizer.Command
	Output       string
	Timing       optimizer.Result
}

// Unpack creates the extraction workspace and extracts cfg.InputAPK into
// it. Errors from workspace creation and extraction are returned as they
// are; the workspace is released (unless in debug mode) when extraction
// fails.
func (l *Launcher) Unpack(cfg *config.Config) (*workspace.Workspace, archive.CompressionIndex, error) {
	ws, err := l.workspaces.Create(ExtractedPattern, cfg.DebugMode())
	if err != nil {
		return nil, nil, err
	}

	start := l.now()
	l.tracer.Log(trace.ModuleLauncher, "Extracting apk...")

	index, err := archive.Extract(cfg.InputAPK, ws.Path())
	elapsed := l.now().Sub(start)
	l.recorder.ObserveStageDuration(metrics.StageExtract, elapsed)
	if err != nil {
		l.recorder.IncStageResult(metrics.StageExtract, metrics.ResultFailed)
		_ = ws.Close()
		return nil, nil, err
	}
	l.recorder.IncStageResult(metrics.StageExtract, metrics.ResultSuccess)
	for method, n := range index.Counts() {
		l.recorder.AddExtractedEntries(method.String(), n)
	}

	l.tracer.Logf(trace.ModuleLauncher, "Extraction took %f sec", elapsed.Seconds())
	logStage(metrics.StageExtract, elapsed, logfields.Archive(cfg.InputAPK), logfields.Entries(len(index)))
	return ws, index, nil
}

// Run executes the whole pipeline for cfg.
func (l *Launcher) Run(ctx context.Context, cfg *config.Config) (res *Result, err error) {
	runStart := l.now()
	outcome := OutcomeFailed
	defer func() {
		l.recorder.ObserveRunDuration(l.now().Sub(runStart))
		l.recorder.IncRunOutcome(outcome)
	}()

	extracted, index, err := l.Unpack(cfg)
	if err != nil {
		return nil, err
	}

	dexWS, err := l.workspaces.Create(DexPattern, cfg.DebugMode())
	if err != nil {
		_ = extracted.Close()
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = dexWS.Close()
			_ = extracted.Close()
		}
	}()

	dexFiles, err := moveDexFiles(extracted.Path(), dexWS.Path())
	if err != nil {
		return nil, err
	}

	res = &Result{
		ExtractedDir: extracted.Path(),
		DexDir:       dexWS.Path(),
		Index:        index,
		DexFiles:     dexFiles,
	}

	if cfg.UnpackOnly {
		_, _ = fmt.Fprintf(l.stdout, "Extracted APK to: %s\n", extracted.Path())
		_, _ = fmt.Fprintf(l.stdout, "Dex files in: %s\n", dexWS.Path())
		l.skip(metrics.StageOptimize, metrics.StageRepack, metrics.StageSign)
		outcome = OutcomeUnpacked
		return res, nil
	}

	res.Command = optimizer.BuildCommand(cfg, extracted.Path(), dexWS.Path(), dexFiles)
	if cwd, wdErr := l.getwd(); wdErr == nil {
		res.Command.Dir = cwd
	}

	if cfg.Debug {
		dir := res.Command.Dir
		if dir == "" {
			dir = "."
		}
		_, _ = fmt.Fprintf(l.stdout, "cd %s && %s\n", dir, res.Command.String())
		l.skip(metrics.StageOptimize, metrics.StageRepack, metrics.StageSign)
		outcome = OutcomeDebug
		return res, nil
	}

	if err = l.optimize(ctx, cfg, res); err != nil {
		return nil, err
	}

	if _, err = moveDexFiles(dexWS.Path(), extracted.Path()); err != nil {
		return nil, err
	}

	if err = l.repack(cfg, res); err != nil {
		return nil, err
	}

	if cfg.Sign {
		if err = l.sign(ctx, cfg); err != nil {
			return nil, err
		}
	} else {
		l.skip(metrics.StageSign)
	}

	if err = dexWS.Release(); err != nil {
		return nil, err
	}
	if err = extracted.Release(); err != nil {
		return nil, err
	}

	outcome = OutcomeSuccess
	return res, nil
}

func (l *Launcher) optimize(ctx context.Context, cfg *config.Config, res *Result) error {
	l.tracer.Log(trace.ModuleLauncher, "Running optimizer:", res.Command.String())

	timing, err := l.runner.Run(ctx, res.Command)
	l.recorder.ObserveStageDuration(metrics.StageOptimize, timing.Wall)
	if err != nil {
		l.recorder.IncStageResult(metrics.StageOptimize, metrics.ResultFailed)
		return errors.OptimizerFailed(res.Command.Path, err)
	}
	l.recorder.IncStageResult(metrics.StageOptimize, metrics.ResultSuccess)
	res.Timing = timing

	if cfg.Time {
		slog.Info("Optimizer finished",
			logfields.Stage(metrics.StageOptimize),
			logfields.Binary(res.Command.Path),
			logfields.DurationMS(float64(timing.Wall.Microseconds())/1000),
			slog.String("timing", timing.String()))
	} else {
		logStage(metrics.StageOptimize, timing.Wall, logfields.Binary(res.Command.Path))
	}
	return nil
}

func (l *Launcher) repack(cfg *config.Config, res *Result) error {
	start := l.now()
	l.tracer.Log(trace.ModuleLauncher, "Repacking apk...")

	err := archive.Repack(res.ExtractedDir, cfg.OutputAPK, res.Index)
	elapsed := l.now().Sub(start)
	l.recorder.ObserveStageDuration(metrics.StageRepack, elapsed)
	if err != nil {
		l.recorder.IncStageResult(metrics.StageRepack, metrics.ResultFailed)
		return err
	}
	l.recorder.IncStageResult(metrics.StageRepack, metrics.ResultSuccess)
	res.Output = cfg.OutputAPK

	slog.Info("Wrote optimized APK",
		logfields.Stage(metrics.StageRepack),
		logfields.Path(cfg.OutputAPK),
		logfields.Entries(len(res.Index)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return nil
}

func (l *Launcher) sign(ctx context.Context, cfg *config.Config) error {
	cmd := optimizer.SignCommand(cfg.Keystore, cfg.OutputAPK)
	l.tracer.Log(trace.ModuleLauncher, "Signing apk with", cfg.Keystore.Path)

	timing, err := l.runner.Run(ctx, cmd)
	l.recorder.ObserveStageDuration(metrics.StageSign, timing.Wall)
	if err != nil {
		l.recorder.IncStageResult(metrics.StageSign, metrics.ResultFailed)
		return errors.SignFailed(cfg.OutputAPK, err)
	}
	l.recorder.IncStageResult(metrics.StageSign, metrics.ResultSuccess)
	return nil
}

// skip marks stages a run stopped short of.
func (l *Launcher) skip(stages ...string) {
	for _, stage := range stages {
		l.recorder.IncStageResult(stage, metrics.ResultSkipped)
	}
}

func logStage(stage string, d time.Duration, attrs ...slog.Attr) {
	args := []any{logfields.Stage(stage), logfields.DurationMS(float64(d.Microseconds()) / 1000)}
	for _, a := range attrs {
		args = append(args, a)
	}
	slog.Debug("Stage finished", args...)
}
