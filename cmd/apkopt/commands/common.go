package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/apkopt/internal/config"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
)

// Global carries the process streams and the run-scoped logger.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	RunID  string
}

// NewGlobal tags the default logger with a fresh run id and installs it as
// the default, so package-level slog calls carry the run id too.
func NewGlobal(stdout, stderr io.Writer) *Global {
	runID := uuid.NewString()
	logger := slog.Default().With(logfields.RunID(runID))
	slog.SetDefault(logger)
	return &Global{
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		RunID:  runID,
	}
}

// CLI definition & flags.
type CLI struct {
	InputAPK string `arg:"" name:"input-apk" help:"Input APK file" type:"path"`

	Out            string   `short:"o" help:"Output APK file name" default:"redex-out.apk" type:"path"`
	JarPath        string   `short:"j" name:"jarpath" help:"Path to the Android framework jar"`
	RedexBinary    string   `name:"redex-binary" help:"Path to redex binary (default: redex-all on PATH)"`
	Config         string   `short:"c" help:"Redex configuration file"`
	Time           bool     `short:"t" help:"Report wall and CPU time of the redex run"`
	Sign           bool     `help:"Sign the apk after optimizing it"`
	Keystore       string   `short:"s" help:"Keystore for signing (default: ~/.android/debug.keystore)"`
	KeyAlias       string   `short:"a" name:"keyalias" help:"Key alias for signing"`
	KeyPass        string   `short:"p" name:"keypass" help:"Key password for signing"`
	UnpackOnly     bool     `short:"u" name:"unpack-only" help:"Unpack the apk and print the unpacked directories, don't run any redex passes or repack the apk"`
	Warn           string   `short:"w" help:"Control verbosity of warnings"`
	Debug          bool     `short:"d" help:"Unpack the apk and print the redex command line to run"`
	ProguardMap    string   `short:"m" name:"proguard-map" help:"Path to proguard mapping.txt for deobfuscating names"`
	ProguardConfig string   `short:"P" name:"proguard-config" help:"Path to proguard config"`
	Keep           string   `short:"k" help:"Path to file containing classes to keep"`
	Passthru       []string `short:"S" name:"passthru" sep:"none" help:"Arguments passed through to redex (key=value)"`
	PassthruJSON   []string `short:"J" name:"passthru-json" sep:"none" help:"JSON-formatted arguments passed through to redex (key=json)"`

	Settings    string           `name:"settings" help:"YAML file with default settings" type:"path"`
	WorkDir     string           `name:"workdir" help:"Directory to create temporary workspaces in" type:"path"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file after the run" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ToConfig copies the parsed flags into a launcher configuration.
func (c *CLI) ToConfig() *config.Config {
	return &config.Config{
		InputAPK:       c.InputAPK,
		OutputAPK:      c.Out,
		UnpackOnly:     c.UnpackOnly,
		Debug:          c.Debug,
		Time:           c.Time,
		Sign:           c.Sign,
		RedexBinary:    c.RedexBinary,
		RedexConfig:    c.Config,
		JarPath:        c.JarPath,
		ProguardMap:    c.ProguardMap,
		ProguardConfig: c.ProguardConfig,
		KeepFile:       c.Keep,
		Warn:           c.Warn,
		Passthru:       c.Passthru,
		PassthruJSON:   c.PassthruJSON,
		Keystore: config.Keystore{
			Path:     c.Keystore,
			Alias:    c.KeyAlias,
			Password: c.KeyPass,
		},
		Workspace:   config.WorkspaceConfig{BaseDir: c.WorkDir},
		MetricsFile: c.MetricsFile,
	}
}
