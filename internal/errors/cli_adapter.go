package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
	}
}

// WithOutput redirects the user-facing error line.
func (a *CLIErrorAdapter) WithOutput(w io.Writer) *CLIErrorAdapter {
	a.stderr = w
	return a
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if aoe, ok := As(err); ok {
		return a.exitCodeFromCategory(aoe)
	}

	return 1
}

// exitCodeFromCategory maps ApkOptError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromCategory(err *ApkOptError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryArchive:
		return 3 // Bad input archive
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryOptimizer:
		return 8 // External process error
	case CategoryInternal:
		return 10 // Internal error
	case CategoryFileSystem:
		return 11 // Workspace error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if aoe, ok := As(err); ok {
		return a.formatApkOpt(aoe)
	}

	return fmt.Sprintf("Error: %v", err)
}

func (a *CLIErrorAdapter) formatApkOpt(err *ApkOptError) string {
	if a.verbose {
		return err.Error()
	}

	msg := err.Message
	if err.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, err.Cause)
	}
	for _, key := range []string{"path", "archive", "entry"} {
		if v, ok := err.Context[key]; ok {
			msg = fmt.Sprintf("%s (%s=%v)", msg, key, v)
		}
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return msg
	default:
		return fmt.Sprintf("%s: %s", err.Category, msg)
	}
}

// Report logs and prints the error, returning the exit code to use. The
// caller decides when to exit so deferred cleanups still run.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if aoe, ok := As(err); ok {
		return aoe.Category == CategoryInternal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if aoe, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(aoe.Category)),
		}
		for k, v := range aoe.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		a.logger.LogAttrs(context.Background(), a.levelFromSeverity(aoe.Severity), aoe.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

func (a *CLIErrorAdapter) levelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
