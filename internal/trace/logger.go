package trace

import (
	"fmt"
	"io"
)

// Logger writes diagnostic lines gated by a Spec. A nil *Logger discards
// everything.
type Logger struct {
	spec Spec
	w    io.Writer
}

// NewLogger returns a Logger writing enabled output to w, normally stderr.
func NewLogger(spec Spec, w io.Writer) *Logger {
	return &Logger{spec: spec, w: w}
}

// Enabled reports whether Log would write for module.
func (l *Logger) Enabled(module string) bool {
	return l != nil && l.w != nil && l.spec.Enabled(module)
}

// Log renders values space-separated on one line when module is enabled.
func (l *Logger) Log(module string, values ...any) {
	if !l.Enabled(module) {
		return
	}
	_, _ = fmt.Fprintln(l.w, values...)
}

// Logf is Log with a format string.
func (l *Logger) Logf(module, format string, args ...any) {
	if !l.Enabled(module) {
		return
	}
	_, _ = fmt.Fprintf(l.w, format+"\n", args...)
}
