package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyArchive    = "archive"
	KeyEntry      = "entry"
	KeyEntries    = "entries"
	KeyMethod     = "method"
	KeyBinary     = "binary"
	KeyDebug      = "debug"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Archive(p string) slog.Attr      { return slog.String(KeyArchive, p) }
func Entry(name string) slog.Attr     { return slog.String(KeyEntry, name) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Binary(b string) slog.Attr       { return slog.String(KeyBinary, b) }
func Debug(enabled bool) slog.Attr    { return slog.Bool(KeyDebug, enabled) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
