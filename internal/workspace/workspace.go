package workspace

import (
	"log/slog"
	"os"
	"sync"

	"git.home.luguber.info/inful/apkopt/internal/errors"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
)

// Manager creates workspaces under a base directory and remembers them so
// they can be cleaned up together at process exit.
type Manager struct {
	baseDir string

	mu         sync.Mutex
	workspaces []*Workspace
}

// NewManager creates a new workspace manager rooted at baseDir
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// BaseDir returns the directory new workspaces are created in.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Create allocates a new uniquely named workspace directory. The pattern
// follows os.MkdirTemp: a trailing or embedded "*" marks where the random
// part goes, otherwise the pattern is used as a prefix.
func (m *Manager) Create(pattern string, debug bool) (*Workspace, error) {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return nil, errors.IOError("create workspace", m.baseDir, err)
	}

	dir, err := os.MkdirTemp(m.baseDir, pattern)
	if err != nil {
		return nil, errors.IOError("create workspace", m.baseDir, err)
	}

	ws := &Workspace{path: dir, debug: debug}

	m.mu.Lock()
	m.workspaces = append(m.workspaces, ws)
	m.mu.Unlock()

	slog.Debug("Created workspace", logfields.Path(dir), logfields.Debug(debug))
	return ws, nil
}

// Cleanup removes every non-debug workspace created by this manager that
// has not been released yet. It is safe to call more than once.
func (m *Manager) Cleanup() error {
	m.mu.Lock()
	workspaces := append([]*Workspace(nil), m.workspaces...)
	m.mu.Unlock()

	var firstErr error
	for _, ws := range workspaces {
		if err := ws.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Workspace is an exclusively owned ephemeral directory.
type Workspace struct {
	path  string
	debug bool

	mu       sync.Mutex
	released bool
}

// Path returns the workspace directory.
func (w *Workspace) Path() string {
	return w.path
}

// Debug reports whether automatic cleanup is suppressed.
func (w *Workspace) Debug() bool {
	return w.debug
}

// Released reports whether the directory has been removed.
func (w *Workspace) Released() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.released
}

// Release removes the workspace tree, debug or not. Calls after the first
// successful removal do nothing; a directory that is already gone counts
// as removed.
func (w *Workspace) Release() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.released {
		return nil
	}
	if err := os.RemoveAll(w.path); err != nil {
		return errors.IOError("remove workspace", w.path, err)
	}
	w.released = true
	slog.Debug("Cleaned up workspace", logfields.Path(w.path))
	return nil
}

// Close is the deferred release handle: it removes the workspace unless it
// was created in debug mode.
func (w *Workspace) Close() error {
	if w.debug {
		if !w.Released() {
			slog.Debug("Keeping debug workspace", logfields.Path(w.path))
		}
		return nil
	}
	return w.Release()
}
