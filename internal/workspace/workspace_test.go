package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/apkopt/internal/errors"
)

func TestManager_Create(t *testing.T) {
	tempBase := t.TempDir()
	mgr := NewManager(tempBase)

	ws, err := mgr.Create("*.redex_extracted_apk", false)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if filepath.Dir(ws.Path()) != tempBase {
		t.Errorf("Expected workspace under %s, got: %s", tempBase, ws.Path())
	}
	if !strings.HasSuffix(filepath.Base(ws.Path()), ".redex_extracted_apk") {
		t.Errorf("Expected suffix pattern to be honoured, got: %s", ws.Path())
	}

	// Workspace must exist and be writable
	marker := filepath.Join(ws.Path(), "marker.txt")
	if err := os.WriteFile(marker, []byte("x"), 0o600); err != nil {
		t.Fatalf("Workspace not writable: %v", err)
	}

	if err := ws.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(ws.Path()); !os.IsNotExist(err) {
		t.Errorf("Workspace directory still exists after release: %s", ws.Path())
	}
}

func TestManager_CreateUnique(t *testing.T) {
	mgr := NewManager(t.TempDir())
	seen := make(map[string]bool)

	for i := 0; i < 20; i++ {
		ws, err := mgr.Create("apk-", false)
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if seen[ws.Path()] {
			t.Fatalf("Duplicate workspace path: %s", ws.Path())
		}
		seen[ws.Path()] = true
	}
}

func TestManager_CreateFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(blocker)
	_, err := mgr.Create("ws-", false)
	if err == nil {
		t.Fatal("Expected error creating workspace under a regular file")
	}
	if !errors.IsCategory(err, errors.CategoryFileSystem) {
		t.Errorf("Expected filesystem error, got: %v", err)
	}
}

func TestManager_DefaultBaseDir(t *testing.T) {
	mgr := NewManager("")
	if mgr.BaseDir() != os.TempDir() {
		t.Errorf("Expected default base %s, got %s", os.TempDir(), mgr.BaseDir())
	}
}

func TestWorkspace_ReleaseIdempotent(t *testing.T) {
	base := t.TempDir()
	mgr := NewManager(base)

	ws, err := mgr.Create("ws-", false)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := ws.Release(); err != nil {
		t.Fatalf("first Release() failed: %v", err)
	}

	// An unrelated directory appearing at the same path must survive a
	// second release.
	if err := os.MkdirAll(ws.Path(), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := ws.Release(); err != nil {
		t.Fatalf("second Release() failed: %v", err)
	}
	if _, err := os.Stat(ws.Path()); err != nil {
		t.Errorf("Second release removed a directory it does not own: %v", err)
	}
	if !ws.Released() {
		t.Error("Released() should report true")
	}
}

func TestWorkspace_ReleaseMissingDirectory(t *testing.T) {
	mgr := NewManager(t.TempDir())
	ws, err := mgr.Create("ws-", false)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := os.RemoveAll(ws.Path()); err != nil {
		t.Fatal(err)
	}
	if err := ws.Release(); err != nil {
		t.Errorf("Release() of a vanished directory should succeed, got: %v", err)
	}
}

func TestWorkspace_CloseRespectsDebug(t *testing.T) {
	mgr := NewManager(t.TempDir())

	debugWS, err := mgr.Create("debug-", true)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	normalWS, err := mgr.Create("normal-", false)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := debugWS.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := normalWS.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if _, err := os.Stat(debugWS.Path()); err != nil {
		t.Errorf("Debug workspace was removed: %v", err)
	}
	if _, err := os.Stat(normalWS.Path()); !os.IsNotExist(err) {
		t.Errorf("Normal workspace still exists: %s", normalWS.Path())
	}

	// Explicit release still removes a debug workspace
	if err := debugWS.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(debugWS.Path()); !os.IsNotExist(err) {
		t.Errorf("Debug workspace survived explicit release: %s", debugWS.Path())
	}
}

func TestManager_Cleanup(t *testing.T) {
	mgr := NewManager(t.TempDir())

	a, err := mgr.Create("a-", false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := mgr.Create("b-", true)
	if err != nil {
		t.Fatal(err)
	}
	c, err := mgr.Create("c-", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Release(); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Cleanup(); err != nil {
		t.Fatalf("Cleanup() failed: %v", err)
	}
	if err := mgr.Cleanup(); err != nil {
		t.Fatalf("second Cleanup() failed: %v", err)
	}

	if _, err := os.Stat(a.Path()); !os.IsNotExist(err) {
		t.Errorf("Cleanup left %s behind", a.Path())
	}
	if _, err := os.Stat(b.Path()); err != nil {
		t.Errorf("Cleanup removed debug workspace %s", b.Path())
	}
}
