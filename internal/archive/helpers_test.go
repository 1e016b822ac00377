package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

type fixtureEntry struct {
	name    string
	method  uint16
	content string
}

// writeZip builds an archive from entries in order and returns its path.
func writeZip(t *testing.T, entries ...fixtureEntry) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: e.method})
		require.NoError(t, err)
		if e.content != "" {
			_, err = w.Write([]byte(e.content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "input.apk")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

// readZip returns name -> (method, content) for every file entry.
func readZip(t *testing.T, path string) map[string]fixtureEntry {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	out := make(map[string]fixtureEntry)
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		var b bytes.Buffer
		_, err = b.ReadFrom(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = fixtureEntry{name: f.Name, method: f.Method, content: b.String()}
	}
	return out
}
