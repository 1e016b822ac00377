package archive

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/zip"

	"git.home.luguber.info/inful/apkopt/internal/errors"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
)

const (
	dirPerm  = 0o750
	filePerm = 0o640
)

// Extract unpacks every entry of the zip archive at archivePath into
// destDir and returns the compression method of each file entry.
//
// All entry names are checked before anything is written: a name that is
// absolute or climbs out of destDir fails the whole extraction. When an
// archive repeats a name, the last entry wins both on disk and in the
// index. Either every entry is extracted and indexed or an error is
// returned and the index is discarded.
func Extract(archivePath, destDir string) (CompressionIndex, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.ArchiveError(archivePath, "open archive", err)
	}
	defer func() {
		_ = r.Close()
	}()

	entries := make([]entry, 0, len(r.File))
	for _, f := range r.File {
		name := entryName(f)
		local, ok := localName(name)
		if !ok {
			return nil, errors.ArchiveError(archivePath, "entry escapes destination directory", nil).
				WithContext("entry", name)
		}
		entries = append(entries, entry{file: f, name: name, local: local})
	}

	index := make(CompressionIndex, len(entries))
	owner := make(map[string]string, len(entries))
	for _, e := range entries {
		if isDirEntry(e.name) {
			continue
		}
		// "./a" and "a" land on the same file; only the later name is kept.
		target := filepath.Clean(e.local)
		if prev, ok := owner[target]; ok && prev != e.name {
			delete(index, prev)
		}
		owner[target] = e.name
		index[e.name] = Method(e.file.Method)
	}

	for _, e := range entries {
		if err := extractEntry(archivePath, destDir, e); err != nil {
			return nil, err
		}
	}

	slog.Debug("Extracted archive",
		logfields.Archive(archivePath),
		logfields.Path(destDir),
		logfields.Entries(len(index)))
	return index, nil
}

type entry struct {
	file  *zip.File
	name  string
	local string
}

func extractEntry(archivePath, destDir string, e entry) error {
	target, err := securejoin.SecureJoin(destDir, e.local)
	if err != nil {
		return errors.IOError("resolve entry path", filepath.Join(destDir, e.local), err)
	}

	if isDirEntry(e.name) {
		if err := os.MkdirAll(target, dirPerm); err != nil {
			return errors.IOError("create directory", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return errors.IOError("create directory", filepath.Dir(target), err)
	}

	rc, err := e.file.Open()
	if err != nil {
		return errors.ArchiveError(archivePath, "open entry", err).WithContext("entry", e.name)
	}
	defer func() {
		_ = rc.Close()
	}()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return errors.IOError("write entry", target, err)
	}

	tw := &trackingWriter{w: out}
	_, copyErr := io.Copy(tw, rc)
	closeErr := out.Close()

	switch {
	case tw.err != nil:
		return errors.IOError("write entry", target, tw.err)
	case copyErr != nil:
		return errors.ArchiveError(archivePath, "read entry", copyErr).WithContext("entry", e.name)
	case closeErr != nil:
		return errors.IOError("write entry", target, closeErr)
	}
	return nil
}

// trackingWriter remembers write failures so they can be told apart from
// read failures on the archive side of io.Copy.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
