package archive

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"

	"git.home.luguber.info/inful/apkopt/internal/errors"
	"git.home.luguber.info/inful/apkopt/internal/logfields"
)

// Repack writes every regular file under srcDir into a new zip archive at
// outPath, in lexical path order. Each entry keeps the method recorded in
// index; files the index does not know about are deflated. Methods other
// than Store and Deflate have no compressor here and are deflated as well.
//
// The archive is written to a temporary file next to outPath and renamed
// into place, so a failed repack never leaves a truncated APK behind.
func Repack(srcDir, outPath string, index CompressionIndex) error {
	outDir := filepath.Dir(outPath)
	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return errors.IOError("create output directory", outDir, err)
	}

	tmp, err := os.CreateTemp(outDir, ".apkopt-*.apk")
	if err != nil {
		return errors.IOError("create output archive", outPath, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	zw := zip.NewWriter(tmp)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	methods := index.byPath()
	count := 0
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.IOError("read workspace", path, err)
		}
		if !d.Type().IsRegular() || path == tmpName {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return errors.InternalError("relative entry path", err)
		}
		name := filepath.ToSlash(rel)
		if err := addFile(zw, path, name, methods.Method(name)); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		_ = zw.Close()
		_ = tmp.Close()
		return walkErr
	}

	if err := zw.Close(); err != nil {
		_ = tmp.Close()
		return errors.IOError("finish output archive", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.IOError("finish output archive", outPath, err)
	}
	if err := os.Rename(tmpName, outPath); err != nil {
		return errors.IOError("move output archive", outPath, err)
	}
	committed = true

	slog.Debug("Repacked archive", logfields.Archive(outPath), logfields.Entries(count))
	return nil
}

func addFile(zw *zip.Writer, path, name string, method Method) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.IOError("read workspace", path, err)
	}

	if method != Store && method != Deflate {
		slog.Debug("No compressor for recorded method, deflating",
			logfields.Entry(name), logfields.Method(method.String()))
		method = Deflate
	}

	header := &zip.FileHeader{
		Name:     name,
		Method:   uint16(method),
		Modified: info.ModTime(),
	}
	header.SetMode(info.Mode())

	w, err := zw.CreateHeader(header)
	if err != nil {
		return errors.IOError("write output archive", name, err)
	}

	in, err := os.Open(path)
	if err != nil {
		return errors.IOError("read workspace", path, err)
	}
	defer func() {
		_ = in.Close()
	}()

	if _, err := io.Copy(w, in); err != nil {
		return errors.IOError("write output archive", name, err)
	}
	return nil
}
