package archive

import (
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding/charmap"
)

// entryName returns the entry name as UTF-8. Names that are not valid
// UTF-8 are taken to be code page 437, the zip default.
func entryName(f *zip.File) string {
	name := f.Name
	if utf8.ValidString(name) {
		return name
	}
	decoded, err := charmap.CodePage437.NewDecoder().String(name)
	if err != nil {
		return name
	}
	return decoded
}

// isDirEntry reports whether a (decoded) entry name denotes a directory.
func isDirEntry(name string) bool {
	return strings.HasSuffix(name, "/")
}

// localName validates an entry name and returns it in OS form. ok is false
// when the name is absolute, empty, or climbs out of the root.
func localName(name string) (string, bool) {
	trimmed := strings.TrimSuffix(name, "/")
	if trimmed == "" || strings.ContainsRune(trimmed, 0) {
		return "", false
	}
	if path.IsAbs(trimmed) {
		return "", false
	}
	local := filepath.FromSlash(trimmed)
	if !filepath.IsLocal(local) {
		return "", false
	}
	return local, true
}
