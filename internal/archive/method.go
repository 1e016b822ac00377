package archive

import (
	"fmt"
	"path"

	"github.com/klauspost/compress/zip"
)

// Method is a zip compression method code.
type Method uint16

const (
	Store   Method = Method(zip.Store)
	Deflate Method = Method(zip.Deflate)
)

func (m Method) String() string {
	switch m {
	case Store:
		return "STORED"
	case Deflate:
		return "DEFLATED"
	default:
		return fmt.Sprintf("method(%d)", uint16(m))
	}
}

// CompressionIndex maps a slash-separated entry name to its original
// compression method.
type CompressionIndex map[string]Method

// Method returns the recorded method for name, or Deflate when the entry
// was not part of the original archive.
func (idx CompressionIndex) Method(name string) Method {
	if m, ok := idx[name]; ok {
		return m
	}
	return Deflate
}

// byPath returns the index keyed by cleaned path, the form entry names
// take once extracted to disk ("./a" and "a//b" become "a" and "a/b").
// Extract keeps at most one name per path, so the view is unambiguous.
func (idx CompressionIndex) byPath() CompressionIndex {
	view := make(CompressionIndex, len(idx))
	for name, m := range idx {
		clean := path.Clean(name)
		if clean == "." {
			continue
		}
		view[clean] = m
	}
	return view
}

// Counts tallies entries per method.
func (idx CompressionIndex) Counts() map[Method]int {
	counts := make(map[Method]int)
	for _, m := range idx {
		counts[m]++
	}
	return counts
}
