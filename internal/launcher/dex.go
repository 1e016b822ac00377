package launcher

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"git.home.luguber.info/inful/apkopt/internal/errors"
)

var dexName = regexp.MustCompile(`^classes(\d*)\.dex$`)

// moveDexFiles moves the top-level classes*.dex files of src into dst and
// returns their new paths, primary dex first.
func moveDexFiles(src, dst string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, errors.IOError("list dex files", src, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && dexName.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return dexOrdinal(names[i]) < dexOrdinal(names[j])
	})

	moved := make([]string, 0, len(names))
	for _, name := range names {
		from := filepath.Join(src, name)
		to := filepath.Join(dst, name)
		if err := os.Rename(from, to); err != nil {
			return nil, errors.IOError("move dex file", from, err)
		}
		moved = append(moved, to)
	}
	return moved, nil
}

// dexOrdinal maps classes.dex to 1 and classesN.dex to N.
func dexOrdinal(name string) int {
	m := dexName.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
