package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded in order; earlier files and the real environment win.
var envFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads KEY=VALUE pairs from .env files in dir without
// overriding variables that are already set, so TRACE and friends can live
// next to the project. Missing files are skipped. It returns the files that
// were loaded.
func LoadEnvFiles(dir string) ([]string, error) {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, err
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}
