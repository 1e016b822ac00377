package config

import (
	"os"
	"path/filepath"
)

const (
	debugKeystoreAlias    = "androiddebugkey"
	debugKeystorePassword = "android"
)

// DiscoverDebugKeystore looks for the Android SDK debug keystore under
// home. Any problem (no home, missing file, unreadable directory) simply
// means there is no default keystore.
func DiscoverDebugKeystore(home string) (Keystore, bool) {
	if home == "" {
		return Keystore{}, false
	}
	path := filepath.Join(home, ".android", "debug.keystore")
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return Keystore{}, false
	}
	return Keystore{
		Path:     path,
		Alias:    debugKeystoreAlias,
		Password: debugKeystorePassword,
	}, true
}
