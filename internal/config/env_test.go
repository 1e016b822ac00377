package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "APKOPT_TEST_TRACE=REDEX:1\nAPKOPT_TEST_KEEP=from-file\n")

	t.Setenv("APKOPT_TEST_KEEP", "from-env")
	// registers cleanup; the variable itself must start unset
	t.Setenv("APKOPT_TEST_TRACE", "")
	require.NoError(t, os.Unsetenv("APKOPT_TEST_TRACE"))

	loaded, err := LoadEnvFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, ".env")}, loaded)
	assert.Equal(t, "REDEX:1", os.Getenv("APKOPT_TEST_TRACE"))
	assert.Equal(t, "from-env", os.Getenv("APKOPT_TEST_KEEP"))
}

func TestLoadEnvFiles_NonePresent(t *testing.T) {
	loaded, err := LoadEnvFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
