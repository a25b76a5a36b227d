package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricetrack/internal/engine"
)

func TestFindChrome_Preferred(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))

	got, err := FindChrome(bin)
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	plain := filepath.Join(dir, "not-exec")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))

	_, err = FindChrome(plain)
	assert.ErrorIs(t, err, engine.ErrBrowserNotFound)
}

func TestFindChrome_EnvOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	bin := filepath.Join(t.TempDir(), "chromium")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("CHROME_PATH", bin)

	got, err := FindChrome("")
	require.NoError(t, err)
	assert.Equal(t, bin, got)
}

func TestVersion_Unknown(t *testing.T) {
	assert.Equal(t, "unknown", Version(""))
	assert.Equal(t, "unknown", Version(filepath.Join(t.TempDir(), "missing")))
}
