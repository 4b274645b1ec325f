package terms

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_ContainsProductDirAndFileName(t *testing.T) {
	path, err := Path()
	require.NoError(t, err)
	assert.Contains(t, path, productDir)
	assert.True(t, filepath.Base(path) == fileName)
}

func TestIsAccepted_NoFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", filepath.Join(home, "AppData", "Roaming"))

	accepted, err := IsAccepted()
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestAcceptAndIsAccepted_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", filepath.Join(home, "AppData", "Roaming"))

	record, err := Accept()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), record.AcceptedAt, 2*time.Second)

	accepted, err := IsAccepted()
	require.NoError(t, err)
	assert.True(t, accepted)
}

func TestIsAccepted_TimestampBeforeMinimumIsRejected(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", filepath.Join(home, "AppData", "Roaming"))

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(minValidTimestamp-1)), 0o644))

	accepted, err := IsAccepted()
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestIsAccepted_MalformedContentsIsRejected(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", filepath.Join(home, "AppData", "Roaming"))

	path, err := Path()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not-a-number"), 0o644))

	accepted, err := IsAccepted()
	require.NoError(t, err)
	assert.False(t, accepted)
}

func TestPath_LinuxUsesXDGConfigHomeWhenSet(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only consulted on linux")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, productDir, fileName), path)
}
