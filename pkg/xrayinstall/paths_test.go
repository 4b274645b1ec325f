package xrayinstall

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths_Layout(t *testing.T) {
	paths, err := resolvePaths("DonutBrowserTest")
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(paths.AssetsRoot, "DonutBrowserTest/xray") ||
		strings.HasSuffix(paths.AssetsRoot, `DonutBrowserTest\xray`))
	assert.Contains(t, paths.InstallRoot, paths.AssetsRoot)
	assert.Contains(t, paths.BinaryPath, paths.InstallRoot)

	wantExe := "xray"
	if runtime.GOOS == "windows" {
		wantExe = "xray.exe"
	}
	assert.True(t, strings.HasSuffix(paths.BinaryPath, wantExe))

	// ConfigsRoot is "<InstallRoot>/../configs" == "<AssetsRoot>/configs",
	// one level below AssetsRoot, not a sibling of it.
	assert.Equal(t, filepath.Join(paths.AssetsRoot, "configs"), paths.ConfigsRoot)
	assert.Equal(t, filepath.Join(paths.InstallRoot, "..", "configs"), paths.ConfigsRoot)
}

func TestHostOSAndArch(t *testing.T) {
	osName := hostOS()
	assert.Contains(t, []string{"windows", "darwin", "linux"}, osName)

	arch := hostArch()
	assert.Contains(t, []string{"x64", "arm64", "x86"}, arch)
}
