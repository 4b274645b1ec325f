package xrayinstall

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the resolved filesystem layout for one (appName, os, arch)
// install.
type Paths struct {
	// AssetsRoot is "<local-data>/<appName>/xray/" — the parent shared by
	// every (os, arch) variant, where geoip.dat and geosite.dat live.
	AssetsRoot string
	// InstallRoot is "<AssetsRoot>/<os>-<arch>/" — where the engine binary
	// and its archive are extracted.
	InstallRoot string
	// BinaryPath is the full path to the engine executable.
	BinaryPath string
	// ConfigsRoot is "<InstallRoot>/../configs/" == "<AssetsRoot>/configs/",
	// holding per-instance generated config files.
	ConfigsRoot string
}

// resolvePaths builds a Paths for appName on the current platform.
func resolvePaths(appName string) (Paths, error) {
	localData, err := localDataDir()
	if err != nil {
		return Paths{}, fmt.Errorf("%w: resolve local data dir: %v", ErrInstall, err)
	}

	osName := hostOS()
	arch := hostArch()

	assetsRoot := filepath.Join(localData, appName, "xray")
	installRoot := filepath.Join(assetsRoot, osName+"-"+arch)
	binaryPath := filepath.Join(installRoot, executableName(osName))
	configsRoot := filepath.Join(assetsRoot, "configs")

	return Paths{
		AssetsRoot:  assetsRoot,
		InstallRoot: installRoot,
		BinaryPath:  binaryPath,
		ConfigsRoot: configsRoot,
	}, nil
}

// localDataDir resolves the per-user local-data directory for the current
// OS: %LOCALAPPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_DATA_HOME or ~/.local/share on Linux.
func localDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Local"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
