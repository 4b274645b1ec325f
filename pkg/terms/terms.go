// Package terms tracks acceptance of the license terms gate, persisted as a
// single timestamp file at a per-OS conventional location.
package terms

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/brunusansi/donutbrowser/internal/xraylog"
)

// minValidTimestamp is 2020-01-01 00:00:00 UTC; any stored timestamp
// before this is treated as invalid/unaccepted.
const minValidTimestamp = 1577836800

const (
	productDir = "Wayfern"
	fileName   = "license-accepted"
)

// Record describes a successfully recorded terms acceptance.
type Record struct {
	AcceptedAt time.Time
}

// Path resolves the per-OS location of the license-accepted file.
func Path() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, productDir, fileName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "AppData", "Roaming", productDir, fileName), nil

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", productDir, fileName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, productDir, fileName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, ".config", productDir, fileName), nil
	}
}

// IsAccepted reports whether the terms file exists, decodes to a decimal
// integer, and that integer is at or after minValidTimestamp.
func IsAccepted() (bool, error) {
	path, err := Path()
	if err != nil {
		return false, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read terms file: %w", err)
	}

	timestamp, err := strconv.ParseInt(strings.TrimSpace(string(contents)), 10, 64)
	if err != nil {
		return false, nil
	}

	return timestamp >= minValidTimestamp, nil
}

// Accept writes the current Unix-epoch-seconds timestamp to the terms file,
// creating parent directories as needed, then verifies the write via
// IsAccepted.
func Accept() (Record, error) {
	path, err := Path()
	if err != nil {
		return Record{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Record{}, fmt.Errorf("create terms directory: %w", err)
	}

	now := time.Now()
	if err := os.WriteFile(path, []byte(strconv.FormatInt(now.Unix(), 10)), 0o644); err != nil {
		return Record{}, fmt.Errorf("write terms file: %w", err)
	}

	accepted, err := IsAccepted()
	if err != nil {
		return Record{}, fmt.Errorf("verify terms acceptance: %w", err)
	}
	if !accepted {
		return Record{}, fmt.Errorf("terms file was written but verification failed")
	}

	xraylog.L("terms").Info("terms accepted")

	return Record{AcceptedAt: now.Truncate(time.Second)}, nil
}
