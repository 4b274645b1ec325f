package xrayinstall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/brunusansi/donutbrowser/internal/xraylog"
)

// ProgressFunc reports download progress: bytesDownloaded, totalBytes.
// totalBytes is 0 when the server did not advertise Content-Length.
type ProgressFunc func(downloaded, total int64)

// Locator resolves, downloads, and installs the engine binary for one
// AppName on the current platform.
type Locator struct {
	appName       string
	pinnedVersion string
	releaseAPI    string
	downloadBase  string
	mirrorBase    string
	httpClient    *http.Client
	paths         Paths
}

// New constructs a Locator for appName ("DonutBrowser" in release builds,
// "DonutBrowserDev" in debug builds).
func New(appName string, opts ...Option) (*Locator, error) {
	paths, err := resolvePaths(appName)
	if err != nil {
		return nil, err
	}

	l := &Locator{
		appName:       appName,
		pinnedVersion: pinnedVersion,
		releaseAPI:    releaseAPI,
		downloadBase:  downloadBase,
		mirrorBase:    mirrorBase,
		httpClient:    defaultHTTPClient(),
		paths:         paths,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Paths returns the resolved filesystem layout for this Locator.
func (l *Locator) Paths() Paths {
	return l.paths
}

// IsInstalled reports whether the engine binary exists at the resolved
// BinaryPath.
func (l *Locator) IsInstalled(_ context.Context) bool {
	info, err := os.Stat(l.paths.BinaryPath)
	return err == nil && !info.IsDir()
}

// githubRelease mirrors the fields of interest from the GitHub API
// response.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// Version queries the GitHub releases API for the latest xray-core
// version. On any failure it falls back to the compiled-in (or
// WithPinnedVersion-overridden) pinned version.
func (l *Locator) Version(ctx context.Context) (string, error) {
	log := xraylog.L("xrayinstall")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.releaseAPI, nil)
	if err != nil {
		log.Warn("build release request failed, using pinned version", zap.Error(err))
		return l.pinnedVersion, nil
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		log.Warn("release lookup failed, using pinned version", zap.Error(err))
		return l.pinnedVersion, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("release lookup non-200, using pinned version")
		return l.pinnedVersion, nil
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil || release.TagName == "" {
		log.Warn("release lookup decode failed, using pinned version")
		return l.pinnedVersion, nil
	}

	return release.TagName, nil
}

// InstalledVersion runs the installed binary with "version" and parses its
// reported version string. Returns ErrNotInstalled if no binary is present.
func (l *Locator) InstalledVersion(ctx context.Context) (string, error) {
	if !l.IsInstalled(ctx) {
		return "", ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, l.paths.BinaryPath, "version")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: run installed binary: %v", ErrInstall, err)
	}

	firstLine := strings.SplitN(strings.TrimSpace(string(out)), "\n", 2)[0]
	fields := strings.Fields(firstLine)
	for _, f := range fields {
		if strings.HasPrefix(f, "v") || strings.Contains(f, ".") {
			return f, nil
		}
	}
	return firstLine, nil
}
