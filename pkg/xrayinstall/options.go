package xrayinstall

import (
	"net/http"
	"time"
)

// Option configures a Locator, matching the functional-option pattern used
// throughout the pack for service construction.
type Option = func(l *Locator)

// WithPinnedVersion overrides the compiled-in fallback version used when
// GitHub release lookup fails.
func WithPinnedVersion(version string) Option {
	return func(l *Locator) {
		l.pinnedVersion = version
	}
}

// WithHTTPClient overrides the HTTP client used for release lookup and
// download. Useful for tests that point at a local httptest.Server.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Locator) {
		l.httpClient = client
	}
}

// WithMirrorBase overrides the mirror URL prefix used when the direct
// download fails.
func WithMirrorBase(base string) Option {
	return func(l *Locator) {
		l.mirrorBase = base
	}
}

// WithDownloadBase overrides the direct download URL prefix.
func WithDownloadBase(base string) Option {
	return func(l *Locator) {
		l.downloadBase = base
	}
}

// WithReleaseAPI overrides the GitHub releases API URL used for version
// discovery.
func WithReleaseAPI(url string) Option {
	return func(l *Locator) {
		l.releaseAPI = url
	}
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 300 * time.Second}
}
