package xrayinstall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocator(t *testing.T, releaseServer *httptest.Server) *Locator {
	t.Helper()

	appName := "DonutBrowserTest"
	l, err := New(appName)
	require.NoError(t, err)

	l.paths.InstallRoot = t.TempDir()
	l.paths.AssetsRoot = filepath.Dir(l.paths.InstallRoot)
	l.paths.BinaryPath = filepath.Join(l.paths.InstallRoot, executableName(hostOS()))

	if releaseServer != nil {
		l.releaseAPI = releaseServer.URL
	}
	return l
}

func TestLocator_IsInstalled(t *testing.T) {
	l := newTestLocator(t, nil)
	assert.False(t, l.IsInstalled(context.Background()))

	require.NoError(t, os.WriteFile(l.paths.BinaryPath, []byte("fake"), 0o755))
	assert.True(t, l.IsInstalled(context.Background()))
}

func TestLocator_Version_FallsBackOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	l := newTestLocator(t, server)
	version, err := l.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pinnedVersion, version)
}

func TestLocator_Version_FromRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tag_name":"v99.0.0"}`))
	}))
	defer server.Close()

	l := newTestLocator(t, server)
	version, err := l.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v99.0.0", version)
}

func TestLocator_Version_CustomPin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	appName := "DonutBrowserTest"
	l, err := New(appName, WithPinnedVersion("v1.2.3"))
	require.NoError(t, err)
	l.releaseAPI = server.URL

	version, err := l.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", version)
}

func TestLocator_InstalledVersion_NotInstalled(t *testing.T) {
	l := newTestLocator(t, nil)
	_, err := l.InstalledVersion(context.Background())
	require.ErrorIs(t, err, ErrNotInstalled)
}
