package xrayinstall

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/brunusansi/donutbrowser/internal/xraylog"
)

// Install downloads the correct archive for the current platform, extracts
// it into the install root, fixes up the executable's permissions, and
// relocates the shared geo-data assets one directory up. progress may be
// nil.
func (l *Locator) Install(ctx context.Context, progress ProgressFunc) error {
	log := xraylog.L("xrayinstall")

	version, err := l.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: resolve version: %v", ErrInstall, err)
	}

	asset := assetName(hostOS(), hostArch())

	if err := os.MkdirAll(l.paths.InstallRoot, 0o755); err != nil {
		return fmt.Errorf("%w: create install root: %v", ErrInstall, err)
	}

	tempFile, err := os.CreateTemp(l.paths.InstallRoot, "xray-download-*.zip")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrInstall, err)
	}
	zipPath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(zipPath)

	directURL := fmt.Sprintf("%s/%s/%s", l.downloadBase, version, asset)
	log.Info("downloading xray release", zap.String("url", directURL))

	if err := l.downloadTo(ctx, directURL, zipPath, progress); err != nil {
		mirrorURL := fmt.Sprintf("%s/%s/%s", l.mirrorBase, version, asset)
		log.Warn("direct download failed, retrying via mirror", zap.Error(err), zap.String("mirror", mirrorURL))
		if err := l.downloadTo(ctx, mirrorURL, zipPath, progress); err != nil {
			return fmt.Errorf("%w: download %s (and mirror): %v", ErrInstall, asset, err)
		}
	}

	if err := extractZip(zipPath, l.paths.InstallRoot); err != nil {
		return fmt.Errorf("%w: extract %s: %v", ErrInstall, asset, err)
	}

	if err := chmodExecutable(l.paths.BinaryPath); err != nil {
		return fmt.Errorf("%w: chmod binary: %v", ErrInstall, err)
	}

	if err := relocateGeoAssets(l.paths.InstallRoot, l.paths.AssetsRoot); err != nil {
		return fmt.Errorf("%w: relocate geo assets: %v", ErrInstall, err)
	}

	return nil
}

// downloadTo streams url into dest, calling progress (if non-nil) after
// each chunk with bytes downloaded so far and the advertised total (0 if
// unknown).
func (l *Locator) downloadTo(ctx context.Context, url, dest string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	if progress == nil {
		_, err = io.Copy(f, resp.Body)
		return err
	}

	buf := make([]byte, 32*1024)
	var downloaded int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			progress(downloaded, total)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return readErr
		}
	}
	return nil
}

// relocateGeoAssets moves geoip.dat and geosite.dat from installRoot up
// into assetsRoot, where they are shared across (os, arch) variants. If a
// destination already exists, the freshly-extracted source is removed
// instead of overwriting it.
func relocateGeoAssets(installRoot, assetsRoot string) error {
	for _, name := range []string{geoipAsset, geositeAsset} {
		src := filepath.Join(installRoot, name)
		if _, err := os.Stat(src); err != nil {
			continue
		}

		dst := filepath.Join(assetsRoot, name)
		if _, err := os.Stat(dst); err == nil {
			os.Remove(src)
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}
	return nil
}
