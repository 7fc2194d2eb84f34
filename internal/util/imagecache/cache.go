// Package imagecache keeps downloaded images on disk so repeated runs over
// the same URL do not fetch it again.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	httputil "github.com/jmylchreest/pbn/internal/util/http"
)

// Cache stores fetched images under Dir, one file per URL.
type Cache struct {
	Dir string
	// Refresh re-downloads images that are already cached.
	Refresh bool
	// FetchOptions are passed to every download.
	FetchOptions httputil.FetchOptions
}

// DefaultDir returns the per-user cache directory for pbn.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "pbn", "images"), nil
	}
	return filepath.Join(cacheDir, "pbn", "images"), nil
}

// Filename returns the cache file name for url: a hash of the URL plus the
// extension of its path, if it has a short one.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 {
		ext = ".img"
	}
	return fmt.Sprintf("%x%s", hash[:16], ext)
}

// Path returns where url is or would be cached.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.Dir, Filename(url))
}

// Fetch returns the path of the cached copy of url, downloading it first
// when it is missing or Refresh is set.
func (c *Cache) Fetch(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}
	if c.Dir == "" {
		return "", fmt.Errorf("cache directory not set")
	}

	path := c.Path(url)
	if !c.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := httputil.Fetch(ctx, url, c.FetchOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	// Partial downloads never appear under the final name.
	tmp, err := os.CreateTemp(c.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store cached image: %w", err)
	}
	return path, nil
}
