// Package assets reads, fetches, caches and decodes the images and fonts
// that animations reference.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"artbind/internal/ports"
)

// DefaultMaxBytes bounds a single asset download or file read
const DefaultMaxBytes = 32 << 20

// HTTPFetcher downloads assets over http(s)
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

var _ ports.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
// A zero timeout means no client-side limit beyond the context.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: DefaultMaxBytes,
	}
}

// Fetch downloads url. Non-2xx responses and bodies over the size limit are
// errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid asset url %s: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error fetching %s: %s", url, http.StatusText(resp.StatusCode))
	}
	return readLimited(resp.Body, f.maxBytes, url)
}

func readLimited(r io.Reader, limit int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%s exceeds %d bytes", name, limit)
	}
	return data, nil
}

// LocalReader reads assets from disk. Relative paths resolve against Dir
// and a leading ~ expands to the home directory.
type LocalReader struct {
	Dir      string
	maxBytes int64
}

var _ ports.FileReader = (*LocalReader)(nil)

func NewLocalReader(dir string) *LocalReader {
	return &LocalReader{Dir: expandHome(dir), maxBytes: DefaultMaxBytes}
}

func (r *LocalReader) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path = strings.TrimPrefix(path, "file://")
	path = expandHome(path)
	if !filepath.IsAbs(path) && r.Dir != "" {
		path = filepath.Join(r.Dir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(f, r.maxBytes, path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// CachingFetcher serves fetches from an AssetCache and fills it on miss.
// Cache failures are logged and fall through to the network.
type CachingFetcher struct {
	next  ports.Fetcher
	cache ports.AssetCache
	log   *slog.Logger
}

var _ ports.Fetcher = (*CachingFetcher)(nil)

func NewCachingFetcher(next ports.Fetcher, cache ports.AssetCache, log *slog.Logger) *CachingFetcher {
	if log == nil {
		log = slog.Default()
	}
	return &CachingFetcher{next: next, cache: cache, log: log}
}

func (c *CachingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, ok, err := c.cache.Get(url)
	switch {
	case err != nil:
		c.log.Warn("asset cache read failed", "url", url, "error", err)
	case ok:
		c.log.Debug("asset cache hit", "url", url, "bytes", len(data))
		return data, nil
	}

	data, err = c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(url, data); err != nil {
		c.log.Warn("asset cache write failed", "url", url, "error", err)
	}
	return data, nil
}
