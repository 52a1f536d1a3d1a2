package defined

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ivanhigueram/regionmask"
	"github.com/ivanhigueram/regionmask/geojson"
)

// Entry describes one remote catalog: where to download it and the
// hex SHA-256 digest the file must match.
type Entry struct {
	URL    string
	SHA256 string
}

// Registry maps catalog names to their download entries.
type Registry map[string]Entry

// Fetcher downloads GeoJSON region catalogs named in a [Registry] and
// caches the files on disk. The zero Fetcher is not usable; create
// one with [NewFetcher].
type Fetcher struct {
	registry Registry
	client   *http.Client
	cacheDir string
}

// FetcherOption configures a [Fetcher].
type FetcherOption func(*Fetcher)

// WithClient sets the HTTP client used for downloads. The default is
// [http.DefaultClient].
func WithClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithCacheDir sets the cache directory, bypassing the default
// lookup described at [Fetcher.CacheDir].
func WithCacheDir(dir string) FetcherOption {
	return func(f *Fetcher) { f.cacheDir = dir }
}

// NewFetcher creates a fetcher for the catalogs in registry.
func NewFetcher(registry Registry, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{registry: registry, client: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CacheDir returns the directory downloads are stored in: the
// directory set with [WithCacheDir], the REGIONMASK_CACHE_DIR
// environment variable, or a "regionmask" directory under
// [os.UserCacheDir], in that order.
func (f *Fetcher) CacheDir() (string, error) {
	if f.cacheDir != "" {
		return f.cacheDir, nil
	}
	if dir := os.Getenv("REGIONMASK_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("defined: resolve cache directory: %w", err)
	}
	return filepath.Join(base, "regionmask"), nil
}

// Fetch returns the named catalog, downloading it on first use. The
// file is cached under [Fetcher.CacheDir] and checked against the
// registered digest on every call; a corrupt cache entry is fetched
// again once, and a download that does not match the digest is an
// error. Decode options are passed through to [geojson.Decode].
func (f *Fetcher) Fetch(ctx context.Context, name string, opts ...geojson.Option) (*regionmask.Regions, error) {
	data, err := f.fetchBytes(ctx, name)
	if err != nil {
		return nil, err
	}
	return geojson.DecodeBytes(data, opts...)
}

func (f *Fetcher) fetchBytes(ctx context.Context, name string) ([]byte, error) {
	entry, ok := f.registry[name]
	if !ok {
		return nil, fmt.Errorf("defined: unknown catalog %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("defined: invalid catalog name %q", name)
	}
	dir, err := f.CacheDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name+".geojson")

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if digestMatches(data, entry.SHA256) {
			regionmask.Logger().Debug("using cached region catalog",
				"catalog", name, "path", path)
			return data, nil
		}
		regionmask.Logger().Warn("cached region catalog is corrupt, fetching again",
			"catalog", name, "path", path)
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("defined: read cache: %w", err)
	}

	data, err = f.download(ctx, name, entry)
	if err != nil {
		return nil, err
	}
	if err := writeCache(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Fetcher) download(ctx context.Context, name string, entry Entry) ([]byte, error) {
	regionmask.Logger().Info("downloading region catalog",
		"catalog", name, "url", entry.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entry.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("defined: fetch %q: %w", name, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("defined: fetch %q: %w", name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("defined: fetch %q: unexpected status %s", name, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("defined: fetch %q: %w", name, err)
	}
	if !digestMatches(data, entry.SHA256) {
		return nil, fmt.Errorf("defined: fetch %q: digest mismatch: got %s, want %s",
			name, digest(data), entry.SHA256)
	}
	return data, nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func digestMatches(data []byte, want string) bool {
	return strings.EqualFold(digest(data), want)
}

// writeCache stores a verified download through a temporary file,
// creating the cache directory on demand.
func writeCache(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("defined: create cache directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("defined: write cache: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("defined: write cache: %w", err)
	}
	return nil
}
