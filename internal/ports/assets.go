package ports

import (
	"context"

	"artbind/internal/domain"
)

// Fetcher retrieves remote asset bytes
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FileReader reads local asset bytes
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// AssetDecoder turns encoded bytes into an engine-ready asset
type AssetDecoder interface {
	// Decode decodes data as kind (domain.KindImage or domain.KindFont).
	Decode(ctx context.Context, kind domain.Kind, data []byte) (domain.Asset, error)
}

// AssetCache stores fetched bytes keyed by source
type AssetCache interface {
	Get(key string) (data []byte, ok bool, err error)
	Put(key string, data []byte) error
	Close() error
}

// CacheStats summarises the contents of an AssetCache
type CacheStats struct {
	Entries int
	Bytes   int64
	Hits    int64
	Path    string
}

// ManagedCache is an AssetCache that can report on and trim its contents
type ManagedCache interface {
	AssetCache
	Stats() (CacheStats, error)
	// Prune evicts least recently used entries until the cache holds at
	// most maxBytes, returning the number of entries removed.
	Prune(maxBytes int64) (int, error)
	Clear() error
}
