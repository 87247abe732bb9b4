package sqlite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"artbind/internal/ports"

	_ "github.com/mattn/go-sqlite3"
)

const schemaVersion = "1"

// Cache implements ports.ManagedCache using SQLite. Entries are keyed by a
// hash of the asset source.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Ensure Cache implements ManagedCache
var _ ports.ManagedCache = (*Cache)(nil)

// Open opens or creates the cache database at path. An empty path uses
// DefaultPath.
func Open(path string) (*Cache, error) {
	if path == "" {
		path = DefaultPath()
	}
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS assets (
			key TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			data BLOB NOT NULL,
			size INTEGER NOT NULL,
			hits INTEGER NOT NULL DEFAULT 0,
			last_used INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assets_last_used ON assets(last_used);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	c := &Cache{db: db, dbPath: path}
	if err := c.checkSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return c, nil
}

// DefaultPath returns the cache database location under XDG_CACHE_HOME
func DefaultPath() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, _ := os.UserHomeDir()
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "artbind", "assets.db")
}

// Path returns the database file backing the cache
func (c *Cache) Path() string {
	return c.dbPath
}

// Close closes the database connection
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// checkSchema drops cached entries written by another schema version
func (c *Cache) checkSchema() error {
	var version string
	c.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if version == schemaVersion {
		return nil
	}
	return c.withTx(func(tx *cacheTx) error {
		if err := tx.deleteAll(); err != nil {
			return err
		}
		return tx.setMeta("schema_version", schemaVersion)
	})
}

// hashSource returns a short hash of an asset source
func hashSource(source string) string {
	h := sha256.Sum256([]byte(source))
	return hex.EncodeToString(h[:8])
}

// Get returns the cached bytes for source and marks the entry as used
func (c *Cache) Get(source string) ([]byte, bool, error) {
	key := hashSource(source)

	var data []byte
	err := c.db.QueryRow(`SELECT data FROM assets WHERE key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	_, err = c.db.Exec(`
		UPDATE assets
		SET hits = hits + 1,
			last_used = (SELECT COALESCE(MAX(last_used), 0) + 1 FROM assets)
		WHERE key = ?
	`, key)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put stores data for source, replacing any earlier entry
func (c *Cache) Put(source string, data []byte) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO assets (key, source, data, size, hits, last_used)
		VALUES (?, ?, ?, ?, 0, (SELECT COALESCE(MAX(last_used), 0) + 1 FROM assets))
	`, hashSource(source), source, data, len(data))
	return err
}

// Stats reports the number of entries, their total size and total hits
func (c *Cache) Stats() (ports.CacheStats, error) {
	stats := ports.CacheStats{Path: c.dbPath}
	err := c.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(size), 0), COALESCE(SUM(hits), 0) FROM assets
	`).Scan(&stats.Entries, &stats.Bytes, &stats.Hits)
	return stats, err
}

// Prune evicts least recently used entries until at most maxBytes remain
func (c *Cache) Prune(maxBytes int64) (int, error) {
	removed := 0
	err := c.withTx(func(tx *cacheTx) error {
		keys, err := tx.overBudget(maxBytes)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := tx.delete(key); err != nil {
				return err
			}
		}
		removed = len(keys)
		return nil
	})
	return removed, err
}

// Clear removes every cached entry
func (c *Cache) Clear() error {
	return c.withTx(func(tx *cacheTx) error {
		return tx.deleteAll()
	})
}
