package config

import (
	"os"
	"time"
)

const (
	DefaultFixture      = "examples/dashboard.yaml"
	DefaultLogLevel     = "info"
	DefaultFetchTimeout = 15 * time.Second
)

// Fixture returns the animation fixture from ARTBIND_FIXTURE,
// falling back to DefaultFixture.
func Fixture() string {
	if env := os.Getenv("ARTBIND_FIXTURE"); env != "" {
		return env
	}
	return DefaultFixture
}

// LogLevel returns the log level name from ARTBIND_LOG_LEVEL,
// falling back to DefaultLogLevel.
func LogLevel() string {
	if env := os.Getenv("ARTBIND_LOG_LEVEL"); env != "" {
		return env
	}
	return DefaultLogLevel
}

// AssetCachePath returns the asset cache database from ARTBIND_ASSET_CACHE.
// Empty means the default location; "off" disables the cache.
func AssetCachePath() string {
	return os.Getenv("ARTBIND_ASSET_CACHE")
}

// AssetCacheDisabled reports whether ARTBIND_ASSET_CACHE is "off"
func AssetCacheDisabled() bool {
	return AssetCachePath() == "off"
}

// FetchTimeout returns the asset download timeout from ARTBIND_FETCH_TIMEOUT
// (a Go duration such as "30s"), falling back to DefaultFetchTimeout when
// unset or invalid.
func FetchTimeout() time.Duration {
	if env := os.Getenv("ARTBIND_FETCH_TIMEOUT"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			return d
		}
	}
	return DefaultFetchTimeout
}

// Editor returns the editor command from ARTBIND_EDITOR. Empty means
// $VISUAL or $EDITOR.
func Editor() string {
	return os.Getenv("ARTBIND_EDITOR")
}
