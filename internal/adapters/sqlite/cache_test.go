package sqlite

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "assets.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("failed to close cache: %v", err)
		}
	})
	return c
}

func TestCache_GetPut(t *testing.T) {
	c := openTestCache(t)

	if _, ok, err := c.Get("https://cdn/hero.png"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put("https://cdn/hero.png", []byte("pixels")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok, err := c.Get("https://cdn/hero.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || !bytes.Equal(data, []byte("pixels")) {
		t.Errorf("expected pixels, got %q (ok=%v)", data, ok)
	}

	if err := c.Put("https://cdn/hero.png", []byte("newer")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _, _ = c.Get("https://cdn/hero.png")
	if string(data) != "newer" {
		t.Errorf("expected replaced entry, got %q", data)
	}
}

func TestCache_Stats(t *testing.T) {
	c := openTestCache(t)
	c.Put("a", []byte("1234"))
	c.Put("b", []byte("12"))
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Entries != 2 {
		t.Errorf("expected 2 entries, got %d", stats.Entries)
	}
	if stats.Bytes != 6 {
		t.Errorf("expected 6 bytes, got %d", stats.Bytes)
	}
	if stats.Hits != 2 {
		t.Errorf("expected 2 hits, got %d", stats.Hits)
	}
	if stats.Path != c.Path() {
		t.Errorf("expected path %s, got %s", c.Path(), stats.Path)
	}
}

func TestCache_PruneEvictsLeastRecentlyUsed(t *testing.T) {
	c := openTestCache(t)
	c.Put("old", []byte("aaaa"))
	c.Put("mid", []byte("bbbb"))
	c.Put("new", []byte("cccc"))
	// touching old makes mid the least recently used
	c.Get("old")

	removed, err := c.Prune(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
	if _, ok, _ := c.Get("mid"); ok {
		t.Error("expected mid to be evicted")
	}
	for _, key := range []string{"old", "new"} {
		if _, ok, _ := c.Get(key); !ok {
			t.Errorf("expected %s to survive", key)
		}
	}
}

func TestCache_Clear(t *testing.T) {
	c := openTestCache(t)
	c.Put("a", []byte("1"))
	if err := c.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, _ := c.Stats()
	if stats.Entries != 0 {
		t.Errorf("expected empty cache, got %d entries", stats.Entries)
	}
}

func TestCache_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	c.Put("a", []byte("persisted"))
	c.Close()

	c, err = Open(path)
	if err != nil {
		t.Fatalf("failed to reopen cache: %v", err)
	}
	defer c.Close()
	data, ok, _ := c.Get("a")
	if !ok || string(data) != "persisted" {
		t.Errorf("expected persisted entry, got %q (ok=%v)", data, ok)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DefaultPath(); got != "/tmp/xdg/artbind/assets.db" {
		t.Errorf("expected /tmp/xdg/artbind/assets.db, got %s", got)
	}
}

func TestHashSource(t *testing.T) {
	a := hashSource("https://cdn/a.png")
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
	if a == hashSource("https://cdn/b.png") {
		t.Error("expected distinct hashes")
	}
}
