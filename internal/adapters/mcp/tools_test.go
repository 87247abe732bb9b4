package mcp

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"artbind/internal/adapters/assets"
	"artbind/internal/adapters/filesystem"
	"artbind/internal/adapters/memengine"
	"artbind/internal/application"
	"artbind/internal/logging"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	dir := t.TempDir()
	return &Host{
		Registry: application.NewRegistry(application.WithLogger(logging.Discard())),
		Loader:   memengine.NewLoader(filepath.Join("..", "memengine", "testdata")),
		Reader:   assets.NewLocalReader(dir),
		Decoder:  assets.Decoder{},
		Catalog:  filesystem.NewCatalog(filepath.Join("..", "memengine", "testdata")),
	}
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("expected content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func mustCall(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) string {
	t.Helper()
	text, isErr := call(t, handler, args)
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	return text
}

func loadDashboard(t *testing.T, h *Host) {
	t.Helper()
	mustCall(t, loadInstanceHandler(h), map[string]any{"instance_id": "dash", "source": "dashboard"})
}

func TestListSources(t *testing.T) {
	h := newTestHost(t)

	text := mustCall(t, listSourcesHandler(h), nil)
	if !strings.Contains(text, "  dashboard  ") {
		t.Errorf("expected unloaded dashboard, got %q", text)
	}

	mustCall(t, loadInstanceHandler(h), map[string]any{"instance_id": "dashboard", "source": "dashboard"})
	text = mustCall(t, listSourcesHandler(h), nil)
	if !strings.Contains(text, "* dashboard  ") {
		t.Errorf("expected loaded dashboard, got %q", text)
	}

	h.Catalog = nil
	if _, isErr := call(t, listSourcesHandler(h), nil); !isErr {
		t.Error("expected error without a catalog")
	}
}

func TestLoadAndList(t *testing.T) {
	h := newTestHost(t)

	text := mustCall(t, loadInstanceHandler(h), map[string]any{"instance_id": "dash", "source": "dashboard"})
	if !strings.Contains(text, "Loaded dashboard as dash") {
		t.Errorf("unexpected message: %s", text)
	}

	ids := mustCall(t, listInstancesHandler(h), nil)
	if strings.TrimSpace(ids) != "dash" {
		t.Errorf("expected dash, got %q", ids)
	}

	props := mustCall(t, listPropertiesHandler(h), map[string]any{"instance_id": "dash"})
	for _, want := range []string{"score  number  3", "settings/volume  number  0.5", "todos/1/done  boolean  true"} {
		if !strings.Contains(props, want) {
			t.Errorf("expected %q in:\n%s", want, props)
		}
	}
	if strings.Contains(props, "mystery") {
		t.Error("expected unclassified property to be skipped")
	}
}

func TestUpdateAndGetProperty(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)

	tests := []struct {
		name  string
		path  string
		value any
		want  string
	}{
		{"number from text", "score", "7", "score  number  7"},
		{"number from json", "score", 8.5, "score  number  8.5"},
		{"nested dot path", "settings.volume", "0.25", "settings/volume  number  0.25"},
		{"hex color", "accent", "#FF0000", "accent  color  #FFFF0000"},
		{"color tuple", "accent", "[0, 0, 255]", "accent  color  #FF0000FF"},
		{"0x color", "accent", "0x3EC293", "accent  color  #FF3EC293"},
		{"0x color with alpha", "accent", "0x803EC293", "accent  color  #803EC293"},
		{"enum", "settings/theme", "light", "settings/theme  enumType  light"},
		{"list item by name", "todos/first/done", "true", "todos/0/done  boolean  true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustCall(t, updatePropertyHandler(h), map[string]any{"instance_id": "dash", "path": tt.path, "value": tt.value})
			got := mustCall(t, getPropertyHandler(h), map[string]any{"instance_id": "dash", "path": tt.path})
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUpdateProperty_Errors(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"unknown instance", map[string]any{"instance_id": "nope", "path": "score", "value": "1"}},
		{"unknown path", map[string]any{"instance_id": "dash", "path": "missing", "value": "1"}},
		{"kind mismatch", map[string]any{"instance_id": "dash", "path": "score", "value": "high"}},
		{"enum outside options", map[string]any{"instance_id": "dash", "path": "mood", "value": "angry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if text, isErr := call(t, updatePropertyHandler(h), tt.args); !isErr {
				t.Errorf("expected tool error, got %q", text)
			}
		})
	}
}

func TestSetInputAndAdvance(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)

	text := mustCall(t, setInputHandler(h), map[string]any{"instance_id": "dash", "input": "running", "value": "true"})
	if !strings.Contains(text, `"running"`) {
		t.Errorf("expected running state, got %s", text)
	}

	mustCall(t, advanceHandler(h), map[string]any{"instance_id": "dash", "seconds": 1.0, "steps": 4.0})
	got := mustCall(t, getPropertyHandler(h), map[string]any{"instance_id": "dash", "path": "score"})
	if got != "score  number  10" {
		t.Errorf("expected score to reach 10, got %q", got)
	}

	if text, isErr := call(t, advanceHandler(h), map[string]any{"instance_id": "dash", "seconds": -1.0}); !isErr {
		t.Errorf("expected error for negative seconds, got %q", text)
	}
}

func TestLoadAsset(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 3))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	file := filepath.Join(h.Reader.(*assets.LocalReader).Dir, "avatar.png")
	if err := os.WriteFile(file, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := mustCall(t, loadAssetHandler(h), map[string]any{
		"instance_id": "dash", "kind": "image", "source": "avatar.png", "path": "avatar",
	})
	if !strings.Contains(text, "png 2x3") {
		t.Errorf("unexpected message: %s", text)
	}

	text = mustCall(t, loadAssetHandler(h), map[string]any{
		"instance_id": "dash", "kind": "image", "source": "avatar.png",
	})
	if !strings.Contains(text, "image slot") {
		t.Errorf("expected slot load, got %s", text)
	}

	if text, isErr := call(t, loadAssetHandler(h), map[string]any{
		"instance_id": "dash", "kind": "image", "source": "https://cdn/avatar.png",
	}); !isErr {
		t.Errorf("expected error without a fetcher, got %q", text)
	}
}

func TestCacheStatsAndUnload(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)
	mustCall(t, getPropertyHandler(h), map[string]any{"instance_id": "dash", "path": "settings/volume"})

	stats := mustCall(t, cacheStatsHandler(h), nil)
	if !strings.Contains(stats, "instances: 1") || !strings.Contains(stats, "dash: 1") {
		t.Errorf("unexpected stats:\n%s", stats)
	}

	mustCall(t, clearCacheHandler(h), map[string]any{"instance_id": "dash"})
	stats = mustCall(t, cacheStatsHandler(h), nil)
	if !strings.Contains(stats, "dash: 0") {
		t.Errorf("expected cleared cache, got:\n%s", stats)
	}

	mustCall(t, unloadInstanceHandler(h), map[string]any{"instance_id": "dash"})
	if text, isErr := call(t, unloadInstanceHandler(h), map[string]any{"instance_id": "dash"}); !isErr {
		t.Errorf("expected error unloading twice, got %q", text)
	}
}

func TestSearchProperties(t *testing.T) {
	h := newTestHost(t)
	loadDashboard(t, h)

	text := mustCall(t, searchHandler(h), map[string]any{"instance_id": "dash", "query": "vol"})
	if !strings.HasPrefix(text, "settings/volume") {
		t.Errorf("expected volume first, got:\n%s", text)
	}
}
