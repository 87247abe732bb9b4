package tui

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/memengine"
	"artbind/internal/adapters/tui/views"
	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/logging"
)

type failingEditor struct{}

func (failingEditor) OpenFile(string) error { return errors.New("no editor") }

func (failingEditor) Command(string) (*exec.Cmd, error) { return nil, errors.New("no editor") }

func newTestApp(t *testing.T) (*App, *application.Registry) {
	t.Helper()

	registry := application.NewRegistry(application.WithLogger(logging.Discard()))
	loader := memengine.NewLoader(filepath.Join("..", "memengine", "testdata"))
	if _, err := commands.NewLoadInstanceCommand(loader, registry, "dashboard", "dashboard").Execute(t.Context()); err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	app := NewApp(Options{
		Registry:   registry,
		Loader:     loader,
		Editor:     failingEditor{},
		Changes:    views.NewChangeLog(4),
		InstanceID: "dashboard",
		Source:     "dashboard",
	})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app.Update(app.Init()())
	return app, registry
}

func TestAppSwitchViews(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		msg  tea.Msg
		want ViewState
	}{
		{"edit", views.SwitchToEditMsg{Row: commands.PropertyRow{Path: "score"}}, ViewEdit},
		{"back to browser", views.SwitchToBrowserMsg{}, ViewBrowser},
		{"search", views.SwitchToSearchMsg{}, ViewSearch},
		{"select result", views.SelectPathMsg{Path: "settings/volume"}, ViewBrowser},
		{"help", views.SwitchToHelpMsg{}, ViewHelp},
		{"edit applied", views.EditSuccessMsg{Path: "score", Message: "Set score = 4"}, ViewBrowser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Update(tt.msg)
			if app.state != tt.want {
				t.Errorf("expected state %d, got %d", tt.want, app.state)
			}
		})
	}

	if !strings.Contains(app.View(), "Set score = 4") {
		t.Error("expected the edit message in the browser view")
	}

	app.Update(views.SelectPathMsg{Path: "score", CopyErr: errors.New("no clipboard")})
	if !strings.Contains(app.View(), "Copy failed: no clipboard") {
		t.Error("expected the clipboard error in the browser view")
	}
}

func TestAppReload(t *testing.T) {
	app, registry := newTestApp(t)

	before, _ := registry.Get("dashboard")

	_, cmd := app.Update(views.ReloadMsg{})
	msg, ok := cmd().(reloadedMsg)
	if !ok {
		t.Fatal("expected reloadedMsg")
	}
	if msg.err {
		t.Fatalf("unexpected reload error: %s", msg.message)
	}

	after, _ := registry.Get("dashboard")
	if before == after {
		t.Error("expected reload to replace the instance")
	}

	app.Update(msg)
	if !strings.Contains(app.View(), "Loaded dashboard") {
		t.Errorf("expected reload message in view, got:\n%s", app.View())
	}
}

func TestAppReloadFailure(t *testing.T) {
	app, _ := newTestApp(t)
	app.source = "missing"

	_, cmd := app.Update(views.ReloadMsg{})
	msg := cmd().(reloadedMsg)
	if !msg.err || !strings.HasPrefix(msg.message, "Reload failed") {
		t.Errorf("expected reload failure, got %+v", msg)
	}
}

func TestAppOpenEditorError(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(views.OpenEditorMsg{})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	app.Update(cmd())
	if !strings.Contains(app.View(), "no editor") {
		t.Errorf("expected editor error in view, got:\n%s", app.View())
	}

	app.editor = nil
	if _, cmd := app.Update(views.OpenEditorMsg{}); cmd != nil {
		t.Error("expected no command without an editor")
	}
}
