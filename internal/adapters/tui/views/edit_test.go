package views

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/domain"
)

func TestEditValue(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		text string
		want any
	}{
		{"number", domain.KindNumber, "0.25", 0.25},
		{"integer", domain.KindInteger, "42", uint64(42)},
		{"negative", domain.KindNumber, "-3", int64(-3)},
		{"boolean", domain.KindBoolean, "false", false},
		{"hex color", domain.KindColor, "#FF0000", "#FF0000"},
		{"0x color", domain.KindColor, "0xFF3EC293", "0xFF3EC293"},
		{"symbol index", domain.KindSymbolListIndex, "2", uint64(2)},
		{"color list", domain.KindColor, "[0, 0, 255]", []any{uint64(0), uint64(0), uint64(255)}},
		{"string stays text", domain.KindString, "42", "42"},
		{"enum stays text", domain.KindEnum, "true", "true"},
		{"artboard stays text", domain.KindArtboard, "Main", "Main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, EditValue(tt.kind, tt.text)); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEditText(t *testing.T) {
	tests := []struct {
		name  string
		value domain.Value
		want  string
	}{
		{"unset", nil, ""},
		{"string is unquoted", domain.StringValue("hello"), "hello"},
		{"artboard", domain.ArtboardValue("Main"), "Main"},
		{"asset shows source", domain.Asset{AssetKind: domain.KindImage, Source: "hero.png"}, "hero.png"},
		{"boolean", domain.BooleanValue(true), "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editText(tt.value); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func findRow(t *testing.T, r *application.Registry, path string) commands.PropertyRow {
	t.Helper()
	row, err := commands.NewGetPropertyCommand(r, "a", path).Execute(t.Context())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return *row
}

func TestEditSubmit(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewEditModel(r, "a", nil)

	m.SetRow(findRow(t, r, "settings/volume"))
	if got := m.field.Value(); got != "0.5" {
		t.Errorf("expected prefilled 0.5, got %q", got)
	}

	m.field.SetValue("0.75")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(EditSuccessMsg)
	if !ok {
		t.Fatal("expected EditSuccessMsg")
	}
	if msg.Path != "settings/volume" {
		t.Errorf("expected settings/volume, got %s", msg.Path)
	}

	v, _ := r.GetPropertyValue("a", "settings/volume")
	if v != domain.NumberValue(0.75) {
		t.Errorf("expected 0.75, got %v", v)
	}
}

func TestEditSubmitErrors(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewEditModel(r, "a", nil)

	m.SetRow(findRow(t, r, "score"))
	m.field.SetValue("not a number")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd()
	if _, ok := msg.(editErrMsg); !ok {
		t.Fatalf("expected editErrMsg, got %T", msg)
	}
	m.Update(msg)
	if !m.MessageErr || m.Message == "" {
		t.Error("expected an error message")
	}

	// assets need a loader
	m.SetRow(findRow(t, r, "avatar"))
	m.field.SetValue("hero.png")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	errMsg, ok := cmd().(editErrMsg)
	if !ok {
		t.Fatal("expected editErrMsg")
	}
	if !errors.Is(errMsg.err, application.ErrInvalidOperation) {
		t.Errorf("expected ErrInvalidOperation, got %v", errMsg.err)
	}
}

func TestEditEnumChoices(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewEditModel(r, "a", nil)

	m.SetRow(findRow(t, r, "settings/theme"))
	if diff := cmp.Diff([]string{"dark", "light"}, m.field.Choices); diff != "" {
		t.Errorf("choices mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(m.View(), "options: dark, light") {
		t.Error("expected options hint in view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.field.Value(); got != "light" {
		t.Errorf("expected light after tab, got %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.field.Value(); got != "dark" {
		t.Errorf("expected dark after second tab, got %q", got)
	}
}

func TestEditCancel(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewEditModel(r, "a", nil)
	m.SetRow(findRow(t, r, "score"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("expected SwitchToBrowserMsg")
	}
}
