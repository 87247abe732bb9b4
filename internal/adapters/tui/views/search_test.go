package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// typeQuery sets the query and runs the search the view would start
func typeQuery(m *SearchModel, query string) tea.Msg {
	m.input.SetValue(query)
	return m.search(query)()
}

func TestSearch(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewSearchModel(r, "a")

	m.Update(typeQuery(m, "vol"))

	if len(m.results) == 0 || m.results[0].Path != "settings/volume" {
		t.Fatalf("expected settings/volume first, got %+v", m.results)
	}
	if !strings.Contains(m.View(), "settings/volume") {
		t.Error("expected result in view")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel, ok := cmd().(SelectPathMsg)
	if !ok {
		t.Fatal("expected SelectPathMsg")
	}
	if sel.Path != "settings/volume" {
		t.Errorf("expected settings/volume, got %s", sel.Path)
	}
}

func TestSearchDropsStaleResults(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewSearchModel(r, "a")

	stale := typeQuery(m, "sc")
	m.input.SetValue("score")

	m.Update(stale)
	if len(m.results) != 0 {
		t.Errorf("expected stale results to be dropped, got %d", len(m.results))
	}
}

func TestSearchReset(t *testing.T) {
	r := newTestRegistry(t, nil)
	m := NewSearchModel(r, "a")

	m.Update(typeQuery(m, "todo"))
	m.Reset()
	if m.input.Value() != "" || m.results != nil || m.pager.Cursor() != 0 {
		t.Error("expected empty search after reset")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SwitchToBrowserMsg); !ok {
		t.Error("expected SwitchToBrowserMsg")
	}
}
