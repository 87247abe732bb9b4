package views

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/tui/styles"
)

// FieldKeyMap defines key bindings for a value field
type FieldKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
}

var FieldKeys = FieldKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next option"),
	),
}

// ValueField is a focused text input for one property value. With Choices
// set, tab replaces the text with the next choice.
type ValueField struct {
	Label   string
	Hint    string
	Choices []string
	input   textinput.Model
}

// NewValueField creates a focused field
func NewValueField(label, placeholder string) *ValueField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Focus()
	return &ValueField{Label: label, input: input}
}

// Update feeds msg to the input, handling tab for choices
func (f *ValueField) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, FieldKeys.Next) {
		f.nextChoice()
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// nextChoice moves to the choice after the current text, or the first
// choice when the text matches none
func (f *ValueField) nextChoice() {
	if len(f.Choices) == 0 {
		return
	}
	next := 0
	for i, c := range f.Choices {
		if c == f.Value() {
			next = (i + 1) % len(f.Choices)
			break
		}
	}
	f.SetValue(f.Choices[next])
}

// Value returns the current text
func (f *ValueField) Value() string {
	return f.input.Value()
}

// SetValue replaces the text and moves the cursor to its end
func (f *ValueField) SetValue(s string) {
	f.input.SetValue(s)
	f.input.CursorEnd()
}

// View renders the label, the input box and the hint
func (f *ValueField) View() string {
	out := styles.Section.Render(f.Label) + "\n" + styles.Editor.Render(f.input.View())
	if f.Hint != "" {
		out += "\n" + styles.Faint.Render(f.Hint)
	}
	return out
}

// Bindings returns the keys the field reacts to
func (f *ValueField) Bindings() []key.Binding {
	if len(f.Choices) > 0 {
		return []key.Binding{FieldKeys.Next, FieldKeys.Submit, FieldKeys.Cancel}
	}
	return []key.Binding{FieldKeys.Submit, FieldKeys.Cancel}
}
