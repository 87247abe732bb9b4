package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/domain"
	"artbind/internal/ports"
)

// AssetLoader provides what image and font edits need. Any field may be
// nil, which disables that source type.
type AssetLoader struct {
	Fetcher ports.Fetcher
	Reader  ports.FileReader
	Decoder ports.AssetDecoder
}

// EditModel edits the value of one property
type EditModel struct {
	ViewState
	registry   *application.Registry
	instanceID string
	assets     *AssetLoader
	row        commands.PropertyRow
	field      *ValueField
}

// NewEditModel creates a new edit view model
func NewEditModel(registry *application.Registry, instanceID string, assets *AssetLoader) *EditModel {
	return &EditModel{
		registry:   registry,
		instanceID: instanceID,
		assets:     assets,
		field:      NewValueField("", ""),
	}
}

// EditSuccessMsg is sent when an edit was applied
type EditSuccessMsg struct {
	Path    string
	Message string
}

type editErrMsg struct {
	err error
}

// SetRow prepares the form for row
func (m *EditModel) SetRow(row commands.PropertyRow) {
	m.row = row
	m.ClearMessage()

	field := NewValueField(fmt.Sprintf("%s (%s)", row.Path, row.Kind), placeholder(row.Kind))
	field.Hint = hint(row.Kind)
	if row.Kind == domain.KindEnum {
		if full, err := commands.NewGetPropertyCommand(m.registry, m.instanceID, row.Path).Execute(context.Background()); err == nil {
			field.Choices = full.Options
			field.Hint = "options: " + strings.Join(full.Options, ", ")
		}
	}
	field.SetValue(editText(row.Value))
	m.field = field
}

// Init initializes the edit view
func (m *EditModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case editErrMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, FieldKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		case key.Matches(msg, FieldKeys.Submit):
			return m, m.submit(m.field.Value())
		}
	}

	return m, m.field.Update(msg)
}

func (m *EditModel) submit(text string) tea.Cmd {
	row := m.row
	return func() tea.Msg {
		ctx := context.Background()

		if row.Kind == domain.KindImage || row.Kind == domain.KindFont {
			return m.loadAsset(ctx, row, strings.TrimSpace(text))
		}

		result, err := commands.NewUpdatePropertyCommand(m.registry, m.instanceID, row.Path, EditValue(row.Kind, text)).Execute(ctx)
		if err != nil {
			return editErrMsg{err}
		}
		return EditSuccessMsg{Path: result.Path, Message: result.Message}
	}
}

func (m *EditModel) loadAsset(ctx context.Context, row commands.PropertyRow, source string) tea.Msg {
	if m.assets == nil || m.assets.Decoder == nil {
		return editErrMsg{fmt.Errorf("asset loading is disabled: %w", application.ErrInvalidOperation)}
	}
	cmd := commands.NewLoadAssetCommand(m.registry, m.assets.Fetcher, m.assets.Reader, m.assets.Decoder,
		m.instanceID, row.Path, row.Kind, source)
	result, err := cmd.Execute(ctx)
	if err != nil {
		return editErrMsg{err}
	}
	return EditSuccessMsg{Path: row.Path, Message: result.Message}
}

// EditValue converts edited text to a raw value for kind. Text kinds keep
// the text verbatim; everything else is read as YAML.
func EditValue(kind domain.Kind, text string) any {
	switch kind {
	case domain.KindString, domain.KindEnum, domain.KindArtboard:
		return text
	}
	return commands.ParseValue(text)
}

// editText renders v for editing
func editText(v domain.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case domain.StringValue:
		return string(v)
	case domain.ArtboardValue:
		return string(v)
	case domain.Asset:
		return v.Source
	}
	return domain.FormatValue(v)
}

func placeholder(kind domain.Kind) string {
	switch kind {
	case domain.KindColor:
		return "#RRGGBB"
	case domain.KindImage, domain.KindFont:
		return "https://... or ./file"
	case domain.KindBoolean:
		return "true"
	}
	return ""
}

func hint(kind domain.Kind) string {
	switch kind {
	case domain.KindNumber:
		return "decimal number"
	case domain.KindInteger, domain.KindSymbolListIndex:
		return "whole number, fractions are truncated"
	case domain.KindColor:
		return "#RRGGBB, #AARRGGBB, 0xAARRGGBB, rgb(r, g, b), rgba(r, g, b, a), [r, g, b], {r: 255, g: 0, b: 0}"
	case domain.KindImage:
		return "png, jpeg, gif, bmp or webp from a URL or file"
	case domain.KindFont:
		return "ttf, otf or ttc from a URL or file"
	case domain.KindArtboard:
		return "artboard name"
	}
	return ""
}

// View renders the edit view
func (m *EditModel) View() string {
	return screen("Edit property", "current: "+domain.FormatValue(m.row.Value),
		m.field.View(),
		RenderMessage(m.Message, m.MessageErr),
		renderHelp(m.field.Bindings()...),
	)
}
