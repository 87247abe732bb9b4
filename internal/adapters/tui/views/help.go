package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// helpGroups are the browser bindings shown as columns
var helpGroups = [][]key.Binding{
	{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Left, BrowserKeys.Right, BrowserKeys.PgUp, BrowserKeys.PgDown},
	{BrowserKeys.Enter, BrowserKeys.Edit, BrowserKeys.Toggle, BrowserKeys.Copy, BrowserKeys.Search},
	{BrowserKeys.Play, BrowserKeys.Step, BrowserKeys.Open, BrowserKeys.Reload, BrowserKeys.Help, BrowserKeys.Quit},
}

const pathHelp = `Nested  settings/volume or settings.volume
Lists   todos/0/done or todos/first/done
Colors  #RRGGBB, #AARRGGBB, rgb(r, g, b), [r, g, b]
Assets  images and fonts take a URL or a file path`

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	return screen("artbind help", "Live ViewModel property browser",
		helpView.FullHelpView(helpGroups),
		styles.Section.Render("Values")+"\n"+styles.Faint.Render(pathHelp),
		renderHelp(HelpKeys.Close),
	)
}
