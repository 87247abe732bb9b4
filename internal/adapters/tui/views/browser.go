package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/tui/styles"
	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/domain"
)

// frameRate is the tick rate used while timelines are playing
const frameRate = 30

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Enter  key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Play   key.Binding
	Step   key.Binding
	Copy   key.Binding
	Open   key.Binding
	Reload key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+b"),
		key.WithHelp("pgup", "previous page"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+f"),
		key.WithHelp("pgdn", "next page"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle/edit"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "flip/fire"),
	),
	Play: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play/pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "step"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open fixture"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the property tree view
type BrowserModel struct {
	ViewState
	registry   *application.Registry
	instanceID string
	changes    *ChangeLog

	rows      []commands.PropertyRow
	visible   []commands.PropertyRow
	collapsed map[string]bool
	pager     *Pager
	loaded    bool

	playing bool
	elapsed float64
}

// NewBrowserModel creates a new browser model for one registered instance
func NewBrowserModel(registry *application.Registry, instanceID string, changes *ChangeLog) *BrowserModel {
	return &BrowserModel{
		registry:   registry,
		instanceID: instanceID,
		changes:    changes,
		collapsed:  make(map[string]bool),
		pager:      NewPager(20),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadProperties
}

func (m *BrowserModel) loadProperties() tea.Msg {
	rows, err := commands.NewListPropertiesCommand(m.registry, m.instanceID).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return propertiesLoadedMsg{rows}
}

type propertiesLoadedMsg struct {
	rows []commands.PropertyRow
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

type tickMsg time.Time

type advancedMsg struct {
	result *commands.AdvanceResult
	dt     float64
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case propertiesLoadedMsg:
		m.rows = msg.rows
		m.loaded = true
		m.refreshVisible()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case successMsg:
		m.SetMessage(msg.message, false)
		return m, m.loadProperties

	case tickMsg:
		if !m.playing {
			return m, nil
		}
		return m, m.advance(1.0 / frameRate)

	case advancedMsg:
		m.elapsed += msg.dt
		cmds := []tea.Cmd{m.loadProperties}
		if m.playing {
			if msg.result.Active {
				cmds = append(cmds, tick())
			} else {
				m.playing = false
				m.SetMessage(fmt.Sprintf("Timelines finished at %.2fs", m.elapsed), false)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager.Move(-1)
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.pager.Move(1)
			return m, nil

		case key.Matches(msg, BrowserKeys.PgUp):
			m.pager.Flip(-1)
			return m, nil

		case key.Matches(msg, BrowserKeys.PgDown):
			m.pager.Flip(1)
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if row, ok := m.selectedRow(); ok {
				if isContainer(row) && !m.collapsed[row.Path] {
					m.collapsed[row.Path] = true
					m.refreshVisible()
				} else {
					m.selectPathInVisible(parentPath(row.Path))
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if row, ok := m.selectedRow(); ok && isContainer(row) {
				delete(m.collapsed, row.Path)
				m.refreshVisible()
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			row, ok := m.selectedRow()
			if !ok {
				return m, nil
			}
			if isContainer(row) {
				m.collapsed[row.Path] = !m.collapsed[row.Path]
				m.refreshVisible()
				return m, nil
			}
			if row.Kind == domain.KindTrigger || row.Kind == domain.KindBoolean {
				return m, m.toggle(row)
			}
			return m, switchToEdit(row)

		case key.Matches(msg, BrowserKeys.Edit):
			if row, ok := m.selectedRow(); ok && isEditable(row) {
				return m, switchToEdit(row)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Toggle):
			if row, ok := m.selectedRow(); ok {
				return m, m.toggle(row)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Play):
			m.playing = !m.playing
			if m.playing {
				return m, tick()
			}
			m.SetMessage(fmt.Sprintf("Paused at %.2fs", m.elapsed), false)
			return m, nil

		case key.Matches(msg, BrowserKeys.Step):
			return m, m.advance(1.0 / frameRate)

		case key.Matches(msg, BrowserKeys.Copy):
			if row, ok := m.selectedRow(); ok {
				if err := clipboard.WriteAll(row.Path); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied %s", row.Path), false)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Open):
			return m, func() tea.Msg {
				return OpenEditorMsg{}
			}

		case key.Matches(msg, BrowserKeys.Reload):
			return m, func() tea.Msg {
				return ReloadMsg{}
			}

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// toggle flips a boolean or fires a trigger
func (m *BrowserModel) toggle(row commands.PropertyRow) tea.Cmd {
	var value any
	switch row.Kind {
	case domain.KindTrigger:
		value = true
	case domain.KindBoolean:
		current, _ := row.Value.(domain.BooleanValue)
		value = !bool(current)
	default:
		return nil
	}
	return func() tea.Msg {
		result, err := commands.NewUpdatePropertyCommand(m.registry, m.instanceID, row.Path, value).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return successMsg{result.Message}
	}
}

func (m *BrowserModel) advance(dt float64) tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewAdvanceCommand(m.registry, m.instanceID, dt, 1).Execute(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return advancedMsg{result: result, dt: dt}
	}
}

func switchToEdit(row commands.PropertyRow) tea.Cmd {
	return func() tea.Msg {
		return SwitchToEditMsg{Row: row}
	}
}

func isContainer(row commands.PropertyRow) bool {
	return row.Kind == domain.KindViewModel || row.Kind == domain.KindList
}

func isEditable(row commands.PropertyRow) bool {
	return !isContainer(row) && row.Kind != domain.KindTrigger
}

func parentPath(path string) string {
	segs := domain.SplitPath(path)
	if len(segs) <= 1 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], "/")
}

func (m *BrowserModel) selectedRow() (commands.PropertyRow, bool) {
	c := m.pager.Cursor()
	if c >= 0 && c < len(m.visible) {
		return m.visible[c], true
	}
	return commands.PropertyRow{}, false
}

// refreshVisible hides the descendants of collapsed rows. Rows are
// depth-first, so a collapsed row hides the run of rows below it.
func (m *BrowserModel) refreshVisible() {
	m.visible = m.visible[:0]
	hiddenUnder := ""
	for _, row := range m.rows {
		if hiddenUnder != "" && strings.HasPrefix(row.Path, hiddenUnder+"/") {
			continue
		}
		hiddenUnder = ""
		m.visible = append(m.visible, row)
		if isContainer(row) && m.collapsed[row.Path] {
			hiddenUnder = row.Path
		}
	}
	m.pager.SetTotal(len(m.visible))
}

func (m *BrowserModel) selectPathInVisible(path string) bool {
	for i, row := range m.visible {
		if row.Path == path {
			m.pager.SetCursor(i)
			return true
		}
	}
	return false
}

// SelectPath expands the ancestors of path and moves the cursor to it
func (m *BrowserModel) SelectPath(path string) {
	for p := parentPath(path); p != ""; p = parentPath(p) {
		delete(m.collapsed, p)
	}
	m.refreshVisible()
	m.selectPathInVisible(path)
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded {
		if m.Message != "" {
			return screen("artbind", "", RenderMessage(m.Message, true))
		}
		return "Loading..."
	}

	m.pager.SetPerPage(m.pageSize())
	start, end := m.pager.Bounds()
	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(m.visible[i], i == m.pager.Cursor()))
	}
	if page := m.pager.View(); page != "" {
		rows = append(rows, styles.Faint.Render(page))
	}

	return screen("artbind", m.statusLine(),
		strings.Join(rows, "\n"),
		RenderMessage(m.Message, m.MessageErr),
		m.renderChanges(),
		renderHelp(
			BrowserKeys.Down, BrowserKeys.Right, BrowserKeys.Enter, BrowserKeys.Toggle,
			BrowserKeys.Play, BrowserKeys.Copy, BrowserKeys.Search, BrowserKeys.Help, BrowserKeys.Quit,
		),
	)
}

func (m *BrowserModel) renderChanges() string {
	if m.changes == nil {
		return ""
	}
	recent, total := m.changes.Recent()
	if total == 0 {
		return ""
	}
	lines := []string{styles.Section.Render(fmt.Sprintf("Changes (%d)", total))}
	for _, line := range recent {
		lines = append(lines, styles.Faint.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m *BrowserModel) statusLine() string {
	state := "paused"
	if m.playing {
		state = "playing"
	}
	return fmt.Sprintf("%s · %d properties · t=%.2fs %s", m.instanceID, len(m.rows), m.elapsed, state)
}

// pageSize leaves room for the header, change log and help line
func (m *BrowserModel) pageSize() int {
	if m.Height == 0 {
		return 20
	}
	return max(m.Height-18, 5)
}

func (m *BrowserModel) renderRow(row commands.PropertyRow, selected bool) string {
	glyph := styles.Leaf
	if isContainer(row) {
		glyph = styles.Expanded
		if m.collapsed[row.Path] {
			glyph = styles.Collapsed
		}
	}

	name := row.Name
	switch {
	case selected:
		name = styles.Cursor.Render(name)
	case isContainer(row):
		name = styles.Group.Render(name)
	}

	line := strings.Repeat("  ", row.Depth) + styles.Faint.Render(glyph) + name + "  " + RenderKind(row.Kind)
	if row.Kind != domain.KindViewModel {
		line += "  " + RenderValue(row.Value)
	}
	return line
}

// Reload re-reads the property rows, keeping collapse state and cursor
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadProperties
}

// Messages for view switching
type SwitchToEditMsg struct {
	Row commands.PropertyRow
}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to open the animation source in $EDITOR
type OpenEditorMsg struct{}

// ReloadMsg asks the app to reload the animation and rediscover its graph
type ReloadMsg struct{}

// SelectPathMsg asks the browser to reveal and select a property. CopyErr
// is set when the path could not be copied to the clipboard.
type SelectPathMsg struct {
	Path    string
	CopyErr error
}
