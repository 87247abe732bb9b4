package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"artbind/internal/adapters/tui/views"
	"artbind/internal/application"
	"artbind/internal/application/commands"
	"artbind/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewEdit
	ViewSearch
	ViewHelp
)

// Options configures the App
type Options struct {
	Registry   *application.Registry
	Loader     ports.Loader
	Editor     ports.EditorOpener
	Assets     *views.AssetLoader
	Changes    *views.ChangeLog
	InstanceID string
	// Source is loaded through Loader and opened in the editor
	Source string
}

// App is the main TUI application model
type App struct {
	registry   *application.Registry
	loader     ports.Loader
	editor     ports.EditorOpener
	instanceID string
	source     string

	state   ViewState
	browser *views.BrowserModel
	edit    *views.EditModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. The instance must already be
// registered under opts.InstanceID.
func NewApp(opts Options) *App {
	return &App{
		registry:   opts.Registry,
		loader:     opts.Loader,
		editor:     opts.Editor,
		instanceID: opts.InstanceID,
		source:     opts.Source,
		state:      ViewBrowser,
		browser:    views.NewBrowserModel(opts.Registry, opts.InstanceID, opts.Changes),
		edit:       views.NewEditModel(opts.Registry, opts.InstanceID, opts.Assets),
		search:     views.NewSearchModel(opts.Registry, opts.InstanceID),
		help:       views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.edit.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToEditMsg:
		a.state = ViewEdit
		a.edit.SetRow(msg.Row)
		return a, a.edit.Init()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.SelectPathMsg:
		a.state = ViewBrowser
		a.browser.SelectPath(msg.Path)
		if msg.CopyErr != nil {
			a.browser.SetMessage(fmt.Sprintf("Copy failed: %v", msg.CopyErr), true)
		}
		return a, nil

	case views.EditSuccessMsg:
		a.state = ViewBrowser
		a.browser.SetMessage(msg.Message, false)
		return a, a.browser.Reload()

	case views.ReloadMsg:
		return a, a.reload()

	case reloadedMsg:
		a.browser.SetMessage(msg.message, msg.err)
		return a, a.browser.Reload()

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(a.source)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		// the source may have changed on disk
		return a, a.reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type reloadedMsg struct {
	message string
	err     bool
}

// reload loads the source again under the same id, replacing the running
// instance and rediscovering its property graph
func (a *App) reload() tea.Cmd {
	return func() tea.Msg {
		result, err := commands.NewLoadInstanceCommand(a.loader, a.registry, a.instanceID, a.source).Execute(context.Background())
		if err != nil {
			return reloadedMsg{message: fmt.Sprintf("Reload failed: %v", err), err: true}
		}
		return reloadedMsg{message: result.Message}
	}
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewEdit:
		return a.edit.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
