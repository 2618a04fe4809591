package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/views"
	"shoebox/internal/config"
	"shoebox/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewPhotos
	ViewSearch
	ViewRename
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state     ViewState
	prevState ViewState

	browser *views.BrowserModel
	photos  *views.PhotosModel
	search  *views.SearchModel
	rename  *views.RenameModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application rooted at rootPath
func NewApp(
	library ports.Library,
	reader ports.MetadataReader,
	cache ports.MetadataCache,
	fs ports.FileSystem,
	viewer ports.Viewer,
	rootPath string,
	cfg *config.Config,
) *App {
	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(library, rootPath),
		photos:  views.NewPhotosModel(library, reader, cache, viewer, cfg.Concurrency, cfg.MaxFileNameLength),
		search:  views.NewSearchModel(),
		rename:  views.NewRenameModel(fs, cfg.Concurrency, cfg.MaxFileNameLength),
		help:    views.NewHelpModel(),
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
		a.photos.Update(msg)
		a.search.Update(msg)
		a.rename.Update(msg)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToPhotosMsg:
		a.state = ViewPhotos
		a.photos.SetSource(msg.Folder)
		return a, a.photos.Init()

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.BackToPhotosMsg:
		a.state = ViewPhotos
		return a, nil

	case views.ReloadPhotosMsg:
		a.state = ViewPhotos
		return a, a.photos.Reload()

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.SetPhotos(a.photos.Photos())
		return a, a.search.Init()

	case views.SearchSelectMsg:
		a.state = ViewPhotos
		a.photos.JumpTo(msg.Path)
		return a, nil

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetRequest(msg.FolderPath, msg.Photos, msg.WithPrefix)
		return a, a.rename.Init()

	case views.SwitchToHelpMsg:
		a.prevState = a.state
		a.state = ViewHelp
		return a, nil

	case views.CloseHelpMsg:
		a.state = a.prevState
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewPhotos:
		_, cmd = a.photos.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPhotos:
		return a.photos.View()
	case ViewSearch:
		return a.search.View()
	case ViewRename:
		return a.rename.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
