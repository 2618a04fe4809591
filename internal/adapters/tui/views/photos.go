package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/styles"
	"shoebox/internal/application"
	"shoebox/internal/application/commands"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// PhotosState represents the state of the photos view
type PhotosState int

const (
	PhotosLoading PhotosState = iota
	PhotosShowList
	PhotosError
)

// PhotosKeyMap defines key bindings for the photos view
type PhotosKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	CopyPath    key.Binding
	Open        key.Binding
	Rename      key.Binding
	RenamePlain key.Binding
	Search      key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var PhotosKeys = PhotosKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	CopyPath: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename numbered"),
	),
	RenamePlain: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rename"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
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

// PhotosModel is the model for the photo list of one scanned folder
type PhotosModel struct {
	ViewState
	library     ports.Library
	reader      ports.MetadataReader
	cache       ports.MetadataCache
	viewer      ports.Viewer
	concurrency int
	maxNameLen  int

	folder   *domain.FolderNode
	photos   []domain.Photo
	scanErrs []string
	cursor   int
	state    PhotosState
	err      error
	spinner  spinner.Model

	// Scan summary
	fromCache  int
	unreadable int

	// Pagination
	pageSize   int
	pageOffset int
}

// NewPhotosModel creates a new photos view model
func NewPhotosModel(library ports.Library, reader ports.MetadataReader, cache ports.MetadataCache, viewer ports.Viewer, concurrency, maxNameLen int) *PhotosModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &PhotosModel{
		library:     library,
		reader:      reader,
		cache:       cache,
		viewer:      viewer,
		concurrency: concurrency,
		maxNameLen:  maxNameLen,
		spinner:     s,
		state:       PhotosLoading,
		pageSize:    10,
	}
}

// SetSource sets the folder whose photos the view shows
func (m *PhotosModel) SetSource(folder *domain.FolderNode) {
	m.folder = folder
	m.photos = nil
	m.scanErrs = nil
	m.cursor = 0
	m.err = nil
	m.state = PhotosLoading
	m.fromCache = 0
	m.unreadable = 0
	m.pageOffset = 0
	m.ClearMessage()
}

// Init initializes the photos view
func (m *PhotosModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.scan(),
	)
}

// Photos returns the photos of the last completed scan
func (m *PhotosModel) Photos() []domain.Photo {
	return m.photos
}

// Folder returns the folder being shown
func (m *PhotosModel) Folder() *domain.FolderNode {
	return m.folder
}

// Reload rescans the current folder
func (m *PhotosModel) Reload() tea.Cmd {
	m.SetSource(m.folder)
	return m.Init()
}

// JumpTo moves the cursor to the photo with the given path
func (m *PhotosModel) JumpTo(path string) {
	for i, p := range m.photos {
		if p.Path == path {
			m.cursor = i
			m.ensureCursorInPage()
			return
		}
	}
}

func (m *PhotosModel) scan() tea.Cmd {
	folder := m.folder
	return func() tea.Msg {
		if folder == nil {
			return photosErrMsg{Err: fmt.Errorf("no folder selected")}
		}

		gate := application.NewGate(m.concurrency)
		cmd := commands.NewIndexFolderCommand(m.library, m.reader, m.cache, gate, folder.Path)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return photosErrMsg{Err: err}
		}
		return photosLoadedMsg{Result: result}
	}
}

// Update handles messages for the photos view
func (m *PhotosModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state == PhotosLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case photosLoadedMsg:
		m.photos = msg.Result.Photos
		m.scanErrs = msg.Result.Errors
		m.fromCache = msg.Result.FromCache
		m.unreadable = msg.Result.Unreadable
		m.state = PhotosShowList
		return m, nil

	case photosErrMsg:
		m.err = msg.Err
		m.state = PhotosError
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case PhotosShowList:
			return m.updateList(msg)

		case PhotosError:
			// Any key returns to browser on error
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case PhotosLoading:
			if key.Matches(msg, PhotosKeys.Back) {
				return m, func() tea.Msg {
					return SwitchToBrowserMsg{}
				}
			}
		}
	}

	return m, nil
}

func (m *PhotosModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, PhotosKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PhotosKeys.Back):
		return m, func() tea.Msg {
			return SwitchToBrowserMsg{}
		}

	case key.Matches(msg, PhotosKeys.Up):
		m.ClearMessage()
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorInPage()
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.Down):
		m.ClearMessage()
		if m.cursor < len(m.photos)-1 {
			m.cursor++
			m.ensureCursorInPage()
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.NextPage):
		if m.pageOffset+m.pageSize < len(m.photos) {
			m.pageOffset += m.pageSize
			m.cursor = m.pageOffset
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.PrevPage):
		if m.pageOffset > 0 {
			m.pageOffset -= m.pageSize
			if m.pageOffset < 0 {
				m.pageOffset = 0
			}
			m.cursor = m.pageOffset
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.CopyPath):
		if photo := m.selectedPhoto(); photo != nil {
			full := filepath.Join(m.folder.Path, photo.Path)
			if err := clipboard.WriteAll(full); err != nil {
				m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", full), false)
			}
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.Open):
		if photo := m.selectedPhoto(); photo != nil {
			return m, m.openPhoto(photo)
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.Rename), key.Matches(msg, PhotosKeys.RenamePlain):
		if countLabeled(m.photos) == 0 {
			m.SetMessage("No labeled photos to rename", true)
			return m, nil
		}
		withPrefix := key.Matches(msg, PhotosKeys.Rename)
		return m, func() tea.Msg {
			return SwitchToRenameMsg{
				FolderPath: m.folder.Path,
				Photos:     m.photos,
				WithPrefix: withPrefix,
			}
		}

	case key.Matches(msg, PhotosKeys.Search):
		if len(m.photos) > 0 {
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}
		}
		return m, nil

	case key.Matches(msg, PhotosKeys.Help):
		return m, func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	return m, nil
}

func (m *PhotosModel) openPhoto(photo *domain.Photo) tea.Cmd {
	full := filepath.Join(m.folder.Path, photo.Path)
	return func() tea.Msg {
		if err := m.viewer.OpenFile(full); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func (m *PhotosModel) selectedPhoto() *domain.Photo {
	if m.cursor >= 0 && m.cursor < len(m.photos) {
		return &m.photos[m.cursor]
	}
	return nil
}

// visiblePhotos returns the photos for the current page
func (m *PhotosModel) visiblePhotos() []domain.Photo {
	if len(m.photos) == 0 {
		return nil
	}
	end := min(m.pageOffset+m.pageSize, len(m.photos))
	return m.photos[m.pageOffset:end]
}

// totalPages returns the total number of pages
func (m *PhotosModel) totalPages() int {
	if len(m.photos) == 0 {
		return 1
	}
	return (len(m.photos) + m.pageSize - 1) / m.pageSize
}

// currentPage returns the current page number (1-based)
func (m *PhotosModel) currentPage() int {
	return m.pageOffset/m.pageSize + 1
}

// ensureCursorInPage ensures cursor is within the current page
func (m *PhotosModel) ensureCursorInPage() {
	if m.cursor < m.pageOffset {
		m.pageOffset = (m.cursor / m.pageSize) * m.pageSize
	} else if m.cursor >= m.pageOffset+m.pageSize {
		m.pageOffset = (m.cursor / m.pageSize) * m.pageSize
	}
}

// View renders the photos view
func (m *PhotosModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Photos"))
	b.WriteString("\n\n")

	if m.folder != nil {
		b.WriteString(styles.MutedText.Render(m.folder.Path))
		b.WriteString("\n\n")
	}

	switch m.state {
	case PhotosLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Reading metadata...")
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press "))
		b.WriteString(styles.HelpKey.Render("esc"))
		b.WriteString(styles.MutedText.Render(" to cancel"))

	case PhotosShowList:
		m.renderList(&b)

	case PhotosError:
		b.WriteString(styles.ErrorMsg.Render("Error: "))
		if m.err != nil {
			b.WriteString(m.err.Error())
		}
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render("Press any key to return"))
	}

	return styles.App.Render(b.String())
}

func (m *PhotosModel) renderList(b *strings.Builder) {
	if len(m.photos) == 0 {
		b.WriteString(styles.MutedText.Render("No media files in this folder"))
		return
	}

	summary := fmt.Sprintf("%d files, %d labeled", len(m.photos), countLabeled(m.photos))
	if m.fromCache > 0 {
		summary += fmt.Sprintf(", %d cached", m.fromCache)
	}
	if m.unreadable > 0 {
		summary += fmt.Sprintf(", %d unreadable", m.unreadable)
	}
	b.WriteString(styles.MutedText.Render(summary))
	b.WriteString("\n\n")

	// Column header
	b.WriteString("   ")
	b.WriteString(styles.ColumnHeader.Render(cell("File", 28)))
	b.WriteString(styles.ColumnHeader.Render(cell("Label", 38)))
	b.WriteString(styles.ColumnHeader.Render("Taken"))
	b.WriteString("\n")

	// Rows (paginated)
	for i, photo := range m.visiblePhotos() {
		absIndex := m.pageOffset + i
		name := cell(photo.Path, 28)
		taken := ""
		if photo.TakenAt != nil {
			taken = photo.TakenAt.Format("2006-01-02")
		}

		if absIndex == m.cursor {
			row := fmt.Sprintf(" > %s%s%s", name, cell(photo.Label, 38), taken)
			b.WriteString(styles.Selected.Render(row))
		} else {
			label := cell(photo.Label, 38)
			if !photo.HasLabel() {
				label = styles.Unlabeled.Render(cell("(no label)", 38))
			}
			fmt.Fprintf(b, "   %s%s%s", name, label, styles.DateText.Render(taken))
		}
		b.WriteString("\n")
	}

	// Page indicator (if more than one page)
	if m.totalPages() > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Page %d/%d", m.currentPage(), m.totalPages())))
	}

	// Details for selected photo
	if photo := m.selectedPhoto(); photo != nil {
		b.WriteString("\n")
		m.renderDetails(b, photo)
	}

	// Scan errors
	if len(m.scanErrs) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.ErrorMsg.Render(m.scanErrs[0]))
		if len(m.scanErrs) > 1 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf(" and %d more", len(m.scanErrs)-1)))
		}
		b.WriteString("\n")
	}

	// Message
	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(m.RenderStatus())
		b.WriteString("\n")
	}

	// Help
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		PhotosKeys.CopyPath, PhotosKeys.Open, PhotosKeys.Rename,
		PhotosKeys.RenamePlain, PhotosKeys.Search, PhotosKeys.Back,
	))
}

func (m *PhotosModel) renderDetails(b *strings.Builder, photo *domain.Photo) {
	if photo.HasLabel() {
		b.WriteString(RenderLabelValue("Label", photo.Label))
		b.WriteString("\n")
		opts := domain.NameOptions{
			Extension: filepath.Ext(photo.Path),
			MaxLength: m.maxNameLen,
		}
		if name, err := domain.BuildFileName(photo.Label, opts); err == nil && name != photo.Path {
			b.WriteString(RenderLabelValue("Renames to", name))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(styles.Unlabeled.Render("No description in this file's metadata"))
		b.WriteString("\n")
	}
	if photo.TakenAt != nil {
		b.WriteString(RenderLabelValue("Taken", photo.TakenAt.Format("2006-01-02 15:04:05")))
		b.WriteString("\n")
	}
	if photo.ModifiedAt != nil {
		b.WriteString(RenderLabelValue("Modified", photo.ModifiedAt.Format("2006-01-02 15:04:05")))
		b.WriteString("\n")
	}
}

// cell truncates or pads s to exactly width columns plus two of spacing
func cell(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…  "
	}
	return s + strings.Repeat(" ", width-len(runes)+2)
}

// Messages

// SwitchToRenameMsg requests the rename confirmation view
type SwitchToRenameMsg struct {
	FolderPath string
	Photos     []domain.Photo
	WithPrefix bool
}

type photosLoadedMsg struct {
	Result *commands.IndexResult
}

type photosErrMsg struct {
	Err error
}
