package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/styles"
	"shoebox/internal/application"
	"shoebox/internal/application/commands"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// RenameState represents the state of the rename view
type RenameState int

const (
	RenameConfirming RenameState = iota
	RenameRunning
	RenameDone
	RenameFailed
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// RenameModel is the model for the rename confirmation view. It shows what
// a batch will do, runs it on confirmation and reports the outcome.
type RenameModel struct {
	ViewState
	fs          ports.FileSystem
	concurrency int
	maxNameLen  int

	folderPath string
	photos     []domain.Photo
	withPrefix bool

	state   RenameState
	result  *domain.RenamingResult
	err     error
	spinner spinner.Model
}

// NewRenameModel creates a new rename view model
func NewRenameModel(fs ports.FileSystem, concurrency, maxNameLen int) *RenameModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &RenameModel{
		fs:          fs,
		concurrency: concurrency,
		maxNameLen:  maxNameLen,
		spinner:     s,
	}
}

// SetRequest primes the view for one batch
func (m *RenameModel) SetRequest(folderPath string, photos []domain.Photo, withPrefix bool) {
	m.folderPath = folderPath
	m.photos = photos
	m.withPrefix = withPrefix
	m.state = RenameConfirming
	m.result = nil
	m.err = nil
	m.ClearMessage()
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.state == RenameRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case renameDoneMsg:
		m.result = msg.result
		m.err = msg.err
		if m.result == nil {
			m.state = RenameFailed
		} else {
			m.state = RenameDone
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case RenameConfirming:
			switch {
			case key.Matches(msg, ConfirmKeys.Cancel):
				return m, func() tea.Msg {
					return BackToPhotosMsg{}
				}
			case key.Matches(msg, ConfirmKeys.Confirm):
				m.state = RenameRunning
				return m, tea.Batch(m.spinner.Tick, m.run())
			}

		case RenameDone, RenameFailed:
			// Names on disk changed; any key returns to a fresh scan
			return m, func() tea.Msg {
				return ReloadPhotosMsg{}
			}
		}
	}

	return m, nil
}

func (m *RenameModel) run() tea.Cmd {
	folderPath := m.folderPath
	photos := m.photos
	withPrefix := m.withPrefix

	return func() tea.Msg {
		gate := application.NewGate(m.concurrency)
		opts := commands.RenameOptions{
			AddSortPrefix: withPrefix,
			MaxNameLength: m.maxNameLen,
		}
		cmd := commands.NewRenameFolderCommand(m.fs, gate, folderPath, photos, opts)
		result, err := cmd.Execute(context.Background())
		return renameDoneMsg{result: result, err: err}
	}
}

type renameDoneMsg struct {
	result *domain.RenamingResult
	err    error
}

// View renders the rename view
func (m *RenameModel) View() string {
	v := NewViewBuilder()
	v.Title("Rename Photos")

	switch m.state {
	case RenameConfirming:
		labeled := countLabeled(m.photos)
		v.Line(RenderLabelValue("Folder", m.folderPath))
		v.Line(RenderLabelValue("Photos", fmt.Sprintf("%d labeled of %d", labeled, len(m.photos))))
		if m.withPrefix {
			v.Line(RenderLabelValue("Order", "chronological number prefix, oldest first"))
		} else {
			v.Line(RenderLabelValue("Order", "label only, no prefix"))
		}
		if labeled < len(m.photos) {
			v.BlankLine()
			v.Muted(fmt.Sprintf("%d files without a label are left untouched.", len(m.photos)-labeled))
		}
		v.BlankLine()
		v.Raw(RenderConfirmPrompt("Rename these files?"))

	case RenameRunning:
		v.Raw(m.spinner.View())
		v.Raw(" Renaming...")

	case RenameDone:
		v.Line(styles.Success.Render(fmt.Sprintf("Renamed %d of %d files", m.result.FilesRenamed, m.result.TotalFiles)))
		if len(m.result.Errors) > 0 {
			v.BlankLine()
			v.Line(styles.ErrorMsg.Render(fmt.Sprintf("%d failures:", len(m.result.Errors))))
			shown := min(len(m.result.Errors), 5)
			for _, e := range m.result.Errors[:shown] {
				v.Line("  " + e)
			}
			if len(m.result.Errors) > shown {
				v.Muted(fmt.Sprintf("  and %d more", len(m.result.Errors)-shown))
			}
		}
		if m.err != nil {
			v.BlankLine()
			v.Line(styles.ErrorMsg.Render(fmt.Sprintf("Batch stopped early: %v", m.err)))
		}
		v.BlankLine()
		v.Muted("Press any key to return")

	case RenameFailed:
		v.Line(styles.ErrorMsg.Render("Error: " + m.err.Error()))
		v.BlankLine()
		v.Muted("Press any key to return")
	}

	return v.String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// countLabeled returns how many photos carry a usable label
func countLabeled(photos []domain.Photo) int {
	n := 0
	for _, p := range photos {
		if p.HasLabel() {
			n++
		}
	}
	return n
}
