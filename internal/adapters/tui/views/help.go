package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/styles"
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

// CloseHelpMsg returns to whichever view opened the help screen
type CloseHelpMsg struct{}

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
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return CloseHelpMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Shoebox Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.Subtitle.Render("Rename photos after their embedded descriptions"))
	b.WriteString("\n\n")

	// Navigation section
	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("h / ←", "Collapse / go to parent"))
	b.WriteString(helpLine("l / →", "Expand folder"))
	b.WriteString(helpLine("Enter", "Open folder"))
	b.WriteString(helpLine("PgUp / PgDn", "Previous / next page"))
	b.WriteString("\n")

	// Photo actions section
	b.WriteString(styles.InputLabel.Render("Photos"))
	b.WriteString("\n")
	b.WriteString(helpLine("r", "Rename with chronological number prefix"))
	b.WriteString(helpLine("R", "Rename without prefix"))
	b.WriteString(helpLine("y", "Copy file path"))
	b.WriteString(helpLine("o", "Open in system viewer"))
	b.WriteString(helpLine("/", "Search labels and file names"))
	b.WriteString("\n")

	// General section
	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("esc", "Back"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n\n")

	// Renaming info
	b.WriteString(styles.InputLabel.Render("How Renaming Works"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Labels come from each file's own metadata"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Prefix    : 1. Morning at the lake.jpg (oldest first)"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Duplicate : Morning at the lake (2).jpg"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Files without a label are left untouched"))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
