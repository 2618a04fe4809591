package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/styles"
	"shoebox/internal/application/commands"
	"shoebox/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// SearchModel is the model for searching the photos of the scanned folder
type SearchModel struct {
	ViewState
	photos  []domain.Photo
	input   textinput.Model
	results []commands.SearchResult
	cursor  int
}

// NewSearchModel creates a new search view model
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search labels and file names..."
	input.Focus()

	return &SearchModel{
		input: input,
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetPhotos resets the view to search the given photos
func (m *SearchModel) SetPhotos(photos []domain.Photo) {
	m.photos = photos
	m.input.SetValue("")
	m.results = nil
	m.cursor = 0
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		m.results = msg.results
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return BackToPhotosMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(m.results) {
				result := m.results[m.cursor]
				return m, func() tea.Msg {
					return SearchSelectMsg{Path: result.Path}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Trigger search on input change
	query := m.input.Value()
	if len(query) >= 2 {
		return m, tea.Batch(cmd, m.search(query))
	} else if len(query) == 0 {
		m.results = nil
	}

	return m, cmd
}

func (m *SearchModel) search(query string) tea.Cmd {
	return func() tea.Msg {
		results, err := commands.NewSearchPhotosCommand(m.photos, query).Execute(context.Background())
		if err != nil {
			return searchResultsMsg{results: nil}
		}
		return searchResultsMsg{results: results}
	}
}

type searchResultsMsg struct {
	results []commands.SearchResult
}

// SearchSelectMsg is sent when a search result is selected
type SearchSelectMsg struct {
	Path string
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	// Search input
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	// Results
	if len(m.results) == 0 {
		if len(m.input.Value()) >= 2 {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render("Type at least 2 characters to search"))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		// Show max 10 results
		maxResults := min(len(m.results), 10)
		for i := 0; i < maxResults; i++ {
			result := m.results[i]
			line := m.renderResult(result, i == m.cursor)
			b.WriteString(line)
			b.WriteString("\n")
		}

		if len(m.results) > 10 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", len(m.results)-10)))
		}
	}

	b.WriteString("\n\n")

	// Help
	b.WriteString(RenderHelpLine(
		SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Cancel,
	))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(result commands.SearchResult, selected bool) string {
	label := result.Label
	if !result.HasLabel() {
		label = "(no label)"
	}
	text := fmt.Sprintf("%s  %s", cell(result.Path, 28), label)

	if selected {
		return styles.Selected.Render(text)
	}
	return text
}
