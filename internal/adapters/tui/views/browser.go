package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shoebox/internal/adapters/tui/styles"
	"shoebox/internal/domain"
	"shoebox/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding
	Help  key.Binding
	Quit  key.Binding
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
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open folder"),
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

// BrowserModel is the model for the folder tree view
type BrowserModel struct {
	ViewState
	library   ports.Library
	rootPath  string
	root      *domain.FolderNode
	flatNodes []*domain.FolderNode
	cursor    int
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(library ports.Library, rootPath string) *BrowserModel {
	return &BrowserModel{
		library:  library,
		rootPath: rootPath,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	root, err := m.library.BuildTree(m.rootPath, 1)
	if err != nil {
		return errMsg{err}
	}
	root.Expand()
	return treeLoadedMsg{root}
}

type treeLoadedMsg struct {
	root *domain.FolderNode
}

type errMsg struct {
	err error
}

type childrenLoadedMsg struct {
	node *domain.FolderNode
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		m.refreshFlatNodes()
		return m, nil

	case childrenLoadedMsg:
		m.refreshFlatNodes()
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			if m.cursor < len(m.flatNodes)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil {
					// Move to parent
					for i, n := range m.flatNodes {
						if n == node.Parent {
							m.cursor = i
							break
						}
					}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right):
			if node := m.selectedNode(); node != nil && !node.IsExpanded {
				node.Expand()
				return m, m.loadNodeChildren(node)
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil {
				return m, func() tea.Msg {
					return SwitchToPhotosMsg{Folder: node}
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) loadNodeChildren(node *domain.FolderNode) tea.Cmd {
	return func() tea.Msg {
		if err := m.library.LoadChildren(node); err != nil {
			return errMsg{err}
		}
		return childrenLoadedMsg{node}
	}
}

func (m *BrowserModel) selectedNode() *domain.FolderNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Clamp cursor
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		return "Loading..."
	}

	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Shoebox"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Rename photos after their embedded descriptions"))
	b.WriteString("\n\n")

	// Tree
	for i, node := range m.flatNodes {
		line := m.renderNode(node, i == m.cursor)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Message
	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(m.RenderStatus())
	}

	// Help line
	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Right,
		BrowserKeys.Enter, BrowserKeys.Help, BrowserKeys.Quit,
	))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.FolderNode, selected bool) string {
	depth := node.Depth()
	indent := strings.Repeat("  ", depth)

	// Prefix (expand indicator)
	var prefix string
	if node.IsExpanded && len(node.Children) == 0 {
		prefix = styles.TreeLeaf
	} else if node.IsExpanded {
		prefix = styles.TreeExpanded
	} else {
		prefix = styles.TreeCollapsed
	}

	text := node.Name
	if selected {
		text = styles.Selected.Render(text)
	} else {
		text = styles.Folder.Render(text)
	}

	count := ""
	if node.MediaCount > 0 {
		count = styles.FolderCount.Render(fmt.Sprintf(" (%d)", node.MediaCount))
	}

	return fmt.Sprintf("%s%s%s%s", indent, styles.TreeBranch.Render(prefix), text, count)
}

// Reload reloads the tree from disk
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.cursor = 0
	return m.loadTree
}

// Messages for view switching

// SwitchToPhotosMsg requests scanning a folder and showing its photos
type SwitchToPhotosMsg struct {
	Folder *domain.FolderNode
}

// BackToPhotosMsg returns to the photos view without rescanning
type BackToPhotosMsg struct{}

// ReloadPhotosMsg returns to the photos view and rescans the folder
type ReloadPhotosMsg struct{}

type SwitchToSearchMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}
