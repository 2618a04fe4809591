package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"shoebox/internal/adapters/tui/styles"
)

// RenderHelpLine renders key bindings as one help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(help.Key),
			styles.HelpDesc.Render(help.Desc),
		))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderLabelValue renders a "label: value" pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// ViewBuilder accumulates view output line by line
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates an empty view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds the view heading
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Line adds one line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds an empty line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds secondary text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Raw adds text without a trailing newline
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view wrapped in the app frame style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
