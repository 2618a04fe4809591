package views

import "shoebox/internal/adapters/tui/styles"

// ViewState carries what every view tracks: the terminal size and a
// transient status line (clipboard feedback, open errors). Views embed
// it and the app forwards window resizes to SetSize.
type ViewState struct {
	Width  int
	Height int

	Message    string
	MessageErr bool
}

// SetSize records the terminal dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage replaces the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage drops the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// RenderStatus renders the status line, or nothing when it is empty.
// Errors use the error style, everything else reads as success feedback.
func (s *ViewState) RenderStatus() string {
	if s.Message == "" {
		return ""
	}
	if s.MessageErr {
		return styles.ErrorMsg.Render(s.Message)
	}
	return styles.Success.Render(s.Message)
}
