package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/innoq/innoq-timer/internal/countdown"
)

// SharedState holds what every copy of the value-typed appModel must see:
// the controller, its host and surface, and transient overlays.
type SharedState struct {
	App *App

	ctrl    *countdown.Controller
	host    *teaHost
	surface *surface

	// send delivers messages into the running program from other
	// goroutines. Nil until the program is created.
	send func(tea.Msg)

	// Overlays
	prompt      *permissionPrompt
	confirmExit bool
	banner      string

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
