package cli

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/innoq/innoq-timer/internal/cli/formatter"
	"github.com/innoq/innoq-timer/internal/domain"
)

// timerKeys are the bindings of the interactive mode. Digits, backspace and
// delete are not bindings: they go through countdown.KeyAllowed.
type timerKeys struct {
	Submit    key.Binding
	Start     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Stop      key.Binding
	Reset     key.Binding
	Clear     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

var keys = timerKeys{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
	Start:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "start")),
	NextField: key.NewBinding(key.WithKeys("tab", "right", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "left", "up"), key.WithHelp("shift+tab", "prev field")),
	Stop:      key.NewBinding(key.WithKeys("s", "esc"), key.WithHelp("s", "stop")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Clear:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "leave")),
	Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "stay")),
}

// confirmHelp returns the hints while the exit warning is shown.
func (k timerKeys) confirmHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// shortHelp returns the hints for the bottom bar in state s.
func (k timerKeys) shortHelp(s domain.State) []key.Binding {
	switch s {
	case domain.StateRunning:
		return []key.Binding{k.Stop, k.Reset, k.Quit}
	case domain.StateFinished:
		return []key.Binding{
			key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "reset")),
			k.Quit,
		}
	default:
		return []key.Binding{k.Submit, k.NextField, k.Clear, k.ForceQuit}
	}
}

func newHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	return h
}
