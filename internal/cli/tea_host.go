package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/innoq/innoq-timer/internal/countdown"
)

// tickMsg is one beat of the tick source tagged id.
type tickMsg struct {
	id countdown.TickID
}

// hostEventMsg carries an event scheduled with After back into Update.
type hostEventMsg struct {
	ev countdown.Event
}

// teaHost runs the controller on the bubbletea update loop. Controller calls
// queue tea.Cmds which Update returns through drain. tea.Tick is one-shot,
// so the live source is re-armed after each delivered tick.
type teaHost struct {
	active  countdown.TickID
	every   time.Duration
	pending []tea.Cmd
}

func (h *teaHost) StartTicks(id countdown.TickID, every time.Duration) {
	h.active = id
	h.every = every
	h.pending = append(h.pending, tickCmd(id, every))
}

func (h *teaHost) StopTicks(id countdown.TickID) {
	if h.active == id {
		h.active = 0
	}
}

func (h *teaHost) After(d time.Duration, ev countdown.Event) {
	h.pending = append(h.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return hostEventMsg{ev: ev}
	}))
}

func (h *teaHost) Go(fn func()) {
	h.pending = append(h.pending, func() tea.Msg {
		fn()
		return nil
	})
}

// owns reports whether id is the live tick source.
func (h *teaHost) owns(id countdown.TickID) bool {
	return id != 0 && id == h.active
}

// rearm schedules the next beat of id if it is still live.
func (h *teaHost) rearm(id countdown.TickID) {
	if h.owns(id) {
		h.pending = append(h.pending, tickCmd(id, h.every))
	}
}

// drain hands the queued commands to bubbletea.
func (h *teaHost) drain() tea.Cmd {
	cmds := h.pending
	h.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func tickCmd(id countdown.TickID, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}
