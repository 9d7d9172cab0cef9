package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/innoq/innoq-timer/internal/cli/formatter"
	"github.com/innoq/innoq-timer/internal/config"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/notify"
)

// appModel is the root bubbletea Model of the interactive mode. It turns
// key presses and timer messages into controller events; everything it
// shows comes from the Screen the controller last rendered.
type appModel struct {
	state    *SharedState
	help     help.Model
	progress progress.Model
	quitting bool
}

func newAppModel(app *App) appModel {
	state := &SharedState{
		App:     app,
		host:    &teaHost{},
		surface: newSurface(),
	}

	// SplitAt errors are reported by the root command before we get here.
	if hour, minute, err := config.SplitAt(app.Config.At); err == nil {
		state.surface.hour.SetValue(hour)
		state.surface.minute.SetValue(minute)
	}

	senders := notify.Multi{bannerSender{state: state}}
	if app.Chime != nil {
		senders = append(senders, app.Chime)
	}
	gate := notify.NewGate(app.Config.Notify, state.programAsker(), senders)

	state.ctrl = countdown.New(countdown.Deps{
		Clock:    app.Clock,
		Host:     state.host,
		Display:  state.surface,
		Inputs:   state.surface,
		Notifier: notify.NewCompletion(gate, app.Logger),
		Observer: app.Observer,
	}, app.controllerOptions()...)

	bar := progress.New(
		progress.WithGradient(string(formatter.ColorGreen), string(formatter.ColorRed)),
		progress.WithoutPercentage(),
	)

	return appModel{
		state:    state,
		help:     newHelpModel(),
		progress: bar,
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return m.state.host.drain()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.state
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		s.Width = msg.Width
		s.Height = msg.Height
		m.progress.Width = progressWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		// Beats of a cancelled source die here instead of re-arming.
		if !s.host.owns(msg.id) {
			return m, nil
		}
		m.dispatch(countdown.Event{Trigger: countdown.TriggerTick, Tick: msg.id})
		s.host.rearm(msg.id)
		if !s.ctrl.ConfirmExit() {
			s.confirmExit = false
		}
		return m, s.host.drain()

	case hostEventMsg:
		m.dispatch(msg.ev)
		return m, s.host.drain()

	case permissionAskMsg:
		if s.prompt != nil {
			s.prompt.answer(false)
		}
		s.prompt = newPermissionPrompt(msg.reply)
		return m, s.prompt.form.Init()

	case notifiedMsg:
		s.banner = msg.body
		return m, nil
	}

	if s.prompt != nil {
		done, cmd := s.prompt.update(msg)
		if done {
			s.prompt = nil
		}
		return m, cmd
	}

	// Cursor blink and friends.
	var hourCmd, minuteCmd tea.Cmd
	s.surface.hour, hourCmd = s.surface.hour.Update(msg)
	s.surface.minute, minuteCmd = s.surface.minute.Update(msg)
	return m, tea.Batch(hourCmd, minuteCmd)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.state

	if s.prompt != nil {
		done, cmd := s.prompt.update(msg)
		if done {
			s.prompt = nil
		}
		return m, cmd
	}

	if s.confirmExit {
		switch {
		case key.Matches(msg, keys.Confirm), key.Matches(msg, keys.ForceQuit):
			return m.quit()
		case key.Matches(msg, keys.Cancel):
			s.confirmExit = false
		}
		return m, nil
	}

	if key.Matches(msg, keys.ForceQuit) {
		return m.requestQuit()
	}

	switch s.ctrl.State() {
	case domain.StateRunning:
		switch {
		case key.Matches(msg, keys.Stop):
			m.dispatch(countdown.Event{Trigger: countdown.TriggerStop})
		case key.Matches(msg, keys.Reset):
			m.dispatch(countdown.Event{Trigger: countdown.TriggerReset})
		case key.Matches(msg, keys.Quit):
			return m.requestQuit()
		}
	case domain.StateFinished:
		switch {
		case key.Matches(msg, keys.Reset), key.Matches(msg, keys.Submit):
			m.dispatch(countdown.Event{Trigger: countdown.TriggerReset})
		case key.Matches(msg, keys.Quit):
			return m.quit()
		}
	default:
		return m.handleIdleKey(msg)
	}
	return m, s.host.drain()
}

func (m appModel) handleIdleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.state

	switch {
	case key.Matches(msg, keys.Submit):
		m.dispatch(countdown.Event{Trigger: countdown.TriggerSubmit})
		return m, s.host.drain()
	case key.Matches(msg, keys.Start):
		m.dispatch(countdown.Event{Trigger: countdown.TriggerStart})
		return m, s.host.drain()
	case key.Matches(msg, keys.NextField), key.Matches(msg, keys.PrevField):
		s.surface.toggleFocus()
		return m, nil
	case key.Matches(msg, keys.Clear):
		m.dispatch(countdown.Event{Trigger: countdown.TriggerReset})
		return m, s.host.drain()
	case key.Matches(msg, keys.Quit):
		return m.quit()
	}

	if !fieldKeyAllowed(msg) {
		return m, nil
	}
	trigger, changed, cmd := s.surface.edit(msg)
	if changed {
		m.dispatch(countdown.Event{Trigger: trigger})
	}
	return m, tea.Batch(cmd, s.host.drain())
}

// fieldKeyAllowed applies the numeric-field filter. Pasted text arrives as
// one event and must be all digits.
func fieldKeyAllowed(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyRunes && (msg.Paste || len(msg.Runes) > 1) {
		return countdown.DigitsOnly(string(msg.Runes))
	}
	return countdown.KeyAllowed(msg.String())
}

// dispatch feeds ev to the controller. Refused starts are already shown as
// a field cue, so the error is not needed here.
func (m appModel) dispatch(ev countdown.Event) {
	if ev.Trigger == countdown.TriggerReset {
		m.state.banner = ""
	}
	_ = m.state.ctrl.Dispatch(ev)
}

// requestQuit leaves at once unless a countdown is running, in which case
// the exit warning is shown first.
func (m appModel) requestQuit() (tea.Model, tea.Cmd) {
	if m.state.ctrl.ConfirmExit() {
		m.state.confirmExit = true
		return m, nil
	}
	return m.quit()
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func progressWidth(termWidth int) int {
	w := termWidth - 4
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

// padLines pads s with blank lines up to n lines.
func padLines(s string, n int) string {
	lines := strings.Count(s, "\n") + 1
	if lines < n {
		s += strings.Repeat("\n", n-lines)
	}
	return s
}
