package cli

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/domain"
)

// surface is the display and input surface of the interactive mode: two
// numeric text fields plus the last Screen the controller rendered.
type surface struct {
	hour   textinput.Model
	minute textinput.Model
	focus  domain.Field
	screen countdown.Screen
}

func newSurface() *surface {
	s := &surface{
		hour:   newNumericInput("HH"),
		minute: newNumericInput("MM"),
	}
	s.FocusHour()
	return s
}

func newNumericInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 2
	ti.Width = 2
	return ti
}

// Render stores the screen. Fields lose focus while they are locked and
// get it back when the input view returns.
func (s *surface) Render(sc countdown.Screen) {
	s.screen = sc
	if !sc.InputsEnabled {
		s.hour.Blur()
		s.minute.Blur()
		return
	}
	if !s.hour.Focused() && !s.minute.Focused() {
		s.focusField(s.focus)
	}
}

func (s *surface) Values() (string, string) {
	return s.hour.Value(), s.minute.Value()
}

func (s *surface) Clear() {
	s.hour.SetValue("")
	s.minute.SetValue("")
}

func (s *surface) FocusHour() {
	s.focusField(domain.FieldHour)
}

// toggleFocus moves between the hour and minute fields.
func (s *surface) toggleFocus() {
	if s.focus == domain.FieldMinute {
		s.focusField(domain.FieldHour)
		return
	}
	s.focusField(domain.FieldMinute)
}

func (s *surface) focusField(f domain.Field) {
	if f != domain.FieldMinute {
		f = domain.FieldHour
	}
	s.focus = f
	if f == domain.FieldHour {
		s.hour.Focus()
		s.minute.Blur()
		return
	}
	s.minute.Focus()
	s.hour.Blur()
}

// edit forwards a filtered key to the focused field and reports which
// trigger, if any, the change corresponds to.
func (s *surface) edit(msg tea.KeyMsg) (countdown.Trigger, bool, tea.Cmd) {
	field := &s.hour
	trigger := countdown.TriggerHourChanged
	if s.focus == domain.FieldMinute {
		field = &s.minute
		trigger = countdown.TriggerMinuteChanged
	}
	before := field.Value()
	var cmd tea.Cmd
	*field, cmd = field.Update(msg)
	return trigger, field.Value() != before, cmd
}
