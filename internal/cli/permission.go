package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/innoq/innoq-timer/internal/cli/formatter"
	"github.com/innoq/innoq-timer/internal/notify"
)

var errNoProgram = errors.New("interactive program not running")

// permissionAskMsg asks the model to show the permission prompt. The answer
// goes back on reply.
type permissionAskMsg struct {
	reply chan<- bool
}

// notifiedMsg is a completion alert delivered to the screen.
type notifiedMsg struct {
	title, body string
}

// permissionPrompt is the huh form shown while a permission request is open.
type permissionPrompt struct {
	form  *huh.Form
	allow *bool
	reply chan<- bool
}

func timerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newPermissionPrompt(reply chan<- bool) *permissionPrompt {
	allow := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow completion alerts?").
				Description(notify.Title + " would like to alert you when a countdown finishes.").
				Affirmative("Allow").
				Negative("Block").
				Value(&allow),
		),
	).WithTheme(timerHuhTheme()).WithShowHelp(false).WithWidth(60)
	return &permissionPrompt{form: form, allow: &allow, reply: reply}
}

// update feeds msg to the form. done is true once the user has answered or
// dismissed the prompt; the answer has been sent by then.
func (p *permissionPrompt) update(msg tea.Msg) (done bool, cmd tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		p.answer(false)
		return true, nil
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		p.answer(*p.allow)
		return true, cmd
	case huh.StateAborted:
		p.answer(false)
		return true, cmd
	}
	return false, cmd
}

func (p *permissionPrompt) answer(ok bool) {
	select {
	case p.reply <- ok:
	default:
	}
}

func (p *permissionPrompt) view() string {
	return p.form.View()
}

// programAsker returns a notify.Asker that shows the prompt inside the
// running program and waits for the answer.
func (s *SharedState) programAsker() notify.Asker {
	return func(ctx context.Context) (bool, error) {
		if s.send == nil {
			return false, errNoProgram
		}
		reply := make(chan bool, 1)
		s.send(permissionAskMsg{reply: reply})
		select {
		case ok := <-reply:
			return ok, nil
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

// bannerSender shows completion alerts on the finished screen.
type bannerSender struct {
	state *SharedState
}

func (b bannerSender) Send(_ context.Context, title, body string) error {
	if b.state.send == nil {
		return errNoProgram
	}
	b.state.send(notifiedMsg{title: title, body: body})
	return nil
}
