package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/innoq/innoq-timer/internal/cli/formatter"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/notify"
)

// exitWarning is shown before leaving while a countdown runs.
const (
	exitTitle   = "Leave timer?"
	exitWarning = "Timer is running. Are you sure you want to leave?"
)

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	s := m.state
	sc := s.surface.screen

	var content string
	switch {
	case s.prompt != nil:
		content = "\n" + indent(s.prompt.view())
	case s.confirmExit:
		content = "\n" + indent(m.renderExitWarning())
	case sc.InputVisible:
		content = m.renderInputView(sc)
	default:
		content = m.renderCountdownView(sc)
	}
	if s.Height > 0 {
		content = padLines(content, s.ContentHeight())
	}

	return strings.Join([]string{
		m.renderHeader(sc),
		content,
		m.renderStatusBar(sc),
	}, "\n")
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m appModel) renderHeader(sc countdown.Screen) string {
	title := formatter.StyleHeader.Render(notify.Title)
	header := title + "  " + formatter.StateIndicator(sc.State)
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m appModel) renderInputView(sc countdown.Screen) string {
	f := m.state.surface
	fields := lipgloss.JoinHorizontal(lipgloss.Center,
		formatter.FieldBox(f.hour.View(), f.focus == domain.FieldHour, sc.ErrorField == domain.FieldHour),
		" : ",
		formatter.FieldBox(f.minute.View(), f.focus == domain.FieldMinute, sc.ErrorField == domain.FieldMinute),
	)

	lines := []string{
		"",
		formatter.Bold("Target time"),
		fields,
		formatter.TargetLine(sc.TargetLabel),
		"",
		formatter.Button("Start Timer", sc.StartEnabled),
	}
	if sc.ErrorField != domain.FieldNone {
		lines = append(lines, "", formatter.StyleRed.Render(fmt.Sprintf("Check the %s.", sc.ErrorField)))
	}
	return indent(strings.Join(lines, "\n"))
}

func (m appModel) renderCountdownView(sc countdown.Screen) string {
	digits := formatter.StateColor(sc.State).Bold(true).Render(sc.Countdown)

	caption := formatter.Dim("Counting down to ") + formatter.StyleBlue.Render(sc.CountdownTarget)
	if sc.Finished {
		caption = formatter.Dim("Reached ") + formatter.StyleBlue.Render(sc.CountdownTarget)
	}

	lines := []string{
		"",
		digits,
		caption,
		"",
		m.progress.ViewAs(sc.Progress),
		"",
	}
	if sc.Finished && m.state.banner != "" {
		lines = append(lines, formatter.StyleYellow.Render("🔔 "+m.state.banner), "")
	}
	if sc.StopVisible {
		lines = append(lines, formatter.Button("Stop", true))
	}
	if sc.ResetVisible {
		lines = append(lines, formatter.Button("Reset", true))
	}
	return indent(strings.Join(lines, "\n"))
}

func (m appModel) renderExitWarning() string {
	return formatter.RenderBox("", formatter.Header(exitTitle)+"\n"+formatter.StyleYellow.Render(exitWarning))
}

func (m appModel) renderStatusBar(sc countdown.Screen) string {
	var hints string
	switch {
	case m.state.prompt != nil:
		hints = formatter.Dim("enter: confirm  esc: block")
	case m.state.confirmExit:
		hints = m.help.ShortHelpView(keys.confirmHelp())
	default:
		hints = m.help.ShortHelpView(keys.shortHelp(sc.State))
	}

	sep := formatter.StyleDim.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + hints
}

func indent(s string) string {
	return lipgloss.NewStyle().PaddingLeft(2).Render(s)
}
