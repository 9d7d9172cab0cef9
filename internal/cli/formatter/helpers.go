package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FieldBox renders a two-digit input field. A field carrying the error cue
// gets a red border; the focused field a highlighted one.
func FieldBox(content string, focused, invalid bool) string {
	border := ColorDim
	switch {
	case invalid:
		border = ColorRed
	case focused:
		border = ColorHeader
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(4).
		Align(lipgloss.Center).
		Render(content)
}

// Button renders an action label, dimmed when the action is unavailable.
func Button(label string, enabled bool) string {
	style := lipgloss.NewStyle().Padding(0, 2).Bold(true)
	if enabled {
		style = style.Foreground(lipgloss.Color("#282828")).Background(ColorHeader)
	} else {
		style = style.Foreground(ColorDim).Background(lipgloss.Color("#3c3836"))
	}
	return style.Render(label)
}

// TargetLine describes the wall-clock time a countdown ends at.
func TargetLine(label string) string {
	if label == "" {
		return Dim("Enter an hour and a minute")
	}
	return Dim("Ends at ") + StyleBlue.Render(label)
}

// CountdownLine is the single-line rendering used by the plain runner:
// remaining time, target and a progress bar.
func CountdownLine(countdown, target string, pct float64, width int) string {
	return fmt.Sprintf("%s  → %s  %s", Bold(countdown), target, RenderProgress(pct, width))
}
