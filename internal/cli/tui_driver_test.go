package cli

import (
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/innoq/innoq-timer/internal/clock"
	"github.com/innoq/innoq-timer/internal/config"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/notify"
	"github.com/innoq/innoq-timer/internal/teatest"
)

// TestDriver wraps teatest.Driver with timer-specific inspection methods
// that reach into appModel's shared state.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver constructs the appModel for app, sets the terminal size and
// drains Init().
func NewTestDriver(t *testing.T, app *App, opts ...teatest.Option) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	opts = append([]teatest.Option{teatest.WithSize(80, 24)}, opts...)
	d := teatest.New(t, m, opts...)
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// testApp returns an App on a manual clock set to today's h:m:00 in UTC.
// Alerts are denied so nothing prompts unless a test opts in.
func testApp(t *testing.T, h, m int) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Notify = notify.PermissionDenied
	return &App{
		Config: cfg,
		Clock:  clock.NewManual(time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)),
		Out:    io.Discard,
		Err:    io.Discard,
	}
}

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// ── High-level helpers ───────────────────────────────────────────────────────

// EnterTime types hour into the hour field and minute into the minute
// field, leaving focus on the minute field.
func (d *TestDriver) EnterTime(hour, minute string) {
	d.T.Helper()
	d.Type(hour)
	d.PressTab()
	d.Type(minute)
}

// Tick delivers one beat of the live tick source.
func (d *TestDriver) Tick() {
	d.T.Helper()
	d.Send(tickMsg{id: d.state().ctrl.ActiveTick()})
}

// ── Timer inspection ─────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

func (d *TestDriver) state() *SharedState {
	return d.appModel().state
}

// State returns the controller's lifecycle state.
func (d *TestDriver) State() domain.State {
	return d.state().ctrl.State()
}

// Screen returns the last screen rendered to the surface.
func (d *TestDriver) Screen() countdown.Screen {
	return d.state().surface.screen
}

// Session returns a copy of the timer session.
func (d *TestDriver) Session() domain.TimerSession {
	return d.state().ctrl.Session()
}

// Fields returns the raw hour and minute text.
func (d *TestDriver) Fields() (string, string) {
	return d.state().surface.Values()
}

// Focus returns the focused field.
func (d *TestDriver) Focus() domain.Field {
	return d.state().surface.focus
}

// Text returns the rendered view without ANSI styling.
func (d *TestDriver) Text() string {
	return stripANSI(d.View())
}

// IsQuitting reports whether the model asked the program to exit.
func (d *TestDriver) IsQuitting() bool {
	return d.Quitting || d.appModel().quitting
}

// ConfirmingExit reports whether the exit warning is shown.
func (d *TestDriver) ConfirmingExit() bool {
	return d.state().confirmExit
}

// PromptOpen reports whether the permission prompt is shown.
func (d *TestDriver) PromptOpen() bool {
	return d.state().prompt != nil
}
