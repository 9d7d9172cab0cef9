package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/innoq/innoq-timer/internal/cli/formatter"
	"github.com/innoq/innoq-timer/internal/config"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/notify"
)

var errAtRequired = errors.New("plain mode needs --at HH:MM")

const plainBarWidth = 20

// plainRunner is the non-interactive host. It owns the controller's event
// loop (a select over ticks, delayed events and interrupts) and prints one
// line per rendered second.
type plainRunner struct {
	out          io.Writer
	hour, minute string
	interrupts   <-chan os.Signal

	events chan countdown.Event
	done   chan struct{}

	ticker *time.Ticker
	ticks  <-chan time.Time
	tickID countdown.TickID

	wg       sync.WaitGroup
	lastLine string
	warned   bool
}

func newPlainRunner(out io.Writer, hour, minute string, interrupts <-chan os.Signal) *plainRunner {
	return &plainRunner{
		out:        out,
		hour:       hour,
		minute:     minute,
		interrupts: interrupts,
		events:     make(chan countdown.Event, 4),
		done:       make(chan struct{}),
	}
}

func runPlain(ctx context.Context, app *App) error {
	if app.Config.At == "" {
		return errAtRequired
	}
	hour, minute, err := config.SplitAt(app.Config.At)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	r := newPlainRunner(app.Out, hour, minute, sig)
	return r.run(ctx, r.controller(app), app.Config.NotifyTimeout)
}

// controller wires a controller to the runner. Alerts ring the terminal
// bell; permission is asked on stdin only when a person is there to answer.
func (r *plainRunner) controller(app *App) *countdown.Controller {
	senders := notify.Multi{notify.NewTerminal(r.out)}
	if app.Chime != nil {
		senders = append(senders, app.Chime)
	}
	var ask notify.Asker
	if app.In != nil && app.interactive() {
		ask = stdinAsker(app.In, r.out)
	}
	gate := notify.NewGate(app.Config.Notify, ask, senders)

	return countdown.New(countdown.Deps{
		Clock:    app.Clock,
		Host:     r,
		Display:  r,
		Inputs:   r,
		Notifier: notify.NewCompletion(gate, app.Logger),
		Observer: app.Observer,
	}, app.controllerOptions()...)
}

// run starts the countdown and loops until it finishes or the user leaves.
// A finished run waits up to notifyTimeout for the alert to go out.
func (r *plainRunner) run(ctx context.Context, ctrl *countdown.Controller, notifyTimeout time.Duration) error {
	defer close(r.done)

	if err := ctrl.Dispatch(countdown.Event{Trigger: countdown.TriggerStart}); err != nil {
		return fmt.Errorf("starting timer: %w", err)
	}

	for ctrl.State() == domain.StateRunning {
		select {
		case <-ctx.Done():
			ctrl.Stop()
			return ctx.Err()

		case <-r.ticks:
			_ = ctrl.Dispatch(countdown.Event{Trigger: countdown.TriggerTick, Tick: r.tickID})

		case ev := <-r.events:
			_ = ctrl.Dispatch(ev)

		case <-r.interrupts:
			if !r.warned && ctrl.ConfirmExit() {
				r.warned = true
				fmt.Fprintln(r.out, formatter.StyleYellow.Render(exitWarning)+formatter.Dim(" Press Ctrl+C again to leave."))
				continue
			}
			ctrl.Stop()
			fmt.Fprintln(r.out, formatter.Dim("Stopped."))
			return nil
		}
	}

	r.waitNotifications(notifyTimeout)
	return nil
}

// waitNotifications blocks until every Go'd function returned or timeout
// passed. It reports whether they all finished.
func (r *plainRunner) waitNotifications(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// ── countdown.Display ────────────────────────────────────────────────────────

func (r *plainRunner) Render(sc countdown.Screen) {
	var line string
	switch {
	case sc.Running:
		line = formatter.CountdownLine(sc.Countdown, sc.CountdownTarget, sc.Progress, plainBarWidth)
	case sc.Finished:
		line = formatter.CountdownLine(sc.Countdown, sc.CountdownTarget, sc.Progress, plainBarWidth) +
			"  " + formatter.StateIndicator(domain.StateFinished)
	case sc.ErrorField != domain.FieldNone:
		line = formatter.StyleRed.Render(fmt.Sprintf("Check the %s.", sc.ErrorField))
	default:
		return
	}
	if line == r.lastLine {
		return
	}
	r.lastLine = line
	fmt.Fprintln(r.out, line)
}

// ── countdown.Inputs ─────────────────────────────────────────────────────────

func (r *plainRunner) Values() (string, string) { return r.hour, r.minute }

func (r *plainRunner) Clear() { r.hour, r.minute = "", "" }

func (r *plainRunner) FocusHour() {}

// ── countdown.Host ───────────────────────────────────────────────────────────

func (r *plainRunner) StartTicks(id countdown.TickID, every time.Duration) {
	r.stopTicker()
	r.ticker = time.NewTicker(every)
	r.ticks = r.ticker.C
	r.tickID = id
}

func (r *plainRunner) StopTicks(id countdown.TickID) {
	if id == r.tickID {
		r.stopTicker()
	}
}

func (r *plainRunner) stopTicker() {
	if r.ticker != nil {
		r.ticker.Stop()
	}
	r.ticker = nil
	r.ticks = nil
	r.tickID = 0
}

func (r *plainRunner) After(d time.Duration, ev countdown.Event) {
	time.AfterFunc(d, func() {
		select {
		case r.events <- ev:
		case <-r.done:
		}
	})
}

func (r *plainRunner) Go(fn func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		fn()
	}()
}
