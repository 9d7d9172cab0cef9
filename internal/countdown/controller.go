// Package countdown implements the target-time countdown: input validation,
// next-occurrence resolution, formatting and the Idle/Running/Finished state
// machine driven by a single tick source.
//
// The Controller is not safe for concurrent use. Every call, including tick
// delivery, must come from the one event loop that owns it.
package countdown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/innoq/innoq-timer/internal/clock"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/observe"
)

// ErrUnknownTrigger is returned by Dispatch for an event without a handler.
var ErrUnknownTrigger = errors.New("no handler for trigger")

// Deps are the collaborators a Controller calls into.
type Deps struct {
	Clock    clock.Clock
	Host     Host
	Display  Display
	Inputs   Inputs
	Notifier Notifier
	Observer observe.Observer
}

// Option configures the controller.
type Option func(*Controller)

// WithTickInterval sets the period of the tick source. Non-positive
// values keep the default.
func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.tickEvery = d
		}
	}
}

// WithErrorCueDelay sets how long a rejected field stays marked.
func WithErrorCueDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.cueDelay = d
	}
}

// WithNotifyTimeout bounds the permission request plus notification.
func WithNotifyTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.notifyTimeout = d
	}
}

// WithSessionIDs replaces the uuid generator used to tag runs.
func WithSessionIDs(next func() string) Option {
	return func(c *Controller) {
		c.newID = next
	}
}

// Controller owns the TimerSession and every transition on it.
type Controller struct {
	clock    clock.Clock
	host     Host
	display  Display
	inputs   Inputs
	notifier Notifier
	obs      observe.Observer

	tickEvery     time.Duration
	cueDelay      time.Duration
	notifyTimeout time.Duration
	newID         func() string

	session  *domain.TimerSession
	view     view
	tick     TickID
	lastTick TickID
	cueSeq   int

	handlers map[Trigger]func(Event) error
}

// New builds an Idle controller and renders the initial screen.
func New(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		clock:         deps.Clock,
		host:          deps.Host,
		display:       deps.Display,
		inputs:        deps.Inputs,
		notifier:      deps.Notifier,
		obs:           deps.Observer,
		tickEvery:     time.Second,
		cueDelay:      2 * time.Second,
		notifyTimeout: 2 * time.Minute,
		newID:         uuid.NewString,
		session:       domain.NewTimerSession(),
	}
	if c.clock == nil {
		c.clock = clock.System
	}
	if c.obs == nil {
		c.obs = observe.NoopObserver{}
	}
	for _, opt := range opts {
		opt(c)
	}

	c.handlers = map[Trigger]func(Event) error{
		TriggerHourChanged:   func(Event) error { c.InputChanged(); return nil },
		TriggerMinuteChanged: func(Event) error { c.InputChanged(); return nil },
		TriggerStart:         func(Event) error { return c.Start() },
		TriggerSubmit:        func(Event) error { return c.Submit() },
		TriggerStop:          func(Event) error { c.Stop(); return nil },
		TriggerReset:         func(Event) error { c.Reset(); return nil },
		TriggerTick:          func(ev Event) error { c.Tick(ev.Tick); return nil },
		TriggerClearError:    func(ev Event) error { c.ClearError(ev.Seq); return nil },
	}

	c.InputChanged()
	return c
}

// Dispatch routes ev through the dispatch table. Errors from refused starts
// have already been surfaced on the display when they are returned here.
func (c *Controller) Dispatch(ev Event) error {
	h, ok := c.handlers[ev.Trigger]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTrigger, int(ev.Trigger))
	}
	return h(ev)
}

// Session returns a copy of the current session.
func (c *Controller) Session() domain.TimerSession {
	return *c.session
}

// State returns the current lifecycle state.
func (c *Controller) State() domain.State {
	return c.session.State
}

// Screen returns the screen the display was last given.
func (c *Controller) Screen() Screen {
	return deriveScreen(c.session, c.view)
}

// ActiveTick returns the id of the live tick source, or zero.
func (c *Controller) ActiveTick() TickID {
	return c.tick
}

// Observe registers an additional observer for transition events.
func (c *Controller) Observe(o observe.Observer) {
	if o == nil {
		return
	}
	if _, noop := c.obs.(observe.NoopObserver); noop {
		c.obs = o
		return
	}
	c.obs = observe.Multi{c.obs, o}
}

// ConfirmExit reports whether leaving now must be confirmed by the user.
func (c *Controller) ConfirmExit() bool {
	return c.session.State == domain.StateRunning
}

// InputChanged re-validates the fields and refreshes the live target label.
// Only meaningful while Idle; the fields are locked otherwise.
func (c *Controller) InputChanged() {
	if c.session.State != domain.StateIdle {
		return
	}
	c.refreshInputs()
	c.render()
}

func (c *Controller) refreshInputs() (hour, minute string) {
	hour, minute = c.inputs.Values()
	c.view.startEnabled = Valid(hour, minute)
	c.view.label = TargetLabel(hour, minute)
	return hour, minute
}

// Submit is the Enter key: it starts only when the fields validate and is
// silently ignored otherwise.
func (c *Controller) Submit() error {
	hour, minute := c.inputs.Values()
	if !Valid(hour, minute) {
		return nil
	}
	return c.Start()
}

// Start moves Idle to Running. It is refused with an error wrapping
// domain.ErrInvalidInput when the fields do not validate or the target is
// less than a second away. Start outside Idle is a no-op, so a second start
// can never create a second tick source.
func (c *Controller) Start() error {
	if c.session.State != domain.StateIdle {
		return nil
	}
	from := c.session.State

	hour, minute := c.refreshInputs()
	target, err := ValidateInput(hour, minute)
	if err != nil {
		c.refuse(err)
		return err
	}
	seconds := SecondsUntil(c.clock.Now(), target)
	if seconds <= 0 {
		err := &InputError{Field: domain.FieldMinute, Reason: "target is less than a second away"}
		c.refuse(err)
		return err
	}

	c.cancelTicks()
	c.clearCue()
	s := c.session
	s.ID = c.newID()
	s.StartedAt = c.clock.Now()
	s.TargetHour, s.TargetMinute, s.HasTarget = target.Hour, target.Minute, true
	s.TotalSeconds = seconds
	s.RemainingSeconds = seconds
	s.State = domain.StateRunning

	c.lastTick++
	c.tick = c.lastTick
	c.host.StartTicks(c.tick, c.tickEvery)

	c.observe("start", from, nil)
	c.render()
	return nil
}

// Tick consumes one second. Ticks from a cancelled source are ignored. The
// tick that reaches zero also completes the run.
func (c *Controller) Tick(id TickID) {
	if c.session.State != domain.StateRunning || id == 0 || id != c.tick {
		return
	}
	c.session.RemainingSeconds--
	if c.session.RemainingSeconds <= 0 {
		c.session.RemainingSeconds = 0
		c.finish()
		return
	}
	c.observe("tick", domain.StateRunning, nil)
	c.render()
}

// Stop abandons a running countdown but keeps the typed hour and minute.
func (c *Controller) Stop() {
	if c.session.State != domain.StateRunning {
		return
	}
	c.cancelTicks()
	c.session.RemainingSeconds = 0
	c.session.State = domain.StateIdle
	c.observe("stop", domain.StateRunning, nil)
	c.InputChanged()
}

// Reset returns to a pristine Idle session from any state and clears the
// typed hour and minute.
func (c *Controller) Reset() {
	from := c.session.State
	c.cancelTicks()
	id := c.session.ID
	c.session.Clear()
	c.clearCue()
	c.inputs.Clear()
	c.inputs.FocusHour()
	if from != domain.StateIdle || id != "" {
		c.obs.ObserveTransition(context.Background(), observe.TransitionEvent{
			Action: "reset", SessionID: id, From: from.String(), To: domain.StateIdle.String(), At: c.clock.Now(),
		})
	}
	c.InputChanged()
}

// ClearError removes the field cue raised by refusal seq. Stale sequence
// numbers are ignored so a newer cue keeps its full delay.
func (c *Controller) ClearError(seq int) {
	if seq != c.cueSeq || c.view.cue == domain.FieldNone {
		return
	}
	c.view.cue = domain.FieldNone
	c.render()
}

func (c *Controller) finish() {
	c.cancelTicks()
	c.session.State = domain.StateFinished
	c.observe("finish", domain.StateRunning, nil)
	c.render()

	if c.notifier == nil {
		return
	}
	notifier, timeout := c.notifier, c.notifyTimeout
	c.host.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notifier.Complete(ctx)
	})
}

func (c *Controller) refuse(err error) {
	field := domain.FieldHour
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		field = inputErr.Field
	}
	c.cueSeq++
	c.view.cue = field
	c.host.After(c.cueDelay, Event{Trigger: TriggerClearError, Seq: c.cueSeq})
	c.observe("start", c.session.State, err)
	c.render()
}

func (c *Controller) clearCue() {
	c.view.cue = domain.FieldNone
}

// cancelTicks is idempotent: with no live source it does nothing.
func (c *Controller) cancelTicks() {
	if c.tick == 0 {
		return
	}
	c.host.StopTicks(c.tick)
	c.tick = 0
}

func (c *Controller) observe(action string, from domain.State, err error) {
	c.obs.ObserveTransition(context.Background(), observe.TransitionEvent{
		Action:    action,
		SessionID: c.session.ID,
		From:      from.String(),
		To:        c.session.State.String(),
		Remaining: c.session.RemainingSeconds,
		Err:       err,
		At:        c.clock.Now(),
	})
}

func (c *Controller) render() {
	c.display.Render(deriveScreen(c.session, c.view))
}
