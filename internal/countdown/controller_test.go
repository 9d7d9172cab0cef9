package countdown

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/innoq/innoq-timer/internal/clock"
	"github.com/innoq/innoq-timer/internal/domain"
	"github.com/innoq/innoq-timer/internal/observe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rig struct {
	c        *Controller
	clock    *clock.Manual
	host     *fakeHost
	display  *fakeDisplay
	inputs   *fakeInputs
	notifier *fakeNotifier
}

func newRig(t *testing.T, now time.Time) *rig {
	t.Helper()
	r := &rig{
		clock:    clock.NewManual(now),
		host:     newFakeHost(),
		display:  &fakeDisplay{},
		inputs:   &fakeInputs{},
		notifier: &fakeNotifier{},
	}
	ids := 0
	r.c = New(Deps{
		Clock:    r.clock,
		Host:     r.host,
		Display:  r.display,
		Inputs:   r.inputs,
		Notifier: r.notifier,
	}, WithSessionIDs(func() string {
		ids++
		return fmt.Sprintf("run-%d", ids)
	}))
	return r
}

func (r *rig) typeTime(hour, minute string) {
	r.inputs.hour = hour
	r.inputs.minute = minute
	r.c.Dispatch(Event{Trigger: TriggerHourChanged})
	r.c.Dispatch(Event{Trigger: TriggerMinuteChanged})
}

func (r *rig) tick(t *testing.T) {
	t.Helper()
	require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerTick, Tick: r.c.ActiveTick()}))
}

func (r *rig) assertInvariants(t *testing.T) {
	t.Helper()
	s := r.c.Session()
	require.NoError(t, s.Validate())
	if s.State == domain.StateRunning {
		assert.Len(t, r.host.active, 1, "running needs exactly one tick source")
	} else {
		assert.Empty(t, r.host.active, "%s must not have a tick source", s.State)
	}
}

func TestController_InitialScreenIsIdleInputView(t *testing.T) {
	r := newRig(t, at(10, 0, 0))

	sc := r.display.last()
	assert.Equal(t, domain.StateIdle, sc.State)
	assert.True(t, sc.InputVisible)
	assert.False(t, sc.CountdownVisible)
	assert.False(t, sc.StartEnabled)
	assert.Equal(t, "00:00", sc.Countdown)
	r.assertInvariants(t)
}

func TestController_InputChangeUpdatesLabelAndStartEnabled(t *testing.T) {
	r := newRig(t, at(10, 0, 0))

	r.typeTime("9", "")
	assert.False(t, r.display.last().StartEnabled)
	assert.Equal(t, "", r.display.last().TargetLabel)

	r.typeTime("9", "5")
	assert.True(t, r.display.last().StartEnabled)
	assert.Equal(t, "09:05", r.display.last().TargetLabel)
	assert.Equal(t, domain.StateIdle, r.c.State(), "label refresh must not mutate the session")
}

func TestController_InvalidStartNeverRuns(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("25", "00")

	err := r.c.Dispatch(Event{Trigger: TriggerStart})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, domain.StateIdle, r.c.State())
	assert.False(t, r.display.last().StartEnabled)
	assert.Equal(t, domain.FieldHour, r.display.last().ErrorField)
	assert.Empty(t, r.host.started)
	r.assertInvariants(t)
}

func TestController_ErrorCueClearsAfterDelay(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "")

	_ = r.c.Start()
	require.Len(t, r.host.after, 1)
	call := r.host.after[0]
	assert.Equal(t, 2*time.Second, call.d)
	assert.Equal(t, TriggerClearError, call.ev.Trigger)
	assert.Equal(t, domain.FieldMinute, r.display.last().ErrorField)

	require.NoError(t, r.c.Dispatch(call.ev))
	assert.Equal(t, domain.FieldNone, r.display.last().ErrorField)
}

func TestController_StaleErrorCueClearIsIgnored(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("", "")

	_ = r.c.Start()
	_ = r.c.Start()
	require.Len(t, r.host.after, 2)

	r.c.Dispatch(r.host.after[0].ev)
	assert.Equal(t, domain.FieldHour, r.display.last().ErrorField, "older clear must not cut the newer cue short")

	r.c.Dispatch(r.host.after[1].ev)
	assert.Equal(t, domain.FieldNone, r.display.last().ErrorField)
}

func TestController_ZeroDurationIsRefused(t *testing.T) {
	r := newRig(t, at(10, 59, 59).Add(500*time.Millisecond))
	r.typeTime("11", "00")

	err := r.c.Start()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.StateIdle, r.c.State())
	r.assertInvariants(t)
}

func TestController_StartEntersRunning(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("11", "0")

	require.NoError(t, r.c.Start())

	s := r.c.Session()
	assert.Equal(t, domain.StateRunning, s.State)
	assert.Equal(t, 3600, s.TotalSeconds)
	assert.Equal(t, 3600, s.RemainingSeconds)
	assert.Equal(t, "run-1", s.ID)
	assert.Equal(t, "11:00", s.TargetLabel())

	sc := r.display.last()
	assert.False(t, sc.InputVisible)
	assert.False(t, sc.InputsEnabled)
	assert.True(t, sc.CountdownVisible)
	assert.True(t, sc.Running)
	assert.True(t, sc.StopVisible)
	assert.False(t, sc.ResetVisible)
	assert.Equal(t, "11:00", sc.CountdownTarget)
	assert.Equal(t, "01:00:00", sc.Countdown)

	require.Len(t, r.host.started, 1)
	assert.Equal(t, time.Second, r.host.active[r.c.ActiveTick()])
	r.assertInvariants(t)
}

func TestController_NonPositiveTickIntervalKeepsDefault(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		host := newFakeHost()
		inputs := &fakeInputs{hour: "11", minute: "0"}
		c := New(Deps{
			Clock:    clock.NewManual(at(10, 0, 0)),
			Host:     host,
			Display:  &fakeDisplay{},
			Inputs:   inputs,
			Notifier: &fakeNotifier{},
		}, WithTickInterval(d))

		require.NoError(t, c.Start())

		assert.Equal(t, time.Second, host.active[c.ActiveTick()], "interval %s", d)
	}
}

func TestController_StartWhileRunningIsNoop(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("11", "0")
	require.NoError(t, r.c.Start())
	r.tick(t)

	require.NoError(t, r.c.Start())

	assert.Len(t, r.host.started, 1, "second start must not create another tick source")
	assert.Equal(t, 3599, r.c.Session().RemainingSeconds)
	r.assertInvariants(t)
}

func TestController_TickDecrementsByOne(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "2")
	require.NoError(t, r.c.Start())

	r.tick(t)
	r.tick(t)

	assert.Equal(t, 118, r.c.Session().RemainingSeconds)
	assert.Equal(t, "01:58", r.display.last().Countdown)
	r.assertInvariants(t)
}

func TestController_TickFromOneFinishesInSameTick(t *testing.T) {
	r := newRig(t, at(10, 0, 59))
	r.typeTime("10", "1")
	require.NoError(t, r.c.Start())
	require.Equal(t, 1, r.c.Session().RemainingSeconds)

	r.tick(t)

	s := r.c.Session()
	assert.Equal(t, 0, s.RemainingSeconds)
	assert.Equal(t, domain.StateFinished, s.State)
	assert.Equal(t, TickID(0), r.c.ActiveTick())
	assert.Equal(t, 1, r.notifier.count())

	sc := r.display.last()
	assert.True(t, sc.Finished)
	assert.True(t, sc.CountdownVisible)
	assert.False(t, sc.InputVisible)
	assert.True(t, sc.ResetVisible)
	assert.False(t, sc.StopVisible)
	assert.Equal(t, "00:00", sc.Countdown)
	r.assertInvariants(t)

	// A late tick from the cancelled source changes nothing.
	r.c.Tick(r.host.started[0])
	assert.Equal(t, 0, r.c.Session().RemainingSeconds)
	assert.Equal(t, 1, r.notifier.count())
}

func TestController_StopCancelsTicksAndKeepsText(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "30")
	require.NoError(t, r.c.Start())
	tickID := r.c.ActiveTick()

	require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerStop}))

	s := r.c.Session()
	assert.Equal(t, domain.StateIdle, s.State)
	assert.Equal(t, 0, s.RemainingSeconds)
	assert.Equal(t, []TickID{tickID}, r.host.stopped)
	assert.Equal(t, "10", r.inputs.hour)
	assert.Equal(t, "30", r.inputs.minute)

	sc := r.display.last()
	assert.True(t, sc.InputVisible)
	assert.True(t, sc.InputsEnabled)
	assert.True(t, sc.StartEnabled)
	assert.Equal(t, "10:30", sc.TargetLabel)

	// No further decrements after stop.
	r.c.Tick(tickID)
	assert.Equal(t, 0, r.c.Session().RemainingSeconds)
	r.assertInvariants(t)
}

func TestController_StopTwiceHasNoFurtherEffect(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "30")
	require.NoError(t, r.c.Start())

	r.c.Stop()
	first := r.c.Session()
	renders := len(r.display.screens)

	r.c.Stop()

	assert.Equal(t, first, r.c.Session())
	assert.Len(t, r.host.stopped, 1)
	assert.Equal(t, renders, len(r.display.screens))
}

func TestController_ResetFromEveryState(t *testing.T) {
	setups := map[string]func(r *rig){
		"idle": func(r *rig) { r.typeTime("8", "15") },
		"running": func(r *rig) {
			r.typeTime("10", "5")
			require.NoError(t, r.c.Start())
		},
		"finished": func(r *rig) {
			r.typeTime("10", "1")
			require.NoError(t, r.c.Start())
			for r.c.State() == domain.StateRunning {
				r.tick(t)
			}
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			r := newRig(t, at(10, 0, 0))
			setup(r)

			require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerReset}))

			s := r.c.Session()
			assert.Equal(t, domain.StateIdle, s.State)
			assert.Zero(t, s.TotalSeconds)
			assert.Zero(t, s.RemainingSeconds)
			assert.False(t, s.HasTarget)
			assert.Empty(t, s.ID)
			assert.Equal(t, "", r.inputs.hour)
			assert.Equal(t, "", r.inputs.minute)
			assert.Equal(t, 1, r.inputs.focused)

			sc := r.display.last()
			assert.True(t, sc.InputVisible)
			assert.False(t, sc.Finished)
			assert.False(t, sc.StartEnabled)
			assert.Equal(t, domain.FieldNone, sc.ErrorField)
			r.assertInvariants(t)
		})
	}
}

func TestController_ResetTwiceHasNoFurtherEffect(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "5")
	require.NoError(t, r.c.Start())

	r.c.Reset()
	first := r.c.Session()
	firstScreen := r.display.last()
	stopped := len(r.host.stopped)

	r.c.Reset()

	assert.Equal(t, first, r.c.Session())
	assert.Equal(t, firstScreen, r.display.last())
	assert.Len(t, r.host.stopped, stopped)
}

func TestController_SubmitStartsOnlyWhenValid(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "")

	require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerSubmit}))
	assert.Equal(t, domain.StateIdle, r.c.State())
	assert.Empty(t, r.host.after, "enter on invalid input raises no cue")

	r.typeTime("10", "45")
	require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerSubmit}))
	assert.Equal(t, domain.StateRunning, r.c.State())
}

func TestController_ConfirmExitOnlyWhileRunning(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	assert.False(t, r.c.ConfirmExit())

	r.typeTime("10", "0")
	require.NoError(t, r.c.Start())
	assert.True(t, r.c.ConfirmExit())

	for r.c.State() == domain.StateRunning {
		r.tick(t)
	}
	assert.False(t, r.c.ConfirmExit())
}

func TestController_RestartAfterStopUsesFreshTickSource(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	r.typeTime("10", "30")
	require.NoError(t, r.c.Start())
	first := r.c.ActiveTick()
	r.c.Stop()

	require.NoError(t, r.c.Start())
	second := r.c.ActiveTick()

	assert.NotEqual(t, first, second)
	r.c.Tick(first)
	assert.Equal(t, 1800, r.c.Session().RemainingSeconds, "ticks from the old source are ignored")
	assert.Equal(t, "run-2", r.c.Session().ID)
	r.assertInvariants(t)
}

func TestController_DispatchUnknownTrigger(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	err := r.c.Dispatch(Event{Trigger: Trigger(99)})
	assert.ErrorIs(t, err, ErrUnknownTrigger)
}

func TestController_EndToEndOneMinute(t *testing.T) {
	r := newRig(t, at(23, 50, 0))
	r.typeTime("23", "51")

	require.NoError(t, r.c.Dispatch(Event{Trigger: TriggerStart}))
	require.Equal(t, 60, r.c.Session().TotalSeconds)

	for i := 0; i < 60; i++ {
		require.Equal(t, domain.StateRunning, r.c.State(), "finished early at tick %d", i)
		r.tick(t)
		r.assertInvariants(t)
	}

	assert.Equal(t, domain.StateFinished, r.c.State())
	assert.Equal(t, "00:00", r.display.last().Countdown)
	assert.Equal(t, 1, r.notifier.count())
	assert.Equal(t, 1, r.host.spawned)
}

type recordingObserver struct {
	actions []string
}

func (o *recordingObserver) ObserveTransition(_ context.Context, ev observe.TransitionEvent) {
	o.actions = append(o.actions, ev.Action+":"+ev.To)
}

func TestController_ObserveRecordsTransitions(t *testing.T) {
	r := newRig(t, at(10, 0, 0))
	first, second := &recordingObserver{}, &recordingObserver{}
	r.c.Observe(first)
	r.c.Observe(second)
	r.c.Observe(nil)

	r.typeTime("10", "1")
	require.NoError(t, r.c.Start())
	r.tick(t)
	r.c.Stop()
	r.c.Reset()

	want := []string{"start:running", "tick:running", "stop:idle", "reset:idle"}
	assert.Equal(t, want, first.actions)
	assert.Equal(t, want, second.actions)
}
