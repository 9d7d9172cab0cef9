package countdown

import "github.com/innoq/innoq-timer/internal/domain"

// Screen is everything a display needs, derived from session state alone so
// no impossible combination (countdown visible while idle) can be rendered.
type Screen struct {
	State domain.State

	InputVisible     bool
	CountdownVisible bool
	Running          bool
	Finished         bool

	InputsEnabled bool
	StartEnabled  bool
	StopVisible   bool
	ResetVisible  bool

	// TargetLabel follows the fields while editing; CountdownTarget is the
	// label captured when the run started.
	TargetLabel     string
	CountdownTarget string
	Countdown       string
	Progress        float64

	ErrorField domain.Field
}

// view holds the controller-owned values that are not part of the session.
type view struct {
	label        string
	startEnabled bool
	cue          domain.Field
}

func deriveScreen(s *domain.TimerSession, v view) Screen {
	sc := Screen{
		State:      s.State,
		Countdown:  FormatTime(s.RemainingSeconds),
		Progress:   s.Progress(),
		ErrorField: v.cue,
	}
	switch s.State {
	case domain.StateIdle:
		sc.InputVisible = true
		sc.InputsEnabled = true
		sc.StartEnabled = v.startEnabled
		sc.TargetLabel = v.label
	case domain.StateRunning:
		sc.CountdownVisible = true
		sc.Running = true
		sc.StopVisible = true
		sc.CountdownTarget = s.TargetLabel()
	case domain.StateFinished:
		sc.CountdownVisible = true
		sc.Finished = true
		sc.ResetVisible = true
		sc.CountdownTarget = s.TargetLabel()
	}
	return sc
}
