package domain

import (
	"fmt"
	"time"
)

// TimerSession is the single mutable record behind the countdown. It is
// created Idle with zero durations and mutated in place by the controller.
type TimerSession struct {
	ID        string
	State     State
	StartedAt time.Time

	// Target is captured when a run starts and cleared on reset.
	TargetHour   int
	TargetMinute int
	HasTarget    bool

	TotalSeconds     int
	RemainingSeconds int
}

// NewTimerSession returns an Idle session with zero durations.
func NewTimerSession() *TimerSession {
	return &TimerSession{State: StateIdle}
}

// Clear returns the session to its freshly constructed shape.
func (s *TimerSession) Clear() {
	*s = TimerSession{State: StateIdle}
}

// TargetLabel renders the captured target as HH:MM, or "" when none is set.
func (s *TimerSession) TargetLabel() string {
	if !s.HasTarget {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", s.TargetHour, s.TargetMinute)
}

// Progress returns the elapsed fraction of the run in [0,1].
func (s *TimerSession) Progress() float64 {
	if s.TotalSeconds <= 0 {
		if s.State == StateFinished {
			return 1
		}
		return 0
	}
	return float64(s.TotalSeconds-s.RemainingSeconds) / float64(s.TotalSeconds)
}

// Validate checks the field relationships every transition must preserve.
func (s *TimerSession) Validate() error {
	if s.TotalSeconds < 0 || s.RemainingSeconds < 0 {
		return fmt.Errorf("%w: negative duration (total=%d remaining=%d)", ErrInvariant, s.TotalSeconds, s.RemainingSeconds)
	}
	if s.RemainingSeconds > s.TotalSeconds {
		return fmt.Errorf("%w: remaining %d exceeds total %d", ErrInvariant, s.RemainingSeconds, s.TotalSeconds)
	}
	if s.HasTarget && (s.TargetHour < 0 || s.TargetHour > 23 || s.TargetMinute < 0 || s.TargetMinute > 59) {
		return fmt.Errorf("%w: target %02d:%02d out of range", ErrInvariant, s.TargetHour, s.TargetMinute)
	}
	if s.State == StateRunning && s.RemainingSeconds == 0 {
		return fmt.Errorf("%w: running with nothing remaining", ErrInvariant)
	}
	if s.State == StateFinished && s.RemainingSeconds != 0 {
		return fmt.Errorf("%w: finished with %d seconds remaining", ErrInvariant, s.RemainingSeconds)
	}
	return nil
}
