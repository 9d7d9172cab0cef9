// Package observe records timer transitions as structured log events.
package observe

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// TransitionEvent captures one controller action and the state it left behind.
type TransitionEvent struct {
	Action    string
	SessionID string
	From      string
	To        string
	Remaining int
	Err       error
	At        time.Time
}

// Observer receives transition events.
type Observer interface {
	ObserveTransition(ctx context.Context, event TransitionEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveTransition(context.Context, TransitionEvent) {}

// Multi fans each event out to every observer in order.
type Multi []Observer

func (m Multi) ObserveTransition(ctx context.Context, event TransitionEvent) {
	for _, o := range m {
		o.ObserveTransition(ctx, event)
	}
}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes transition events to w as slog text records at or
// above level. A nil writer yields a NoopObserver.
func NewLogObserver(w io.Writer, level slog.Level) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

func (o *logObserver) ObserveTransition(ctx context.Context, event TransitionEvent) {
	attrs := make([]any, 0, 12)
	attrs = append(attrs,
		"action", event.Action,
		"from", event.From,
		"to", event.To,
		"remaining_s", event.Remaining,
	)
	if event.SessionID != "" {
		attrs = append(attrs, "session_id", event.SessionID)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.WarnContext(ctx, "timer_transition", attrs...)
		return
	}
	if event.Action == "tick" {
		o.logger.DebugContext(ctx, "timer_transition", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "timer_transition", attrs...)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
