package observe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver_WritesTransitionAttributes(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf, slog.LevelInfo)

	obs.ObserveTransition(context.Background(), TransitionEvent{
		Action:    "start",
		SessionID: "abc",
		From:      "idle",
		To:        "running",
		Remaining: 60,
	})

	out := buf.String()
	assert.Contains(t, out, "msg=timer_transition")
	assert.Contains(t, out, "action=start")
	assert.Contains(t, out, "session_id=abc")
	assert.Contains(t, out, "remaining_s=60")
}

func TestLogObserver_ErrorsLogAsWarnings(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf, slog.LevelInfo)

	obs.ObserveTransition(context.Background(), TransitionEvent{
		Action: "start", From: "idle", To: "idle", Err: errors.New("hour out of range"),
	})

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), `error="hour out of range"`)
}

func TestLogObserver_TicksOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf, slog.LevelInfo)

	obs.ObserveTransition(context.Background(), TransitionEvent{Action: "tick", From: "running", To: "running"})
	assert.Empty(t, buf.String())

	debug := NewLogObserver(&buf, slog.LevelDebug)
	debug.ObserveTransition(context.Background(), TransitionEvent{Action: "tick", From: "running", To: "running"})
	assert.Contains(t, buf.String(), "action=tick")
}

func TestNewLogObserver_NilWriterIsNoop(t *testing.T) {
	_, ok := NewLogObserver(nil, slog.LevelInfo).(NoopObserver)
	assert.True(t, ok)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
