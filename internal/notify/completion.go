package notify

import (
	"context"
	"log/slog"
)

const (
	Title = "INNOQ Timer"
	Body  = "Timer has finished!"
)

// Completion sends the fixed "timer finished" alert when permitted. Denial
// and delivery failures are logged at debug level and otherwise dropped.
type Completion struct {
	svc Service
	log *slog.Logger
}

// NewCompletion wraps svc. A nil logger discards.
func NewCompletion(svc Service, log *slog.Logger) *Completion {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Completion{svc: svc, log: log}
}

// Complete asks for permission if it is undecided and sends exactly one
// notification if it is granted.
func (c *Completion) Complete(ctx context.Context) {
	perm := c.svc.Permission()
	if perm == PermissionDefault {
		var err error
		perm, err = c.svc.RequestPermission(ctx)
		if err != nil {
			c.log.DebugContext(ctx, "notification permission request failed", "error", err)
			return
		}
	}
	if perm != PermissionGranted {
		c.log.DebugContext(ctx, "notification skipped", "permission", perm.String())
		return
	}
	if err := c.svc.Notify(ctx, Title, Body); err != nil {
		c.log.DebugContext(ctx, "notification failed", "error", err)
	}
}
