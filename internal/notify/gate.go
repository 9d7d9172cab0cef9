package notify

import (
	"context"
	"fmt"
	"sync"
)

// Asker puts the permission question to the user.
type Asker func(ctx context.Context) (bool, error)

// Gate is a Service that remembers a single permission decision for the
// life of the process. While undecided, RequestPermission asks once; a
// failed or cancelled question leaves the decision open.
type Gate struct {
	mu       sync.Mutex
	decision Permission
	ask      Asker
	sender   Sender
}

// NewGate returns a Service starting from initial. A nil ask treats every
// request as denied.
func NewGate(initial Permission, ask Asker, sender Sender) *Gate {
	return &Gate{decision: initial, ask: ask, sender: sender}
}

var _ Service = (*Gate)(nil)

func (g *Gate) Permission() Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decision
}

func (g *Gate) RequestPermission(ctx context.Context) (Permission, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.decision != PermissionDefault {
		return g.decision, nil
	}
	if g.ask == nil {
		g.decision = PermissionDenied
		return g.decision, nil
	}
	ok, err := g.ask(ctx)
	if err != nil {
		return PermissionDefault, fmt.Errorf("asking for notification permission: %w", err)
	}
	if ok {
		g.decision = PermissionGranted
	} else {
		g.decision = PermissionDenied
	}
	return g.decision, nil
}

func (g *Gate) Notify(ctx context.Context, title, body string) error {
	if g.Permission() != PermissionGranted {
		return ErrNotPermitted
	}
	return g.sender.Send(ctx, title, body)
}
