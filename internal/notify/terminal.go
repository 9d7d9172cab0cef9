package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Terminal rings the terminal bell and prints the alert as one line.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal writes alerts to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Send(_ context.Context, title, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintf(t.w, "\a%s: %s\n", title, body)
	return err
}
