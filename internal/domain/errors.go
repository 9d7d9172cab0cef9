package domain

import "errors"

var (
	// ErrInvalidInput covers empty or out-of-range hour/minute text and a
	// resolved duration of zero seconds.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariant reports a TimerSession whose fields contradict each other.
	ErrInvariant = errors.New("session invariant violated")
)
