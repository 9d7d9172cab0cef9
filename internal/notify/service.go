// Package notify delivers the one-shot completion notification through a
// permission-gated notification service.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Permission is the user's decision about completion alerts.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "default"
	}
}

// ParsePermission maps "granted", "denied" and "default" (or "ask") to a
// Permission.
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted", "yes", "on":
		return PermissionGranted, nil
	case "denied", "no", "off":
		return PermissionDenied, nil
	case "default", "ask", "":
		return PermissionDefault, nil
	}
	return PermissionDefault, fmt.Errorf("unknown notification permission %q", s)
}

// ErrNotPermitted is returned by Notify on a service that was denied.
var ErrNotPermitted = errors.New("notifications not permitted")

// Service is the host notification service.
type Service interface {
	Permission() Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Notify(ctx context.Context, title, body string) error
}

// Sender shows one alert. Senders carry no permission state of their own;
// wrap them in a Gate.
type Sender interface {
	Send(ctx context.Context, title, body string) error
}

// Multi sends to every sender and joins their errors.
type Multi []Sender

func (m Multi) Send(ctx context.Context, title, body string) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, title, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
