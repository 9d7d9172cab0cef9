package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/innoq/innoq-timer/internal/observe"
)

// openLog wires app.Observer and app.Logger from the config unless they
// were injected. Interactive mode owns the terminal, so without a log file
// its logs are dropped; plain mode logs to app.Err. The returned func
// closes the log file, if any.
func (a *App) openLog(interactive bool) (func() error, error) {
	noop := func() error { return nil }
	if a.Observer != nil && a.Logger != nil {
		return noop, nil
	}

	level := observe.ParseLevel(a.Config.LogLevel)
	var w io.Writer
	closeLog := noop

	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return noop, fmt.Errorf("opening log file: %w", err)
		}
		w, closeLog = f, f.Close
	case !interactive:
		w = a.Err
	}

	if a.Observer == nil {
		a.Observer = observe.NewLogObserver(w, level)
	}
	if a.Logger == nil {
		if w == nil {
			a.Logger = slog.New(slog.DiscardHandler)
		} else {
			a.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
		}
	}
	return closeLog, nil
}
