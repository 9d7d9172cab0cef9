package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/innoq/innoq-timer/internal/clock"
	"github.com/innoq/innoq-timer/internal/config"
	"github.com/innoq/innoq-timer/internal/countdown"
	"github.com/innoq/innoq-timer/internal/notify"
	"github.com/innoq/innoq-timer/internal/observe"
	"github.com/spf13/cobra"
)

// App holds the configuration and collaborators shared by both modes.
type App struct {
	Config   config.Config
	Clock    clock.Clock
	Observer observe.Observer
	Logger   *slog.Logger

	// Chime is an extra completion sender. Built from Config.Chime when
	// nil; the audio device is opened on first use.
	Chime notify.Sender

	// IsInteractive reports whether a person is at the terminal. Nil
	// means no.
	IsInteractive func() bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) controllerOptions() []countdown.Option {
	return []countdown.Option{
		countdown.WithTickInterval(a.Config.TickInterval),
		countdown.WithErrorCueDelay(a.Config.ErrorCueDelay),
		countdown.WithNotifyTimeout(a.Config.NotifyTimeout),
	}
}

// NewRootCmd creates the "innoq-timer" command. Flags are bound over a copy
// of app.Config so they override the environment.
func NewRootCmd(app *App) *cobra.Command {
	cfg := app.Config
	root := &cobra.Command{
		Use:           "innoq-timer",
		Short:         "Count down to a time of day",
		Long:          "Pick an hour and a minute; innoq-timer counts down to the next time the clock shows it.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := config.SplitAt(cfg.At); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			app.Config = cfg
			if cfg.Chime && app.Chime == nil {
				app.Chime = notify.NewChime()
			}
			interactive := !cfg.Plain && app.interactive()

			closeLog, err := app.openLog(interactive)
			if err != nil {
				return err
			}
			defer closeLog()

			if !interactive {
				return runPlain(cmd.Context(), app)
			}
			return runInteractive(cmd.Context(), app)
		},
	}
	config.BindFlags(root.Flags(), &cfg)
	return root
}

func runInteractive(ctx context.Context, app *App) error {
	m := newAppModel(app)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if ctx != nil {
		opts = append(opts, tea.WithContext(ctx))
	}
	if app.In != nil {
		opts = append(opts, tea.WithInput(app.In))
	}
	if app.Out != nil {
		opts = append(opts, tea.WithOutput(app.Out))
	}

	p := tea.NewProgram(m, opts...)
	m.state.send = p.Send

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running timer: %w", err)
	}
	return nil
}
