package main

import (
	"context"
	"fmt"
	"os"

	"github.com/innoq/innoq-timer/internal/cli"
	"github.com/innoq/innoq-timer/internal/clock"
	"github.com/innoq/innoq-timer/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	app := &cli.App{
		Config: cfg,
		Clock:  clock.System,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}

	// Interactive mode needs a terminal on both ends.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
