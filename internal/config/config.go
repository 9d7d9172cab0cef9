// Package config loads runtime settings from INNOQ_TIMER_* environment
// variables and lets command-line flags override them.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/innoq/innoq-timer/internal/notify"
	"github.com/spf13/pflag"
)

// Config holds every tunable of the timer.
type Config struct {
	// At pre-fills the hour and minute fields, as "HH:MM".
	At string

	Plain    bool
	Notify   notify.Permission
	Chime    bool
	LogFile  string
	LogLevel string

	// TickInterval is not user-settable: every tick removes one second, so
	// anything but time.Second would drift from the wall clock. Tests
	// shorten it directly.
	TickInterval  time.Duration
	ErrorCueDelay time.Duration
	NotifyTimeout time.Duration
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Notify:        notify.PermissionDefault,
		LogLevel:      "info",
		TickInterval:  time.Second,
		ErrorCueDelay: 2 * time.Second,
		NotifyTimeout: 2 * time.Minute,
	}
}

// LoadConfig reads environment variables, falling back to defaults for
// unset or unparsable values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("INNOQ_TIMER_AT"); v != "" {
		cfg.At = v
	}
	if v := os.Getenv("INNOQ_TIMER_PLAIN"); v != "" {
		cfg.Plain, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("INNOQ_TIMER_NOTIFY"); v != "" {
		if p, err := notify.ParsePermission(v); err == nil {
			cfg.Notify = p
		}
	}
	if v := os.Getenv("INNOQ_TIMER_CHIME"); v != "" {
		cfg.Chime, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("INNOQ_TIMER_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("INNOQ_TIMER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	applyMillisEnv(&cfg.ErrorCueDelay, "INNOQ_TIMER_ERROR_CUE_MS")
	applyMillisEnv(&cfg.NotifyTimeout, "INNOQ_TIMER_NOTIFY_TIMEOUT_MS")

	return cfg
}

func applyMillisEnv(dst *time.Duration, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}

// BindFlags registers flags on fs that write into cfg. Values already in
// cfg become the flag defaults, so flags win over the environment.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.At, "at", cfg.At, "target time as HH:MM")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "print countdown lines instead of the interactive screen")
	fs.Var(&permissionValue{p: &cfg.Notify}, "notify", "completion alerts: granted, denied or ask")
	fs.BoolVar(&cfg.Chime, "chime", cfg.Chime, "play a sound when the timer finishes")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "write transition logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
}

// Validate reports durations that would stall or crash the tick source.
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"tick interval", c.TickInterval},
		{"error cue delay", c.ErrorCueDelay},
		{"notify timeout", c.NotifyTimeout},
	}
	for _, v := range durations {
		if v.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", v.name, v.d)
		}
	}
	return nil
}

// SplitAt splits an "HH:MM" value into the raw field texts. It does not
// validate; that is left to the countdown validator.
func SplitAt(at string) (hour, minute string, err error) {
	if at == "" {
		return "", "", nil
	}
	h, m, ok := strings.Cut(at, ":")
	if !ok {
		return "", "", fmt.Errorf("--at %q: expected HH:MM", at)
	}
	return strings.TrimSpace(h), strings.TrimSpace(m), nil
}

type permissionValue struct {
	p *notify.Permission
}

func (v *permissionValue) String() string {
	if v.p == nil {
		return notify.PermissionDefault.String()
	}
	return v.p.String()
}

func (v *permissionValue) Set(s string) error {
	p, err := notify.ParsePermission(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v *permissionValue) Type() string { return "permission" }
