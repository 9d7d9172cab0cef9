package countdown

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/innoq/innoq-timer/internal/domain"
)

// Target is a validated 24-hour wall-clock time of day.
type Target struct {
	Hour   int
	Minute int
}

// Label renders the target as zero-padded HH:MM.
func (t Target) Label() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// InputError explains why the hour/minute text was rejected.
type InputError struct {
	Field  domain.Field
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return domain.ErrInvalidInput }

// ValidateInput parses raw field text. Both fields must be non-empty base-10
// integers, hour in [0,23] and minute in [0,59]. The hour field is checked
// first so the error names the first offending field.
func ValidateInput(hourText, minuteText string) (Target, error) {
	hour, err := parseField(domain.FieldHour, hourText, 23)
	if err != nil {
		return Target{}, err
	}
	minute, err := parseField(domain.FieldMinute, minuteText, 59)
	if err != nil {
		return Target{}, err
	}
	return Target{Hour: hour, Minute: minute}, nil
}

// Valid reports whether ValidateInput accepts the pair.
func Valid(hourText, minuteText string) bool {
	_, err := ValidateInput(hourText, minuteText)
	return err == nil
}

func parseField(field domain.Field, text string, max int) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, &InputError{Field: field, Reason: "required"}
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, &InputError{Field: field, Reason: fmt.Sprintf("%q is not a number", text)}
	}
	if v < 0 || v > max {
		return 0, &InputError{Field: field, Reason: fmt.Sprintf("%d is outside 0-%d", v, max)}
	}
	return v, nil
}
