package countdown

import "time"

// ResolveTarget returns the next instant at or after now whose local time of
// day is t:00.000. A time of day that has passed, or equals now, rolls
// forward one calendar day.
func ResolveTarget(now time.Time, t Target) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// SecondsUntil is the whole number of seconds from now to the resolved
// target, floored and never negative.
func SecondsUntil(now time.Time, t Target) int {
	d := ResolveTarget(now, t).Sub(now)
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// TargetLabel renders the HH:MM label for raw field text, or "" while the
// text does not validate.
func TargetLabel(hourText, minuteText string) string {
	t, err := ValidateInput(hourText, minuteText)
	if err != nil {
		return ""
	}
	return t.Label()
}
