package countdown

import "fmt"

// FormatTime renders seconds as MM:SS, or HH:MM:SS once an hour or more
// remains. Non-positive input renders "00:00". The hours field widens past
// two digits if it has to.
func FormatTime(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
