package countdown

// KeyAllowed is the keystroke filter for the numeric fields. Keys are named
// the way terminal key events name them ("3", "backspace", "enter").
// Anything else is dropped before it reaches a field. It is a convenience
// only; ValidateInput stays the authority.
func KeyAllowed(key string) bool {
	switch key {
	case "backspace", "delete", "enter":
		return true
	}
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// DigitsOnly reports whether every rune of s is an ASCII digit. Used for
// pasted runs of characters, which arrive as one event.
func DigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
