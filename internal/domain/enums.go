package domain

// State is the lifecycle state of a TimerSession.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Field identifies one of the two numeric input fields.
type Field int

const (
	FieldNone Field = iota
	FieldHour
	FieldMinute
)

func (f Field) String() string {
	switch f {
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	default:
		return "none"
	}
}
