package countdown

// TickID tags one tick source. Zero means "none".
type TickID uint64

// Trigger names an entry in the controller's dispatch table.
type Trigger int

const (
	TriggerHourChanged Trigger = iota
	TriggerMinuteChanged
	TriggerStart
	TriggerSubmit
	TriggerStop
	TriggerReset
	TriggerTick
	TriggerClearError
)

var triggerNames = map[Trigger]string{
	TriggerHourChanged:   "hour_changed",
	TriggerMinuteChanged: "minute_changed",
	TriggerStart:         "start",
	TriggerSubmit:        "submit",
	TriggerStop:          "stop",
	TriggerReset:         "reset",
	TriggerTick:          "tick",
	TriggerClearError:    "clear_error",
}

func (t Trigger) String() string {
	if name, ok := triggerNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is one occurrence of a trigger. Tick is set for TriggerTick and Seq
// for TriggerClearError.
type Event struct {
	Trigger Trigger
	Tick    TickID
	Seq     int
}
