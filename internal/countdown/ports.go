package countdown

import (
	"context"
	"time"
)

// Display is the output surface. It receives a complete Screen after every
// change and never derives state of its own.
type Display interface {
	Render(Screen)
}

// Inputs is the pair of numeric text fields.
type Inputs interface {
	Values() (hour, minute string)
	Clear()
	FocusHour()
}

// Host is the event loop the controller runs on. Ticks tagged with id must
// be delivered as TriggerTick events until StopTicks(id) is called. Events
// passed to After come back through Controller.Dispatch. Go runs fn without
// blocking the loop.
type Host interface {
	StartTicks(id TickID, every time.Duration)
	StopTicks(id TickID)
	After(d time.Duration, ev Event)
	Go(fn func())
}

// Notifier is told once per completed run.
type Notifier interface {
	Complete(ctx context.Context)
}
