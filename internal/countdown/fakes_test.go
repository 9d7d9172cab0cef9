package countdown

import (
	"context"
	"sync"
	"time"
)

type fakeInputs struct {
	hour, minute string
	focused      int
}

func (f *fakeInputs) Values() (string, string) { return f.hour, f.minute }
func (f *fakeInputs) Clear()                   { f.hour, f.minute = "", "" }
func (f *fakeInputs) FocusHour()               { f.focused++ }

type fakeDisplay struct {
	screens []Screen
}

func (f *fakeDisplay) Render(s Screen) { f.screens = append(f.screens, s) }

func (f *fakeDisplay) last() Screen {
	if len(f.screens) == 0 {
		return Screen{}
	}
	return f.screens[len(f.screens)-1]
}

type afterCall struct {
	d  time.Duration
	ev Event
}

// fakeHost records scheduling requests; tests deliver ticks by hand.
type fakeHost struct {
	active  map[TickID]time.Duration
	started []TickID
	stopped []TickID
	after   []afterCall
	spawned int
}

func newFakeHost() *fakeHost {
	return &fakeHost{active: make(map[TickID]time.Duration)}
}

func (h *fakeHost) StartTicks(id TickID, every time.Duration) {
	h.active[id] = every
	h.started = append(h.started, id)
}

func (h *fakeHost) StopTicks(id TickID) {
	delete(h.active, id)
	h.stopped = append(h.stopped, id)
}

func (h *fakeHost) After(d time.Duration, ev Event) {
	h.after = append(h.after, afterCall{d: d, ev: ev})
}

// Go runs fn inline so completion is observable without waiting.
func (h *fakeHost) Go(fn func()) {
	h.spawned++
	fn()
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls int
}

func (n *fakeNotifier) Complete(context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}
