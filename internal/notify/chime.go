package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeRate beep.SampleRate = 44100

// Chime plays a short two-tone sound through the default audio device.
// The speaker is initialised on first use; if that fails every Send
// returns the same error.
type Chime struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
	tones   []float64
	length  time.Duration
}

// NewChime returns a chime of two 220ms tones.
func NewChime() *Chime {
	return &Chime{tones: []float64{880, 1320}, length: 220 * time.Millisecond}
}

func (c *Chime) init() error {
	c.once.Do(func() {
		if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
			c.initErr = fmt.Errorf("initialising speaker: %w", err)
		}
	})
	return c.initErr
}

func (c *Chime) Send(ctx context.Context, _, _ string) error {
	if err := c.init(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	parts := make([]beep.Streamer, 0, len(c.tones)+1)
	for _, freq := range c.tones {
		tone, err := generators.SineTone(chimeRate, freq)
		if err != nil {
			return fmt.Errorf("building %.0fHz tone: %w", freq, err)
		}
		parts = append(parts, beep.Take(chimeRate.N(c.length), tone))
	}
	done := make(chan struct{})
	parts = append(parts, beep.Callback(func() { close(done) }))

	speaker.Play(beep.Seq(parts...))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
