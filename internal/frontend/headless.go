package frontend

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// Headless is a frontend without any output. It records the presented
// frames and replays key state set by the caller.
type Headless struct {
	mu     sync.Mutex
	frames int
	last   string
	keys   [keypad.KeyCount]bool

	done    chan struct{}
	stopped sync.Once
}

// NewHeadless returns a new headless frontend.
func NewHeadless() *Headless {
	return &Headless{
		done: make(chan struct{}),
	}
}

// Start does nothing for a headless frontend.
func (h *Headless) Start(string, int) error {
	return nil
}

// Present records the display content.
func (h *Headless) Present(d *display.Display) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frames++
	h.last = d.String()
	return nil
}

// PollKeys copies the key state set by SetPressed to the keypad.
func (h *Headless) PollKeys(k *keypad.Keypad) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, pressed := range h.keys {
		k.SetPressed(uint8(key), pressed)
	}
}

// SetPressed sets the state of a key that is reported on the next poll.
func (h *Headless) SetPressed(key uint8, pressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys[key&0xF] = pressed
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// LastFrame returns the text rendering of the last presented frame.
func (h *Headless) LastFrame() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Done is closed after Close was called.
func (h *Headless) Done() <-chan struct{} {
	return h.done
}

// Close stops the frontend.
func (h *Headless) Close() error {
	h.stopped.Do(func() {
		close(h.done)
	})
	return nil
}
