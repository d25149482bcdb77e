//go:build !headless

package frontend

import (
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

const bytesPerPixel = 4

var (
	colorOn  = [bytesPerPixel]byte{0xE0, 0xF0, 0xE0, 0xFF}
	colorOff = [bytesPerPixel]byte{0x10, 0x18, 0x10, 0xFF}
)

// hostKeys maps the keyboard runes of the keypad layout to ebiten keys.
var hostKeys = map[rune]ebiten.Key{
	'1': ebiten.Key1, '2': ebiten.Key2, '3': ebiten.Key3, '4': ebiten.Key4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// Window renders the display in a scaled window.
type Window struct {
	logger *log.Logger

	mu     sync.RWMutex
	frame  []byte // RGBA pixels
	keys   [keypad.KeyCount]bool
	image  *ebiten.Image
	mapped [keypad.KeyCount]ebiten.Key

	running atomic.Bool
	ready   chan struct{}
	done    chan struct{}
	stopped sync.Once
}

func newWindow(logger *log.Logger) (Frontend, error) {
	w := &Window{
		logger: logger,
		frame:  make([]byte, display.Width*display.Height*bytesPerPixel),
		ready:  make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	for key, r := range keypad.Runes() {
		w.mapped[key] = hostKeys[r]
	}
	w.fill(display.New())
	return w, nil
}

// Start opens the window and waits for the first drawn frame.
func (w *Window) Start(title string, scale int) error {
	ebiten.SetWindowSize(display.Width*scale, display.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	w.running.Store(true)

	go func() {
		defer w.stop()
		if err := ebiten.RunGame(w); err != nil {
			w.logger.Error("Running window failed", log.Err(err))
		}
	}()

	select {
	case <-w.ready:
	case <-w.done:
	}
	return nil
}

// Update implements ebiten.Game, it samples the keyboard.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() || !w.running.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.mu.Lock()
	for key, hostKey := range w.mapped {
		w.keys[key] = ebiten.IsKeyPressed(hostKey)
	}
	w.mu.Unlock()
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(display.Width, display.Height)
	}

	w.mu.RLock()
	w.image.WritePixels(w.frame)
	w.mu.RUnlock()
	screen.DrawImage(w.image, nil)

	select {
	case w.ready <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game, the window scales the native resolution.
func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width, display.Height
}

// Present copies the display content to the frame drawn next.
func (w *Window) Present(d *display.Display) error {
	w.fill(d)
	return nil
}

func (w *Window) fill(d *display.Display) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for y := range display.Height {
		for x := range display.Width {
			color := colorOff
			if d.Pixel(x, y) {
				color = colorOn
			}
			offset := (y*display.Width + x) * bytesPerPixel
			copy(w.frame[offset:], color[:])
		}
	}
}

// PollKeys copies the key state sampled by the last update to the keypad.
func (w *Window) PollKeys(k *keypad.Keypad) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for key, pressed := range w.keys {
		k.SetPressed(uint8(key), pressed)
	}
}

// Done is closed when the window was closed.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Close requests the window to close.
func (w *Window) Close() error {
	w.running.Store(false)
	return nil
}

func (w *Window) stop() {
	w.running.Store(false)
	w.stopped.Do(func() {
		close(w.done)
	})
}
