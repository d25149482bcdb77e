package frontend

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"golang.org/x/term"
)

// keyHoldTime is how long a key counts as pressed after its last byte was
// read. Terminals only report key presses and repeats, never releases.
const keyHoldTime = 150 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B

	ansiClear      = "\x1b[2J"
	ansiHome       = "\x1b[H"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
)

// Terminal renders the display with Unicode half blocks, two pixel rows per
// text line, and reads keys from a raw mode terminal.
type Terminal struct {
	input  io.Reader
	output io.Writer
	fd     int
	now    func() time.Time

	oldTermState *term.State

	mu      sync.Mutex
	pressed [keypad.KeyCount]time.Time

	done    chan struct{}
	stopped sync.Once
}

// NewTerminal returns a terminal frontend reading from stdin and writing to
// stdout.
func NewTerminal() *Terminal {
	return newTerminal(os.Stdin, int(os.Stdin.Fd()), os.Stdout)
}

func newTerminal(input io.Reader, fd int, output io.Writer) *Terminal {
	return &Terminal{
		input:  input,
		output: output,
		fd:     fd,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

// Start puts the terminal in raw mode, if the input is a terminal, and
// starts reading keys.
func (t *Terminal) Start(string, int) error {
	if term.IsTerminal(t.fd) {
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting terminal raw mode: %w", err)
		}
		t.oldTermState = oldState
	}

	if _, err := io.WriteString(t.output, ansiClear+ansiHideCursor); err != nil {
		t.restore()
		return fmt.Errorf("initializing terminal: %w", err)
	}

	go t.readKeys()
	return nil
}

// readKeys reads key bytes until the input ends or the user quits.
func (t *Terminal) readKeys() {
	buf := make([]byte, 16)
	for {
		n, err := t.input.Read(buf)
		for _, b := range buf[:n] {
			if !t.handleKey(b) {
				t.quit()
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// handleKey records a key press and returns false if the key requests to
// quit.
func (t *Terminal) handleKey(b byte) bool {
	if b == keyCtrlC || b == keyEscape {
		return false
	}

	key, ok := keypad.KeyForRune(rune(b))
	if !ok {
		return true
	}

	t.mu.Lock()
	t.pressed[key] = t.now()
	t.mu.Unlock()
	return true
}

// Present draws the display at the top left of the terminal.
func (t *Terminal) Present(d *display.Display) error {
	var buf strings.Builder
	buf.WriteString(ansiHome)

	for y := 0; y < d.Height(); y += 2 {
		for x := range d.Width() {
			top := d.Pixel(x, y)
			bottom := y+1 < d.Height() && d.Pixel(x, y+1)
			buf.WriteRune(halfBlock(top, bottom))
		}
		// raw mode does not translate line feeds
		buf.WriteString("\r\n")
	}

	if _, err := io.WriteString(t.output, buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// PollKeys reports all keys as pressed that were read within the hold time.
func (t *Terminal) PollKeys(k *keypad.Keypad) {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	for key, last := range t.pressed {
		k.SetPressed(uint8(key), !last.IsZero() && now.Sub(last) < keyHoldTime)
	}
}

// Done is closed when Escape or Ctrl+C was pressed.
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	t.quit()
	_, err := io.WriteString(t.output, ansiShowCursor)
	t.restore()
	if err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	return nil
}

func (t *Terminal) quit() {
	t.stopped.Do(func() {
		close(t.done)
	})
}

func (t *Terminal) restore() {
	if t.oldTermState != nil {
		_ = term.Restore(t.fd, t.oldTermState)
		t.oldTermState = nil
	}
}
