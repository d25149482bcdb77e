package frontend

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)

	fe, err := New(logger, options.FrontendHeadless)
	assert.NoError(t, err)
	_, ok := fe.(*Headless)
	assert.True(t, ok)

	fe, err = New(logger, options.FrontendTerminal)
	assert.NoError(t, err)
	_, ok = fe.(*Terminal)
	assert.True(t, ok)

	_, err = New(logger, "vga")
	assert.ErrorContains(t, err, "unsupported frontend 'vga'")
}

func TestHeadless(t *testing.T) {
	h := NewHeadless()
	assert.NoError(t, h.Start("test", 1))

	d := display.New()
	d.Flip(0, 0)
	assert.NoError(t, h.Present(d))
	assert.Equal(t, 1, h.Frames())
	assert.True(t, strings.HasPrefix(h.LastFrame(), "#."))

	k := keypad.New()
	h.SetPressed(0xB, true)
	h.PollKeys(k)
	assert.True(t, k.IsPressed(0xB))
	h.SetPressed(0xB, false)
	h.PollKeys(k)
	assert.False(t, k.IsPressed(0xB))

	assert.NoError(t, h.Close())
	assert.NoError(t, h.Close())
	select {
	case <-h.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestTerminalPresent(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(strings.NewReader(""), -1, &buf)

	d := display.New()
	d.Flip(0, 0)
	d.Flip(1, 1)
	d.Flip(2, 0)
	d.Flip(2, 1)
	assert.NoError(t, term.Present(d))

	rows := strings.Split(strings.TrimPrefix(buf.String(), ansiHome), "\r\n")
	assert.Len(t, rows, display.Height/2+1)
	assert.True(t, strings.HasPrefix(rows[0], "▀▄█ "))
	assert.Equal(t, strings.Repeat(" ", display.Width), rows[1])
}

func TestTerminalKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	term := newTerminal(strings.NewReader(""), -1, &bytes.Buffer{})
	term.now = func() time.Time { return now }

	assert.True(t, term.handleKey('w'))
	assert.True(t, term.handleKey('V'))
	assert.True(t, term.handleKey('p'))

	k := keypad.New()
	term.PollKeys(k)
	assert.True(t, k.IsPressed(0x5))
	assert.True(t, k.IsPressed(0xF))
	assert.False(t, k.IsPressed(0x0))

	now = now.Add(keyHoldTime)
	term.PollKeys(k)
	assert.False(t, k.IsPressed(0x5))
	assert.False(t, k.IsPressed(0xF))

	assert.False(t, term.handleKey(keyEscape))
	assert.False(t, term.handleKey(keyCtrlC))
}

func TestTerminalQuit(t *testing.T) {
	var buf bytes.Buffer
	term := newTerminal(strings.NewReader("1\x1b"), -1, &buf)
	assert.NoError(t, term.Start("test", 1))

	select {
	case <-term.Done():
	case <-time.After(time.Second):
		t.Fatal("escape did not quit")
	}

	assert.NoError(t, term.Close())
	assert.True(t, strings.HasPrefix(buf.String(), ansiClear+ansiHideCursor))
	assert.True(t, strings.HasSuffix(buf.String(), ansiShowCursor))
}

func TestTerminalWriteError(t *testing.T) {
	term := newTerminal(strings.NewReader(""), -1, failingWriter{})
	err := term.Present(display.New())
	assert.ErrorContains(t, err, "writing frame")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}
