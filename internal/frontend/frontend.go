// Package frontend contains the host side collaborators of the interpreter
// that present the display and read the keypad.
package frontend

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnavailable is returned for frontends that are not part of the build.
var ErrUnavailable = errors.New("frontend not available in this build")

// Frontend presents the display and feeds key state to the interpreter.
type Frontend interface {
	// Start opens the output, scale is the size of a pixel in output units.
	Start(title string, scale int) error
	// Present shows the current display content.
	Present(d *display.Display) error
	// PollKeys updates the keypad with the current host key state.
	PollKeys(k *keypad.Keypad)
	// Done is closed when the user requested to quit.
	Done() <-chan struct{}
	// Close releases the output and restores the host state.
	Close() error
}

// New returns the frontend with the given name.
func New(logger *log.Logger, name string) (Frontend, error) {
	switch name {
	case options.FrontendWindow:
		return newWindow(logger)
	case options.FrontendTerminal:
		return NewTerminal(), nil
	case options.FrontendHeadless:
		return NewHeadless(), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}
