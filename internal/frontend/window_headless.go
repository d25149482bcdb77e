//go:build headless

package frontend

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

func newWindow(*log.Logger) (Frontend, error) {
	return nil, fmt.Errorf("window: %w", ErrUnavailable)
}
