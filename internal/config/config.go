// Package config handles application configuration and setup
package config

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Name is the application name.
const Name = "retrochip8"

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// WindowTitle returns the frontend title for a ROM file.
func WindowTitle(romFile string) string {
	base := filepath.Base(romFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." {
		return Name
	}
	return Name + " - " + name
}
