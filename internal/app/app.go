// Package app provides the main application helpers for the interpreter.
package app

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the ROM being processed.
func PrintInfo(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	if opts.Disasm {
		logger.Info("Disassembling Chip-8 ROM",
			log.String("file", opts.Input),
		)
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.String("frontend", opts.Frontend),
		log.Int("hz", opts.Hz),
		log.Int("ipc", opts.InstructionsPerCycle),
	)
	if opts.Tolerant {
		logger.Warn("Tolerant mode enabled, failing instructions are skipped")
	}
}
