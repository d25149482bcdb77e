// Package pipeline orchestrates the workflow of running or disassembling a ROM.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(cpu.MaxProgramSize),
	}
}

// Disassemble writes a listing of the ROM to the writer.
func (p *Pipeline) Disassemble(opts options.Program, disasmOpts options.Disassembler, writer io.Writer) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	if len(program) > cpu.MaxProgramSize {
		return &cpu.LoadError{
			Path: opts.Input,
			Size: len(program),
			Err:  cpu.ErrProgramTooLarge,
		}
	}

	app.PrintInfo(p.logger, opts)
	p.logger.Debug("Disassembling program", log.Int("size", len(program)))

	lines := disasm.Listing(program)
	if err := disasm.Write(writer, lines, disasmOpts); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// Run loads the ROM and runs it on the frontend until it quits, the context
// is canceled or execution fails.
func (p *Pipeline) Run(ctx context.Context, opts options.Program, fe frontend.Frontend) error {
	emu := emulator.New(p.logger, options.NewEmulator(opts))
	if err := emu.Load(opts.Input); err != nil {
		return err
	}

	app.PrintInfo(p.logger, opts)

	if err := fe.Start(config.WindowTitle(opts.Input), opts.Scale); err != nil {
		return fmt.Errorf("starting frontend: %w", err)
	}
	defer func() {
		if err := fe.Close(); err != nil {
			p.logger.Error("Closing frontend failed", log.Err(err))
		}
	}()

	if err := emu.Run(ctx, fe); err != nil {
		return fmt.Errorf("running ROM: %w", err)
	}
	return nil
}
