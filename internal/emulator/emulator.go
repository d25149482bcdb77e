// Package emulator drives the interpreter at a fixed clock rate and connects
// it to a frontend.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Emulator owns the machine state of one interpreter instance.
type Emulator struct {
	logger  *log.Logger
	opts    options.Emulator
	display *display.Display
	keypad  *keypad.Keypad
	cpu     *cpu.CPU

	cycles      int
	soundActive bool
}

// New returns a new emulator. Additional interpreter options are applied
// after the ones derived from opts.
func New(logger *log.Logger, opts options.Emulator, cpuOpts ...cpu.Option) *Emulator {
	if opts.Hz <= 0 {
		opts.Hz = options.DefaultHz
	}

	e := &Emulator{
		logger:  logger,
		opts:    opts,
		display: display.New(),
		keypad:  keypad.New(),
	}

	cpuOpts = append([]cpu.Option{
		cpu.WithLogger(logger, opts.Trace),
		cpu.WithInstructionsPerCycle(opts.InstructionsPerCycle),
	}, cpuOpts...)
	e.cpu = cpu.New(e.display, e.keypad, cpuOpts...)
	return e
}

// Load loads a ROM file.
func (e *Emulator) Load(path string) error {
	if err := e.cpu.LoadFile(path); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	e.cycles = 0
	return nil
}

// LoadProgram loads a program from memory.
func (e *Emulator) LoadProgram(program []byte) error {
	if err := e.cpu.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	e.cycles = 0
	return nil
}

// RunFrame runs a single interpreter cycle. In tolerant mode a failing
// instruction is logged and skipped, a program counter outside of memory
// always stops execution.
func (e *Emulator) RunFrame() error {
	err := e.cpu.Cycle()
	e.cycles++
	e.updateSound()
	if err == nil {
		return nil
	}

	var fetchErr *cpu.FetchError
	if !e.opts.Tolerant || errors.As(err, &fetchErr) {
		return fmt.Errorf("running cycle %d: %w", e.cycles, err)
	}

	e.logger.Warn("Skipping failed instruction",
		log.Hex("pc", e.cpu.PC()),
		log.Err(err))
	e.cpu.Skip()
	return nil
}

// Run executes cycles at the configured clock rate until the context is
// canceled, the frontend quits, the cycle limit is reached or an
// instruction fails.
func (e *Emulator) Run(ctx context.Context, fe frontend.Frontend) error {
	interval := max(time.Second/time.Duration(e.opts.Hz), time.Microsecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-fe.Done():
			return nil
		case <-ticker.C:
		}

		fe.PollKeys(e.keypad)

		if err := e.RunFrame(); err != nil {
			return err
		}

		if e.display.Dirty() {
			if err := fe.Present(e.display); err != nil {
				return fmt.Errorf("presenting display: %w", err)
			}
			e.display.ClearDirty()
		}

		if e.opts.Frames > 0 && e.cycles >= e.opts.Frames {
			e.logger.Debug("Cycle limit reached", log.Int("cycles", e.cycles))
			return nil
		}
	}
}

// updateSound logs changes of the tone state, no audio is produced.
func (e *Emulator) updateSound() {
	active := e.SoundActive()
	if active == e.soundActive {
		return
	}
	e.soundActive = active
	e.logger.Debug("Sound state changed", log.String("tone", onOff(active)))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// SoundActive returns whether a tone should currently be audible.
func (e *Emulator) SoundActive() bool {
	return e.cpu.SoundTimer() > 0
}

// Cycles returns the number of cycles run since the last load.
func (e *Emulator) Cycles() int {
	return e.cycles
}

// CPU returns the interpreter.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Display returns the display.
func (e *Emulator) Display() *display.Display {
	return e.display
}

// Keypad returns the keypad.
func (e *Emulator) Keypad() *keypad.Keypad {
	return e.keypad
}
