// Package cpu implements the CHIP-8 interpreter: memory, registers, call
// stack, timers and the fetch, decode and execute loop.
//
// The interpreter is single threaded and driven by the host, which calls
// Cycle at a fixed cadence. It does not render or read input itself, it
// flips pixels on a Screen and polls a Keys source.
package cpu

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// Memory layout and machine limits.
const (
	MemorySize     = 4096
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	RegisterCount  = 16
	StackSize      = 16

	// DefaultInstructionsPerCycle is the number of instructions executed per
	// Cycle call. The host is expected to call Cycle at the instruction clock.
	DefaultInstructionsPerCycle = 1

	flagRegister    = 0xF
	instructionSize = 2
)

// Screen is the display surface the interpreter draws on.
type Screen interface {
	Clear()
	// Flip toggles the pixel at the position, wrapping the coordinates, and
	// returns whether a set pixel was erased.
	Flip(x, y int) bool
	Width() int
	Height() int
}

// Keys is the key state source polled by the interpreter.
type Keys interface {
	IsPressed(key uint8) bool
	// FirstPressed returns the lowest indexed pressed key.
	FirstPressed() (uint8, bool)
}

// CPU is a CHIP-8 interpreter instance. All machine state is owned by the
// instance, multiple instances do not share anything.
type CPU struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16
	stack  []uint16

	delayTimer uint8
	soundTimer uint8

	opcode uint16 // last fetched instruction word

	screen Screen
	keys   Keys
	loader *loader.Loader
	random func() uint8
	logger *log.Logger
	trace  bool

	instructionsPerCycle int
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger sets the logger used for diagnostics. If trace is set, every
// executed instruction is logged at debug level.
func WithLogger(logger *log.Logger, trace bool) Option {
	return func(c *CPU) {
		c.logger = logger
		c.trace = trace && logger != nil
	}
}

// WithRandom sets the random byte source used by the RND instruction.
func WithRandom(random func() uint8) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// WithInstructionsPerCycle sets the number of instructions executed per
// Cycle call. Values below 1 are ignored.
func WithInstructionsPerCycle(n int) Option {
	return func(c *CPU) {
		if n > 0 {
			c.instructionsPerCycle = n
		}
	}
}

// New returns a new interpreter in its power on state: memory cleared with
// the font loaded, registers cleared and the program counter at the program
// start address.
func New(screen Screen, keys Keys, opts ...Option) *CPU {
	c := &CPU{
		screen:               screen,
		keys:                 keys,
		loader:               loader.New(MaxProgramSize),
		random:               randomByte,
		stack:                make([]uint16, 0, StackSize),
		instructionsPerCycle: DefaultInstructionsPerCycle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Reset()
	return c
}

// Reset restores the power on state and clears the screen.
func (c *CPU) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[:], Font[:])
	c.v = [RegisterCount]uint8{}
	c.i = 0
	c.pc = ProgramStart
	c.stack = c.stack[:0]
	c.delayTimer = 0
	c.soundTimer = 0
	c.opcode = 0
	c.screen.Clear()
}

// Load resets the machine and copies the program into memory at the
// program start address.
func (c *CPU) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return &LoadError{
			Size: len(program),
			Err:  fmt.Errorf("%w: %d bytes exceed the %d bytes available", ErrProgramTooLarge, len(program), MaxProgramSize),
		}
	}

	c.Reset()
	copy(c.memory[ProgramStart:], program)

	if c.logger != nil {
		c.logger.Debug("Program loaded",
			log.Int("size", len(program)),
			log.Hex("start", ProgramStart))
	}
	return nil
}

// LoadFile reads a raw ROM file and loads it.
func (c *CPU) LoadFile(path string) error {
	program, err := c.loader.Load(path)
	if err != nil {
		return &LoadError{
			Path: path,
			Err:  fmt.Errorf("%w: %w", ErrIO, err),
		}
	}

	if err := c.Load(program); err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return err
	}
	return nil
}

// Cycle decrements the timers and then executes the configured number of
// instructions. It stops at the first failing instruction and returns its
// error, the program counter then still points to that instruction.
func (c *CPU) Cycle() error {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}

	for range c.instructionsPerCycle {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes and executes a single instruction and advances the
// program counter. Timers are not touched.
func (c *CPU) Step() error {
	word, err := c.fetch()
	if err != nil {
		return err
	}

	ins := opcode.Decode(word)
	entry, ok := opcode.Lookup(ins)
	if !ok {
		return &DecodeError{PC: c.pc, Opcode: word}
	}

	if c.trace {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", c.pc),
			log.Hex("opcode", word),
			log.String("instruction", disasm.Format(word)))
	}

	if err := c.execute(entry, ins); err != nil {
		return &ExecuteError{
			PC:     c.pc,
			Opcode: word,
			Op:     entry.Op,
			Err:    err,
		}
	}

	c.pc += instructionSize
	return nil
}

// Skip moves the program counter past the current instruction without
// executing it. Hosts use it to continue after a failed instruction.
func (c *CPU) Skip() {
	c.pc += instructionSize
}

func (c *CPU) fetch() (uint16, error) {
	if int(c.pc)+1 >= MemorySize {
		return 0, &FetchError{PC: c.pc}
	}

	c.opcode = uint16(c.memory[c.pc])<<8 | uint16(c.memory[c.pc+1])
	return c.opcode, nil
}

// PC returns the program counter.
func (c *CPU) PC() uint16 {
	return c.pc
}

// I returns the index register.
func (c *CPU) I() uint16 {
	return c.i
}

// V returns the value of the general purpose register x.
func (c *CPU) V(x uint8) uint8 {
	return c.v[x&0xF]
}

// Registers returns a copy of all general purpose registers.
func (c *CPU) Registers() [RegisterCount]uint8 {
	return c.v
}

// DelayTimer returns the delay timer value.
func (c *CPU) DelayTimer() uint8 {
	return c.delayTimer
}

// SoundTimer returns the sound timer value. A tone should be audible while
// it is above zero.
func (c *CPU) SoundTimer() uint8 {
	return c.soundTimer
}

// StackDepth returns the number of return addresses on the call stack.
func (c *CPU) StackDepth() int {
	return len(c.stack)
}

// Opcode returns the last fetched instruction word.
func (c *CPU) Opcode() uint16 {
	return c.opcode
}

// Memory returns a copy of length bytes of memory starting at address.
func (c *CPU) Memory(address uint16, length int) ([]byte, error) {
	if length < 0 || int(address)+length > MemorySize {
		return nil, fmt.Errorf("reading %d bytes at $%04X: %w", length, address, ErrMemoryBounds)
	}
	data := make([]byte, length)
	copy(data, c.memory[address:])
	return data, nil
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}
