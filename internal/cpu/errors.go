package cpu

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
)

// Sentinel errors wrapped by the typed errors below, use errors.Is to test for them.
var (
	ErrProgramTooLarge = errors.New("program too large for memory")
	ErrIO              = errors.New("program not readable")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrStackUnderflow  = errors.New("return with empty call stack")
	ErrStackOverflow   = errors.New("call stack overflow")
	ErrMemoryBounds    = errors.New("memory access out of bounds")
)

// LoadError is returned when a program can not be loaded into memory.
type LoadError struct {
	Path string // empty for programs loaded from memory
	Size int    // program size in bytes, 0 if the program could not be read
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading program of %d bytes: %s", e.Size, e.Err)
	}
	return fmt.Sprintf("loading program %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FetchError is returned when the program counter points outside of memory.
type FetchError struct {
	PC uint16
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching instruction at $%04X: %s", e.PC, ErrMemoryBounds)
}

func (e *FetchError) Unwrap() error {
	return ErrMemoryBounds
}

// DecodeError is returned for instruction words that are not part of the
// instruction set.
type DecodeError struct {
	PC     uint16
	Opcode uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding instruction $%04X at $%04X: %s", e.Opcode, e.PC, ErrUnknownOpcode)
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// ExecuteError is returned when a decoded instruction fails to execute.
// The machine state is left as it was before the instruction.
type ExecuteError struct {
	PC     uint16
	Opcode uint16
	Op     opcode.Operation
	Err    error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("executing %s instruction $%04X at $%04X: %s", e.Op, e.Opcode, e.PC, e.Err)
}

func (e *ExecuteError) Unwrap() error {
	return e.Err
}
