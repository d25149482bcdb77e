package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

// ProgramStart is the address programs are loaded to and start executing at.
const ProgramStart = 0x200

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
	dataNaming  = "_data_%04x"

	instructionSize  = 2
	dataBytesPerLine = 8
)

// Line is a single line of a program listing, either one instruction or a
// run of data bytes.
type Line struct {
	Address uint16
	Data    []byte
	Code    string // empty for data lines
	Label   string
}

// IsCode returns whether the line holds an instruction.
func (l Line) IsCode() bool {
	return l.Code != ""
}

// FlowKind classifies how an instruction affects the control flow.
type FlowKind uint8

// Control flow kinds.
const (
	FlowNext         FlowKind = iota // continues with the next instruction
	FlowJump                         // continues at the target address
	FlowIndirectJump                 // continues at a target only known at runtime
	FlowCall                         // continues at the target and after return with the next instruction
	FlowSkip                         // continues with the next or the one after it
	FlowReturn                       // continues at the caller
	FlowDataReference                // continues with the next instruction and points I at data
)

// Kind returns the control flow kind of a dispatch table row.
func Kind(entry opcode.Entry) FlowKind {
	switch {
	case entry.Op == opcode.Jump:
		return FlowJump
	case entry.Op == opcode.JumpOffset:
		return FlowIndirectJump
	case entry.Op == opcode.Call:
		return FlowCall
	case entry.Op == opcode.Return:
		return FlowReturn
	case entry.Op == opcode.LoadIndex:
		return FlowDataReference
	case chip8.SkipInstructions.Contains(entry.Name()):
		return FlowSkip
	default:
		return FlowNext
	}
}

type walker struct {
	program []byte
	end     int

	queue      []uint16
	code       set.Set[uint16]
	dataRefs   set.Set[uint16]
	jumpTarget set.Set[uint16]
	callTarget set.Set[uint16]
}

// Listing walks a program from the start address following jumps, calls and
// skips. Every reachable instruction becomes a code line, everything else is
// emitted as data. Jump and call targets as well as data referenced by
// LD I get labels.
func Listing(program []byte) []Line {
	w := &walker{
		program:    program,
		end:        ProgramStart + len(program),
		queue:      []uint16{ProgramStart},
		code:       set.New[uint16](),
		dataRefs:   set.New[uint16](),
		jumpTarget: set.New[uint16](),
		callTarget: set.New[uint16](),
	}

	for len(w.queue) > 0 {
		address := w.queue[0]
		w.queue = w.queue[1:]
		w.parse(address)
	}

	return w.lines()
}

// parse marks the instruction at the address as code and queues all
// addresses that execution can continue at.
func (w *walker) parse(address uint16) {
	if !w.isInstructionStart(address) {
		return
	}

	word := w.word(address)
	entry, ok := opcode.Lookup(opcode.Decode(word))
	if !ok {
		// an unknown instruction is considered as start of data
		return
	}
	w.code.Add(address)

	next := address + instructionSize
	target := word & opcode.AddrMask

	switch Kind(entry) {
	case FlowJump:
		w.addTarget(target, w.jumpTarget)

	case FlowCall:
		w.addTarget(target, w.callTarget)
		w.queue = append(w.queue, next)

	case FlowSkip:
		w.queue = append(w.queue, next, next+instructionSize)

	case FlowDataReference:
		if w.inProgram(target) {
			w.dataRefs.Add(target)
		}
		w.queue = append(w.queue, next)

	case FlowReturn, FlowIndirectJump:
		// the continuation is not known statically

	default:
		w.queue = append(w.queue, next)
	}
}

func (w *walker) addTarget(target uint16, targets set.Set[uint16]) {
	if !w.inProgram(target) {
		return
	}
	targets.Add(target)
	w.queue = append(w.queue, target)
}

// isInstructionStart returns whether a complete, not yet parsed instruction
// that does not overlap an already parsed one starts at the address.
func (w *walker) isInstructionStart(address uint16) bool {
	if address < ProgramStart || int(address)+instructionSize > w.end {
		return false
	}
	if w.code.Contains(address) || w.code.Contains(address-1) || w.code.Contains(address+1) {
		return false
	}
	return true
}

func (w *walker) inProgram(address uint16) bool {
	return address >= ProgramStart && int(address) < w.end
}

func (w *walker) word(address uint16) uint16 {
	i := int(address) - ProgramStart
	return uint16(w.program[i])<<8 | uint16(w.program[i+1])
}

// label returns the label of the address. Addresses inside of an
// instruction do not start a line and can not be labeled.
func (w *walker) label(address uint16) string {
	switch {
	case address > ProgramStart && w.code.Contains(address-1):
		return ""
	case address == ProgramStart:
		return startLabel
	case w.callTarget.Contains(address):
		return fmt.Sprintf(funcNaming, address)
	case w.jumpTarget.Contains(address):
		return fmt.Sprintf(labelNaming, address)
	case w.dataRefs.Contains(address):
		return fmt.Sprintf(dataNaming, address)
	}
	return ""
}

// instruction formats the instruction at the address, referencing the
// target by its label if it has one.
func (w *walker) instruction(address uint16) string {
	word := w.word(address)
	entry, _ := opcode.Lookup(opcode.Decode(word))

	switch Kind(entry) {
	case FlowJump, FlowCall:
		if label := w.label(word & opcode.AddrMask); label != "" {
			return fmt.Sprintf("%s %s", entry.Name(), label)
		}
	case FlowDataReference:
		if label := w.label(word & opcode.AddrMask); label != "" {
			return fmt.Sprintf("%s I, %s", entry.Name(), label)
		}
	}
	return Format(word)
}

// lines converts the parse result to listing lines in address order.
func (w *walker) lines() []Line {
	var lines []Line

	for address := ProgramStart; address < w.end; {
		addr := uint16(address)
		if w.code.Contains(addr) {
			lines = append(lines, Line{
				Address: addr,
				Data:    slices.Clone(w.program[address-ProgramStart : address-ProgramStart+instructionSize]),
				Code:    w.instruction(addr),
				Label:   w.label(addr),
			})
			address += instructionSize
			continue
		}

		line := Line{Address: addr, Label: w.label(addr)}
		for address < w.end && len(line.Data) < dataBytesPerLine {
			if len(line.Data) > 0 && (w.code.Contains(uint16(address)) || w.label(uint16(address)) != "") {
				break
			}
			line.Data = append(line.Data, w.program[address-ProgramStart])
			address++
		}
		lines = append(lines, line)
	}

	return lines
}
