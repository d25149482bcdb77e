package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
)

// execute runs the operation of a decoded instruction. Operations that
// redirect the program counter compensate for the unconditional advance by
// instructionSize that follows. A failing operation leaves the machine state
// untouched.
func (c *CPU) execute(entry opcode.Entry, ins opcode.Instruction) error {
	vx := c.v[ins.X]
	vy := c.v[ins.Y]

	switch entry.Op {
	case opcode.ClearScreen:
		c.screen.Clear()

	case opcode.Return:
		if len(c.stack) == 0 {
			return ErrStackUnderflow
		}
		c.pc = c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

	case opcode.Jump:
		c.pc = ins.Addr - instructionSize

	case opcode.Call:
		if len(c.stack) == StackSize {
			return fmt.Errorf("%w: depth %d", ErrStackOverflow, StackSize)
		}
		c.stack = append(c.stack, c.pc)
		c.pc = ins.Addr - instructionSize

	case opcode.SkipEqualImmediate:
		c.skipIf(vx == ins.KK)

	case opcode.SkipNotEqualImmediate:
		c.skipIf(vx != ins.KK)

	case opcode.SkipEqualRegister:
		c.skipIf(vx == vy)

	case opcode.SkipNotEqualRegister:
		c.skipIf(vx != vy)

	case opcode.LoadImmediate:
		c.v[ins.X] = ins.KK

	case opcode.AddImmediate:
		c.v[ins.X] = vx + ins.KK

	case opcode.LoadRegister:
		c.v[ins.X] = vy

	case opcode.Or:
		c.v[ins.X] = vx | vy

	case opcode.And:
		c.v[ins.X] = vx & vy

	case opcode.Xor:
		c.v[ins.X] = vx ^ vy

	case opcode.AddRegister:
		sum := uint16(vx) + uint16(vy)
		c.v[flagRegister] = boolToFlag(sum > 0xFF)
		c.v[ins.X] = uint8(sum)

	case opcode.Sub:
		c.v[flagRegister] = boolToFlag(vx > vy)
		c.v[ins.X] = vx - vy

	case opcode.SubN:
		c.v[flagRegister] = boolToFlag(vy > vx)
		c.v[ins.X] = vy - vx

	case opcode.ShiftRight:
		c.v[flagRegister] = vx & 0x1
		c.v[ins.X] = vx >> 1

	case opcode.ShiftLeft:
		// the flag receives bit 0 of the unshifted value, not the shifted out bit 7
		c.v[flagRegister] = vx & 0x1
		c.v[ins.X] = vx << 1

	case opcode.LoadIndex:
		c.i = ins.Addr

	case opcode.JumpOffset:
		c.pc = ins.Addr + uint16(c.v[0]) - instructionSize

	case opcode.Random:
		c.v[ins.X] = c.random() & ins.KK

	case opcode.Draw:
		return c.draw(vx, vy, ins.N)

	case opcode.SkipKey:
		c.skipIf(c.keys.IsPressed(vx&0xF) == entry.Pressed)

	case opcode.LoadDelay:
		c.v[ins.X] = c.delayTimer

	case opcode.WaitKey:
		key, ok := c.keys.FirstPressed()
		if !ok {
			// execute this instruction again on the next step
			c.pc -= instructionSize
			return nil
		}
		c.v[ins.X] = key

	case opcode.SetDelay:
		c.delayTimer = vx

	case opcode.SetSound:
		c.soundTimer = vx

	case opcode.AddIndex:
		c.i += uint16(vx)

	case opcode.LoadFont:
		c.i = uint16(vx&0xF) * FontGlyphSize

	case opcode.StoreBCD:
		if err := c.checkIndexRange(3); err != nil {
			return err
		}
		c.memory[c.i] = vx / 100
		c.memory[c.i+1] = vx / 10 % 10
		c.memory[c.i+2] = vx % 10

	case opcode.StoreRegisters:
		count := int(ins.X) + 1
		if err := c.checkIndexRange(count); err != nil {
			return err
		}
		copy(c.memory[c.i:], c.v[:count])

	case opcode.LoadRegisters:
		count := int(ins.X) + 1
		if err := c.checkIndexRange(count); err != nil {
			return err
		}
		copy(c.v[:count], c.memory[c.i:])

	default:
		return fmt.Errorf("%w: no operation for $%04X", ErrUnknownOpcode, ins.Raw)
	}

	return nil
}

// draw XORs an n byte sprite read from memory at I onto the screen at
// (x, y). VF is set if any set pixel got erased.
func (c *CPU) draw(x, y, n uint8) error {
	if err := c.checkIndexRange(int(n)); err != nil {
		return err
	}

	collision := false
	for row := range int(n) {
		sprite := c.memory[int(c.i)+row]
		for bit := range 8 {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			if c.screen.Flip(int(x)+bit, int(y)+row) {
				collision = true
			}
		}
	}

	c.v[flagRegister] = boolToFlag(collision)
	return nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += instructionSize
	}
}

// checkIndexRange verifies that count bytes starting at I are inside memory.
func (c *CPU) checkIndexRange(count int) error {
	if int(c.i)+count > MemorySize {
		return fmt.Errorf("%w: %d bytes at I=$%04X", ErrMemoryBounds, count, c.i)
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
