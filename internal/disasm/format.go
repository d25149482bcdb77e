// Package disasm turns CHIP-8 instruction words into assembler text and
// walks programs to produce a labeled listing.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Format returns the assembler form of an instruction word, for example
// "ld V0, $09". Words that are not part of the instruction set are returned
// as a ".word" directive.
func Format(word uint16) string {
	entry, ok := opcode.Lookup(opcode.Decode(word))
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := entry.Name()
	if params := formatInstruction(name, word); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// formatInstruction returns the formatted parameter string for the given
// instruction.
func formatInstruction(name string, word uint16) string {
	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		return formatJump(word)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", word&opcode.AddrMask)
	case chip8.SeName, chip8.SneName:
		return formatCompare(word)
	case chip8.LdName:
		return formatLoad(word)
	case chip8.AddName:
		return formatAdd(word)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", registerX(word), registerY(word))
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", registerX(word))
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", registerX(word), word&opcode.KKMask)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", registerX(word), registerY(word), word&opcode.NMask)
	}
	return ""
}

func formatJump(word uint16) string {
	switch word & opcode.GroupMask {
	case 0x1000:
		return fmt.Sprintf("$%03X", word&opcode.AddrMask)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", word&opcode.AddrMask)
	}
	return ""
}

// formatCompare formats SE and SNE against an immediate byte (3xkk, 4xkk)
// or a register (5xy0, 9xy0).
func formatCompare(word uint16) string {
	x := registerX(word)
	switch word & opcode.GroupMask {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, word&opcode.KKMask)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	}
	return ""
}

func formatLoad(word uint16) string {
	x := registerX(word)
	switch word & opcode.GroupMask {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&opcode.KKMask)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&opcode.AddrMask)
	case 0xF000:
		return formatLoadSpecial(word)
	}
	return ""
}

// formatLoadSpecial formats the Fx.. loads that move data between a register
// and the timers, keypad, font, BCD conversion or memory at I.
func formatLoadSpecial(word uint16) string {
	x := registerX(word)
	switch word & opcode.KKMask {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatAdd(word uint16) string {
	x := registerX(word)
	switch word & opcode.GroupMask {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, word&opcode.KKMask)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, registerY(word))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func registerX(word uint16) uint16 {
	return (word & opcode.XMask) >> 8
}

func registerY(word uint16) uint16 {
	return (word & opcode.YMask) >> 4
}
