package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// Write writes a listing as assembler source that can be assembled back to
// the input ROM.
func Write(w io.Writer, lines []Line, opts options.Disassembler) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	lines = trimZeroBytes(lines, opts.ZeroBytes)
	previousLineWasCode := true

	for i, line := range lines {
		// print an empty line in case of data after code and vice versa
		if i > 0 && line.Label == "" && line.IsCode() != previousLineWasCode {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing line: %w", err)
			}
		}
		previousLineWasCode = line.IsCode()

		if err := writeLine(w, line, opts); err != nil {
			return fmt.Errorf("writing line at $%04X: %w", line.Address, err)
		}
	}
	return nil
}

func writeLine(w io.Writer, line Line, opts options.Disassembler) error {
	if line.Label != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
			return fmt.Errorf("writing label %s: %w", line.Label, err)
		}
	}

	var text string
	if line.IsCode() {
		text = "    " + line.Code
	} else {
		text = "    .byte " + hexBytes(line.Data, "$", ", ")
	}

	comment := lineComment(line, opts)
	if comment == "" {
		if _, err := fmt.Fprintf(w, "%s\n", text); err != nil {
			return fmt.Errorf("writing code: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", text, comment); err != nil {
		return fmt.Errorf("writing code with comment: %w", err)
	}
	return nil
}

func lineComment(line Line, opts options.Disassembler) string {
	var parts []string
	if opts.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", line.Address))
	}
	if opts.HexComments && line.IsCode() {
		parts = append(parts, hexBytes(line.Data, "", " "))
	}
	return strings.Join(parts, "  ")
}

func hexBytes(data []byte, prefix, separator string) string {
	var buf strings.Builder
	for i, b := range data {
		if i > 0 {
			buf.WriteString(separator)
		}
		fmt.Fprintf(&buf, "%s%02X", prefix, b)
	}
	return buf.String()
}

// trimZeroBytes removes trailing data lines that only contain zero bytes
// and carry no label.
func trimZeroBytes(lines []Line, keep bool) []Line {
	if keep {
		return lines
	}

	end := len(lines)
	for ; end > 0; end-- {
		line := lines[end-1]
		if line.IsCode() || line.Label != "" || !allZero(line.Data) {
			break
		}
	}
	return lines[:end]
}

func allZero(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}
