// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// maxHz limits the clock rate to what a ticker can still deliver.
const maxHz = 1_000_000

var frontends = []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts.OutputFlags)

	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, options.Disassembler{}, &UsageError{flags: flags, msg: err.Error()}
	}
	disasmOptions := createDisasmOptions(opts)

	args := flags.Args()
	if err := validateArgs(flags, args); err != nil {
		return opts, disasmOptions, err
	}
	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
	}
	if opts.Input == "" {
		return opts, disasmOptions, &UsageError{flags: flags}
	}

	if err := normalizeOptions(flags, &opts); err != nil {
		return opts, disasmOptions, err
	}

	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "no ROM file given"
	}
	return e.msg
}

// ShowUsage prints the error message, if any, and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("error: %s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(flags *flag.FlagSet, opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontends, opts.Frontend) {
		return &UsageError{
			flags: flags,
			msg: fmt.Sprintf("unsupported frontend: %s. Valid options: %s",
				opts.Frontend, strings.Join(frontends, ", ")),
		}
	}

	switch {
	case opts.Scale < 1:
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid scale %d, must be at least 1", opts.Scale)}
	case opts.Hz < 1 || opts.Hz > maxHz:
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid clock rate %d, must be between 1 and %d", opts.Hz, maxHz)}
	case opts.InstructionsPerCycle < 1:
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid instructions per cycle %d, must be at least 1", opts.InstructionsPerCycle)}
	case opts.Frames < 0:
		return &UsageError{flags: flags, msg: fmt.Sprintf("invalid cycle limit %d, must not be negative", opts.Frames)}
	}
	return nil
}

// createDisasmOptions creates disassembler options based on program options
func createDisasmOptions(opts options.Program) options.Disassembler {
	disasmOptions := options.NewDisassembler()

	// Apply inverse logic for hex comments and offsets
	disasmOptions.HexComments = !opts.NoHexComments
	disasmOptions.OffsetComments = !opts.NoOffsets
	disasmOptions.ZeroBytes = opts.ZeroBytes
	return disasmOptions
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "r", "", "name of the ROM file to run")
	flags.StringVar(&opts.Input, "rom", "", "name of the ROM file to run (same as -r)")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file for -disasm, printed on console if no name given")
	flags.StringVar(&opts.Frontend, "frontend", options.FrontendWindow, "frontend to use (window/terminal/headless)")
	flags.IntVar(&opts.Scale, "s", options.DefaultScale, "display scale factor")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "display scale factor (same as -s)")
	flags.IntVar(&opts.Hz, "hz", options.DefaultHz, "cycles per second")
	flags.IntVar(&opts.InstructionsPerCycle, "ipc", options.DefaultInstructionsPerCycle, "instructions executed per cycle")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after this many cycles, 0 runs until quit")
	flags.BoolVar(&opts.Tolerant, "tolerant", false, "log failing instructions and skip them instead of stopping")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Debug, "d", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options (same as -d)")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.OutputFlags) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM")
}
