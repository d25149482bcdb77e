// Package options contains the program options.
package options

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default option values.
const (
	DefaultScale                = 10
	DefaultHz                   = 600
	DefaultInstructionsPerCycle = 1
)

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"r" usage:"ROM file to run"`
	Output string `flag:"o" usage:"output .asm file for -disasm (default: stdout)"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend             string `flag:"frontend" usage:"frontend: window, terminal, headless" default:"window"`
	Scale                int    `flag:"s" usage:"display scale factor" default:"10"`
	Hz                   int    `flag:"hz" usage:"cycles per second" default:"600"`
	InstructionsPerCycle int    `flag:"ipc" usage:"instructions executed per cycle" default:"1"`
	Frames               int    `flag:"frames" usage:"stop after this many cycles, 0 runs forever"`
	Tolerant             bool   `flag:"tolerant" usage:"log failing instructions and skip them"`
	Disasm               bool   `flag:"disasm" usage:"print a disassembly listing instead of running"`
	Debug                bool   `flag:"d" usage:"enable debug logging and instruction tracing"`
	Quiet                bool   `flag:"q" usage:"quiet mode"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// Emulator defines options to control the interpreter host.
type Emulator struct {
	Hz                   int  // cycles per second
	InstructionsPerCycle int  // instructions executed per cycle
	Frames               int  // number of cycles to run, 0 for no limit
	Tolerant             bool // skip failing instructions instead of stopping
	Trace                bool // log every executed instruction
}

// NewEmulator returns the interpreter host options for the program options.
func NewEmulator(opts Program) Emulator {
	return Emulator{
		Hz:                   opts.Hz,
		InstructionsPerCycle: opts.InstructionsPerCycle,
		Frames:               opts.Frames,
		Tolerant:             opts.Tolerant,
		Trace:                opts.Debug,
	}
}

// Disassembler defines options to control the listing output.
type Disassembler struct {
	HexComments    bool
	OffsetComments bool
	ZeroBytes      bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		OffsetComments: true,
	}
}
