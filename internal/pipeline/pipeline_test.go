package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.loader)
}

func TestDisassemble(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("listing", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = createTempFile(t, []byte{0x60, 0x09, 0x70, 0x05, 0x12, 0x04})
		opts.Disasm = true

		var buf bytes.Buffer
		assert.NoError(t, p.Disassemble(opts, options.NewDisassembler(), &buf))
		assert.Contains(t, buf.String(), ".org $200")
		assert.Contains(t, buf.String(), "Start:")
		assert.Contains(t, buf.String(), "jp _label_0204")
	})

	t.Run("too large ROM", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = createTempFile(t, make([]byte, cpu.MaxProgramSize+1))

		err := p.Disassemble(opts, options.NewDisassembler(), &bytes.Buffer{})
		assert.True(t, errors.Is(err, cpu.ErrProgramTooLarge))
	})

	t.Run("missing ROM", func(t *testing.T) {
		opts := options.Program{}
		opts.Input = filepath.Join(t.TempDir(), "missing.ch8")

		err := p.Disassemble(opts, options.NewDisassembler(), &bytes.Buffer{})
		assert.ErrorContains(t, err, "loading ROM")
	})
}

func TestRun(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Input = createTempFile(t, []byte{
		0x00, 0xE0, // cls
		0x60, 0x00, // ld V0, 0
		0xF0, 0x29, // ld F, V0
		0xD0, 0x05, // drw V0, V0, 5
		0x12, 0x08, // jp to itself
	})
	opts.Frontend = options.FrontendHeadless
	opts.Scale = options.DefaultScale
	opts.Hz = 100000
	opts.InstructionsPerCycle = 2
	opts.Frames = 10

	fe := frontend.NewHeadless()
	assert.NoError(t, p.Run(context.Background(), opts, fe))
	assert.True(t, strings.HasPrefix(fe.LastFrame(), "####."))

	select {
	case <-fe.Done():
	default:
		t.Fatal("frontend not closed")
	}
}

func TestRunError(t *testing.T) {
	p := New(log.NewTestLogger(t))

	opts := options.Program{}
	opts.Input = createTempFile(t, []byte{0x00, 0xEE})
	opts.Hz = 100000

	err := p.Run(context.Background(), opts, frontend.NewHeadless())
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))
	assert.ErrorContains(t, err, "running ROM")
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
