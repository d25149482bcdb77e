// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile disassembles or runs the ROM file given in the options.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler) error {
	p := pipeline.New(logger)

	if opts.Disasm {
		writer, err := createWriter(opts)
		if err != nil {
			return fmt.Errorf("creating writer: %w", err)
		}
		defer func() {
			if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
				_ = closer.Close()
			}
		}()

		if err := p.Disassemble(opts, disasmOptions, writer); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	fe, err := frontend.New(logger, opts.Frontend)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}
	return p.Run(ctx, opts, fe)
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}
