// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotRegularFile is returned when the ROM path does not point to a file.
var ErrNotRegularFile = errors.New("not a regular file")

// Loader handles loading raw CHIP-8 ROM files from disk.
// CHIP-8 ROMs carry no header, the file content is the program.
type Loader struct {
	limit int64
}

// New creates a new ROM loader. The limit caps the number of bytes read
// from a file; reading stops one byte past the limit so that callers can
// still detect oversized programs. A limit of 0 disables the cap.
func New(limit int64) *Loader {
	return &Loader{
		limit: limit,
	}
}

// Load reads the ROM file at the given path.
func (l *Loader) Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("opening file %s: %w", path, ErrNotRegularFile)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	data, err := l.LoadFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

// LoadFromReader reads a ROM from the given reader.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	if l.limit > 0 {
		reader = io.LimitReader(reader, l.limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading ROM data: %w", err)
	}
	return data, nil
}
