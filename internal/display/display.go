// Package display implements the CHIP-8 monochrome display surface.
package display

import "strings"

// Canonical CHIP-8 resolution.
const (
	Width  = 64
	Height = 32
)

// Display is a monochrome pixel grid that is only mutated by XOR flips.
// Coordinates passed to Flip wrap around the screen edges.
type Display struct {
	pixels [Height][Width]bool
	dirty  bool
}

// New returns a cleared display.
func New() *Display {
	return &Display{dirty: true}
}

// Width returns the horizontal resolution in pixels.
func (d *Display) Width() int {
	return Width
}

// Height returns the vertical resolution in pixels.
func (d *Display) Height() int {
	return Height
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	d.pixels = [Height][Width]bool{}
	d.dirty = true
}

// Flip toggles the pixel at the wrapped position (x, y) and returns
// whether a previously set pixel was erased.
func (d *Display) Flip(x, y int) bool {
	x = wrap(x, Width)
	y = wrap(y, Height)

	d.pixels[y][x] = !d.pixels[y][x]
	d.dirty = true
	return !d.pixels[y][x]
}

// Pixel returns whether the pixel at the wrapped position (x, y) is set.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[wrap(y, Height)][wrap(x, Width)]
}

// Snapshot returns a copy of the pixel grid indexed as [y][x].
func (d *Display) Snapshot() [][]bool {
	rows := make([][]bool, Height)
	for y := range d.pixels {
		rows[y] = make([]bool, Width)
		copy(rows[y], d.pixels[y][:])
	}
	return rows
}

// Dirty returns whether the display changed since the last ClearDirty call.
func (d *Display) Dirty() bool {
	return d.dirty
}

// ClearDirty marks the current content as presented.
func (d *Display) ClearDirty() {
	d.dirty = false
}

// String renders the display as text, one line per row, using '#' for set
// and '.' for unset pixels.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range d.pixels {
		for x := range d.pixels[y] {
			if d.pixels[y][x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
