package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFlip(t *testing.T) {
	d := New()

	assert.False(t, d.Flip(2, 2), "first flip sets the pixel")
	assert.True(t, d.Pixel(2, 2))
	assert.True(t, d.Flip(2, 2), "second flip erases the pixel")
	assert.False(t, d.Pixel(2, 2))
}

func TestFlipWraps(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		wantX int
		wantY int
	}{
		{"inside", 10, 5, 10, 5},
		{"right edge", Width, 0, 0, 0},
		{"bottom edge", 3, Height + 1, 3, 1},
		{"both edges", Width + 7, Height + 31, 7, 31},
		{"negative", -1, -1, Width - 1, Height - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.Flip(tt.x, tt.y)
			assert.True(t, d.Pixel(tt.wantX, tt.wantY))
		})
	}
}

func TestClear(t *testing.T) {
	d := New()
	d.Flip(5, 3)
	d.Flip(63, 31)
	d.Clear()

	for _, row := range d.Snapshot() {
		for _, pixel := range row {
			assert.False(t, pixel)
		}
	}

	assert.False(t, d.Flip(5, 3), "flip after clear behaves as a first set")
}

func TestDirty(t *testing.T) {
	d := New()
	assert.True(t, d.Dirty())

	d.ClearDirty()
	assert.False(t, d.Dirty())

	d.Flip(0, 0)
	assert.True(t, d.Dirty())

	d.ClearDirty()
	d.Clear()
	assert.True(t, d.Dirty())
}

func TestSnapshotIsCopy(t *testing.T) {
	d := New()
	d.Flip(1, 1)

	snapshot := d.Snapshot()
	assert.Len(t, snapshot, Height)
	assert.Len(t, snapshot[0], Width)
	assert.True(t, snapshot[1][1])

	snapshot[1][1] = false
	assert.True(t, d.Pixel(1, 1))
}

func TestString(t *testing.T) {
	d := New()
	d.Flip(0, 0)
	d.Flip(63, 31)

	lines := strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), lines[0])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", lines[Height-1])
}
