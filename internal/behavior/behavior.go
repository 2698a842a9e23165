// Package behavior holds the applications that can run on the pad. A
// behavior consumes classified presses and renders a complete frame every
// loop iteration; it owns all of its state.
package behavior

import (
	"time"

	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/palette"
)

// Outcome is the result of dispatching one press
type Outcome int

const (
	Handled Outcome = iota
	Unbound
	Quit
)

func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case Unbound:
		return "unbound"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Behavior is an application driven by the event loop
type Behavior interface {
	// Control handles a press on a control row button
	Control(key uint8) Outcome
	// Press handles a press on a main grid pad
	Press(c grid.Coord) Outcome
	// Tick advances the behavior's simulation, if any. It reports whether
	// anything was advanced.
	Tick(elapsed time.Duration) bool
	// Render draws the full device state into f
	Render(f *Frame, elapsed time.Duration)
}

// Frame is the full LED state of the pad for one render pass
type Frame struct {
	Width, Height int
	Cells         [][]palette.Color // [x][y]
	Controls      map[uint8]palette.Color
}

// NewFrame allocates a dark frame
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:    width,
		Height:   height,
		Cells:    make([][]palette.Color, width),
		Controls: make(map[uint8]palette.Color),
	}
	for x := range f.Cells {
		f.Cells[x] = make([]palette.Color, height)
	}
	return f
}

// Reset darkens every cell and control light
func (f *Frame) Reset() {
	for x := range f.Cells {
		for y := range f.Cells[x] {
			f.Cells[x][y] = palette.Dark
		}
	}
	for key := range f.Controls {
		f.Controls[key] = palette.Dark
	}
}

// Set colors one cell, ignoring positions outside the frame
func (f *Frame) Set(c grid.Coord, col palette.Color) {
	if !c.In(f.Width, f.Height) {
		return
	}
	f.Cells[c.X][c.Y] = col
}

// At returns the color of one cell
func (f *Frame) At(c grid.Coord) palette.Color {
	if !c.In(f.Width, f.Height) {
		return palette.Dark
	}
	return f.Cells[c.X][c.Y]
}
