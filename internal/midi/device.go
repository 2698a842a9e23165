package midi

import (
	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/palette"
)

// Profile describes one physical pad and its firmware: how it is found,
// how big the grid is, how pads are numbered and which palette it uses.
// Profiles are fixed at startup.
type Profile struct {
	Name         string
	DeviceName   string // exact port name advertised by the OS
	ClientName   string
	InPortLabel  string
	OutPortLabel string

	Width, Height int
	Numbering     grid.Numbering
	Palette       palette.Table
}

// Key returns the device key of a grid position
func (p Profile) Key(c grid.Coord) uint8 {
	return p.Numbering.Key(p.Width, p.Height, c.X, c.Y)
}

// Decode maps a main section key to a grid position
func (p Profile) Decode(key uint8) (grid.Coord, bool) {
	return grid.Decode(p.Numbering, key, p.Width, p.Height)
}

// ControlKeys lists the control row buttons, left to right
func (p Profile) ControlKeys() []uint8 {
	keys := make([]uint8, 0, ControlCount)
	for i := 0; i < ControlCount; i++ {
		keys = append(keys, ControlFirst+uint8(i))
	}
	return keys
}

// Cell builds the command that shows color c at position pos
func (p Profile) Cell(pos grid.Coord, c palette.Color) LedCommand {
	return LedCommand{Section: Main, Key: p.Key(pos), Code: p.Palette.Code(c)}
}

// ControlLight builds the command that shows color c on a control row button
func (p Profile) ControlLight(key uint8, c palette.Color) LedCommand {
	return LedCommand{Section: Control, Key: key, Code: p.Palette.Code(c)}
}
