package grid

// Coord is a position on the pad grid. X grows to the right, Y grows away
// from the bottom row.
type Coord struct {
	X, Y int
}

// Numbering maps grid positions to device key numbers and back.
// Key assumes the coordinate is inside the grid; use Decode for keys that
// come from the device.
type Numbering interface {
	Key(width, height, x, y int) uint8
	Coord(key uint8, width, height int) Coord
}

// Additive numbers pads from Base upward, with one extra key skipped per row.
// This is the Launchpad MK2 session layout: the right most pad of the bottom
// row on a 9 wide grid is 19 and the left most pad of the next row is 21.
type Additive struct {
	Base uint8
}

func (a Additive) Key(width, height, x, y int) uint8 {
	return uint8(int(a.Base) + x + y + y*width)
}

func (a Additive) Coord(key uint8, width, height int) Coord {
	rest := int(key) - int(a.Base)
	rows := 0
	for rest > width {
		rest -= width + 1
		rows++
	}
	return Coord{X: rest, Y: rows}
}

// Decade numbers pads with a fixed stride of ten per row regardless of the
// grid width, starting at 1 for the bottom left pad.
type Decade struct{}

func (Decade) Key(width, height, x, y int) uint8 {
	return uint8(y*10 + 1 + x)
}

func (Decade) Coord(key uint8, width, height int) Coord {
	return Coord{X: int(key%10) - 1, Y: int(key / 10)}
}

// Decode converts a device key into a grid position. It reports false for
// keys that fall outside the grid or that do not map back onto themselves,
// e.g. side buttons or keys below the first pad.
func Decode(n Numbering, key uint8, width, height int) (Coord, bool) {
	c := n.Coord(key, width, height)
	if !c.In(width, height) {
		return Coord{}, false
	}
	if n.Key(width, height, c.X, c.Y) != key {
		return Coord{}, false
	}
	return c, true
}

// In reports whether c lies inside a width x height grid.
func (c Coord) In(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}
