package palette

import "fmt"

// Hue is one of the fixed LED colors the pad can show
type Hue int

const (
	Off Hue = iota
	Green
	Blue
	Red
	Purple
)

func (h Hue) String() string {
	switch h {
	case Off:
		return "off"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Purple:
		return "purple"
	}
	return fmt.Sprintf("hue(%d)", int(h))
}

// Brightness is a coarse intensity tier
type Brightness int

const (
	Low Brightness = iota
	Medium
	High
)

func (b Brightness) String() string {
	switch b {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("brightness(%d)", int(b))
}

// Color is an abstract LED color, turned into a velocity byte by a Table
type Color struct {
	Hue        Hue
	Brightness Brightness
}

// Dark is the color of an unlit pad
var Dark = Color{Hue: Off}

// New returns a color with the given hue and brightness
func New(h Hue, b Brightness) Color {
	return Color{Hue: h, Brightness: b}
}

// Table maps every hue/brightness pair to the velocity code the firmware
// uses for it. Indexed [hue][brightness].
type Table [5][3]uint8

// MK2 is the Launchpad MK2 factory palette
var MK2 = Table{
	Off:    {Low: 0, Medium: 0, High: 0},
	Green:  {Low: 16, Medium: 18, High: 17},
	Blue:   {Low: 42, Medium: 40, High: 41},
	Red:    {Low: 6, Medium: 60, High: 5},
	Purple: {Low: 50, Medium: 48, High: 49},
}

// Code returns the velocity byte for c. Off and unknown hues are always 0.
func (t Table) Code(c Color) uint8 {
	if c.Hue <= Off || int(c.Hue) >= len(t) {
		return 0
	}
	b := c.Brightness
	if b < Low || b > High {
		b = Medium
	}
	return t[c.Hue][b] & 0x7F
}

// BrightnessFromLevel turns a magnitude scaled to 0-10 (e.g. a volume
// percentage divided by ten) into a brightness tier.
func BrightnessFromLevel(level uint8) Brightness {
	if level <= 3 {
		return Low
	}
	if level >= 7 {
		return High
	}
	return Medium
}
