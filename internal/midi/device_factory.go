package midi

import (
	"fmt"
	"sort"

	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/palette"
)

// Names of the built in profiles
const (
	ProfileMK2     = "mk2"      // Launchpad MK2 session layout, 9x8 with side column
	ProfileMK2Side = "mk2-side" // Launchpad MK2, 8x8 decade numbering
)

const (
	mk2DeviceName = "Launchpad MK2:Launchpad MK2 MIDI 1 20:0"
	clientName    = "gopher-pad"
	inPortLabel   = "port_in_gopher_pad"
	outPortLabel  = "port_out_gopher_pad"
)

var profiles = map[string]Profile{
	ProfileMK2: {
		Name:         ProfileMK2,
		DeviceName:   mk2DeviceName,
		ClientName:   clientName,
		InPortLabel:  inPortLabel,
		OutPortLabel: outPortLabel,
		Width:        9,
		Height:       8,
		Numbering:    grid.Additive{Base: 0x0b},
		Palette:      palette.MK2,
	},
	ProfileMK2Side: {
		Name:         ProfileMK2Side,
		DeviceName:   mk2DeviceName,
		ClientName:   clientName,
		InPortLabel:  inPortLabel,
		OutPortLabel: outPortLabel,
		Width:        8,
		Height:       8,
		Numbering:    grid.Decade{},
		Palette:      palette.MK2,
	},
}

// GetProfile returns the built in profile with the given name
func GetProfile(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown device profile: %s", name)
	}
	return p, nil
}

// ProfileNames returns the names of all built in profiles, sorted
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
