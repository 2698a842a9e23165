package behavior

import (
	"time"

	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/palette"
	"github.com/PixPMusic/gopher-pad/internal/services"
)

// Control row layout of the media panel, left to right
const (
	MediaVolumeUpKey   uint8 = 104
	MediaVolumeDownKey uint8 = 105
	MediaPreviousKey   uint8 = 106
	MediaNextKey       uint8 = 107
	MediaPlayKey       uint8 = 108
	MediaMuteKey       uint8 = 109
	MediaLoopKey       uint8 = 110
	MediaQuitKey       uint8 = 111
)

// Grid columns holding the volume bars
const (
	LeftBarColumn  = 0
	RightBarColumn = 1
)

// DefaultNudgeStep is the volume change of the up/down buttons, in percent
const DefaultNudgeStep uint8 = 5

var (
	mediaNudge    = palette.New(palette.Green, palette.Low)
	mediaSkip     = palette.New(palette.Blue, palette.Low)
	mediaPlaying  = palette.New(palette.Green, palette.High)
	mediaStopped  = palette.New(palette.Red, palette.Low)
	mediaMuted    = palette.New(palette.Red, palette.High)
	mediaPlaylist = palette.New(palette.Blue, palette.High)
	mediaTrack    = palette.New(palette.Purple, palette.High)
	mediaQuit     = palette.New(palette.Red, palette.Low)
)

// Media is a control panel for the system volume and the media players.
// It keeps no state of its own: every render reads the controllers again.
type Media struct {
	// Step is the nudge size of the volume buttons
	Step uint8

	volume services.VolumeController
	player services.MediaController

	width, height int
}

// NewMedia creates a panel drawing on a width x height grid
func NewMedia(width, height int, volume services.VolumeController, player services.MediaController) *Media {
	return &Media{
		Step:   DefaultNudgeStep,
		volume: volume,
		player: player,
		width:  width,
		height: height,
	}
}

func (m *Media) Control(key uint8) Outcome {
	switch key {
	case MediaVolumeUpKey:
		m.volume.Nudge(m.Step, true)
	case MediaVolumeDownKey:
		m.volume.Nudge(m.Step, false)
	case MediaPreviousKey:
		m.player.Previous()
	case MediaNextKey:
		m.player.Next()
	case MediaPlayKey:
		m.player.TogglePlay()
	case MediaMuteKey:
		m.volume.SetVolume(0)
	case MediaLoopKey:
		m.player.ToggleLoopState()
	case MediaQuitKey:
		return Quit
	default:
		return Unbound
	}
	return Handled
}

// Press on a bar sets the volume to ten percent per row, counted from the
// bottom. Both bars set both channels.
func (m *Media) Press(c grid.Coord) Outcome {
	if !c.In(m.width, m.height) {
		return Unbound
	}
	if c.X != LeftBarColumn && c.X != RightBarColumn {
		return Unbound
	}
	m.volume.SetVolume(uint8((c.Y + 1) * 10))
	return Handled
}

func (m *Media) Tick(time.Duration) bool {
	return false
}

func (m *Media) Render(f *Frame, _ time.Duration) {
	f.Reset()

	left, right := m.volume.Volume()
	m.drawBar(f, LeftBarColumn, left)
	m.drawBar(f, RightBarColumn, right)

	f.Controls[MediaVolumeUpKey] = mediaNudge
	f.Controls[MediaVolumeDownKey] = mediaNudge
	f.Controls[MediaPreviousKey] = mediaSkip
	f.Controls[MediaNextKey] = mediaSkip
	f.Controls[MediaQuitKey] = mediaQuit

	if m.player.PlayState() == services.Playing {
		f.Controls[MediaPlayKey] = mediaPlaying
	} else {
		f.Controls[MediaPlayKey] = mediaStopped
	}

	if left == 0 && right == 0 {
		f.Controls[MediaMuteKey] = mediaMuted
	} else {
		f.Controls[MediaMuteKey] = palette.Dark
	}

	switch m.player.LoopState() {
	case services.LoopPlaylist:
		f.Controls[MediaLoopKey] = mediaPlaylist
	case services.LoopTrack:
		f.Controls[MediaLoopKey] = mediaTrack
	default:
		f.Controls[MediaLoopKey] = palette.Dark
	}
}

// drawBar lights row y of column x when percent reaches (y+1)*10
func (m *Media) drawBar(f *Frame, x int, percent uint8) {
	lit := palette.New(palette.Green, palette.BrightnessFromLevel(percent/10))
	for y := 0; y < m.height; y++ {
		if int(percent) < (y+1)*10 {
			break
		}
		f.Set(grid.Coord{X: x, Y: y}, lit)
	}
	if percent >= services.MaxVolume && m.height > 0 {
		f.Set(grid.Coord{X: x, Y: m.height - 1}, palette.New(palette.Red, palette.High))
	}
}
