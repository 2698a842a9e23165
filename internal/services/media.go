package services

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// PlayState is the aggregate playback state of all players
type PlayState int

const (
	Stopped PlayState = iota
	Playing
)

func (s PlayState) String() string {
	if s == Playing {
		return "Playing"
	}
	return "Stopped"
}

// LoopState is the repeat mode of the players
type LoopState int

const (
	LoopNone LoopState = iota
	LoopTrack
	LoopPlaylist
)

func (s LoopState) String() string {
	switch s {
	case LoopNone:
		return "None"
	case LoopTrack:
		return "Track"
	case LoopPlaylist:
		return "Playlist"
	}
	return fmt.Sprintf("LoopState(%d)", int(s))
}

// Next returns the mode that follows s in the cycle
// None -> Playlist -> Track -> None
func (s LoopState) Next() LoopState {
	switch s {
	case LoopNone:
		return LoopPlaylist
	case LoopPlaylist:
		return LoopTrack
	default:
		return LoopNone
	}
}

// ParseLoopState reads a loop mode as printed by playerctl. Anything
// unrecognised is LoopNone.
func ParseLoopState(s string) LoopState {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	switch strings.TrimSpace(line) {
	case "Track":
		return LoopTrack
	case "Playlist":
		return LoopPlaylist
	}
	return LoopNone
}

// ParsePlayState reports Playing when any line of a status report equals
// "Playing"
func ParsePlayState(s string) PlayState {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "Playing" {
			return Playing
		}
	}
	return Stopped
}

// MediaController controls the active media players
type MediaController interface {
	PlayState() PlayState
	TogglePlay()
	Play()
	Pause()
	LoopState() LoopState
	SetLoopState(LoopState)
	ToggleLoopState()
	Next()
	Previous()
}

// Playerctl drives every MPRIS player through playerctl -a
type Playerctl struct {
	runner Runner
	log    *zap.Logger
}

// NewPlayerctl creates a media controller that runs playerctl through r
func NewPlayerctl(r Runner, log *zap.Logger) *Playerctl {
	return &Playerctl{runner: r, log: log.Named("playerctl")}
}

func (p *Playerctl) PlayState() PlayState {
	out, err := p.run("status")
	if err != nil {
		return Stopped
	}
	return ParsePlayState(out)
}

func (p *Playerctl) TogglePlay() { _, _ = p.run("play-pause") }
func (p *Playerctl) Play()       { _, _ = p.run("play") }
func (p *Playerctl) Pause()      { _, _ = p.run("pause") }
func (p *Playerctl) Next()       { _, _ = p.run("next") }
func (p *Playerctl) Previous()   { _, _ = p.run("previous") }

func (p *Playerctl) LoopState() LoopState {
	out, err := p.run("loop")
	if err != nil {
		return LoopNone
	}
	return ParseLoopState(out)
}

func (p *Playerctl) SetLoopState(s LoopState) {
	_, _ = p.run("loop", s.String())
}

func (p *Playerctl) ToggleLoopState() {
	p.SetLoopState(p.LoopState().Next())
}

func (p *Playerctl) run(args ...string) (string, error) {
	out, err := p.runner.Run("playerctl", append([]string{"-a"}, args...)...)
	if err != nil {
		p.log.Debug("playerctl failed", zap.Strings("args", args), zap.Error(err))
	}
	return out, err
}
