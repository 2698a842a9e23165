package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// VolumeController reads and changes the system output volume
type VolumeController interface {
	// Volume returns the left and right channel percentages
	Volume() (left, right uint8)
	// SetVolume sets both channels to percent. Values above 100 are ignored.
	SetVolume(percent uint8)
	// Nudge moves the volume by step percent up or down
	Nudge(step uint8, up bool)
}

// MaxVolume is the highest percentage SetVolume accepts
const MaxVolume = 100

// amixer prints the left channel on line 5 and the right on line 6
const (
	leftLine  = 5
	rightLine = 6
)

var percentPattern = regexp.MustCompile(`\[(\d+)%\]`)

// Amixer controls the Master mixer of the pulse device through amixer
type Amixer struct {
	runner Runner
	log    *zap.Logger
}

// NewAmixer creates a volume controller that runs amixer through r
func NewAmixer(r Runner, log *zap.Logger) *Amixer {
	return &Amixer{runner: r, log: log.Named("amixer")}
}

func (a *Amixer) Volume() (uint8, uint8) {
	out, err := a.runner.Run("amixer", "-D", "pulse", "sget", "Master")
	if err != nil {
		a.log.Debug("reading volume failed", zap.Error(err))
		return 0, 0
	}
	left, right, err := ParseVolume(out)
	if err != nil {
		a.log.Debug("unexpected amixer output", zap.Error(err))
		return 0, 0
	}
	return left, right
}

func (a *Amixer) SetVolume(percent uint8) {
	if percent > MaxVolume {
		a.log.Debug("volume out of range", zap.Uint8("percent", percent))
		return
	}
	a.sset(fmt.Sprintf("%d%%", percent))
}

func (a *Amixer) Nudge(step uint8, up bool) {
	sign := "-"
	if up {
		sign = "+"
	}
	a.sset(fmt.Sprintf("%d%%%s", step, sign))
}

func (a *Amixer) sset(value string) {
	if _, err := a.runner.Run("amixer", "-D", "pulse", "sset", "Master", value); err != nil {
		a.log.Debug("setting volume failed", zap.String("value", value), zap.Error(err))
	}
}

// ParseVolume extracts the channel percentages from `amixer sget` output.
// Mono controls only print the left line; its value is used for both.
func ParseVolume(out string) (left, right uint8, err error) {
	lines := strings.Split(out, "\n")
	if len(lines) <= leftLine {
		return 0, 0, fmt.Errorf("expected at least %d lines, got %d", leftLine+1, len(lines))
	}
	left, err = parsePercent(lines[leftLine])
	if err != nil {
		return 0, 0, fmt.Errorf("left channel: %w", err)
	}
	if len(lines) <= rightLine || strings.TrimSpace(lines[rightLine]) == "" {
		return left, left, nil
	}
	right, err = parsePercent(lines[rightLine])
	if err != nil {
		return 0, 0, fmt.Errorf("right channel: %w", err)
	}
	return left, right, nil
}

func parsePercent(line string) (uint8, error) {
	m := percentPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("no percentage in %q", strings.TrimSpace(line))
	}
	v, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil {
		return 0, err
	}
	if v > MaxVolume {
		v = MaxVolume
	}
	return uint8(v), nil
}
