// Package loop ties the pad to a behavior: it polls the device, dispatches
// presses, advances the simulation and re-sends the whole LED state on
// every iteration.
package loop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PixPMusic/gopher-pad/internal/behavior"
	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/midi"
)

// Default pacing
const (
	IdleInterval = 50 * time.Millisecond  // wait when no input is pending
	TickInterval = 100 * time.Millisecond // minimum time between generations
)

// Device is the part of the transport the loop needs
type Device interface {
	TryReceive() (midi.IncomingEvent, bool)
	Send(midi.LedCommand)
}

// Loop is the main event loop. It is not safe for concurrent use; the
// goroutine calling Run owns the behavior.
type Loop struct {
	IdleInterval time.Duration
	TickInterval time.Duration

	device   Device
	profile  midi.Profile
	behavior behavior.Behavior
	frame    *behavior.Frame
	log      *zap.Logger

	now        func() time.Time
	sleep      func(time.Duration)
	lastRender time.Time
}

// New creates a loop driving b on device d laid out as p
func New(d Device, p midi.Profile, b behavior.Behavior, log *zap.Logger) *Loop {
	return &Loop{
		IdleInterval: IdleInterval,
		TickInterval: TickInterval,
		device:       d,
		profile:      p,
		behavior:     b,
		frame:        behavior.NewFrame(p.Width, p.Height),
		log:          log.Named("loop"),
		now:          time.Now,
		sleep:        time.Sleep,
	}
}

// Run iterates until the behavior asks to quit or ctx is done
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("loop started",
		zap.String("profile", l.profile.Name),
		zap.Int("width", l.profile.Width),
		zap.Int("height", l.profile.Height),
	)
	for {
		if err := ctx.Err(); err != nil {
			l.log.Info("loop cancelled", zap.Error(err))
			return err
		}
		if l.Step() {
			l.log.Info("quit requested")
			return nil
		}
	}
}

// Step runs one iteration: tick, render, one receive attempt and either a
// dispatch or the idle wait. It reports whether the behavior asked to quit.
func (l *Loop) Step() bool {
	now := l.now()
	var elapsed time.Duration
	if !l.lastRender.IsZero() {
		elapsed = now.Sub(l.lastRender)
	}
	l.lastRender = now

	if l.behavior.Tick(elapsed) {
		l.sleep(l.TickInterval)
	}

	l.render(elapsed)

	ev, ok := l.device.TryReceive()
	if !ok {
		l.sleep(l.IdleInterval)
		return false
	}
	out, _ := l.dispatch(ev)
	return out == behavior.Quit
}

// dispatch routes one event to the behavior. classified is false for
// releases and foreign messages, which never reach the behavior.
func (l *Loop) dispatch(ev midi.IncomingEvent) (out behavior.Outcome, classified bool) {
	c, ok := midi.Classify(ev)
	if !ok {
		return behavior.Unbound, false
	}

	switch c.Section {
	case midi.Control:
		out = l.behavior.Control(c.Key)
	default:
		pos, ok := l.profile.Decode(c.Key)
		if !ok {
			out = behavior.Unbound
			break
		}
		out = l.behavior.Press(pos)
	}

	if out == behavior.Unbound {
		l.log.Debug("unbound input",
			zap.Stringer("section", c.Section),
			zap.Uint8("key", c.Key),
		)
	}
	return out, true
}

// render recomputes the whole frame and sends every cell and control light
func (l *Loop) render(elapsed time.Duration) {
	l.behavior.Render(l.frame, elapsed)

	for x := 0; x < l.profile.Width; x++ {
		for y := 0; y < l.profile.Height; y++ {
			pos := grid.Coord{X: x, Y: y}
			l.device.Send(l.profile.Cell(pos, l.frame.At(pos)))
		}
	}
	for _, key := range l.profile.ControlKeys() {
		l.device.Send(l.profile.ControlLight(key, l.frame.Controls[key]))
	}
}
