package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/PixPMusic/gopher-pad/internal/behavior"
	"github.com/PixPMusic/gopher-pad/internal/grid"
	"github.com/PixPMusic/gopher-pad/internal/midi"
)

type fakeDevice struct {
	pending  []midi.IncomingEvent
	receives int
	sent     []midi.LedCommand
}

func (d *fakeDevice) TryReceive() (midi.IncomingEvent, bool) {
	d.receives++
	if len(d.pending) == 0 {
		return midi.IncomingEvent{}, false
	}
	ev := d.pending[0]
	d.pending = d.pending[1:]
	return ev, true
}

func (d *fakeDevice) Send(cmd midi.LedCommand) {
	d.sent = append(d.sent, cmd)
}

func (d *fakeDevice) press(status, key uint8) {
	d.pending = append(d.pending, midi.IncomingEvent{Status: status, Key: key, Velocity: 127})
}

func (d *fakeDevice) release(status, key uint8) {
	d.pending = append(d.pending, midi.IncomingEvent{Status: status, Key: key})
}

// fakeClock advances by step on every reading and records sleeps
type fakeClock struct {
	t      time.Time
	step   time.Duration
	sleeps []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func (c *fakeClock) sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.t = c.t.Add(d)
}

func newTestLoop(t *testing.T, b behavior.Behavior) (*Loop, *fakeDevice, *fakeClock, midi.Profile) {
	t.Helper()
	p, err := midi.GetProfile(midi.ProfileMK2)
	require.NoError(t, err)

	d := &fakeDevice{}
	clock := &fakeClock{t: time.Unix(0, 0), step: 5 * time.Millisecond}
	l := New(d, p, b, zaptest.NewLogger(t))
	l.now = clock.now
	l.sleep = clock.sleep
	return l, d, clock, p
}

func TestIdleWaitWhenEmpty(t *testing.T) {
	l, d, clock, _ := newTestLoop(t, behavior.NewLife(9, 8))

	assert.False(t, l.Step())
	assert.Equal(t, 1, d.receives)
	require.Len(t, clock.sleeps, 1)
	assert.GreaterOrEqual(t, clock.sleeps[0], IdleInterval)
}

func TestNoWaitWhenInputPending(t *testing.T) {
	l, d, clock, _ := newTestLoop(t, behavior.NewLife(9, 8))
	d.press(0x90, 11)
	d.press(0x90, 12)
	d.release(0x90, 12)

	for i := 0; i < 3; i++ {
		assert.False(t, l.Step())
	}
	assert.Empty(t, clock.sleeps, "a pending message must be handled without waiting")

	l.Step()
	assert.Equal(t, []time.Duration{IdleInterval}, clock.sleeps)
}

func TestRenderSendsFullStateEveryIteration(t *testing.T) {
	l, d, _, p := newTestLoop(t, behavior.NewLife(9, 8))
	perFrame := p.Width*p.Height + midi.ControlCount

	l.Step()
	assert.Len(t, d.sent, perFrame)
	l.Step()
	assert.Len(t, d.sent, 2*perFrame)
}

func TestPressTogglesCell(t *testing.T) {
	life := behavior.NewLife(9, 8)
	l, d, _, p := newTestLoop(t, life)
	target := grid.Coord{X: 2, Y: 3}
	key := p.Key(target)

	d.press(0x90, key)
	l.Step()
	assert.True(t, life.Alive(target))

	d.sent = nil
	l.Step()
	var lit []midi.LedCommand
	for _, cmd := range d.sent {
		if cmd.Section == midi.Main && cmd.Code != 0 {
			lit = append(lit, cmd)
		}
	}
	require.Len(t, lit, 1)
	assert.Equal(t, key, lit[0].Key)
	assert.Equal(t, uint8(17), lit[0].Code)
}

func TestReleaseIsIgnored(t *testing.T) {
	life := behavior.NewLife(9, 8)
	l, d, _, p := newTestLoop(t, life)
	target := grid.Coord{X: 0, Y: 0}

	d.release(0x90, p.Key(target))
	d.release(0xB0, behavior.LifeQuitKey)
	assert.False(t, l.Step())
	assert.False(t, l.Step())
	assert.False(t, life.Alive(target))
}

func TestUnboundInputContinues(t *testing.T) {
	l, d, _, _ := newTestLoop(t, behavior.NewLife(9, 8))
	d.press(0xB0, 110)
	d.press(0x90, 10) // below the first pad

	assert.False(t, l.Step())
	assert.False(t, l.Step())

	out, classified := l.dispatch(midi.IncomingEvent{Status: 0xB0, Key: 111, Velocity: 127})
	assert.True(t, classified)
	assert.Equal(t, behavior.Unbound, out)

	_, classified = l.dispatch(midi.IncomingEvent{Status: 0x90, Key: 11})
	assert.False(t, classified)
}

func TestStartTicksAndPaces(t *testing.T) {
	life := behavior.NewLife(9, 8)
	l, d, clock, _ := newTestLoop(t, life)
	d.press(0xB0, behavior.LifeStartKey)

	l.Step()
	assert.True(t, life.Running())
	assert.Empty(t, clock.sleeps)

	l.Step()
	assert.Equal(t, []time.Duration{TickInterval, IdleInterval}, clock.sleeps)
}

func TestQuitEndsRun(t *testing.T) {
	l, d, _, _ := newTestLoop(t, behavior.NewLife(9, 8))
	d.press(0x90, 11)
	d.press(0xB0, behavior.LifeQuitKey)
	d.press(0x90, 12)

	require.NoError(t, l.Run(context.Background()))
	assert.Len(t, d.pending, 1, "nothing is dispatched after quit")
}

func TestRunStopsOnCancel(t *testing.T) {
	l, _, _, _ := newTestLoop(t, behavior.NewLife(9, 8))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

// recorder is a behavior that remembers what the loop passed to it
type recorder struct {
	elapsed []time.Duration
}

func (r *recorder) Control(uint8) behavior.Outcome    { return behavior.Unbound }
func (r *recorder) Press(grid.Coord) behavior.Outcome { return behavior.Unbound }
func (r *recorder) Tick(time.Duration) bool           { return false }

func (r *recorder) Render(_ *behavior.Frame, elapsed time.Duration) {
	r.elapsed = append(r.elapsed, elapsed)
}

func TestElapsedBetweenRenders(t *testing.T) {
	r := &recorder{}
	l, _, _, _ := newTestLoop(t, r)

	l.Step()
	l.Step()
	l.Step()

	// 5ms per clock reading plus the 50ms idle wait
	assert.Equal(t, []time.Duration{0, 55 * time.Millisecond, 55 * time.Millisecond}, r.elapsed)
}
