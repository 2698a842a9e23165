package midi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
)

var (
	// ErrDriverInit means the MIDI subsystem could not be used at all
	ErrDriverInit = errors.New("midi driver unavailable")
	// ErrDeviceNotFound means no port advertised the profile's device name
	ErrDeviceNotFound = errors.New("midi device not found")
)

// Transport owns the input and output connection to one pad.
// Incoming messages are queued by the driver callback; TryReceive drains
// them without blocking. Outgoing LED commands are fire and forget.
type Transport struct {
	profile Profile
	session string
	log     *zap.Logger

	in    drivers.In
	out   drivers.Out
	send  func(midi.Message) error
	stop  func()
	queue *Queue

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Connect finds the input and output ports whose name equals
// p.DeviceName, starts listening on the input and opens a sender on the
// output.
func Connect(drv drivers.Driver, p Profile, log *zap.Logger) (*Transport, error) {
	if drv == nil {
		return nil, fmt.Errorf("%w: no driver", ErrDriverInit)
	}
	session := uuid.New().String()
	log = log.With(
		zap.String("session", session),
		zap.String("device", p.DeviceName),
		zap.String("client", p.ClientName),
	)

	ins, err := drv.Ins()
	if err != nil {
		return nil, fmt.Errorf("%w: list inputs: %v", ErrDriverInit, err)
	}
	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("%w: list outputs: %v", ErrDriverInit, err)
	}

	in := findIn(ins, p.DeviceName)
	if in == nil {
		return nil, fmt.Errorf("%w: input port %q", ErrDeviceNotFound, p.DeviceName)
	}
	out := findOut(outs, p.DeviceName)
	if out == nil {
		return nil, fmt.Errorf("%w: output port %q", ErrDeviceNotFound, p.DeviceName)
	}

	t := &Transport{
		profile: p,
		session: session,
		log:     log,
		in:      in,
		out:     out,
		queue:   NewQueue(),
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("failed to create sender: %w", err)
	}
	t.send = send

	stop, err := midi.ListenTo(in, t.receive)
	if err != nil {
		// ListenTo opens the input before it starts listening
		if cerr := errors.Join(in.Close(), out.Close()); cerr != nil {
			log.Debug("closing ports after failed listen", zap.Error(cerr))
		}
		return nil, fmt.Errorf("failed to start listening: %w", err)
	}
	t.stop = stop

	log.Info("connected",
		zap.String("in_port", p.InPortLabel),
		zap.String("out_port", p.OutPortLabel),
	)
	return t, nil
}

// receive runs on the driver's goroutine
func (t *Transport) receive(msg midi.Message, timestampms int32) {
	data := []byte(msg)
	if len(data) < 3 || data[0] >= 0xF0 {
		return
	}
	ev := IncomingEvent{
		Status:    data[0],
		Key:       data[1],
		Velocity:  data[2],
		Timestamp: time.Duration(timestampms) * time.Millisecond,
	}
	t.queue.Push(ev)
	t.log.Debug("received",
		zap.Uint8("status", ev.Status),
		zap.Uint8("key", ev.Key),
		zap.Uint8("velocity", ev.Velocity),
	)
}

// Session returns the id tagging every log line of this connection
func (t *Transport) Session() string {
	return t.session
}

// TryReceive returns the oldest pending event, if any
func (t *Transport) TryReceive() (IncomingEvent, bool) {
	return t.queue.Pop()
}

// Send writes one LED command. Failures are logged and dropped: the next
// render pass sends the full state again.
func (t *Transport) Send(cmd LedCommand) {
	if t.closed.Load() {
		return
	}
	var msg midi.Message
	if cmd.Section == Control {
		msg = midi.ControlChange(0, cmd.Key, cmd.Code)
	} else {
		msg = midi.NoteOn(0, cmd.Key, cmd.Code)
	}
	if err := t.send(msg); err != nil {
		t.log.Debug("send failed",
			zap.Stringer("section", cmd.Section),
			zap.Uint8("key", cmd.Key),
			zap.Error(err),
		)
	}
}

// Clear turns off every grid pad and control button
func (t *Transport) Clear() {
	p := t.profile
	t.log.Debug("clearing pad")
	for x := 0; x < p.Width; x++ {
		for y := 0; y < p.Height; y++ {
			t.Send(LedCommand{Section: Main, Key: p.Numbering.Key(p.Width, p.Height, x, y)})
		}
	}
	for _, key := range p.ControlKeys() {
		t.Send(LedCommand{Section: Control, Key: key})
	}
}

// Close stops listening and closes both ports. It is safe to call more
// than once.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		if t.stop != nil {
			t.stop()
		}
		t.closeErr = errors.Join(t.in.Close(), t.out.Close())
		t.log.Info("disconnected", zap.Error(t.closeErr))
	})
	return t.closeErr
}

// ListPorts returns the names of all input and output ports of drv
func ListPorts(drv drivers.Driver) (ins, outs []string, err error) {
	if drv == nil {
		return nil, nil, fmt.Errorf("%w: no driver", ErrDriverInit)
	}
	inPorts, err := drv.Ins()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list inputs: %v", ErrDriverInit, err)
	}
	outPorts, err := drv.Outs()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list outputs: %v", ErrDriverInit, err)
	}
	for _, in := range inPorts {
		ins = append(ins, in.String())
	}
	for _, out := range outPorts {
		outs = append(outs, out.String())
	}
	return ins, outs, nil
}

func findIn(ports []drivers.In, name string) drivers.In {
	for _, in := range ports {
		if in.String() == name {
			return in
		}
	}
	return nil
}

func findOut(ports []drivers.Out, name string) drivers.Out {
	for _, out := range ports {
		if out.String() == name {
			return out
		}
	}
	return nil
}
