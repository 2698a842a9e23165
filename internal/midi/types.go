package midi

import (
	"fmt"
	"time"

	"gitlab.com/gomidi/midi/v2"
)

// Control row buttons are addressed as CC 104-111, left to right
const (
	ControlFirst uint8 = 104
	ControlCount       = 8
)

// Section is the logical zone of the pad a message belongs to
type Section int

const (
	Main Section = iota
	Control
)

func (s Section) String() string {
	switch s {
	case Main:
		return "main"
	case Control:
		return "control"
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// IncomingEvent is one raw 3 byte message received from the pad
type IncomingEvent struct {
	Status    uint8
	Key       uint8
	Velocity  uint8
	Timestamp time.Duration // device clock
}

// Message returns the event as a gomidi message for decoding
func (e IncomingEvent) Message() midi.Message {
	return midi.Message{e.Status, e.Key, e.Velocity}
}

// Released reports whether the event is a button release: a note off, a
// note on with velocity 0 or a control change to 0
func (e IncomingEvent) Released() bool {
	msg := e.Message()
	if msg.GetNoteEnd(nil, nil) {
		return true
	}
	var value uint8
	return msg.GetControlChange(nil, nil, &value) && value == 0
}

// LedCommand sets one LED. Code 0 turns it off.
type LedCommand struct {
	Section Section
	Key     uint8
	Code    uint8
}
