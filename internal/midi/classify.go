package midi

// Classified is a press that survived classification
type Classified struct {
	Section Section
	Key     uint8
}

// Classify separates a raw event into section and key. Note starts are
// grid presses and non-zero control changes are control presses; releases
// and every other message are ignored. Whether the key is bound to
// anything is left to the dispatcher.
func Classify(ev IncomingEvent) (Classified, bool) {
	msg := ev.Message()
	var key, value uint8
	switch {
	case msg.GetNoteStart(nil, &key, nil):
		return Classified{Section: Main, Key: key}, true
	case msg.GetControlChange(nil, &key, &value):
		if value == 0 {
			return Classified{}, false
		}
		return Classified{Section: Control, Key: key}, true
	}
	return Classified{}, false
}
