package logic

// buttonPhase is the debounce/repeat state of one button.
type buttonPhase uint8

const (
	// phaseIdle: released and settled.
	phaseIdle buttonPhase = iota
	// phaseSettling: the raw level changed and has not yet held steady
	// for the debounce interval.
	phaseSettling
	// phasePressed: the press just settled and its advance event fired;
	// transitions to phaseHeld on the next sample.
	phasePressed
	// phaseHeld: still pressed, firing a repeat event every repeat period.
	phaseHeld
)

// button is the per-button debounce and auto-repeat state machine. The same
// machine is instantiated once per ButtonID; hour and minute buttons differ
// only in what their advance events do.
type button struct {
	id ButtonID

	raw        bool // last observed raw level (true = pressed)
	lastChange Millis
	pressed    bool // debounced level
	phase      buttonPhase
	repeatAt   Millis // counter value when the last event fired
}

func newButton(id ButtonID) *button {
	return &button{id: id}
}

// step advances the machine one raw sample. It returns true when an advance
// event fires, either the immediate event on a settled press or a repeat
// while held. Debounce only delays recognition of a level; a press held past
// the debounce interval always produces its event.
func (b *button) step(now Millis, raw bool, cfg Config) bool {
	if raw != b.raw {
		b.raw = raw
		b.lastChange = now
		if b.phase == phaseIdle {
			b.phase = phaseSettling
		}
	}

	if b.phase == phasePressed {
		b.phase = phaseHeld
	}

	// A bounce that returned to the settled level before the debounce
	// interval elapsed never happened.
	if b.phase == phaseSettling && b.raw == b.pressed {
		b.phase = phaseIdle
	}

	// Settle the level once it has held steady for the debounce interval.
	if b.raw != b.pressed && elapsed(now, b.lastChange) >= cfg.Debounce {
		b.pressed = b.raw
		if b.pressed {
			b.phase = phasePressed
			b.repeatAt = now
			return true
		}
		b.phase = phaseIdle
		return false
	}

	if b.phase == phaseHeld && b.pressed && elapsed(now, b.repeatAt) >= cfg.Repeat {
		b.repeatAt = now
		return true
	}

	return false
}

// active reports whether the button is mid-edit: anything but settled and
// released. The sync scheduler suppresses RTC write-back while either button
// is active, so a half-finished hold never gets persisted.
func (b *button) active() bool {
	return b.phase != phaseIdle
}
