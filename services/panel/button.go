package panel

import "ddsgen-go/x/critical"

// Edge turns a polled level into single press events. A level change must
// hold for DebounceMs before it is accepted; each accepted release→press
// transition reports one press.
type Edge struct {
	Level      func() bool
	Clock      Clock
	DebounceMs uint32
	Invert     bool

	stable    bool
	candidate bool
	since     uint32
}

// Pressed implements Button.
func (e *Edge) Pressed() bool {
	lvl := e.Level()
	if e.Invert {
		lvl = !lvl
	}
	var now uint32
	if e.Clock != nil {
		now = e.Clock.Millis()
	}
	if lvl != e.candidate {
		e.candidate = lvl
		e.since = now
	}
	if e.candidate == e.stable || now-e.since < e.DebounceMs {
		return false
	}
	e.stable = e.candidate
	return e.stable
}

// Latch is a Button fed by events (a GPIO edge interrupt or simulator
// keystroke) rather than polled levels.
type Latch struct {
	pending bool
}

// Press records a press. Safe to call from an interrupt handler.
func (l *Latch) Press() {
	critical.Section(func() { l.pending = true })
}

func (l *Latch) Pressed() (p bool) {
	critical.Section(func() {
		p = l.pending
		l.pending = false
	})
	return p
}
