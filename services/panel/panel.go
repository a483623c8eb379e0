// Package panel holds the front-panel collaborators of the generator:
// the encoder, millisecond clock, push button, keypad and text display.
// Board code supplies the hardware halves; the types here are the
// interrupt-safe glue the control loop reads.
package panel

// Encoder is a signed quadrature count. SetCount moves the position, used
// after the controller commits a frequency or wraps the count.
type Encoder interface {
	Count() int32
	SetCount(int32)
}

// Clock is a free-running millisecond counter that wraps at 2^32.
type Clock interface {
	Millis() uint32
}

// Button reports one press per physical press since the last poll.
type Button interface {
	Pressed() bool
}

// Keypad yields the next raw scan code, if any.
type Keypad interface {
	Poll() (uint8, bool)
}

// Display draws text at a character cell.
type Display interface {
	TextAt(col, row uint8, text string)
}
