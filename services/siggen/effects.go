package siggen

import "ddsgen-go/types"

// Effect is a side effect requested by Step and carried out by the
// Controller in order.
type Effect interface{ isEffect() }

// WriteFreq programs the DDS. Bracket wraps the write in a reset
// transaction (frequency and phase together).
type WriteFreq struct {
	Hz      uint32
	Bracket bool
}

// SyncEncoder moves the encoder position.
type SyncEncoder struct{ Count int32 }

// Save stores Cfg in Slot.
type Save struct {
	Slot int
	Cfg  types.Configuration
}

// Load recalls Slot; the result comes back as a Loaded event.
type Load struct{ Slot int }

// Warn shows a transient message on the second display row.
type Warn struct{ Text string }

func (WriteFreq) isEffect()   {}
func (SyncEncoder) isEffect() {}
func (Save) isEffect()        {}
func (Load) isEffect()        {}
func (Warn) isEffect()        {}

// Warning texts.
const (
	WarnTooHigh   = "TOO HIGH"
	WarnBadTime   = "BAD TIME"
	WarnEmptySlot = "EMPTY SLOT"
	WarnBadSlot   = "BAD SLOT"
)
