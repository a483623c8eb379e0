package ad9833

const (
	// Register selector, bits 15..14 of every 16-bit word.
	selControl = 0x0000 // 00
	selFreq0   = 0x4000 // 01
	selFreq1   = 0x8000 // 10
	selPhase0  = 0xC000 // 11
	selMask    = 0xC000

	// Control register bits (D13..D0).
	ctlB28     = 1 << 13 // 28-bit frequency writes as two consecutive 14-bit words
	ctlHLB     = 1 << 12 // MSB/LSB select when B28 is clear
	ctlFSelect = 1 << 11
	ctlPSelect = 1 << 10
	ctlReset   = 1 << 8
	ctlSleep1  = 1 << 7
	ctlSleep12 = 1 << 6
	ctlOPBITEN = 1 << 5
	ctlDIV2    = 1 << 3
	ctlMode    = 1 << 1

	halfMask  = 0x3FFF // 14-bit frequency half
	phaseMask = 0x0FFF // 12-bit phase

	// Words written by the boot/config bracket.
	wordResetB28 = selControl | ctlB28 | ctlReset // 0x2100
	wordRunB28   = selControl | ctlB28            // 0x2000
)

// Tuning word geometry.
const (
	TuningBits = 28
	TuningSpan = 1 << TuningBits // 2^28
	PhaseSpan  = 1 << 12         // 4096 steps per turn
)
