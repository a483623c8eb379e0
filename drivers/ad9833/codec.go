package ad9833

import "ddsgen-go/x/mathx"

// Fixed-point conversions between hertz/degrees and register words.
// All arithmetic uses 64-bit intermediates; there is no floating point on
// the write path.

// HzToTuningWord returns floor(hz * 2^28 / mclk). Truncation is the deployed
// policy, so the programmed frequency is never above the request.
func HzToTuningWord(hz, mclk uint32) uint32 {
	if mclk == 0 {
		return 0
	}
	return uint32(uint64(hz) * TuningSpan / uint64(mclk))
}

// TuningWordToHz is the round-up inverse of HzToTuningWord:
// (word*mclk + 2^28 - 1) / 2^28.
func TuningWordToHz(word, mclk uint32) uint32 {
	return uint32((uint64(word)*uint64(mclk) + TuningSpan - 1) / TuningSpan)
}

// Resolution is the output step of one tuning LSB, in hertz.
func Resolution(mclk uint32) float64 {
	return float64(mclk) / TuningSpan
}

// SplitTuningWord returns the low and high 14-bit halves of a 28-bit word.
func SplitTuningWord(word uint32) (lo, hi uint16) {
	return uint16(word & halfMask), uint16((word >> 14) & halfMask)
}

// FrequencyWords returns the two tagged words for a FREQ0 write, low half
// first. The chip latches the register on the second word.
func FrequencyWords(word uint32) [2]uint16 {
	lo, hi := SplitTuningWord(word)
	return [2]uint16{lo | selFreq0, hi | selFreq0}
}

// DegToPhaseWord maps degrees to the 12-bit phase register:
// round(4096 * (deg mod 360) / 360), masked to 12 bits.
func DegToPhaseWord(deg uint32) uint16 {
	d := uint64(deg % 360)
	return uint16(mathx.RoundDiv(d*PhaseSpan, 360)) & phaseMask
}

// PhaseWord returns the tagged PHASE0 word for deg.
func PhaseWord(deg uint32) uint16 {
	return DegToPhaseWord(deg) | selPhase0
}
