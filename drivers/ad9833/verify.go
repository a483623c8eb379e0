package ad9833

import (
	"strconv"

	"ddsgen-go/errcode"
	"ddsgen-go/x/mathx"
)

// Report summarises a round-trip verification pass.
type Report struct {
	Checked  uint32
	MaxErrHz uint32 // largest |inverse(word(f)) - f|
	WorstHz  uint32 // first frequency reaching MaxErrHz
	StepHz   uint32 // tolerance: one resolution step, rounded up
}

// VerifyRoundTrip converts every f in [from, to) (stride step) to a tuning
// word and back with the round-up inverse. It fails at the first frequency
// whose error exceeds one resolution step.
func VerifyRoundTrip(mclk, from, to, step uint32) (Report, error) {
	if mclk == 0 || step == 0 || to < from {
		return Report{}, errcode.InvalidParams
	}
	tol := uint32(mathx.CeilDiv(uint64(mclk), TuningSpan))
	r := Report{StepHz: tol}
	for f := uint64(from); f < uint64(to); f += uint64(step) {
		hz := uint32(f)
		back := TuningWordToHz(HzToTuningWord(hz, mclk), mclk)
		diff := mathx.AbsDiff(back, hz)
		r.Checked++
		if diff > r.MaxErrHz {
			r.MaxErrHz, r.WorstHz = diff, hz
		}
		if diff > tol {
			return r, &errcode.E{
				C:   errcode.OutOfRange,
				Op:  "verify",
				Msg: "f=" + strconv.FormatUint(uint64(hz), 10) + " back=" + strconv.FormatUint(uint64(back), 10),
			}
		}
	}
	return r, nil
}
