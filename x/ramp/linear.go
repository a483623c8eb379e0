package ramp

import (
	"ddsgen-go/errcode"
	"ddsgen-go/x/mathx"
)

// Rate returns the sweep slope in millihertz per millisecond:
// (f2-f1)*1000/durationMs, truncated toward zero with the sign kept.
// A non-zero span never yields 0; it is clamped to ±1 so the sweep always
// moves. durationMs==0 is rejected.
func Rate(f1, f2, durationMs uint32) (int32, error) {
	if durationMs == 0 {
		return 0, &errcode.E{C: errcode.InvalidParams, Op: "rate", Msg: "duration must be > 0"}
	}
	span := int64(f2) - int64(f1)
	r := span * 1000 / int64(durationMs)
	if r == 0 && span != 0 {
		r = mathx.Sign(span)
	}
	return mathx.SatInt32(r), nil
}

// Advance returns startHz + rate*elapsedMs/1000 clamped to the bound in the
// direction of travel (f2 when moving from f1 towards f2), and whether that
// bound was reached.
func Advance(startHz, f1, f2 uint32, rate int32, elapsedMs uint32) (uint32, bool) {
	next := int64(startHz) + int64(rate)*int64(elapsedMs)/1000
	lo, hi := mathx.Order(int64(f1), int64(f2))
	switch {
	case rate > 0 && next >= hi:
		return uint32(hi), true
	case rate < 0 && next <= lo:
		return uint32(lo), true
	case rate == 0:
		return startHz, f1 == f2
	}
	return uint32(mathx.Clamp(next, lo, hi)), false
}

// Sweep tracks one repeating linear sweep against an absolute millisecond
// clock. Position is derived from the start time rather than accumulated,
// so slopes below 1 Hz per tick still progress.
type Sweep struct {
	F1, F2  uint32
	Rate    int32
	StartMs uint32

	wrapped bool
}

// NewSweep plans a sweep from f1 to f2 over durationMs starting at nowMs.
func NewSweep(f1, f2, durationMs, nowMs uint32) (Sweep, error) {
	r, err := Rate(f1, f2, durationMs)
	if err != nil {
		return Sweep{}, err
	}
	return Sweep{F1: f1, F2: f2, Rate: r, StartMs: nowMs}, nil
}

// At returns the output frequency for nowMs. On reaching F2 the sweep emits
// F2 once, then restarts from F1 on the following call.
func (s *Sweep) At(nowMs uint32) uint32 {
	if s.wrapped {
		s.wrapped = false
		s.StartMs = nowMs
		return s.F1
	}
	hz, done := Advance(s.F1, s.F1, s.F2, s.Rate, nowMs-s.StartMs)
	if done && s.F1 != s.F2 {
		s.wrapped = true
	}
	return hz
}

// Restart begins the sweep again from F1 at nowMs.
func (s *Sweep) Restart(nowMs uint32) {
	s.StartMs = nowMs
	s.wrapped = false
}
