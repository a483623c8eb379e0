// Package timex holds host-side time helpers.
package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// Monotonic is a wrapping millisecond counter since Start, read from the
// monotonic clock. The zero value starts on first use.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic { return &Monotonic{start: time.Now()} }

// Millis wraps after about 49.7 days, like a 32-bit tick counter.
func (m *Monotonic) Millis() uint32 {
	if m.start.IsZero() {
		m.start = time.Now()
	}
	return uint32(time.Since(m.start).Milliseconds())
}
