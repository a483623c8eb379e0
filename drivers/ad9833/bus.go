package ad9833

import "tinygo.org/x/drivers"

// PinOutput drives a logical output level (FSYNC here).
type PinOutput func(level bool)

// SPIWriter adapts a tinygo drivers.SPI bus to WordWriter. The bus must be
// configured for mode 2 (CPOL=1, CPHA=0), 8-bit frames.
type SPIWriter struct {
	spi   drivers.SPI
	fsync PinOutput

	// Fixed buffer to avoid per-call heap allocations.
	w [2]byte
}

// NewSPIWriter returns a writer that frames every word with fsync low.
// fsync may be nil when the bus drives chip select itself.
func NewSPIWriter(spi drivers.SPI, fsync PinOutput) *SPIWriter {
	if fsync != nil {
		fsync(true)
	}
	return &SPIWriter{spi: spi, fsync: fsync}
}

// WriteWord sends w MSB first.
func (s *SPIWriter) WriteWord(w uint16) error {
	s.w[0] = byte(w >> 8) // high
	s.w[1] = byte(w)      // low
	if s.fsync != nil {
		s.fsync(false)
		defer s.fsync(true)
	}
	return s.spi.Tx(s.w[:], nil)
}

// Recorder is an in-memory WordWriter. FailAt > 0 makes the FailAt-th
// write (1-based) return Err.
type Recorder struct {
	Words  []uint16
	FailAt int
	Err    error

	n int
}

func (r *Recorder) WriteWord(w uint16) error {
	r.n++
	if r.FailAt > 0 && r.n == r.FailAt {
		return r.Err
	}
	r.Words = append(r.Words, w)
	return nil
}

// Reset drops recorded words and the failure counter.
func (r *Recorder) Reset() {
	r.Words = r.Words[:0]
	r.n = 0
}
