package panel

import "ddsgen-go/x/critical"

// Counter is an int32 updated from interrupt context (encoder pin
// handlers) and read by the main loop. Every access is a critical section.
type Counter struct {
	n int32
}

// Add is called from the interrupt handler.
func (c *Counter) Add(d int32) {
	critical.Section(func() { c.n += d })
}

func (c *Counter) Count() int32     { return critical.LoadInt32(&c.n) }
func (c *Counter) SetCount(v int32) { critical.StoreInt32(&c.n, v) }

// MillisClock is advanced by a 1 ms timer interrupt.
type MillisClock struct {
	ms uint32
}

// Tick is called from the timer interrupt.
func (m *MillisClock) Tick() {
	critical.Section(func() { m.ms++ })
}

// Advance moves the clock forward by d milliseconds (simulator, tests).
func (m *MillisClock) Advance(d uint32) {
	critical.Section(func() { m.ms += d })
}

func (m *MillisClock) Millis() uint32 { return critical.LoadUint32(&m.ms) }
