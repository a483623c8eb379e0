// Package critical guards reads and writes of values shared with interrupt
// handlers. On TinyGo it masks interrupts; on host builds it takes a mutex
// so the same code can be exercised by tests and the simulator.
package critical

// Section runs fn with interrupts masked. fn must be short and must not
// block.
func Section(fn func()) {
	s := disable()
	fn()
	restore(s)
}

// LoadInt32 reads *p inside a critical section.
func LoadInt32(p *int32) (v int32) {
	s := disable()
	v = *p
	restore(s)
	return v
}

// StoreInt32 writes *p inside a critical section.
func StoreInt32(p *int32, v int32) {
	s := disable()
	*p = v
	restore(s)
}

// LoadUint32 reads *p inside a critical section.
func LoadUint32(p *uint32) (v uint32) {
	s := disable()
	v = *p
	restore(s)
	return v
}
