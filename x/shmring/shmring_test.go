package shmring

import (
	"sync"
	"testing"
)

func TestPutGetOrderAndFull(t *testing.T) {
	r := New(4)
	for i := byte(0); i < 4; i++ {
		if !r.Put(i) {
			t.Fatalf("Put(%d) failed on non-full ring", i)
		}
	}
	if r.Put(9) {
		t.Fatal("Put succeeded on full ring")
	}
	if r.Drops() != 1 {
		t.Fatalf("Drops = %d, want 1", r.Drops())
	}
	for i := byte(0); i < 4; i++ {
		b, ok := r.Get()
		if !ok || b != i {
			t.Fatalf("Get = (%d,%v), want (%d,true)", b, ok, i)
		}
	}
	if _, ok := r.Get(); ok {
		t.Fatal("Get succeeded on empty ring")
	}
}

func TestOrderAcrossWrapWithPartialProgress(t *testing.T) {
	r := New(64)

	// Produce a known sequence [0..N)
	const N = 2000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i)
	}

	p := src
	dst := make([]byte, N)
	off := 0
	for off < N {
		if len(p) > 0 {
			step := 7
			if step > len(p) {
				step = len(p)
			}
			w := r.WriteFrom(p[:step])
			p = p[w:]
		}
		var tmp [5]byte
		n := r.ReadInto(tmp[:])
		copy(dst[off:], tmp[:n])
		off += n
	}
	for i := 0; i < N; i++ {
		if dst[i] != src[i] {
			t.Fatalf("mismatch at %d: got=%d want=%d", i, dst[i], src[i])
		}
	}
}

func TestConcurrentProducerConsumer(t *testing.T) {
	r := New(16)
	const N = 10000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < N; {
			if r.Put(byte(i)) {
				i++
			}
		}
	}()
	for i := 0; i < N; {
		b, ok := r.Get()
		if !ok {
			continue
		}
		if b != byte(i) {
			t.Fatalf("byte %d = %d", i, b)
		}
		i++
	}
	wg.Wait()
}

func TestNewPanicsOnBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(6)
}
