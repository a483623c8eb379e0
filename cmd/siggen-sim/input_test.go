package main

import (
	"strings"
	"testing"

	"ddsgen-go/services/panel"
	"ddsgen-go/services/siggen"
)

func newTestPanel() *frontPanel {
	return &frontPanel{
		enc:   &panel.Counter{},
		btn:   &panel.Latch{},
		queue: panel.NewKeyQueue(16),
		codes: reverseMap(&siggen.DefaultScanMap),
	}
}

func drain(q *panel.KeyQueue) []uint8 {
	var out []uint8
	for {
		c, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, c)
	}
}

func TestReverseMap_DefaultLegend(t *testing.T) {
	codes := reverseMap(&siggen.DefaultScanMap)
	want := map[byte]uint8{
		'1': 0, '2': 1, '3': 2, 'm': 3,
		'4': 4, '5': 5, '6': 6, 's': 7,
		'7': 8, '8': 9, '9': 10, 'r': 11,
		'd': 12, '0': 13, 'e': 14,
	}
	if len(codes) != len(want) {
		t.Fatalf("got %d keys, want %d", len(codes), len(want))
	}
	for k, c := range want {
		if codes[k] != c {
			t.Fatalf("key %q -> %d, want %d", k, codes[k], c)
		}
	}
}

func TestReadLoop_KeysEncoderButton(t *testing.T) {
	p := newTestPanel()
	p.readLoop(strings.NewReader("m12e\n+250 -50 b\n+\nq\n9"))

	got := drain(p.queue)
	want := []uint8{3, 0, 1, 14}
	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("codes = %v, want %v", got, want)
		}
	}
	if n := p.enc.Count(); n != 201 {
		t.Fatalf("encoder = %d, want 201", n)
	}
	if !p.btn.Pressed() {
		t.Fatal("button press lost")
	}
}

func TestApply_BadEncoderStep(t *testing.T) {
	p := newTestPanel()
	if err := p.apply("+x"); err == nil {
		t.Fatal("want parse error")
	}
	if p.enc.Count() != 0 {
		t.Fatal("encoder moved on bad input")
	}
}
