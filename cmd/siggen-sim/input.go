package main

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"

	"ddsgen-go/services/panel"
	"ddsgen-go/services/siggen"
)

// frontPanel turns typed tokens into the same inputs the board produces:
// scan codes on the key queue, encoder detents and button presses.
type frontPanel struct {
	enc   *panel.Counter
	btn   *panel.Latch
	queue *panel.KeyQueue
	codes map[byte]uint8
}

// reverseMap finds the scan code for each typed key under m.
func reverseMap(m *siggen.ScanMap) map[byte]uint8 {
	codes := make(map[byte]uint8, len(m))
	for code, e := range m {
		var k byte
		switch e.Kind {
		case siggen.KindDigit:
			k = '0' + e.Digit
		case siggen.KindMode:
			k = 'm'
		case siggen.KindEnter:
			k = 'e'
		case siggen.KindDelete:
			k = 'd'
		case siggen.KindStore:
			k = 's'
		case siggen.KindRecall:
			k = 'r'
		default:
			continue
		}
		if _, dup := codes[k]; !dup {
			codes[k] = uint8(code)
		}
	}
	return codes
}

// readLoop consumes r until EOF or "q".
func (p *frontPanel) readLoop(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			if err := p.apply(tok); err == errQuit {
				return
			} else if err != nil {
				log.Printf("input %q: %v", tok, err)
			}
		}
	}
}

func (p *frontPanel) apply(tok string) error {
	if tok == "q" {
		return errQuit
	}
	if tok[0] == '+' || tok[0] == '-' {
		n := int64(1)
		if len(tok) > 1 {
			v, err := strconv.ParseInt(tok[1:], 10, 32)
			if err != nil {
				return err
			}
			n = v
		}
		if tok[0] == '-' {
			n = -n
		}
		p.enc.Add(int32(n))
		return nil
	}
	for i := 0; i < len(tok); i++ {
		k := tok[i]
		if k == 'b' {
			p.btn.Press()
			continue
		}
		code, ok := p.codes[k]
		if !ok {
			log.Printf("input: no key for %q", k)
			continue
		}
		if !p.queue.Push(code) {
			log.Printf("input: key queue full, %q dropped", k)
		}
	}
	return nil
}
