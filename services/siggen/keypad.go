package siggen

import (
	"math"

	"ddsgen-go/errcode"
)

// KeyKind is what a physical key does.
type KeyKind uint8

const (
	KindUnmapped KeyKind = iota
	KindDigit
	KindMode
	KindEnter
	KindDelete
	KindStore
	KindRecall
)

// ScanEntry is one row of the scan-code table.
type ScanEntry struct {
	Kind  KeyKind
	Digit uint8 // valid for KindDigit
}

// ScanMap routes the 16 raw scan codes of a 4x4 matrix to keys.
type ScanMap [16]ScanEntry

func digit(d uint8) ScanEntry { return ScanEntry{Kind: KindDigit, Digit: d} }

// DefaultScanMap is the front-panel legend, row by row:
//
//	1 2 3 MODE
//	4 5 6 STORE
//	7 8 9 RECALL
//	DEL 0 ENTER -
var DefaultScanMap = ScanMap{
	digit(1), digit(2), digit(3), {Kind: KindMode},
	digit(4), digit(5), digit(6), {Kind: KindStore},
	digit(7), digit(8), digit(9), {Kind: KindRecall},
	{Kind: KindDelete}, digit(0), {Kind: KindEnter}, {Kind: KindUnmapped},
}

// Event returns the event for a raw scan code. Unmapped and out-of-table
// codes yield false.
func (m *ScanMap) Event(code uint8) (Event, bool) {
	if int(code) >= len(m) {
		return nil, false
	}
	e := m[code]
	switch e.Kind {
	case KindDigit:
		return KeyDigit{D: e.Digit}, true
	case KindMode:
		return KeyMode{}, true
	case KindEnter:
		return KeyEnter{}, true
	case KindDelete:
		return KeyDelete{}, true
	case KindStore:
		return KeyStore{}, true
	case KindRecall:
		return KeyRecall{}, true
	}
	return nil, false
}

// ParseKeyMap builds a ScanMap from key names: "0".."9", "mode", "enter",
// "delete", "store", "recall". "" and "none" leave the code unmapped.
func ParseKeyMap(names [16]string) (ScanMap, error) {
	var m ScanMap
	for i, n := range names {
		e, ok := parseKeyName(n)
		if !ok {
			return ScanMap{}, &errcode.E{C: errcode.InvalidParams, Op: "keymap", Msg: "unknown key " + `"` + n + `"`}
		}
		m[i] = e
	}
	return m, nil
}

func parseKeyName(n string) (ScanEntry, bool) {
	if len(n) == 1 && n[0] >= '0' && n[0] <= '9' {
		return digit(n[0] - '0'), true
	}
	switch n {
	case "", "none":
		return ScanEntry{}, true
	case "mode":
		return ScanEntry{Kind: KindMode}, true
	case "enter":
		return ScanEntry{Kind: KindEnter}, true
	case "delete", "del":
		return ScanEntry{Kind: KindDelete}, true
	case "store":
		return ScanEntry{Kind: KindStore}, true
	case "recall":
		return ScanEntry{Kind: KindRecall}, true
	}
	return ScanEntry{}, false
}

// ---- Numeric entry ----

// BufferLen is the width of the keypad entry field.
const BufferLen = 8

// Buffer is the left-justified keypad entry. When full, a new digit evicts
// the oldest one (sliding window).
type Buffer struct {
	b [BufferLen]byte
	n uint8
}

func (k *Buffer) Push(c byte) {
	if int(k.n) == BufferLen {
		copy(k.b[:], k.b[1:])
		k.n--
	}
	k.b[k.n] = c
	k.n++
}

// Backspace drops the newest character. It reports false on an empty buffer.
func (k *Buffer) Backspace() bool {
	if k.n == 0 {
		return false
	}
	k.n--
	return true
}

func (k *Buffer) Clear()         { k.n = 0 }
func (k *Buffer) Len() int       { return int(k.n) }
func (k *Buffer) Empty() bool    { return k.n == 0 }
func (k *Buffer) String() string { return string(k.b[:k.n]) }

// Value parses the buffer with ParseHz.
func (k *Buffer) Value() uint32 { return ParseHz(k.b[:k.n]) }

// ParseHz skips leading non-digits and reads decimal digits up to the first
// non-digit. No digits parse as 0. Values past 2^32-1 saturate.
func ParseHz(s []byte) uint32 {
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	var v uint64
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		v = v*10 + uint64(s[i]-'0')
		if v > math.MaxUint32 {
			return math.MaxUint32
		}
	}
	return uint32(v)
}
