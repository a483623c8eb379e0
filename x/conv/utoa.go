package conv

// Utoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	} else {
		for n > 0 && i > 0 {
			i--
			buf[i] = byte('0' + (n % 10))
			n /= 10
		}
	}
	return buf[i:]
}

// Field right-aligns the decimal form of n in a width-character field,
// space padded. Values wider than the field keep their low digits.
func Field(n uint64, width int) string {
	var tmp [20]byte
	d := Utoa(tmp[:], n)
	if width <= 0 {
		return string(d)
	}
	if len(d) > width {
		d = d[len(d)-width:]
	}
	out := make([]byte, width)
	pad := width - len(d)
	for i := 0; i < pad; i++ {
		out[i] = ' '
	}
	copy(out[pad:], d)
	return string(out)
}

// Pad left-justifies s in a width-character field, truncating if longer.
func Pad(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	out := make([]byte, width)
	n := copy(out, s)
	for i := n; i < width; i++ {
		out[i] = ' '
	}
	return string(out)
}
