package conv

// Itoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for int64. Negative numbers supported.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	neg := n < 0
	var u uint64
	if neg {
		u = uint64(-n)
	} else {
		u = uint64(n)
	}
	d := Utoa(buf, u)
	i := len(buf) - len(d)
	if neg && i > 0 {
		i--
		buf[i] = '-'
	}
	return buf[i:]
}

// Itos is Itoa into a fresh string.
func Itos(n int64) string {
	var tmp [21]byte
	return string(Itoa(tmp[:], n))
}
