package siggen

// WrapCount folds an encoder count back into [0, span) with a single
// correction: below zero adds span, at or above span subtracts it. Per-tick
// movement is assumed smaller than span.
func WrapCount(n int32, span uint32) int32 {
	v := int64(n)
	switch {
	case v < 0:
		v += int64(span)
	case v >= int64(span):
		v -= int64(span)
	}
	return int32(v)
}
