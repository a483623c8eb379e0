package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	lo, hi = Order(lo, hi)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Order returns a and b ascending.
func Order[T constraints.Ordered](a, b T) (lo, hi T) {
	if b < a {
		return b, a
	}
	return a, b
}

// AbsDiff is |a-b| without wrapping for unsigned types.
func AbsDiff[T constraints.Integer](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
