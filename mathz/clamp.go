// Package mathz holds small numeric helpers.
package mathz

import "cmp"

// Clamp limits v to the range [lo, hi].
//
// Bounds are applied as min(max(v, lo), hi), so when lo > hi the result is
// always hi. For floats a NaN in any argument yields NaN.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
