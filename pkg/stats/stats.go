// Package stats provides small numeric helpers shared by the aggregation and
// colour-scale code. Empty inputs always yield the zero value, never a panic.
package stats

import "cmp"

// Number is the set of numeric types the helpers accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Sum returns the sum of all elements in values.
// Returns 0 for an empty slice.
func Sum[T Number](values []T) T {
	var result T

	for _, v := range values {
		result += v
	}

	return result
}

// SumBy folds items through fn and returns the total.
func SumBy[E any, T Number](items []E, fn func(E) T) T {
	var result T

	for _, item := range items {
		result += fn(item)
	}

	return result
}

// Mean returns the arithmetic mean of values.
// Returns 0 for an empty slice.
func Mean[T Number](values []T) float64 {
	if len(values) == 0 {
		return 0
	}

	return float64(Sum(values)) / float64(len(values))
}

// Clamp restricts val to the range [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// MinMax returns the smallest and largest element in values.
// Returns zero values for an empty slice.
func MinMax[T cmp.Ordered](values []T) (lo, hi T) {
	if len(values) == 0 {
		return lo, hi
	}

	lo, hi = values[0], values[0]

	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent[T Number](part, whole T) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * percentMultiplier
}

const percentMultiplier = 100
