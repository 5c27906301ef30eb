package draw

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Numbers draws count integers from the inclusive range [min, max].
//
// Without repeats it runs a partial Fisher-Yates over the virtual range and
// only remembers swapped positions, so memory grows with count and not with
// the width of the range.
func Numbers[T constraints.Signed](rng Source, min, max T, count int, allowRepeats bool) ([]T, error) {
	if min >= max {
		return nil, fmt.Errorf("%w: minimum must be less than maximum, got %d..%d", ErrInvalidDrawConfiguration, min, max)
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidDrawConfiguration, count)
	}
	if count > MaxCount {
		return nil, maxCountError(count)
	}

	// Wrapping subtraction is exact here because max > min.
	diff := uint64(int64(max)) - uint64(int64(min))
	if diff >= math.MaxInt {
		return nil, fmt.Errorf("%w: range %d..%d is too wide", ErrInvalidDrawConfiguration, min, max)
	}
	size := int(diff) + 1

	if !allowRepeats && count > size {
		return nil, fmt.Errorf("%w: only %d numbers in %d..%d, cannot draw %d without repeats",
			ErrInvalidDrawConfiguration, size, min, max, count)
	}

	at := func(offset int) T {
		return T(int64(min) + int64(offset))
	}

	out := make([]T, count)
	if allowRepeats {
		for i := range out {
			out[i] = at(rng.IntN(size))
		}
		return out, nil
	}

	swapped := make(map[int]int, 2*count)
	slot := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	for i := range out {
		j := i + rng.IntN(size-i)
		vi, vj := slot(i), slot(j)
		swapped[i], swapped[j] = vj, vi
		out[i] = at(vj)
	}
	return out, nil
}
