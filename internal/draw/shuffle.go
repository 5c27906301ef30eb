package draw

// Shuffle returns a uniformly random permutation of items. The input slice is
// left untouched; the result is always a fresh slice, even for zero or one
// element.
func Shuffle[T any](rng Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	// Fisher-Yates: each of the n! orderings is equally likely.
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
