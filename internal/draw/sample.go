package draw

import "fmt"

// MaxCount caps how many results a single draw with repeats may return.
// Without repeats the collection or range size already bounds the result.
const MaxCount = 1_000_000

// Sample draws count items from items.
//
// Without repeats the collection is shuffled and the first count items are
// returned, so every subset and every ordering of it is equally likely and no
// source position appears twice. With repeats each pick is an independent
// uniform index into the whole collection.
//
// Preconditions are checked before any randomness is consumed.
func Sample[T any](rng Source, items []T, count int, allowRepeats bool) ([]T, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	if count < 1 {
		return nil, countError(count, len(items), allowRepeats)
	}
	if !allowRepeats && count > len(items) {
		return nil, countError(count, len(items), allowRepeats)
	}
	if count > MaxCount {
		return nil, maxCountError(count)
	}

	if !allowRepeats {
		return Shuffle(rng, items)[:count:count], nil
	}

	out := make([]T, count)
	for i := range out {
		out[i] = items[rng.IntN(len(items))]
	}
	return out, nil
}

func maxCountError(count int) error {
	return fmt.Errorf("%w: count must be at most %d, got %d", ErrInvalidDrawConfiguration, MaxCount, count)
}

func countError(count, size int, allowRepeats bool) error {
	if allowRepeats {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidDrawConfiguration, count)
	}
	return fmt.Errorf("%w: count must be between 1 and %d, got %d", ErrInvalidDrawConfiguration, size, count)
}
