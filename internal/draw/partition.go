package draw

import (
	"fmt"
	"strconv"
)

// Group is one labelled bucket of a partition.
type Group[T any] struct {
	Label   string
	Members []T
}

// DefaultGroupLabel names groups "Group 1", "Group 2", ...
func DefaultGroupLabel(i int) string {
	return "Group " + strconv.Itoa(i+1)
}

// Partition splits items into groupCount balanced groups labelled with
// DefaultGroupLabel.
func Partition[T any](rng Source, items []T, groupCount int) ([]Group[T], error) {
	return PartitionLabeled(rng, items, groupCount, DefaultGroupLabel)
}

// PartitionLabeled shuffles items once and deals them round-robin: the item at
// shuffled position i joins group i mod groupCount. Group sizes therefore
// differ by at most one and every item lands in exactly one group. label
// receives the zero-based group index.
func PartitionLabeled[T any](rng Source, items []T, groupCount int, label func(i int) string) ([]Group[T], error) {
	if len(items) == 0 {
		return nil, ErrEmptyCollection
	}
	if groupCount < 2 {
		return nil, fmt.Errorf("%w: group count must be at least 2, got %d", ErrInvalidDrawConfiguration, groupCount)
	}
	if len(items) < groupCount {
		return nil, fmt.Errorf("%w: %d items cannot fill %d groups", ErrInvalidDrawConfiguration, len(items), groupCount)
	}
	if label == nil {
		label = DefaultGroupLabel
	}

	groups := make([]Group[T], groupCount)
	for i := range groups {
		size := len(items) / groupCount
		if i < len(items)%groupCount {
			size++
		}
		groups[i] = Group[T]{Label: label(i), Members: make([]T, 0, size)}
	}

	for i, item := range Shuffle(rng, items) {
		g := &groups[i%groupCount]
		g.Members = append(g.Members, item)
	}
	return groups, nil
}
