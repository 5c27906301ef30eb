package draw_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/sorteio/internal/draw"
)

func TestPartition_FiveIntoTwo(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e"}

	groups, err := draw.Partition(draw.NewSource(4), names, 2)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	sizes := []int{len(groups[0].Members), len(groups[1].Members)}
	slices.Sort(sizes)
	assert.Equal(t, []int{2, 3}, sizes)

	var all []string
	for _, g := range groups {
		all = append(all, g.Members...)
	}
	slices.Sort(all)
	assert.Equal(t, names, all)
}

func TestPartition_CoversAndBalances(t *testing.T) {
	rng := draw.NewSource(21)

	for n := 2; n <= 30; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for g := 2; g <= n; g++ {
			groups, err := draw.Partition(rng, items, g)
			require.NoError(t, err)
			require.Len(t, groups, g)

			seen := make(map[int]int)
			minSize, maxSize := n, 0
			for _, grp := range groups {
				minSize = min(minSize, len(grp.Members))
				maxSize = max(maxSize, len(grp.Members))
				for _, m := range grp.Members {
					seen[m]++
				}
			}
			require.LessOrEqual(t, maxSize-minSize, 1, "n=%d g=%d", n, g)
			require.Len(t, seen, n)
			for item, c := range seen {
				require.Equal(t, 1, c, "item %d appears %d times", item, c)
			}
		}
	}
}

func TestPartition_RoundRobinOrder(t *testing.T) {
	// topSource leaves the shuffle as the identity, exposing the deal order.
	groups, err := draw.Partition(topSource{}, []string{"a", "b", "c", "d", "e"}, 2)
	require.NoError(t, err)

	assert.Equal(t, "Group 1", groups[0].Label)
	assert.Equal(t, []string{"a", "c", "e"}, groups[0].Members)
	assert.Equal(t, "Group 2", groups[1].Label)
	assert.Equal(t, []string{"b", "d"}, groups[1].Members)
}

func TestPartitionLabeled(t *testing.T) {
	label := func(i int) string { return []string{"Red", "Blue", "Green"}[i] }

	groups, err := draw.PartitionLabeled(draw.NewSource(1), letters(7), 3, label)
	require.NoError(t, err)

	assert.Equal(t, "Red", groups[0].Label)
	assert.Equal(t, "Blue", groups[1].Label)
	assert.Equal(t, "Green", groups[2].Label)
	assert.Len(t, groups[0].Members, 3)
	assert.Len(t, groups[1].Members, 2)
	assert.Len(t, groups[2].Members, 2)
}

func TestPartitionLabeled_NilLabel(t *testing.T) {
	groups, err := draw.PartitionLabeled(draw.NewSource(1), letters(4), 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "Group 2", groups[1].Label)
}

func TestPartition_Errors(t *testing.T) {
	tests := []struct {
		name    string
		items   []string
		groups  int
		wantErr error
	}{
		{"empty", nil, 2, draw.ErrEmptyCollection},
		{"one group", letters(4), 1, draw.ErrInvalidDrawConfiguration},
		{"zero groups", letters(4), 0, draw.ErrInvalidDrawConfiguration},
		{"fewer items than groups", letters(3), 4, draw.ErrInvalidDrawConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := draw.Partition(draw.NewSource(1), tt.items, tt.groups)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestPartition_LeavesInputUntouched(t *testing.T) {
	in := letters(9)
	orig := slices.Clone(in)

	_, err := draw.Partition(draw.NewSource(8), in, 3)
	require.NoError(t, err)
	assert.Equal(t, orig, in)
}
