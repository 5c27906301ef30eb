package reveal

import (
	"strconv"

	"github.com/randomizedcoder/sorteio/internal/draw"
)

// TeaserNumber returns a random integer in [min, max].
// This is a pure function for easy testing.
func TeaserNumber(rng draw.Source, min, max int64) int64 {
	if max <= min {
		return min
	}
	v, err := draw.Numbers(rng, min, max, 1, true)
	if err != nil {
		return min
	}
	return v[0]
}

// TeaserItem returns a random element from the slice.
// This is a pure function for easy testing.
func TeaserItem(rng draw.Source, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[rng.IntN(len(items))]
}

// Numbers is a Teaser that flashes random numbers from [min, max].
func Numbers(min, max int64) Teaser {
	return func(rng draw.Source) string {
		return strconv.FormatInt(TeaserNumber(rng, min, max), 10)
	}
}

// Items is a Teaser that flashes random entries of items.
func Items(items []string) Teaser {
	return func(rng draw.Source) string {
		return TeaserItem(rng, items)
	}
}
