// Package fairness runs Monte Carlo audits of the draw engine. Each audit
// repeats one operation many times, counts how often every outcome occurs and
// compares the counts with the uniform expectation using Pearson's chi-square
// statistic.
package fairness

import (
	"fmt"
	"math"

	"github.com/randomizedcoder/sorteio/internal/draw"
)

// Stats summarizes one audit.
type Stats struct {
	Trials    int
	Counts    []int
	Expected  float64
	ChiSquare float64
	Min       int
	Max       int
}

// DegreesOfFreedom is the number of outcomes minus one.
func (s Stats) DegreesOfFreedom() int {
	return len(s.Counts) - 1
}

// Fair reports whether ChiSquare stays below the critical value for z
// standard deviations. z = 3.09 is roughly a 0.1% false alarm rate.
func (s Stats) Fair(z float64) bool {
	return s.ChiSquare <= Critical(s.DegreesOfFreedom(), z)
}

// Critical approximates the upper chi-square quantile for df degrees of
// freedom using the Wilson-Hilferty transform.
func Critical(df int, z float64) float64 {
	if df < 1 {
		return 0
	}
	k := float64(df)
	h := 2 / (9 * k)
	return k * math.Pow(1-h+z*math.Sqrt(h), 3)
}

// SamplePositions draws k of n positions without replacement, trials times,
// and counts how often each position is picked.
func SamplePositions(rng draw.Source, n, k, trials int) (Stats, error) {
	if err := checkTrials(trials); err != nil {
		return Stats{}, err
	}
	if err := checkSize(n); err != nil {
		return Stats{}, err
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}

	counts := make([]int, n)
	for range trials {
		picked, err := draw.Sample(rng, positions, k, false)
		if err != nil {
			return Stats{}, err
		}
		for _, p := range picked {
			counts[p]++
		}
	}
	return calcStats(counts, trials, float64(trials)*float64(k)/float64(n)), nil
}

// WheelSegments spins an n-segment wheel trials times, carrying the rotation
// over between spins, and counts the winning segments.
func WheelSegments(rng draw.Source, n, trials int, opts draw.SpinOptions) (Stats, error) {
	if err := checkTrials(trials); err != nil {
		return Stats{}, err
	}
	if err := checkSize(n); err != nil {
		return Stats{}, err
	}

	counts := make([]int, n)
	rotation := 0.0
	for range trials {
		res, err := draw.Spin(rng, n, rotation, opts)
		if err != nil {
			return Stats{}, err
		}
		counts[res.Winner]++
		rotation = math.Mod(res.State.FinalRotationDegrees, 360)
	}
	return calcStats(counts, trials, float64(trials)/float64(n)), nil
}

// PartitionSlots splits n items into groups, trials times, and counts how
// often each item lands in the first group.
func PartitionSlots(rng draw.Source, n, groups, trials int) (Stats, error) {
	if err := checkTrials(trials); err != nil {
		return Stats{}, err
	}
	if err := checkSize(n); err != nil {
		return Stats{}, err
	}
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}

	counts := make([]int, n)
	firstSize := 0
	for range trials {
		out, err := draw.Partition(rng, items, groups)
		if err != nil {
			return Stats{}, err
		}
		firstSize = len(out[0].Members)
		for _, m := range out[0].Members {
			counts[m]++
		}
	}
	return calcStats(counts, trials, float64(trials)*float64(firstSize)/float64(n)), nil
}

func checkTrials(trials int) error {
	if trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", draw.ErrInvalidDrawConfiguration, trials)
	}
	return nil
}

// checkSize mirrors the wheel's segment validation: 0 is empty, below 0 is
// invalid.
func checkSize(n int) error {
	if n == 0 {
		return draw.ErrEmptyCollection
	}
	if n < 0 {
		return fmt.Errorf("%w: n must be at least 1, got %d", draw.ErrInvalidDrawConfiguration, n)
	}
	return nil
}

// calcStats computes the chi-square statistic and the count range.
func calcStats(counts []int, trials int, expected float64) Stats {
	s := Stats{
		Trials:   trials,
		Counts:   counts,
		Expected: expected,
	}
	if len(counts) == 0 {
		return s
	}

	s.Min, s.Max = counts[0], counts[0]
	for _, c := range counts {
		d := float64(c) - expected
		s.ChiSquare += d * d / expected
		s.Min = min(s.Min, c)
		s.Max = max(s.Max, c)
	}
	return s
}
