package draw

import (
	"fmt"
	"math"
)

const fullTurn = 360.0

// Default number of whole turns added by Spin.
const (
	DefaultMinTurns = 5
	DefaultMaxTurns = 10
)

// WheelState is where a wheel came to rest.
type WheelState struct {
	SegmentCount         int
	FinalRotationDegrees float64
}

// SpinOptions bounds the number of whole turns a spin adds.
type SpinOptions struct {
	MinTurns int
	MaxTurns int
}

// DefaultSpinOptions returns 5 to 10 whole turns.
func DefaultSpinOptions() SpinOptions {
	return SpinOptions{MinTurns: DefaultMinTurns, MaxTurns: DefaultMaxTurns}
}

// SpinResult is the resting state of a spin and the segment under the pointer.
type SpinResult struct {
	State  WheelState
	Winner int
}

// ResolveWinner maps a final rotation to the segment under the fixed pointer
// at the top of the wheel.
//
// Segment 0 starts at 0 degrees and segments run clockwise. The wheel turns
// clockwise under the pointer, so the winner is the segment that has moved
// backwards into the pointer: (n - floor(θ mod 360 / (360/n))) mod n.
func ResolveWinner(segmentCount int, finalRotationDegrees float64) (int, error) {
	if err := validateSegments(segmentCount); err != nil {
		return 0, err
	}
	if math.IsNaN(finalRotationDegrees) || math.IsInf(finalRotationDegrees, 0) {
		return 0, fmt.Errorf("%w: rotation must be finite, got %v", ErrInvalidDrawConfiguration, finalRotationDegrees)
	}

	normalized := math.Mod(finalRotationDegrees, fullTurn)
	if normalized < 0 {
		normalized += fullTurn
	}
	// -tiny + 360 can round up to exactly 360.
	if normalized >= fullTurn {
		normalized = 0
	}

	sector := fullTurn / float64(segmentCount)
	raw := int(math.Floor(normalized / sector))
	if raw >= segmentCount {
		raw = segmentCount - 1
	}
	return (segmentCount - raw) % segmentCount, nil
}

// Spin picks a final rotation of currentRotation plus a whole number of turns
// in [MinTurns, MaxTurns] plus a uniform offset in [0, 360), and resolves the
// winner from it. The offset alone decides the resting sector, so every
// segment is equally likely whatever the turn count.
func Spin(rng Source, segmentCount int, currentRotation float64, opts SpinOptions) (SpinResult, error) {
	if err := validateSegments(segmentCount); err != nil {
		return SpinResult{}, err
	}
	if opts.MinTurns < 0 || opts.MaxTurns < opts.MinTurns {
		return SpinResult{}, fmt.Errorf("%w: turns must satisfy 0 <= min <= max, got %d..%d",
			ErrInvalidDrawConfiguration, opts.MinTurns, opts.MaxTurns)
	}

	turns := opts.MinTurns + rng.IntN(opts.MaxTurns-opts.MinTurns+1)
	final := currentRotation + float64(turns)*fullTurn + rng.Float64()*fullTurn

	winner, err := ResolveWinner(segmentCount, final)
	if err != nil {
		return SpinResult{}, err
	}
	return SpinResult{
		State:  WheelState{SegmentCount: segmentCount, FinalRotationDegrees: final},
		Winner: winner,
	}, nil
}

func validateSegments(segmentCount int) error {
	if segmentCount == 0 {
		return ErrEmptyCollection
	}
	if segmentCount < 2 {
		return fmt.Errorf("%w: wheel needs at least 2 segments, got %d", ErrInvalidDrawConfiguration, segmentCount)
	}
	return nil
}
