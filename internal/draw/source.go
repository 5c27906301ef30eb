// Package draw implements the randomized selection engine: unbiased shuffling,
// sampling with and without replacement, balanced partitioning and the mapping
// of a wheel rotation back to a winning segment.
//
// Every function is a pure function of its inputs and the supplied Source. No
// state is kept between calls, so concurrent draws only need separate sources.
package draw

import (
	"math/rand/v2"
	"time"

	"lukechampine.com/frand"
)

// Source is a uniform random source. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
}

// NewSource returns a PCG-backed source that yields the same sequence for the
// same seed. Use it to replay a draw or in tests.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>32))
}

// NewTimeSource returns a PCG-backed source seeded from the clock.
func NewTimeSource() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32))
}

// secureSource reads from frand's ChaCha-based CSPRNG.
type secureSource struct{}

// NewSecureSource returns a source backed by a cryptographically secure
// generator. Draws made with it cannot be replayed.
func NewSecureSource() Source {
	return secureSource{}
}

func (secureSource) IntN(n int) int { return frand.Intn(n) }

func (secureSource) Float64() float64 { return frand.Float64() }
