// Package reveal implements the timed suspense animation shown before a draw
// result. It only produces cosmetic frames: the result is decided before Run
// starts and nothing here can change it.
package reveal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/sorteio/internal/config"
	"github.com/randomizedcoder/sorteio/internal/draw"
)

// Teaser produces the text of one suspense frame.
type Teaser func(rng draw.Source) string

// Revealer runs the suspense loop.
type Revealer struct {
	cfg    *config.Config
	logger *zap.Logger
	rng    draw.Source
	frames uint64
}

// New creates a Revealer with its own clock-seeded source. Teaser frames never
// consume randomness from the source used for the real draw.
func New(cfg *config.Config, logger *zap.Logger) *Revealer {
	return NewWithSource(cfg, logger, draw.NewTimeSource())
}

// NewWithSource creates a Revealer with a custom random source (for testing).
func NewWithSource(cfg *config.Config, logger *zap.Logger, rng draw.Source) *Revealer {
	return &Revealer{
		cfg:    cfg,
		logger: logger,
		rng:    rng,
	}
}

// Run emits a teaser frame every RevealInterval until RevealDuration has
// elapsed, then returns nil. A zero duration returns at once without frames.
// Cancelling ctx stops the loop and returns ctx.Err().
func (r *Revealer) Run(ctx context.Context, teaser Teaser, frame func(string)) error {
	if r.cfg.RevealDuration <= 0 || teaser == nil || frame == nil {
		return nil
	}

	ticker := time.NewTicker(r.cfg.RevealInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(r.cfg.RevealDuration)
	defer deadline.Stop()

	r.logger.Debug("reveal started",
		zap.Duration("duration", r.cfg.RevealDuration),
		zap.Duration("interval", r.cfg.RevealInterval),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reveal cancelled", zap.Uint64("frames", r.frames))
			return ctx.Err()
		case <-deadline.C:
			r.logger.Debug("reveal finished", zap.Uint64("frames", r.frames))
			return nil
		case <-ticker.C:
			r.frames++
			frame(teaser(r.rng))
		}
	}
}

// Frames returns the number of frames emitted so far.
func (r *Revealer) Frames() uint64 {
	return r.frames
}
