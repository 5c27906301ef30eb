// Package config handles application configuration from CLI flags, environment
// variables and an optional YAML profile.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"go.uber.org/multierr"
)

// Config holds all application configuration.
type Config struct {
	// Seed makes every draw reproducible. Zero means seed from the clock.
	Seed uint64

	// SecureRandom switches the random source to the OS CSPRNG.
	SecureRandom bool

	// RevealDuration is how long the suspense animation runs before the result.
	RevealDuration time.Duration

	// RevealInterval is the delay between two teaser frames.
	RevealInterval time.Duration

	// SpinMinTurns and SpinMaxTurns bound the full turns added by a wheel spin.
	SpinMinTurns int
	SpinMaxTurns int

	// GroupLabel prefixes team names: "<GroupLabel> 1", "<GroupLabel> 2".
	GroupLabel string

	// Placeholder is the text of comments that carry only an author.
	Placeholder string

	// ExportDir, when set, receives a text report of every draw.
	ExportDir string

	// ProfilePath points at an optional YAML profile.
	ProfilePath string

	// Debug enables the development logger.
	Debug bool
}

// Default values.
const (
	DefaultSeed           = 0
	DefaultRevealDuration = 1500 * time.Millisecond
	DefaultRevealInterval = 100 * time.Millisecond
	DefaultSpinMinTurns   = 5
	DefaultSpinMaxTurns   = 10
	DefaultGroupLabel     = "Group"
	DefaultPlaceholder    = "(no text)"
)

const envPrefix = "SORTEIO_"

// Load parses the global flags in args and returns the configuration together
// with the arguments left after the flags. Values are layered as defaults,
// then the YAML profile, then SORTEIO_* environment variables, then flags
// that were set explicitly.
func Load(args []string) (*Config, []string, error) {
	return load(args, io.Discard)
}

// LoadOutput is Load with flag usage and parse errors written to w.
func LoadOutput(args []string, w io.Writer) (*Config, []string, error) {
	return load(args, w)
}

func load(args []string, w io.Writer) (*Config, []string, error) {
	fromFlags := defaults()

	fs := flag.NewFlagSet("sorteio", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Uint64Var(&fromFlags.Seed, "seed", DefaultSeed,
		"Seed for reproducible draws, 0 seeds from the clock (env: SORTEIO_SEED)")
	fs.BoolVar(&fromFlags.SecureRandom, "secure", false,
		"Use the OS CSPRNG instead of a seeded PCG (env: SORTEIO_SECURE_RANDOM)")
	fs.DurationVar(&fromFlags.RevealDuration, "reveal", DefaultRevealDuration,
		"Suspense animation length, 0 disables it (env: SORTEIO_REVEAL_DURATION)")
	fs.DurationVar(&fromFlags.RevealInterval, "reveal-interval", DefaultRevealInterval,
		"Delay between suspense frames (env: SORTEIO_REVEAL_INTERVAL)")
	fs.IntVar(&fromFlags.SpinMinTurns, "spin-min-turns", DefaultSpinMinTurns,
		"Minimum full turns per wheel spin (env: SORTEIO_SPIN_MIN_TURNS)")
	fs.IntVar(&fromFlags.SpinMaxTurns, "spin-max-turns", DefaultSpinMaxTurns,
		"Maximum full turns per wheel spin (env: SORTEIO_SPIN_MAX_TURNS)")
	fs.StringVar(&fromFlags.GroupLabel, "group-label", DefaultGroupLabel,
		"Team name prefix (env: SORTEIO_GROUP_LABEL)")
	fs.StringVar(&fromFlags.Placeholder, "placeholder", DefaultPlaceholder,
		"Text for comments without one (env: SORTEIO_PLACEHOLDER)")
	fs.StringVar(&fromFlags.ExportDir, "export-dir", "",
		"Directory for text reports (env: SORTEIO_EXPORT_DIR)")
	fs.StringVar(&fromFlags.ProfilePath, "profile", "",
		"YAML profile with default settings (env: SORTEIO_PROFILE)")
	fs.BoolVar(&fromFlags.Debug, "debug", false, "Human-readable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := defaults()

	profilePath := os.Getenv(envPrefix + "PROFILE")
	if set["profile"] {
		profilePath = fromFlags.ProfilePath
	}
	if profilePath != "" {
		p, err := LoadProfile(profilePath)
		if err != nil {
			return nil, nil, err
		}
		p.Apply(cfg)
		cfg.ProfilePath = profilePath
	}

	cfg.applyEnvOverrides()
	cfg.applyFlags(fromFlags, set)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

// LoadWithDefaults returns a Config with default values without parsing flags.
// Useful for testing.
func LoadWithDefaults() *Config {
	cfg := defaults()
	cfg.applyEnvOverrides()
	return cfg
}

func defaults() *Config {
	return &Config{
		Seed:           DefaultSeed,
		RevealDuration: DefaultRevealDuration,
		RevealInterval: DefaultRevealInterval,
		SpinMinTurns:   DefaultSpinMinTurns,
		SpinMaxTurns:   DefaultSpinMaxTurns,
		GroupLabel:     DefaultGroupLabel,
		Placeholder:    DefaultPlaceholder,
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(envPrefix + "SEED"); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = u
		}
	}

	if v := os.Getenv(envPrefix + "SECURE_RANDOM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.SecureRandom = b
		}
	}

	if v := os.Getenv(envPrefix + "REVEAL_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.RevealDuration = d
		}
	}

	if v := os.Getenv(envPrefix + "REVEAL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RevealInterval = d
		}
	}

	if v := os.Getenv(envPrefix + "SPIN_MIN_TURNS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			c.SpinMinTurns = i
		}
	}

	if v := os.Getenv(envPrefix + "SPIN_MAX_TURNS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			c.SpinMaxTurns = i
		}
	}

	if v := os.Getenv(envPrefix + "GROUP_LABEL"); v != "" {
		c.GroupLabel = v
	}

	if v := os.Getenv(envPrefix + "PLACEHOLDER"); v != "" {
		c.Placeholder = v
	}

	if v := os.Getenv(envPrefix + "EXPORT_DIR"); v != "" {
		c.ExportDir = v
	}
}

func (c *Config) applyFlags(from *Config, set map[string]bool) {
	for name := range set {
		switch name {
		case "seed":
			c.Seed = from.Seed
		case "secure":
			c.SecureRandom = from.SecureRandom
		case "reveal":
			c.RevealDuration = from.RevealDuration
		case "reveal-interval":
			c.RevealInterval = from.RevealInterval
		case "spin-min-turns":
			c.SpinMinTurns = from.SpinMinTurns
		case "spin-max-turns":
			c.SpinMaxTurns = from.SpinMaxTurns
		case "group-label":
			c.GroupLabel = from.GroupLabel
		case "placeholder":
			c.Placeholder = from.Placeholder
		case "export-dir":
			c.ExportDir = from.ExportDir
		case "debug":
			c.Debug = from.Debug
		}
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var err error
	if c.RevealDuration < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: reveal duration must not be negative, got %v", ErrInvalidConfig, c.RevealDuration))
	}
	if c.RevealInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: reveal interval must be positive, got %v", ErrInvalidConfig, c.RevealInterval))
	}
	if c.SpinMinTurns < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: spin min turns must not be negative, got %d", ErrInvalidConfig, c.SpinMinTurns))
	}
	if c.SpinMaxTurns < c.SpinMinTurns {
		err = multierr.Append(err, fmt.Errorf("%w: spin max turns %d is below min turns %d", ErrInvalidConfig, c.SpinMaxTurns, c.SpinMinTurns))
	}
	if c.GroupLabel == "" {
		err = multierr.Append(err, fmt.Errorf("%w: group label must not be empty", ErrInvalidConfig))
	}
	if c.SecureRandom && c.Seed != 0 {
		err = multierr.Append(err, fmt.Errorf("%w: seed cannot be combined with secure random", ErrInvalidConfig))
	}
	return err
}
