package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML form of Config. Nil fields leave the current value alone.
type Profile struct {
	Seed           *uint64        `yaml:"seed"`
	SecureRandom   *bool          `yaml:"secure_random"`
	RevealDuration *time.Duration `yaml:"reveal_duration"`
	RevealInterval *time.Duration `yaml:"reveal_interval"`
	SpinMinTurns   *int           `yaml:"spin_min_turns"`
	SpinMaxTurns   *int           `yaml:"spin_max_turns"`
	GroupLabel     *string        `yaml:"group_label"`
	Placeholder    *string        `yaml:"placeholder"`
	ExportDir      *string        `yaml:"export_dir"`
}

// LoadProfile reads a YAML profile. Unknown keys are rejected and an empty
// file yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(b)
}

// ParseProfile decodes a YAML profile from b.
func ParseProfile(b []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// Apply copies every field set in p onto c.
func (p *Profile) Apply(c *Config) {
	if p.Seed != nil {
		c.Seed = *p.Seed
	}
	if p.SecureRandom != nil {
		c.SecureRandom = *p.SecureRandom
	}
	if p.RevealDuration != nil {
		c.RevealDuration = *p.RevealDuration
	}
	if p.RevealInterval != nil {
		c.RevealInterval = *p.RevealInterval
	}
	if p.SpinMinTurns != nil {
		c.SpinMinTurns = *p.SpinMinTurns
	}
	if p.SpinMaxTurns != nil {
		c.SpinMaxTurns = *p.SpinMaxTurns
	}
	if p.GroupLabel != nil {
		c.GroupLabel = *p.GroupLabel
	}
	if p.Placeholder != nil {
		c.Placeholder = *p.Placeholder
	}
	if p.ExportDir != nil {
		c.ExportDir = *p.ExportDir
	}
}
