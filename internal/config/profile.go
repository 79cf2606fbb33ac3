package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the YAML form of the reusable settings. Unset keys leave the
// current value alone.
type Profile struct {
	WordsPerMinute *uint64  `yaml:"words_per_minute"`
	WordLength     *float64 `yaml:"word_length"`
	Policy         string   `yaml:"policy"`
	LogLevel       string   `yaml:"log_level"`
	LogFile        string   `yaml:"log_file"`
}

// LoadProfile reads a YAML profile. Unknown keys are an error.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: profile %s: %w", ErrInvalid, path, err)
	}
	return &p, nil
}

func (p *Profile) Apply(c *Config) {
	if p.WordsPerMinute != nil {
		c.WordsPerMinute = *p.WordsPerMinute
	}
	if p.WordLength != nil {
		c.AverageWordLength = *p.WordLength
	}
	if p.Policy != "" {
		c.Policy = p.Policy
	}
	if p.LogLevel != "" {
		c.LogLevel = p.LogLevel
	}
	if p.LogFile != "" {
		c.LogFile = p.LogFile
	}
}
