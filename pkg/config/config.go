// Package config loads po12toolbox settings from an optional TOML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/james-see/po12toolbox/pkg/analysis"
	"github.com/james-see/po12toolbox/pkg/converter"
	"github.com/james-see/po12toolbox/pkg/library"
)

// DefaultFile is read from the working directory when no --config is given
const DefaultFile = "po12toolbox.toml"

// DefaultSimilarLimit caps how many matches `similar` prints
const DefaultSimilarLimit = 10

// Config holds every setting the CLI reads from file
type Config struct {
	PatternsDir string                      `toml:"patterns_dir" validate:"required"`
	MIDI        converter.MIDIExportOptions `toml:"midi"`
	Similarity  Similarity                  `toml:"similarity"`
}

// Similarity configures the similar command
type Similarity struct {
	Threshold float64 `toml:"threshold" validate:"gte=0,lte=1"`
	Limit     int     `toml:"limit" validate:"gte=1"`
	analysis.SimilarityWeights
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in settings
func Default() Config {
	return Config{
		PatternsDir: library.DefaultDir,
		MIDI:        converter.DefaultMIDIExportOptions(),
		Similarity: Similarity{
			Threshold:         analysis.DefaultThreshold,
			Limit:             DefaultSimilarLimit,
			SimilarityWeights: analysis.DefaultWeights(),
		},
	}
}

// Load reads path over the defaults. A missing file is an error only when
// the path was given explicitly.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML into cfg, keeping values the document does not set,
// and validates the result
func Decode(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the settings against their struct constraints
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Encode renders the config as TOML
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
