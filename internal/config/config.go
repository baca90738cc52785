// Package config loads the YAML configuration of the micrograd CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration.
type Config struct {
	// Scenario: inputs of the reference neuron o = tanh(x1*w1 + x2*w2 + b)
	Scenario ScenarioConfig `yaml:"scenario"`

	// Backward: traversal settings
	Backward BackwardConfig `yaml:"backward"`

	// Log: CLI logging
	Log LogConfig `yaml:"log"`
}

type ScenarioConfig struct {
	X1   float64 `yaml:"x1"`
	X2   float64 `yaml:"x2"`
	W1   float64 `yaml:"w1"`
	W2   float64 `yaml:"w2"`
	B    float64 `yaml:"b"`
	Seed float64 `yaml:"seed" validate:"ne=0"` // root gradient, usually 1
}

type BackwardConfig struct {
	// Mode is "topological" or "recursive"
	Mode   string `yaml:"mode" validate:"oneof=topological recursive"`
	Render bool   `yaml:"render"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the reference scenario.
func Default() Config {
	return Config{
		Scenario: ScenarioConfig{
			X1:   2.0,
			X2:   0.0,
			W1:   -3.0,
			W2:   1.0,
			B:    6.8814,
			Seed: 1.0,
		},
		Backward: BackwardConfig{
			Mode:   "topological",
			Render: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
