// config.go: optional runner configuration.
//
// A w.yaml next to the script (or passed explicitly) tunes the guards and the
// scratch directory:
//
//	max_iterations: 1000
//	max_call_depth: 64
//	scratch_dir: /tmp/w-scratch
//
// Unknown keys are rejected so typos fail loudly. Everything has a default;
// the file is optional.
package wlang

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default guard values. The iteration cap matches the original interpreter's
// safety limit for while loops.
const (
	DefaultMaxIterations = 1000
	DefaultMaxCallDepth  = 64
)

// Config carries the runner options.
type Config struct {
	MaxIterations int    `yaml:"max_iterations"`
	MaxCallDepth  int    `yaml:"max_call_depth"`
	ScratchDir    string `yaml:"scratch_dir"`
}

// DefaultConfig returns the zero-configuration defaults: original-compatible
// iteration cap, a modest call-depth guard, and the OS temp directory.
func DefaultConfig() *Config {
	return &Config{
		MaxIterations: DefaultMaxIterations,
		MaxCallDepth:  DefaultMaxCallDepth,
	}
}

// LoadConfig reads a w.yaml file. Missing fields fall back to defaults;
// unknown fields are an error.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.MaxCallDepth <= 0 {
		c.MaxCallDepth = DefaultMaxCallDepth
	}
}
