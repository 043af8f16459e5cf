// Package config provides run configuration loading for the forest binaries.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"forest-sim/internal/sims/forest"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration parameters.
type Config struct {
	Forest ForestConfig `yaml:"forest"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
	Serve  ServeConfig  `yaml:"serve"`
}

// ForestConfig holds grid dimensions, seeding and tunables.
type ForestConfig struct {
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Seed   *uint64       `yaml:"seed"` // nil = entropy
	Params forest.Params `yaml:"params"`
}

// RunConfig holds pacing for headless and interactive runs.
type RunConfig struct {
	Ticks       int `yaml:"ticks"`        // external ticks for headless runs
	TPS         int `yaml:"tps"`          // external ticks per second for paced runs
	CensusEvery int `yaml:"census_every"` // generations between census records
}

// OutputConfig controls experiment output.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // empty disables file output
	Snapshot bool   `yaml:"snapshot"` // write final.png into Dir
}

// ServeConfig controls the websocket frame server.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Forest.Width <= 0 || c.Forest.Height <= 0 {
		return fmt.Errorf("config: forest size %dx%d must be positive", c.Forest.Width, c.Forest.Height)
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("config: run.ticks %d must not be negative", c.Run.Ticks)
	}
	if c.Run.CensusEvery <= 0 {
		c.Run.CensusEvery = 1
	}
	if c.Run.TPS <= 0 {
		c.Run.TPS = 60
	}
	return nil
}

// EngineConfig converts the run configuration into engine options.
func (c *Config) EngineConfig() forest.Config {
	fc := forest.DefaultConfig()
	fc.Width = c.Forest.Width
	fc.Height = c.Forest.Height
	fc.Params = c.Forest.Params
	if c.Forest.Seed != nil {
		fc = fc.WithSeed(*c.Forest.Seed)
	}
	return fc
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
