// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SimConfig holds the world construction parameters.
type SimConfig struct {
	Agents         int   `yaml:"agents"`          // number of agents created at initialization
	GridWidth      int   `yaml:"grid_width"`      // toroidal grid width in cells
	GridHeight     int   `yaml:"grid_height"`     // toroidal grid height in cells
	Resources      int   `yaml:"resources"`       // number of resources scattered on the grid
	InitialEnergy  int   `yaml:"initial_energy"`  // starting energy per agent
	ResourceEnergy int   `yaml:"resource_energy"` // energy credited per consumed resource
	Seed           int64 `yaml:"seed"`            // RNG seed (0 = time-based, non-reproducible)
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	PerAgent bool `yaml:"per_agent"` // collect a per-agent record every tick
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
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// Validate rejects parameter combinations the simulation cannot be built
// from. Invalid values are reported, never silently clamped.
func (s SimConfig) Validate() error {
	if s.GridWidth <= 0 || s.GridHeight <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d", s.GridWidth, s.GridHeight)
	}
	if s.Agents <= 0 {
		return fmt.Errorf("config: agent count must be positive, got %d", s.Agents)
	}
	if s.Resources < 0 {
		return fmt.Errorf("config: resource count must be non-negative, got %d", s.Resources)
	}
	if s.InitialEnergy <= 0 {
		return fmt.Errorf("config: initial energy must be positive, got %d", s.InitialEnergy)
	}
	if s.ResourceEnergy <= 0 {
		return fmt.Errorf("config: resource energy value must be positive, got %d", s.ResourceEnergy)
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	return c.Sim.Validate()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
