// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/knapsack-solver/internal/genetic"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run history (optional)

	// Genetic algorithm defaults, applied when a request carries no override
	PopulationSize int     `json:"population_size,omitempty"` // Chromosomes per generation
	Generations    int     `json:"generations,omitempty"`     // Evolutionary iterations
	MutationRate   float64 `json:"mutation_rate,omitempty"`   // Per-bit flip probability (0.0-1.0)
	CrossoverRate  float64 `json:"crossover_rate,omitempty"`  // Crossover probability (0.0-1.0)
	TournamentSize int     `json:"tournament_size,omitempty"` // Candidates per selection tournament
	EliteCount     int     `json:"elite_count,omitempty"`     // Individuals carried over unchanged

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed solve reports
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	if c.PopulationSize < 0 {
		return fmt.Errorf("config error: 'population_size' must be non-negative")
	}
	if c.Generations < 0 {
		return fmt.Errorf("config error: 'generations' must be non-negative")
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("config error: 'mutation_rate' must be between 0 and 1")
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("config error: 'crossover_rate' must be between 0 and 1")
	}
	if c.TournamentSize != 0 && c.TournamentSize < 2 {
		return fmt.Errorf("config error: 'tournament_size' must be at least 2")
	}
	if c.EliteCount < 0 {
		return fmt.Errorf("config error: 'elite_count' must be non-negative")
	}
	return nil
}

// Genetic converts the configured genetic-algorithm fields into a
// solver configuration, falling back to the solver defaults for any
// unset (zero) field. EliteCount cannot distinguish unset from an
// explicit zero; use the solver API directly if elitism must be
// disabled entirely.
func (c *Config) Genetic() genetic.Config {
	out := genetic.DefaultConfig()
	if c.PopulationSize > 0 {
		out.PopulationSize = c.PopulationSize
	}
	if c.Generations > 0 {
		out.Generations = c.Generations
	}
	if c.MutationRate > 0 {
		out.MutationRate = c.MutationRate
	}
	if c.CrossoverRate > 0 {
		out.CrossoverRate = c.CrossoverRate
	}
	if c.TournamentSize > 0 {
		out.TournamentSize = c.TournamentSize
	}
	if c.EliteCount > 0 {
		out.EliteCount = c.EliteCount
	}
	return out
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.PopulationSize == 0 {
		result.PopulationSize = defaults.PopulationSize
	}
	if result.Generations == 0 {
		result.Generations = defaults.Generations
	}
	if result.MutationRate == 0 {
		result.MutationRate = defaults.MutationRate
	}
	if result.CrossoverRate == 0 {
		result.CrossoverRate = defaults.CrossoverRate
	}
	if result.TournamentSize == 0 {
		result.TournamentSize = defaults.TournamentSize
	}
	if result.EliteCount == 0 {
		result.EliteCount = defaults.EliteCount
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
