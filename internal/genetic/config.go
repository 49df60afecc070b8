package genetic

import "fmt"

// Config holds parameters for the genetic algorithm.
type Config struct {
	PopulationSize int     // Chromosomes per generation
	Generations    int     // Evolutionary iterations
	MutationRate   float64 // Per-bit flip probability
	CrossoverRate  float64 // Probability that crossover runs; otherwise the child copies parent A
	TournamentSize int     // Candidates sampled per selection event
	EliteCount     int     // Top individuals copied unchanged into the next generation
}

// DefaultConfig returns sensible default parameters.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 100,
		Generations:    100,
		MutationRate:   0.01,
		CrossoverRate:  0.9,
		TournamentSize: 4,
		EliteCount:     2,
	}
}

// Validate checks that the configuration has valid values.
func (c Config) Validate() error {
	if c.PopulationSize < 1 {
		return &InvalidInputError{Field: "population_size", Message: "must be at least 1"}
	}
	if c.Generations < 1 {
		return &InvalidInputError{Field: "generations", Message: "must be at least 1"}
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return &InvalidInputError{Field: "mutation_rate", Message: "must be in [0,1]"}
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return &InvalidInputError{Field: "crossover_rate", Message: "must be in [0,1]"}
	}
	if c.TournamentSize < 2 {
		return &InvalidInputError{Field: "tournament_size", Message: "must be at least 2"}
	}
	if c.EliteCount < 0 {
		return &InvalidInputError{Field: "elite_count", Message: "must be non-negative"}
	}
	if c.EliteCount > c.PopulationSize {
		return &InvalidInputError{
			Field:   "elite_count",
			Message: fmt.Sprintf("must not exceed population size %d", c.PopulationSize),
		}
	}
	return nil
}
