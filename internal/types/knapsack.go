// Package types provides type definitions for structured data used throughout the knapsack solver service.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Item is a single knapsack candidate. Identity is positional: names
// are labels only and need not be unique.
type Item struct {
	Name   string `json:"name"`
	Weight int    `json:"weight" validate:"gte=0"`
	Value  int    `json:"value" validate:"gte=0"`
}

// SolveRequest represents a solve request at the HTTP/CLI boundary.
// All genetic-algorithm fields are optional overrides; zero values fall
// back to the solver defaults. An empty items list is valid and yields
// the trivial empty solution.
type SolveRequest struct {
	MaxWeight int    `json:"max_weight" validate:"gte=0"`
	Items     []Item `json:"items" validate:"dive"`

	// Optional genetic-algorithm overrides.
	PopulationSize int     `json:"population_size,omitempty" validate:"omitempty,gte=1"`
	Generations    int     `json:"generations,omitempty" validate:"omitempty,gte=1"`
	MutationRate   float64 `json:"mutation_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	CrossoverRate  float64 `json:"crossover_rate,omitempty" validate:"omitempty,gte=0,lte=1"`
	TournamentSize int     `json:"tournament_size,omitempty" validate:"omitempty,gte=2"`
	EliteCount     int     `json:"elite_count,omitempty" validate:"omitempty,gte=0"`

	// Seed fixes the random source for reproducible runs. When nil the
	// server picks a time-based seed.
	Seed *int64 `json:"seed,omitempty"`

	// Restarts runs this many independent solves in parallel and keeps
	// the best result.
	Restarts int `json:"restarts,omitempty" validate:"omitempty,gte=1"`
}

// SolveResponse represents the solve result at the HTTP/CLI boundary.
// TotalValue and TotalWeight are always re-derived from SelectedItems.
type SolveResponse struct {
	SelectedItems []Item `json:"selected_items"`
	TotalValue    int    `json:"total_value"`
	TotalWeight   int    `json:"total_weight"`

	// BestFitnessByGeneration records the best fitness observed up to
	// and including each generation. Non-decreasing by construction.
	BestFitnessByGeneration []int `json:"best_fitness_by_generation,omitempty"`
}

// Validate validates the SolveRequest using the validator.
func (r *SolveRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
