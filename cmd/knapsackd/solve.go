package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/knapsack-solver/internal/config"
	"github.com/jonathan/knapsack-solver/internal/genetic"
	"github.com/jonathan/knapsack-solver/internal/observability"
	"github.com/jonathan/knapsack-solver/internal/schemas"
	"github.com/jonathan/knapsack-solver/internal/types"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a 0/1 knapsack instance from a JSON file",
	Long: `Solve a 0/1 knapsack instance described by a JSON problem file.

The problem file holds the items, the capacity, and optional solver
parameter overrides. It is validated against the solve request schema
before solving. The result is written as JSON to stdout or --out.`,
	RunE: runSolve,
}

var (
	solveInputFile  string
	solveOutputFile string
	solveConfigPath string
	solveSeed       int64
	solveRestarts   int
	solveVerbose    bool
)

func init() {
	solveCmd.Flags().StringVarP(&solveInputFile, "in", "i", "", "Path to problem JSON file (required)")
	solveCmd.Flags().StringVarP(&solveOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	solveCmd.Flags().StringVar(&solveConfigPath, "config", "", "Path to config.json with solver defaults")
	solveCmd.Flags().Int64Var(&solveSeed, "seed", 0, "Random seed for reproducible runs (overrides problem file)")
	solveCmd.Flags().IntVar(&solveRestarts, "restarts", 0, "Independent parallel solves, keeping the best (overrides problem file)")
	solveCmd.Flags().BoolVarP(&solveVerbose, "verbose", "v", false, "Print a formatted solve report to stderr")

	_ = solveCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	// Validate the problem file against the schema before decoding. A
	// missing schema file is a warning, not an error: the struct-level
	// validation below still runs.
	schemaPath := schemas.ResolveSchemaPath(schemas.RequestSchemaPath)
	if schemaPath != "" {
		if err := schemas.ValidateFile(schemaPath, solveInputFile); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				return fmt.Errorf("problem file does not validate against schema: %w", err)
			}
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate problem file against schema: %v\n", err)
		}
	}

	data, err := os.ReadFile(solveInputFile)
	if err != nil {
		return fmt.Errorf("failed to read problem file: %w", err)
	}

	var req types.SolveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse problem JSON: %w", err)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid problem: %w", err)
	}

	defaults := genetic.DefaultConfig()
	if solveConfigPath != "" {
		loaded, err := config.LoadConfig(solveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		defaults = loaded.Genetic()
	}
	gaConfig := applyRequestOverrides(defaults, &req)

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	if cmd.Flags().Changed("seed") {
		seed = solveSeed
	}

	restarts := req.Restarts
	if cmd.Flags().Changed("restarts") {
		restarts = solveRestarts
	}
	if restarts < 1 {
		restarts = 1
	}

	solution, err := genetic.SolveWithRestarts(context.Background(), gaConfig, seed, restarts, req.Items, req.MaxWeight)
	if err != nil {
		return err
	}

	if solveVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintProblem(req.Items, req.MaxWeight)
		printer.PrintSolution(solution, req.MaxWeight)
		printer.PrintFitnessTrace(solution.BestFitnessByGeneration)
	}

	resp := types.SolveResponse{
		SelectedItems:           solution.SelectedItems,
		TotalValue:              solution.TotalValue,
		TotalWeight:             solution.TotalWeight,
		BestFitnessByGeneration: solution.BestFitnessByGeneration,
	}

	jsonBytes, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if solveOutputFile == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(solveOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", solveOutputFile)

	return nil
}

// applyRequestOverrides layers the request's optional solver parameters
// over the configured defaults.
func applyRequestOverrides(defaults genetic.Config, req *types.SolveRequest) genetic.Config {
	out := defaults
	if req.PopulationSize > 0 {
		out.PopulationSize = req.PopulationSize
	}
	if req.Generations > 0 {
		out.Generations = req.Generations
	}
	if req.MutationRate > 0 {
		out.MutationRate = req.MutationRate
	}
	if req.CrossoverRate > 0 {
		out.CrossoverRate = req.CrossoverRate
	}
	if req.TournamentSize > 0 {
		out.TournamentSize = req.TournamentSize
	}
	if req.EliteCount > 0 {
		out.EliteCount = req.EliteCount
	}
	return out
}
