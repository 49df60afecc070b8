// Package main provides the entry point for the knapsack solver service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "knapsackd",
	Short: "Genetic-algorithm 0/1 knapsack solver",
	Long:  "knapsackd solves 0/1 knapsack instances with a genetic algorithm, either as a one-shot CLI or as a REST API server.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
