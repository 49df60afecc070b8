package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/knapsack-solver/internal/config"
	"github.com/jonathan/knapsack-solver/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for solving knapsack instances.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT env var)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json with server and solver defaults")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = *loaded
	}

	// Precedence: flag > config file > environment > default.
	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = servePort
	}
	if port == 0 {
		if env := os.Getenv("PORT"); env != "" {
			parsed, err := strconv.Atoi(env)
			if err != nil {
				return fmt.Errorf("invalid PORT environment variable: %w", err)
			}
			port = parsed
		}
	}
	if port == 0 {
		port = 8080
	}

	// Run history is optional; the server works without a database.
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: databaseURL,
		Defaults:    cfg.Genetic(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
