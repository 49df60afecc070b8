// Package store provides PostgreSQL persistence for solve-run history.
// The solver itself is stateless; the store is an optional audit log of
// requests and results, enabled only when a database URL is configured.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/knapsack-solver/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// SolveRun is one recorded solve invocation.
type SolveRun struct {
	ID        uuid.UUID            `json:"id"`
	Status    string               `json:"status"`
	Request   types.SolveRequest   `json:"request"`
	Response  *types.SolveResponse `json:"response,omitempty"`
	Error     string               `json:"error,omitempty"`
	Duration  time.Duration        `json:"duration_ns,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// Connect establishes a connection pool to the database and ensures
// the solve_runs table exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS solve_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			status TEXT NOT NULL,
			request JSONB NOT NULL,
			response JSONB,
			error TEXT,
			duration_ns BIGINT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create solve_runs table: %w", err)
	}
	return nil
}

// CreateSolveRun records a new solve run and returns its ID.
func (s *Store) CreateSolveRun(ctx context.Context, req *types.SolveRequest) (uuid.UUID, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var id uuid.UUID
	err = s.pool.QueryRow(ctx,
		`INSERT INTO solve_runs (status, request) VALUES ('running', $1) RETURNING id`,
		reqJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create solve run: %w", err)
	}
	return id, nil
}

// CompleteSolveRun stores the result of a finished solve run.
func (s *Store) CompleteSolveRun(ctx context.Context, runID uuid.UUID, resp *types.SolveResponse, duration time.Duration) error {
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`UPDATE solve_runs SET status = 'completed', response = $1, duration_ns = $2 WHERE id = $3`,
		respJSON, duration.Nanoseconds(), runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete solve run: %w", err)
	}
	return nil
}

// FailSolveRun marks a solve run as failed with the given message.
func (s *Store) FailSolveRun(ctx context.Context, runID uuid.UUID, message string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE solve_runs SET status = 'failed', error = $1 WHERE id = $2`,
		message, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark solve run failed: %w", err)
	}
	return nil
}

// GetSolveRun fetches one solve run by ID. Returns pgx.ErrNoRows if it
// does not exist.
func (s *Store) GetSolveRun(ctx context.Context, runID uuid.UUID) (*SolveRun, error) {
	var (
		run      SolveRun
		reqJSON  []byte
		respJSON []byte
		errMsg   *string
		duration *int64
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, request, response, error, duration_ns, created_at
		 FROM solve_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Status, &reqJSON, &respJSON, &errMsg, &duration, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get solve run: %w", err)
	}

	if err := json.Unmarshal(reqJSON, &run.Request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal request: %w", err)
	}
	if respJSON != nil {
		run.Response = &types.SolveResponse{}
		if err := json.Unmarshal(respJSON, run.Response); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	if errMsg != nil {
		run.Error = *errMsg
	}
	if duration != nil {
		run.Duration = time.Duration(*duration)
	}
	return &run, nil
}

// ListSolveRuns returns the most recent solve runs, newest first.
func (s *Store) ListSolveRuns(ctx context.Context, limit int) ([]*SolveRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, request, response, error, duration_ns, created_at
		 FROM solve_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list solve runs: %w", err)
	}
	defer rows.Close()

	var runs []*SolveRun
	for rows.Next() {
		var (
			run      SolveRun
			reqJSON  []byte
			respJSON []byte
			errMsg   *string
			duration *int64
		)
		if err := rows.Scan(&run.ID, &run.Status, &reqJSON, &respJSON, &errMsg, &duration, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan solve run: %w", err)
		}
		if err := json.Unmarshal(reqJSON, &run.Request); err != nil {
			return nil, fmt.Errorf("failed to unmarshal request: %w", err)
		}
		if respJSON != nil {
			run.Response = &types.SolveResponse{}
			if err := json.Unmarshal(respJSON, run.Response); err != nil {
				return nil, fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}
		if errMsg != nil {
			run.Error = *errMsg
		}
		if duration != nil {
			run.Duration = time.Duration(*duration)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
