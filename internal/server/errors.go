// Package server provides the HTTP REST API for the knapsack solver.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/knapsack-solver/internal/genetic"
)

// ErrRunHistoryDisabled indicates the run-history endpoints were called
// without a configured database.
type ErrRunHistoryDisabled struct{}

func (e *ErrRunHistoryDisabled) Error() string {
	return "run history is not enabled"
}

// ErrRunNotFound indicates a solve run was not found
type ErrRunNotFound struct {
	ID string
}

func (e *ErrRunNotFound) Error() string {
	return "solve run not found: " + e.ID
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalid *genetic.InvalidInputError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return http.StatusBadRequest
	}
	var notFound *ErrRunNotFound
	if errors.As(err, &notFound) || errors.Is(err, pgx.ErrNoRows) {
		return http.StatusNotFound
	}
	var disabled *ErrRunHistoryDisabled
	if errors.As(err, &disabled) {
		return http.StatusNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 499 // Client closed request
	}
	return http.StatusInternalServerError
}
