// Package genetic implements a genetic-algorithm solver for the 0/1 knapsack problem.
package genetic

import "fmt"

// InvalidInputError reports a problem instance or configuration that
// violates the input contract (negative weight, value, or capacity,
// or out-of-range algorithm parameters). The solver fails fast before
// any population work begins.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s - %s", e.Field, e.Message)
}
