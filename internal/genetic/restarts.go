package genetic

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/knapsack-solver/internal/types"
)

// SolveWithRestarts runs the given number of independent solves in
// parallel, each with its own solver seeded from seed+i, and returns
// the result with the highest total value. Each solve owns its
// population exclusively, so no synchronization is needed beyond
// collecting results.
func SolveWithRestarts(ctx context.Context, config Config, seed int64, restarts int, items []types.Item, maxWeight int) (*Solution, error) {
	if restarts < 1 {
		restarts = 1
	}
	if restarts == 1 {
		solver, err := NewSolver(config, seed)
		if err != nil {
			return nil, err
		}
		return solver.Solve(ctx, items, maxWeight)
	}

	results := make([]*Solution, restarts)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < restarts; i++ {
		g.Go(func() error {
			solver, err := NewSolver(config, seed+int64(i))
			if err != nil {
				return err
			}
			sol, err := solver.Solve(gctx, items, maxWeight)
			if err != nil {
				return err
			}
			results[i] = sol
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := results[0]
	for _, sol := range results[1:] {
		if sol.TotalValue > best.TotalValue {
			best = sol
		}
	}
	return best, nil
}
