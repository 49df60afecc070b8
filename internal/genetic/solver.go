package genetic

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/jonathan/knapsack-solver/internal/types"
)

// Solution is the best chromosome found by a solve, decoded into the
// selected items. The returned selection is always feasible: its total
// weight never exceeds the requested capacity.
type Solution struct {
	SelectedItems []types.Item
	TotalValue    int
	TotalWeight   int

	// BestFitnessByGeneration holds the best fitness observed up to
	// and including each generation. Non-decreasing by construction.
	BestFitnessByGeneration []int
}

// Solver runs the genetic algorithm. Each solve constructs a fresh
// population and carries no state to the next call; independent
// solvers may run concurrently without synchronization. A Solver is
// not safe for concurrent use because it owns its random source.
type Solver struct {
	config Config
	rng    *rand.Rand
}

// NewSolver creates a solver with the given configuration and random
// seed. The same seed and input produce bit-identical populations at
// every generation.
func NewSolver(config Config, seed int64) (*Solver, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Solver{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Solve runs the full optimization lifecycle over the given items and
// capacity and returns the best selection found. Inputs with negative
// weights, values, or capacity are rejected with InvalidInputError
// before any population work. An empty item list short-circuits to the
// trivial empty solution without running any generations. The context
// is checked once per generation.
func (s *Solver) Solve(ctx context.Context, items []types.Item, maxWeight int) (*Solution, error) {
	if err := validateInput(items, maxWeight); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return emptySolution(), nil
	}

	population := s.initPopulation(len(items))

	var best *chromosome
	for _, c := range population {
		evaluate(c, items, maxWeight)
		// Strict greater-than: the first-seen of equal fitness wins.
		if best == nil || c.fitness > best.fitness {
			best = c.clone()
		}
	}

	trace := make([]int, 0, s.config.Generations)
	for gen := 0; gen < s.config.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Stable sort keeps first-seen order among equal fitness, so
		// elite picks are reproducible under a fixed seed.
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		nextGen := make([]*chromosome, 0, s.config.PopulationSize)
		for i := 0; i < s.config.EliteCount && i < len(population); i++ {
			nextGen = append(nextGen, population[i].clone())
		}

		for len(nextGen) < s.config.PopulationSize {
			parent1 := s.tournamentSelect(population)
			parent2 := s.tournamentSelect(population)

			child := s.crossover(parent1, parent2)
			s.mutate(child)
			evaluate(child, items, maxWeight)

			if child.fitness > best.fitness {
				best = child.clone()
			}
			nextGen = append(nextGen, child)
		}

		population = nextGen
		trace = append(trace, best.fitness)
	}

	return decode(best, items, maxWeight, trace), nil
}

// validateInput rejects negative weights, values, and capacity. The
// input is never clamped.
func validateInput(items []types.Item, maxWeight int) error {
	if maxWeight < 0 {
		return &InvalidInputError{Field: "max_weight", Message: "must be non-negative"}
	}
	for i, item := range items {
		if item.Weight < 0 {
			return &InvalidInputError{Field: "items", Message: fmt.Sprintf("item %d has negative weight", i)}
		}
		if item.Value < 0 {
			return &InvalidInputError{Field: "items", Message: fmt.Sprintf("item %d has negative value", i)}
		}
	}
	return nil
}

// initPopulation creates the initial random population. Each bit is
// set with uniform 50/50 probability.
func (s *Solver) initPopulation(itemCount int) []*chromosome {
	population := make([]*chromosome, s.config.PopulationSize)
	for i := range population {
		bits := make([]bool, itemCount)
		for j := range bits {
			bits[j] = s.rng.Intn(2) == 1
		}
		population[i] = &chromosome{bits: bits}
	}
	return population
}

// tournamentSelect samples TournamentSize chromosomes uniformly at
// random with replacement and returns the fittest. Ties resolve to
// whichever candidate was drawn first.
func (s *Solver) tournamentSelect(population []*chromosome) *chromosome {
	best := population[s.rng.Intn(len(population))]
	for i := 1; i < s.config.TournamentSize; i++ {
		candidate := population[s.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return best
}

// crossover produces one child by single-point crossover: bits before
// the cut come from parent1, the rest from parent2. For chromosomes of
// length <= 1, or when the crossover-rate coin flip fails, the child
// is a plain copy of parent1.
func (s *Solver) crossover(parent1, parent2 *chromosome) *chromosome {
	n := len(parent1.bits)
	child := &chromosome{bits: make([]bool, n)}
	if n <= 1 || s.rng.Float64() >= s.config.CrossoverRate {
		copy(child.bits, parent1.bits)
		return child
	}
	cut := 1 + s.rng.Intn(n-1)
	copy(child.bits[:cut], parent1.bits[:cut])
	copy(child.bits[cut:], parent2.bits[cut:])
	return child
}

// mutate flips each bit independently with probability MutationRate.
func (s *Solver) mutate(c *chromosome) {
	for i := range c.bits {
		if s.rng.Float64() < s.config.MutationRate {
			c.bits[i] = !c.bits[i]
		}
	}
}

// decode converts the running-best chromosome into a Solution. Totals
// are re-derived from the bit pattern rather than trusting the cached
// figures. If the re-derived weight exceeds the capacity (possible
// only when every chromosome ever evaluated was infeasible, e.g. at
// zero capacity with no feasible sample) the empty solution is
// reported instead.
func decode(best *chromosome, items []types.Item, maxWeight int, trace []int) *Solution {
	selected := make([]types.Item, 0)
	weight, value := 0, 0
	for i, bit := range best.bits {
		if bit {
			selected = append(selected, items[i])
			weight += items[i].Weight
			value += items[i].Value
		}
	}
	if weight > maxWeight {
		sol := emptySolution()
		sol.BestFitnessByGeneration = trace
		return sol
	}
	return &Solution{
		SelectedItems:           selected,
		TotalValue:              value,
		TotalWeight:             weight,
		BestFitnessByGeneration: trace,
	}
}

func emptySolution() *Solution {
	return &Solution{SelectedItems: []types.Item{}}
}
