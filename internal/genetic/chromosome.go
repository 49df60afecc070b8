package genetic

import "github.com/jonathan/knapsack-solver/internal/types"

// chromosome is a candidate solution: a fixed-length bit vector over
// the problem's items, where bits[i] set means item i is included.
// weight, value, and fitness are caches; evaluate refreshes them and
// must be called after any change to bits.
type chromosome struct {
	bits    []bool
	weight  int
	value   int
	fitness int
}

// evaluate re-derives weight, value, and fitness from the bit pattern.
// An overweight chromosome scores zero, so any feasible chromosome
// dominates every infeasible one. The empty chromosome is always
// feasible and sets the fitness floor at zero.
func evaluate(c *chromosome, items []types.Item, maxWeight int) {
	weight, value := 0, 0
	for i, bit := range c.bits {
		if bit {
			weight += items[i].Weight
			value += items[i].Value
		}
	}
	c.weight = weight
	c.value = value
	if weight <= maxWeight {
		c.fitness = value
	} else {
		c.fitness = 0
	}
}

// clone creates a deep copy of a chromosome.
func (c *chromosome) clone() *chromosome {
	bits := make([]bool, len(c.bits))
	copy(bits, c.bits)
	return &chromosome{bits: bits, weight: c.weight, value: c.value, fitness: c.fitness}
}
