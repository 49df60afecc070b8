// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/knapsack-solver/internal/genetic"
	"github.com/jonathan/knapsack-solver/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProblem outputs a human-readable summary of the problem instance.
func (p *Printer) PrintProblem(items []types.Item, maxWeight int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Capacity: %d\n", maxWeight))
	sb.WriteString(fmt.Sprintf("Items:    %d\n", len(items)))

	if len(items) > 0 {
		sb.WriteString("\n")
		count := min(len(items), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := items[i]
			name := item.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s (w=%d, v=%d)\n", name, item.Weight, item.Value))
		}
		if len(items) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
		}
	}

	p.printBox("PROBLEM INSTANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSolution outputs the best solution found, with selected items and totals.
func (p *Printer) PrintSolution(solution *genetic.Solution, maxWeight int) {
	if solution == nil {
		return
	}

	var sb strings.Builder

	if len(solution.SelectedItems) == 0 {
		sb.WriteString("No feasible selection found.\n\n")
	} else {
		sb.WriteString(fmt.Sprintf("Selected %d items:\n\n", len(solution.SelectedItems)))
		count := min(len(solution.SelectedItems), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := solution.SelectedItems[i]
			name := item.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s (w=%d, v=%d)\n", name, item.Weight, item.Value))
		}
		if len(solution.SelectedItems) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(solution.SelectedItems)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Total value:  %d\n", solution.TotalValue))
	sb.WriteString(fmt.Sprintf("Total weight: %d / %d", solution.TotalWeight, maxWeight))

	p.printBox("BEST SOLUTION", sb.String())
}

// PrintFitnessTrace outputs a summary of how the best fitness evolved
// across generations.
func (p *Printer) PrintFitnessTrace(trace []int) {
	if len(trace) == 0 {
		return
	}

	var sb strings.Builder

	first := trace[0]
	last := trace[len(trace)-1]
	sb.WriteString(fmt.Sprintf("Generations: %d\n", len(trace)))
	sb.WriteString(fmt.Sprintf("First best:  %d\n", first))
	sb.WriteString(fmt.Sprintf("Final best:  %d\n", last))
	sb.WriteString(fmt.Sprintf("Improvement: %d\n", last-first))

	// Generation at which the final best was first reached
	converged := 0
	for i, f := range trace {
		if f == last {
			converged = i
			break
		}
	}
	sb.WriteString(fmt.Sprintf("Converged at generation %d", converged))

	p.printBox("FITNESS EVOLUTION", sb.String())
}
