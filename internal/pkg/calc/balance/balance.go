// Package balance spreads single-phase loads across two or three phases
// with the longest-processing-time-first greedy heuristic.
package balance

import (
	"math"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// Phase count bounds.
const (
	MinPhases     = 2
	MaxPhases     = 3
	DefaultPhases = 3
)

// Input to Balance. Loads are in kW.
type Input struct {
	Loads  []float64
	Phases int
}

// Bin accumulates the loads assigned to one phase.
type Bin struct {
	Total float64   `json:"Total"`
	Loads []float64 `json:"Loads"`
}

// Result holds the bins in their final order and the estimated imbalance,
// half the spread between the heaviest and lightest phase.
type Result struct {
	Bins      []Bin
	Imbalance float64
	Advisory  calc.Advisory
}

// PhaseCount turns a parsed phase field into a usable count: zero or NaN
// means the default, anything else is clamped to [MinPhases, MaxPhases].
func PhaseCount(n float64) int {
	if n == 0 || math.IsNaN(n) {
		n = DefaultPhases
	}
	return int(math.Min(MaxPhases, math.Max(MinPhases, n)))
}

// Balance assigns each load, largest first, to the least loaded phase.
func Balance(in Input) Result {
	if len(in.Loads) == 0 {
		return Result{Advisory: calc.MissingInput}
	}

	loads := append([]float64(nil), in.Loads...)
	slices.SortStableFunc(loads, func(a, b float64) int { return compare(b, a) })

	bins := make([]Bin, PhaseCount(float64(in.Phases)))
	for i := range bins {
		bins[i].Loads = make([]float64, 0)
	}
	for _, kw := range loads {
		slices.SortStableFunc(bins, func(a, b Bin) int { return compare(a.Total, b.Total) })
		bins[0].Total += kw
		bins[0].Loads = append(bins[0].Loads, kw)
	}

	max, min := math.Inf(-1), math.Inf(1)
	for _, b := range bins {
		max = math.Max(max, b.Total)
		min = math.Min(min, b.Total)
	}
	return Result{Bins: bins, Imbalance: (max - min) / 2}
}

func compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter at least one load."
	}
	var b strings.Builder
	for i, bin := range r.Bins {
		b.WriteString("Phase " + calc.Number(float64(i+1)) + ": " + calc.Fixed(bin.Total, 2) + " kW -> [")
		b.WriteString(calc.JoinNumbers(bin.Loads, ", ") + "]\n")
	}
	b.WriteString("Estimated imbalance: ±" + calc.Fixed(r.Imbalance, 2) + " kW")
	return b.String()
}
