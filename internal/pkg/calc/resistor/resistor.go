// Package resistor combines resistor groups in series and in parallel.
package resistor

import (
	"strings"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// Series returns the sum of rs.
func Series(rs []float64) float64 {
	var sum float64
	for _, r := range rs {
		sum += r
	}
	return sum
}

// Parallel returns the reciprocal of the sum of reciprocals of rs. Zero
// and opposite-sign entries are left to IEEE-754.
func Parallel(rs []float64) float64 {
	var inv float64
	for _, r := range rs {
		inv += 1 / r
	}
	return 1 / inv
}

// Input to Combine. Either group may be empty.
type Input struct {
	Series   []float64
	Parallel []float64
}

// Result holds the equivalent resistance of each non-empty group.
type Result struct {
	Series      float64
	Parallel    float64
	HasSeries   bool
	HasParallel bool
	Advisory    calc.Advisory
}

// Combine reduces each non-empty group to its equivalent resistance.
func Combine(in Input) Result {
	res := Result{Series: calc.Absent, Parallel: calc.Absent}
	if len(in.Series) > 0 {
		res.Series, res.HasSeries = Series(in.Series), true
	}
	if len(in.Parallel) > 0 {
		res.Parallel, res.HasParallel = Parallel(in.Parallel), true
	}
	if !res.HasSeries && !res.HasParallel {
		res.Advisory = calc.MissingInput
	}
	return res
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter series/parallel values."
	}
	lines := make([]string, 0, 2)
	if r.HasSeries {
		lines = append(lines, "Series: "+calc.Fixed(r.Series, 3)+" Ω")
	}
	if r.HasParallel {
		lines = append(lines, "Parallel: "+calc.Fixed(r.Parallel, 3)+" Ω")
	}
	return strings.Join(lines, "\n")
}
