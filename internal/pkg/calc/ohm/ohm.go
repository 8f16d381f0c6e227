// Package ohm solves V = I·R for whichever quantities the inputs allow.
package ohm

import (
	"strings"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// Input holds the measured triple. Use calc.Absent for an unknown quantity.
type Input struct {
	V float64 // volts
	I float64 // amps
	R float64 // ohms
}

// Result holds every quantity derivable from the inputs.
type Result struct {
	R        float64
	I        float64
	V        float64
	SolvedR  bool
	SolvedI  bool
	SolvedV  bool
	Advisory calc.Advisory
}

// Solve computes the third quantity from each present pair. Division by
// zero is left to IEEE-754.
func Solve(in Input) Result {
	hasV, hasI, hasR := calc.Present(in.V), calc.Present(in.I), calc.Present(in.R)

	res := Result{R: calc.Absent, I: calc.Absent, V: calc.Absent}
	if hasV && hasI {
		res.R, res.SolvedR = in.V/in.I, true
	}
	if hasV && hasR {
		res.I, res.SolvedI = in.V/in.R, true
	}
	if hasI && hasR {
		res.V, res.SolvedV = in.I*in.R, true
	}
	if !res.SolvedR && !res.SolvedI && !res.SolvedV {
		res.Advisory = calc.MissingInput
	}
	return res
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter two values to compute the third."
	}
	lines := make([]string, 0, 3)
	if r.SolvedR {
		lines = append(lines, "R = "+calc.Fixed(r.R, 4)+" Ω")
	}
	if r.SolvedI {
		lines = append(lines, "I = "+calc.Fixed(r.I, 4)+" A")
	}
	if r.SolvedV {
		lines = append(lines, "V = "+calc.Fixed(r.V, 4)+" V")
	}
	return strings.Join(lines, "\n")
}
