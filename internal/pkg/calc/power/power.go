// Package power computes real power for single- and three-phase supplies.
package power

import (
	"math"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// DefaultPF is the power factor used when the field is left empty.
const DefaultPF = 1

// Input to Calculate. V is line voltage for three-phase systems.
type Input struct {
	System calc.System
	V      float64
	I      float64
	PF     float64
}

// Result in watts and kilowatts.
type Result struct {
	W        float64
	KW       float64
	Advisory calc.Advisory
}

// Calculate returns P = V·I·PF, scaled by √3 for three-phase systems.
func Calculate(in Input) Result {
	if !calc.Finite(in.V) || !calc.Finite(in.I) || !calc.Finite(in.PF) {
		return Result{W: calc.Absent, KW: calc.Absent, Advisory: calc.MissingInput}
	}

	var w float64
	if in.System == calc.SinglePhase {
		w = in.V * in.I * in.PF
	} else {
		w = math.Sqrt(3) * in.V * in.I * in.PF
	}
	return Result{W: w, KW: w / 1000}
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Complete V, I and PF."
	}
	return "P = " + calc.Fixed(r.W, 2) + " W (" + calc.Fixed(r.KW, 3) + " kW)"
}
