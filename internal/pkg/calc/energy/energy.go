// Package energy estimates monthly consumption and its cost.
package energy

import "github.com/ohowland/elecalc/internal/pkg/calc"

// Input to Estimate. Hours, Days and Tariff default to zero when empty.
type Input struct {
	KW     float64
	Hours  float64 // per day
	Days   float64 // per month
	Tariff float64 // per kWh
}

// Result of an estimate.
type Result struct {
	Energy   float64 // kWh per month
	Cost     float64
	Advisory calc.Advisory
}

// Estimate returns kW·hours·days and its cost at the tariff.
func Estimate(in Input) Result {
	if !calc.Present(in.KW) {
		return Result{Energy: calc.Absent, Cost: calc.Absent, Advisory: calc.MissingInput}
	}
	e := in.KW * in.Hours * in.Days
	return Result{Energy: e, Cost: e * in.Tariff}
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter kW."
	}
	return "Monthly consumption ≈ " + calc.Fixed(r.Energy, 2) + " kWh\nEstimated cost ≈ " + calc.Fixed(r.Cost, 2)
}
