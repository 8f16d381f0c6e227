// Package vdrop computes absolute and percentage voltage drop over a cable run.
package vdrop

import (
	"strings"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// Input to Calculate. Nominal and Admissible are optional: leave them
// absent or at zero to skip the percentage and the limit check.
type Input struct {
	System     calc.System
	Length     float64 // m, one way
	Current    float64 // A
	Material   calc.Material
	Section    float64 // mm²
	Nominal    float64 // V
	Admissible float64 // %
}

// Result of a voltage drop calculation.
type Result struct {
	Drop       float64 // V
	Percent    float64
	HasPercent bool
	Admissible float64
	Checked    bool
	Within     bool
	Advisory   calc.Advisory
}

// Calculate returns ΔV and, when a nominal voltage is given, ΔV% and its
// classification against the admissible limit.
func Calculate(in Input) Result {
	if !calc.Present(in.Length) || !calc.Present(in.Current) || !calc.Present(in.Section) {
		return Result{Drop: calc.Absent, Percent: calc.Absent, Advisory: calc.MissingInput}
	}

	res := Result{
		Drop:    calc.VoltageDrop(in.System, in.Material, in.Length, in.Current, in.Section),
		Percent: calc.Absent,
	}
	if calc.Present(in.Nominal) && in.Nominal > 0 {
		res.Percent = (res.Drop / in.Nominal) * 100
		res.HasPercent = true
		if calc.Present(in.Admissible) && in.Admissible > 0 {
			res.Admissible = in.Admissible
			res.Checked = true
			res.Within = res.Percent <= in.Admissible
		}
	}
	return res
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Complete L, I and S."
	}
	var b strings.Builder
	b.WriteString("ΔV = " + calc.Fixed(r.Drop, 2) + " V")
	if r.HasPercent {
		b.WriteString("\nΔV% = " + calc.Fixed(r.Percent, 2) + " %")
		if r.Checked {
			verdict := "✖ Exceeds"
			if r.Within {
				verdict = "✔ Within"
			}
			b.WriteString("\nAdmissible (" + calc.Number(r.Admissible) + " %): " + verdict)
		}
	}
	return b.String()
}
