// Package cable estimates a design current from power and suggests the
// smallest conductor section that carries it within a voltage-drop limit.
package cable

import (
	"math"
	"strings"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// Defaults applied to empty form fields.
const (
	DefaultPF         = 1
	DefaultLength     = 0
	DefaultAdmissible = 3
)

// Input to Size. KW and V are required.
type Input struct {
	KW         float64
	V          float64
	System     calc.System
	PF         float64
	Length     float64 // m, one way
	Material   calc.Material
	Admissible float64 // %
}

// Suggestion is the section picked from the ampacity table.
type Suggestion struct {
	Section    float64 // mm²
	MaxCurrent float64 // A
	Drop       float64 // V, NaN when OutOfRange
	Percent    float64 // NaN when OutOfRange
	OutOfRange bool
}

// Result of sizing a cable.
type Result struct {
	Current  float64
	Length   float64
	Material calc.Material
	Suggestion
	Advisory calc.Advisory
}

// CurrentFromPower returns the line current drawn by kw kilowatts at v
// volts. A zero or NaN power factor counts as unity.
func CurrentFromPower(kw, v, pf float64, sys calc.System) float64 {
	p := kw * 1000
	if pf == 0 || math.IsNaN(pf) {
		pf = 1
	}
	if sys == calc.SinglePhase {
		return p / (v * pf)
	}
	return p / (math.Sqrt(3) * v * pf)
}

// Suggest scans the material's table in ascending order and returns the
// first section whose ampacity covers current and whose voltage drop at
// voltage stays within admissible percent. When no row satisfies both,
// the largest section comes back flagged OutOfRange.
func Suggest(current, length, voltage, admissible float64, m calc.Material, sys calc.System) Suggestion {
	table := calc.AmpacityTable(m)
	for _, row := range table {
		if row.MaxCurrent < current {
			continue
		}
		drop := calc.VoltageDrop(sys, m, length, current, row.Section)
		pct := (drop / voltage) * 100
		if pct <= admissible {
			return Suggestion{Section: row.Section, MaxCurrent: row.MaxCurrent, Drop: drop, Percent: pct}
		}
	}
	last := table[len(table)-1]
	return Suggestion{
		Section:    last.Section,
		MaxCurrent: last.MaxCurrent,
		Drop:       math.NaN(),
		Percent:    math.NaN(),
		OutOfRange: true,
	}
}

// Size estimates the current for the load and suggests a section for it.
func Size(in Input) Result {
	if !calc.Present(in.KW) || !calc.Present(in.V) {
		return Result{Current: calc.Absent, Advisory: calc.MissingInput}
	}

	current := CurrentFromPower(in.KW, in.V, in.PF, in.System)
	res := Result{
		Current:    current,
		Length:     in.Length,
		Material:   in.Material,
		Suggestion: Suggest(current, in.Length, in.V, in.Admissible, in.Material, in.System),
	}
	if res.OutOfRange {
		res.Advisory = calc.OutOfRange
	}
	return res
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Complete kW and V."
	}
	var b strings.Builder
	b.WriteString("Estimated I = " + calc.Fixed(r.Current, 2) + " A\n")
	b.WriteString("Suggested section = " + calc.Number(r.Section) + " mm² (" + r.Material.String() + "), ")
	b.WriteString("admissible I approx " + calc.Number(r.MaxCurrent) + " A")
	if !math.IsNaN(r.Percent) {
		b.WriteString("\nEstimated ΔV% = " + calc.Fixed(r.Percent, 2) + " % (L=" + calc.Number(r.Length) + " m)")
	} else {
		b.WriteString("\nWarning: out of table range, check with manufacturer/standard.")
	}
	return b.String()
}
