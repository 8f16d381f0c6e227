// Package convert maps between wire sections and AWG gauges and between
// watts and kilowatts.
package convert

import (
	"math"
	"strconv"
	"strings"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// WattThreshold separates the two readings of a bare power value: above
// it the value is taken as watts, otherwise as kilowatts.
const WattThreshold = 10

// MM2ToAWG returns the gauge whose section is nearest to mm2. Ties keep
// the earlier table row.
func MM2ToAWG(mm2 float64) int {
	table := calc.AWGTable()
	best := table[0]
	diff := math.Abs(mm2 - best.Section)
	for _, row := range table {
		if d := math.Abs(mm2 - row.Section); d < diff {
			diff, best = d, row
		}
	}
	return best.Gauge
}

// AWGToMM2 returns the section of the gauge nearest to awg. Ties keep the
// earlier table row.
func AWGToMM2(awg float64) float64 {
	table := calc.AWGTable()
	best := table[0]
	diff := math.Abs(awg - float64(best.Gauge))
	for _, row := range table {
		if d := math.Abs(awg - float64(row.Gauge)); d < diff {
			diff, best = d, row
		}
	}
	return best.Section
}

// PowerConversion is the outcome of converting a bare power value.
type PowerConversion struct {
	Value     float64
	FromWatts bool    // Value read as W, Converted is kW
	Converted float64 // kW when FromWatts, W otherwise
}

// Power converts v to the other unit, reading v as watts when it exceeds
// WattThreshold and as kilowatts otherwise.
func Power(v float64) PowerConversion {
	if v > WattThreshold {
		return PowerConversion{Value: v, FromWatts: true, Converted: v / 1000}
	}
	return PowerConversion{Value: v, Converted: v * 1000}
}

func (p PowerConversion) String() string {
	if p.FromWatts {
		return calc.Number(p.Value) + " W = " + calc.Fixed(p.Converted, 3) + " kW"
	}
	return calc.Number(p.Value) + " kW = " + calc.Fixed(p.Converted, 0) + " W"
}

// Input to Convert. Any field may be absent.
type Input struct {
	MM2   float64
	AWG   float64
	Power float64
}

// Result lists one conversion per present field.
type Result struct {
	Lines    []string
	Advisory calc.Advisory
}

// Convert runs every conversion whose input is present.
func Convert(in Input) Result {
	lines := make([]string, 0, 3)
	if calc.Present(in.MM2) {
		lines = append(lines, calc.Number(in.MM2)+" mm² ≈ AWG "+strconv.Itoa(MM2ToAWG(in.MM2)))
	}
	if calc.Present(in.AWG) {
		lines = append(lines, "AWG "+calc.Number(in.AWG)+" ≈ "+calc.Fixed(AWGToMM2(in.AWG), 2)+" mm²")
	}
	if calc.Present(in.Power) {
		lines = append(lines, Power(in.Power).String())
	}
	if len(lines) == 0 {
		return Result{Advisory: calc.MissingInput}
	}
	return Result{Lines: lines}
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter some value."
	}
	return strings.Join(r.Lines, "\n")
}
