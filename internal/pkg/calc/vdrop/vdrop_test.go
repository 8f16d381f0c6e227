package vdrop

import (
	"math"
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestDropOnly(t *testing.T) {
	res := Calculate(Input{calc.SinglePhase, 10, 10, calc.Copper, 2.5, calc.Absent, calc.Absent})
	assert.Equal(t, res.String(), "ΔV = 1.38 V")
	assert.Assert(t, !res.HasPercent)
}

func TestPercentAndLimit(t *testing.T) {
	res := Calculate(Input{calc.SinglePhase, 50, 20, calc.Copper, 4, 220, 3})
	// 2*50*20*0.0172/4 = 8.6 V, 3.909 %
	assert.Equal(t, res.String(), "ΔV = 8.60 V\nΔV% = 3.91 %\nAdmissible (3 %): ✖ Exceeds")

	res = Calculate(Input{calc.SinglePhase, 50, 20, calc.Copper, 4, 220, 5})
	assert.Assert(t, res.Within)
	assert.Equal(t, res.String(), "ΔV = 8.60 V\nΔV% = 3.91 %\nAdmissible (5 %): ✔ Within")
}

func TestZeroNominalSkipsPercent(t *testing.T) {
	res := Calculate(Input{calc.ThreePhase, 50, 20, calc.Aluminum, 10, 0, 3})
	assert.Assert(t, !res.HasPercent)
	assert.Assert(t, !res.Checked)
}

func TestThreePhaseAluminum(t *testing.T) {
	res := Calculate(Input{calc.ThreePhase, 100, 30, calc.Aluminum, 16, 400, calc.Absent})
	want := math.Sqrt(3) * 100 * 30 * 0.0282 / 16
	assert.Equal(t, res.Drop, want)
	assert.Assert(t, !res.Checked)
}

func TestIncomplete(t *testing.T) {
	res := Calculate(Input{calc.SinglePhase, calc.Absent, 10, calc.Copper, 2.5, 220, 3})
	assert.Equal(t, res.String(), "Complete L, I and S.")
	res = Calculate(Input{calc.SinglePhase, 10, 10, calc.Copper, calc.Absent, 220, 3})
	assert.Equal(t, res.Advisory, calc.MissingInput)
}

func TestLinearInLengthAndCurrent(t *testing.T) {
	base := Calculate(Input{calc.SinglePhase, 25, 12, calc.Copper, 6, calc.Absent, calc.Absent})
	doubleL := Calculate(Input{calc.SinglePhase, 50, 12, calc.Copper, 6, calc.Absent, calc.Absent})
	doubleI := Calculate(Input{calc.SinglePhase, 25, 24, calc.Copper, 6, calc.Absent, calc.Absent})
	assert.Assert(t, math.Abs(doubleL.Drop-2*base.Drop) < 1e-12)
	assert.Assert(t, math.Abs(doubleI.Drop-2*base.Drop) < 1e-12)
}
