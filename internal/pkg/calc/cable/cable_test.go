package cable

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestCurrentFromPower(t *testing.T) {
	assert.Equal(t, CurrentFromPower(2.2, 220, 1, calc.SinglePhase), 10.0)
	assert.Equal(t, CurrentFromPower(2.2, 220, 0, calc.SinglePhase), 10.0)
	assert.Equal(t, CurrentFromPower(2.2, 220, math.NaN(), calc.SinglePhase), 10.0)

	i := CurrentFromPower(10, 400, 0.9, calc.ThreePhase)
	assert.Assert(t, math.Abs(i-10000/(math.Sqrt(3)*400*0.9)) < 1e-12)
}

func TestAmpacityOnly(t *testing.T) {
	// 2.2 kW at 220 V is 10 A, zero length means no drop
	res := Size(Input{2.2, 220, calc.SinglePhase, 1, 0, calc.Copper, 3})
	assert.Equal(t, res.Section, 1.5)
	assert.Equal(t, res.String(),
		"Estimated I = 10.00 A\n"+
			"Suggested section = 1.5 mm² (Cu), admissible I approx 15 A\n"+
			"Estimated ΔV% = 0.00 % (L=0 m)")
}

func TestVoltageDropForcesLargerSection(t *testing.T) {
	// 10 A over 50 m: 1.5 mm² gives 5.2 %, 2.5 gives 3.1 %, 4 gives 1.95 %
	res := Size(Input{2.2, 220, calc.SinglePhase, 1, 50, calc.Copper, 3})
	assert.Equal(t, res.Section, 4.0)
	assert.Equal(t, res.MaxCurrent, 28.0)
	assert.Assert(t, res.Percent <= 3)
	assert.Equal(t, res.Advisory, calc.None)
}

func TestSkipsRowsBelowAmpacity(t *testing.T) {
	// 40 A must start at 10 mm² copper
	res := Size(Input{8.8, 220, calc.SinglePhase, 1, 0, calc.Copper, 3})
	assert.Equal(t, res.Section, 10.0)
}

func TestExhaustedTable(t *testing.T) {
	res := Size(Input{200, 220, calc.SinglePhase, 1, 10, calc.Aluminum, 3})
	assert.Assert(t, res.OutOfRange)
	assert.Equal(t, res.Advisory, calc.OutOfRange)
	assert.Equal(t, res.Section, 150.0)
	assert.Assert(t, math.IsNaN(res.Percent))
	assert.Equal(t, res.String(),
		"Estimated I = 909.09 A\n"+
			"Suggested section = 150 mm² (Al), admissible I approx 220 A\n"+
			"Warning: out of table range, check with manufacturer/standard.")
}

func TestExhaustedByVoltageDrop(t *testing.T) {
	res := Size(Input{2.2, 220, calc.SinglePhase, 1, 100000, calc.Copper, 3})
	assert.Assert(t, res.OutOfRange)
	assert.Equal(t, res.Section, 120.0)
}

func TestMissingInput(t *testing.T) {
	res := Size(Input{calc.Absent, 220, calc.SinglePhase, 1, 0, calc.Copper, 3})
	assert.Equal(t, res.String(), "Complete kW and V.")
	res = Size(Input{2, calc.Absent, calc.SinglePhase, 1, 0, calc.Copper, 3})
	assert.Equal(t, res.Advisory, calc.MissingInput)
}

func TestSuggestionIsTableMember(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		m := calc.Material(r.Intn(2))
		sys := calc.System(r.Intn(2))
		in := Input{r.Float64() * 150, 220 + r.Float64()*180, sys, 0.8 + r.Float64()*0.2, r.Float64() * 200, m, 3}
		res := Size(in)

		member := false
		for _, row := range calc.AmpacityTable(m) {
			if row.Section == res.Section && row.MaxCurrent == res.MaxCurrent {
				member = true
			}
		}
		assert.Assert(t, member, "section %v not in %v table", res.Section, m)
		if !res.OutOfRange {
			assert.Assert(t, res.MaxCurrent >= res.Current)
			assert.Assert(t, res.Percent <= in.Admissible)
		}
	}
}
