package ohm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestSolveResistance(t *testing.T) {
	res := Solve(Input{V: 12, I: 2, R: calc.Absent})
	assert.Equal(t, res.String(), "R = 6.0000 Ω")
	assert.Equal(t, res.Advisory, calc.None)
}

func TestSolveCurrentAndVoltage(t *testing.T) {
	res := Solve(Input{V: calc.Absent, I: 0.5, R: 100})
	assert.Equal(t, res.String(), "V = 50.0000 V")

	res = Solve(Input{V: 230, I: calc.Absent, R: 46})
	assert.Equal(t, res.String(), "I = 5.0000 A")
}

func TestSolveAllPresent(t *testing.T) {
	res := Solve(Input{V: 10, I: 2, R: 4})
	assert.Equal(t, res.String(), "R = 5.0000 Ω\nI = 2.5000 A\nV = 8.0000 V")
}

func TestSolveInsufficient(t *testing.T) {
	for _, in := range []Input{
		{calc.Absent, calc.Absent, calc.Absent},
		{12, calc.Absent, calc.Absent},
		{calc.Absent, calc.Absent, 3},
	} {
		res := Solve(in)
		assert.Equal(t, res.Advisory, calc.MissingInput)
		assert.Equal(t, res.String(), "Enter two values to compute the third.")
	}
}

func TestSolveDivisionByZero(t *testing.T) {
	res := Solve(Input{V: 12, I: 0, R: calc.Absent})
	assert.Assert(t, math.IsInf(res.R, 1))
	assert.Equal(t, res.String(), "R = Infinity Ω")

	res = Solve(Input{V: 0, I: 0, R: calc.Absent})
	assert.Equal(t, res.String(), "R = NaN Ω")
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 0; n < 100; n++ {
		v := r.Float64()*400 - 200
		i := r.Float64()*50 + 0.01
		solved := Solve(Input{V: v, I: i, R: calc.Absent})
		back := Solve(Input{V: v, I: calc.Absent, R: solved.R})
		assert.Assert(t, math.Abs(back.I-i) <= 1e-9*math.Abs(i), "v=%v i=%v got %v", v, i, back.I)
	}
}
