package resistor

import (
	"math"
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestSeries(t *testing.T) {
	assert.Equal(t, Series([]float64{10, 10, 10}), 30.0)
}

func TestParallel(t *testing.T) {
	assert.Equal(t, Parallel([]float64{10, 10}), 5.0)
	assert.Assert(t, math.Abs(Parallel([]float64{100, 220, 470})-59.9768) < 1e-4)
}

func TestParallelShort(t *testing.T) {
	// 1/0 drives the reciprocal sum to +Inf, so the group collapses to a short
	assert.Equal(t, Parallel([]float64{0, 10}), 0.0)
}

func TestParallelNonFinite(t *testing.T) {
	assert.Assert(t, math.IsInf(Parallel([]float64{10, -10}), 0))
	assert.Assert(t, math.IsNaN(Parallel([]float64{0, math.Copysign(0, -1)})))
}

func TestCombine(t *testing.T) {
	res := Combine(Input{Series: []float64{10, 22}, Parallel: []float64{10, 10}})
	assert.Equal(t, res.String(), "Series: 32.000 Ω\nParallel: 5.000 Ω")

	res = Combine(Input{Parallel: []float64{10, -10}})
	assert.Equal(t, res.String(), "Parallel: Infinity Ω")
}

func TestCombineEmpty(t *testing.T) {
	res := Combine(Input{})
	assert.Equal(t, res.Advisory, calc.MissingInput)
	assert.Equal(t, res.String(), "Enter series/parallel values.")
}
