package balance

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestPhaseCount(t *testing.T) {
	assert.Equal(t, PhaseCount(math.NaN()), 3)
	assert.Equal(t, PhaseCount(0), 3)
	assert.Equal(t, PhaseCount(1), 2)
	assert.Equal(t, PhaseCount(2), 2)
	assert.Equal(t, PhaseCount(7), 3)
	assert.Equal(t, PhaseCount(-4), 2)
}

func TestBalanceThreePhases(t *testing.T) {
	res := Balance(Input{Loads: []float64{5, 3, 2, 2, 1}, Phases: 3})
	// 5 -> A; 3 -> B; 2 -> C; 2 -> C(2); 1 -> B(3)
	assert.Equal(t, res.String(),
		"Phase 1: 4.00 kW -> [3, 1]\n"+
			"Phase 2: 4.00 kW -> [2, 2]\n"+
			"Phase 3: 5.00 kW -> [5]\n"+
			"Estimated imbalance: ±0.50 kW")
}

func TestBalanceTwoPhases(t *testing.T) {
	res := Balance(Input{Loads: []float64{1, 2, 3}, Phases: 2})
	assert.Equal(t, len(res.Bins), 2)
	assert.Equal(t, res.Imbalance, 0.0)
}

func TestBalanceMoreBinsThanLoads(t *testing.T) {
	res := Balance(Input{Loads: []float64{4}, Phases: 3})
	assert.Equal(t, res.String(),
		"Phase 1: 4.00 kW -> [4]\n"+
			"Phase 2: 0.00 kW -> []\n"+
			"Phase 3: 0.00 kW -> []\n"+
			"Estimated imbalance: ±2.00 kW")
}

func TestBalanceEmpty(t *testing.T) {
	res := Balance(Input{Phases: 3})
	assert.Equal(t, res.Advisory, calc.MissingInput)
	assert.Equal(t, res.String(), "Enter at least one load.")
}

func TestBalanceDoesNotMutateInput(t *testing.T) {
	loads := []float64{1, 3, 2}
	Balance(Input{Loads: loads, Phases: 2})
	assert.DeepEqual(t, loads, []float64{1, 3, 2})
}

func TestConservation(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for n := 0; n < 100; n++ {
		loads := make([]float64, 1+r.Intn(20))
		var sum float64
		for i := range loads {
			loads[i] = float64(r.Intn(5000)) / 100
			sum += loads[i]
		}
		phases := 2 + r.Intn(2)
		res := Balance(Input{Loads: loads, Phases: phases})

		var total float64
		assigned := 0
		for _, b := range res.Bins {
			var binSum float64
			for _, kw := range b.Loads {
				binSum += kw
			}
			assert.Assert(t, math.Abs(binSum-b.Total) < 1e-9)
			total += b.Total
			assigned += len(b.Loads)
		}
		assert.Equal(t, len(res.Bins), phases)
		assert.Equal(t, assigned, len(loads))
		assert.Assert(t, math.Abs(total-sum) < 1e-9)
	}
}
