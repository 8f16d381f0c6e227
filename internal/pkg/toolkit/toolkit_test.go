package toolkit

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ohowland/elecalc/internal/pkg/msg"
	"gotest.tools/v3/assert"
)

func newToolkit(t *testing.T) *Toolkit {
	tk, err := New(nil)
	assert.NilError(t, err)
	return tk
}

func run(t *testing.T, tk *Toolkit, name string, f Form) string {
	c, err := tk.Run(name, f)
	assert.NilError(t, err)
	return c.Output
}

func TestEndToEnd(t *testing.T) {
	tk := newToolkit(t)

	assert.Equal(t, run(t, tk, "ohm", Form{"ohmV": "12", "ohmI": "2"}), "R = 6.0000 Ω")
	assert.Equal(t, run(t, tk, "power", Form{"powerSystem": "mono", "powerV": "220", "powerI": "10", "powerPF": "0.9"}),
		"P = 1980.00 W (1.980 kW)")
	assert.Equal(t, run(t, tk, "converter", Form{"convMM2": "2.5"}), "2.5 mm² ≈ AWG 14")
}

func TestDefaultsFillEmptyFields(t *testing.T) {
	tk := newToolkit(t)

	// PF defaults to 1, system to single-phase
	assert.Equal(t, run(t, tk, "power", Form{"powerV": "230", "powerI": "10"}), "P = 2300.00 W (2.300 kW)")
	assert.Equal(t, run(t, tk, "protection", Form{"protI": "16"}), "Suggestion: breaker 20 A, curve C.\nRCD: 30 mA.")
	assert.Equal(t, run(t, tk, "consumption", Form{"consKW": "2"}), "Monthly consumption ≈ 0.00 kWh\nEstimated cost ≈ 0.00")
}

func TestWhitespaceIsNotEmpty(t *testing.T) {
	tk := newToolkit(t)
	assert.Equal(t, run(t, tk, "power", Form{"powerV": "230", "powerI": "10", "powerPF": " "}), "Complete V, I and PF.")
}

func TestAdvisories(t *testing.T) {
	tk := newToolkit(t)
	cases := map[string]string{
		"ohm":         "Enter two values to compute the third.",
		"power":       "Complete V, I and PF.",
		"drop":        "Complete L, I and S.",
		"cable":       "Complete kW and V.",
		"protection":  "Enter design current.",
		"balance":     "Enter at least one load.",
		"consumption": "Enter kW.",
		"converter":   "Enter some value.",
		"resistors":   "Enter series/parallel values.",
	}
	for name, want := range cases {
		assert.Equal(t, run(t, tk, name, Form{}), want, name)
	}
}

func TestDropAndCable(t *testing.T) {
	tk := newToolkit(t)
	out := run(t, tk, "drop", Form{
		"dropSystem": "mono", "dropL": "50", "dropI": "20", "dropMaterial": "Cu",
		"dropS": "4", "dropVn": "220", "dropPct": "3",
	})
	assert.Equal(t, out, "ΔV = 8.60 V\nΔV% = 3.91 %\nAdmissible (3 %): ✖ Exceeds")

	out = run(t, tk, "cable", Form{"cableKW": "2.2", "cableV": "220", "cableL": "50"})
	assert.Equal(t, out,
		"Estimated I = 10.00 A\n"+
			"Suggested section = 4 mm² (Cu), admissible I approx 28 A\n"+
			"Estimated ΔV% = 1.95 % (L=50 m)")
}

func TestBalanceAndResistors(t *testing.T) {
	tk := newToolkit(t)
	out := run(t, tk, "balance", Form{"balLoads": "5, 3, x, 2, 2, 1", "balPhases": "3"})
	assert.Equal(t, out,
		"Phase 1: 4.00 kW -> [3, 1]\n"+
			"Phase 2: 4.00 kW -> [2, 2]\n"+
			"Phase 3: 5.00 kW -> [5]\n"+
			"Estimated imbalance: ±0.50 kW")

	out = run(t, tk, "resistors", Form{"resSeries": "10,10,10", "resParallel": "10, 10"})
	assert.Equal(t, out, "Series: 30.000 Ω\nParallel: 5.000 Ω")
}

func TestUnknownCalculator(t *testing.T) {
	tk := newToolkit(t)
	_, err := tk.Run("flux-capacitor", Form{})
	assert.Assert(t, errors.Is(err, ErrUnknownCalculator))
}

func TestCalculationRecord(t *testing.T) {
	tk := newToolkit(t)
	c, err := tk.Run("ohm", Form{"ohmV": "12", "ohmI": "2", "powerV": "230"})
	assert.NilError(t, err)
	assert.Equal(t, c.Name, "ohm")
	assert.DeepEqual(t, c.Fields, Form{"ohmV": "12", "ohmI": "2", "ohmR": ""})
	assert.Assert(t, c.ID != uuid.Nil)
	assert.Assert(t, !c.At.IsZero())
}

func TestRunPublishes(t *testing.T) {
	pub := msg.NewPublisher(uuid.New())
	tk, err := New(pub)
	assert.NilError(t, err)

	ch, err := pub.Subscribe(uuid.New(), msg.Calculation)
	assert.NilError(t, err)

	c, err := tk.Run("ohm", Form{"ohmV": "12", "ohmI": "2"})
	assert.NilError(t, err)

	m := <-ch
	published, ok := m.Payload().(Calculation)
	assert.Assert(t, ok)
	assert.Equal(t, published.ID, c.ID)
	assert.Equal(t, published.Output, "R = 6.0000 Ω")
}

func TestFieldIDsAreUnique(t *testing.T) {
	tk := newToolkit(t)
	ids := tk.FieldIDs()
	assert.Equal(t, len(ids), 35)
	for i := 1; i < len(ids); i++ {
		assert.Assert(t, ids[i] != ids[i-1], "duplicate field id %s", ids[i])
	}
	assert.Equal(t, len(tk.Calculators()), 9)
	assert.Equal(t, tk.Calculators()[0].Name, "ohm")
}

func TestOutputRoundsTiesUp(t *testing.T) {
	tk := newToolkit(t)

	assert.Equal(t, run(t, tk, "consumption", Form{"consKW": "0.125", "consHours": "1", "consDays": "1", "consTariff": "1"}),
		"Monthly consumption ≈ 0.13 kWh\nEstimated cost ≈ 0.13")
	assert.Equal(t, run(t, tk, "ohm", Form{"ohmV": "1", "ohmI": "32"}), "R = 0.0313 Ω")
	assert.Equal(t, run(t, tk, "resistors", Form{"resSeries": "1.0625"}), "Series: 1.063 Ω")

	out := run(t, tk, "balance", Form{"balLoads": "1.25", "balPhases": "2"})
	assert.Assert(t, strings.HasSuffix(out, "Estimated imbalance: ±0.63 kW"), out)
}
