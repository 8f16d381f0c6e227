package toolkit

import (
	"fmt"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"github.com/ohowland/elecalc/internal/pkg/calc/balance"
	"github.com/ohowland/elecalc/internal/pkg/calc/breaker"
	"github.com/ohowland/elecalc/internal/pkg/calc/cable"
	"github.com/ohowland/elecalc/internal/pkg/calc/convert"
	"github.com/ohowland/elecalc/internal/pkg/calc/energy"
	"github.com/ohowland/elecalc/internal/pkg/calc/ohm"
	"github.com/ohowland/elecalc/internal/pkg/calc/power"
	"github.com/ohowland/elecalc/internal/pkg/calc/resistor"
	"github.com/ohowland/elecalc/internal/pkg/calc/vdrop"
)

var (
	systems   = []string{"mono", "tri"}
	materials = []string{"Cu", "Al"}
	curves    = []string{"B", "C", "D"}
	rcds      = []string{"10", "30", "100", "300"}
)

func num(f Form, id string) float64 {
	return calc.ParseFloat(f[id])
}

func calculators() []Calculator {
	return []Calculator{
		{
			Name:  "ohm",
			Title: "Ohm's law",
			Fields: []Field{
				{ID: "ohmV", Label: "V (V)"},
				{ID: "ohmI", Label: "I (A)"},
				{ID: "ohmR", Label: "R (Ω)"},
			},
			compute: func(f Form) fmt.Stringer {
				return ohm.Solve(ohm.Input{V: num(f, "ohmV"), I: num(f, "ohmI"), R: num(f, "ohmR")})
			},
		},
		{
			Name:  "power",
			Title: "Power",
			Fields: []Field{
				{ID: "powerSystem", Label: "System", Options: systems, Default: "mono"},
				{ID: "powerV", Label: "V (V)"},
				{ID: "powerI", Label: "I (A)"},
				{ID: "powerPF", Label: "PF", Default: calc.Number(power.DefaultPF)},
			},
			compute: func(f Form) fmt.Stringer {
				return power.Calculate(power.Input{
					System: calc.ParseSystem(f["powerSystem"]),
					V:      num(f, "powerV"),
					I:      num(f, "powerI"),
					PF:     num(f, "powerPF"),
				})
			},
		},
		{
			Name:  "drop",
			Title: "Voltage drop",
			Fields: []Field{
				{ID: "dropSystem", Label: "System", Options: systems, Default: "mono"},
				{ID: "dropL", Label: "L (m)"},
				{ID: "dropI", Label: "I (A)"},
				{ID: "dropMaterial", Label: "Material", Options: materials, Default: "Cu"},
				{ID: "dropS", Label: "S (mm²)"},
				{ID: "dropVn", Label: "Vn (V)", Default: "0"},
				{ID: "dropPct", Label: "Admissible (%)", Default: "0"},
			},
			compute: func(f Form) fmt.Stringer {
				return vdrop.Calculate(vdrop.Input{
					System:     calc.ParseSystem(f["dropSystem"]),
					Length:     num(f, "dropL"),
					Current:    num(f, "dropI"),
					Material:   calc.ParseMaterial(f["dropMaterial"]),
					Section:    num(f, "dropS"),
					Nominal:    num(f, "dropVn"),
					Admissible: num(f, "dropPct"),
				})
			},
		},
		{
			Name:  "cable",
			Title: "Cable sizing",
			Fields: []Field{
				{ID: "cableKW", Label: "P (kW)"},
				{ID: "cableV", Label: "V (V)"},
				{ID: "cableSystem", Label: "System", Options: systems, Default: "mono"},
				{ID: "cablePF", Label: "PF", Default: calc.Number(cable.DefaultPF)},
				{ID: "cableL", Label: "L (m)", Default: calc.Number(cable.DefaultLength)},
				{ID: "cableMaterial", Label: "Material", Options: materials, Default: "Cu"},
				{ID: "cablePct", Label: "Max ΔV (%)", Default: calc.Number(cable.DefaultAdmissible)},
			},
			compute: func(f Form) fmt.Stringer {
				return cable.Size(cable.Input{
					KW:         num(f, "cableKW"),
					V:          num(f, "cableV"),
					System:     calc.ParseSystem(f["cableSystem"]),
					PF:         num(f, "cablePF"),
					Length:     num(f, "cableL"),
					Material:   calc.ParseMaterial(f["cableMaterial"]),
					Admissible: num(f, "cablePct"),
				})
			},
		},
		{
			Name:  "protection",
			Title: "Protection",
			Fields: []Field{
				{ID: "protI", Label: "Design I (A)"},
				{ID: "protCurve", Label: "Curve", Options: curves, Default: breaker.DefaultCurve},
				{ID: "protRCD", Label: "RCD (mA)", Options: rcds, Default: breaker.DefaultRCD},
			},
			compute: func(f Form) fmt.Stringer {
				return breaker.Select(breaker.Input{
					Current: num(f, "protI"),
					Curve:   f["protCurve"],
					RCD:     f["protRCD"],
				})
			},
		},
		{
			Name:  "balance",
			Title: "Load balance",
			Fields: []Field{
				{ID: "balLoads", Label: "Loads (kW, comma separated)"},
				{ID: "balPhases", Label: "Phases", Options: []string{"2", "3"}, Default: "3"},
			},
			compute: func(f Form) fmt.Stringer {
				return balance.Balance(balance.Input{
					Loads:  calc.ParseList(f["balLoads"]),
					Phases: balance.PhaseCount(calc.ParseInt(f["balPhases"])),
				})
			},
		},
		{
			Name:  "consumption",
			Title: "Consumption and cost",
			Fields: []Field{
				{ID: "consKW", Label: "P (kW)"},
				{ID: "consHours", Label: "Hours/day", Default: "0"},
				{ID: "consDays", Label: "Days/month", Default: "0"},
				{ID: "consTariff", Label: "Tariff per kWh", Default: "0"},
			},
			compute: func(f Form) fmt.Stringer {
				return energy.Estimate(energy.Input{
					KW:     num(f, "consKW"),
					Hours:  num(f, "consHours"),
					Days:   num(f, "consDays"),
					Tariff: num(f, "consTariff"),
				})
			},
		},
		{
			Name:  "converter",
			Title: "Converter",
			Fields: []Field{
				{ID: "convMM2", Label: "mm²"},
				{ID: "convAWG", Label: "AWG"},
				{ID: "convWkW", Label: "W / kW"},
			},
			compute: func(f Form) fmt.Stringer {
				return convert.Convert(convert.Input{
					MM2:   num(f, "convMM2"),
					AWG:   num(f, "convAWG"),
					Power: num(f, "convWkW"),
				})
			},
		},
		{
			Name:  "resistors",
			Title: "Resistors",
			Fields: []Field{
				{ID: "resSeries", Label: "Series (Ω, comma separated)"},
				{ID: "resParallel", Label: "Parallel (Ω, comma separated)"},
			},
			compute: func(f Form) fmt.Stringer {
				return resistor.Combine(resistor.Input{
					Series:   calc.ParseList(f["resSeries"]),
					Parallel: calc.ParseList(f["resParallel"]),
				})
			},
		},
	}
}
