package calc

import (
	"math"
	"strings"
)

// System is the supply arrangement a calculation runs against.
type System int

// Constants of System
const (
	SinglePhase System = iota
	ThreePhase
)

func (s System) String() string {
	if s == SinglePhase {
		return "mono"
	}
	return "tri"
}

// ParseSystem maps a form value onto a System. Anything that is not
// single-phase is treated as three-phase.
func ParseSystem(v string) System {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "mono", "single", "single-phase", "1":
		return SinglePhase
	}
	return ThreePhase
}

// DropFactor is the conductor-path multiplier of the voltage drop formula:
// 2 for a single-phase go-and-return run, √3 for a balanced three-phase run.
func (s System) DropFactor() float64 {
	if s == SinglePhase {
		return 2
	}
	return math.Sqrt(3)
}

// Material is a conductor material.
type Material int

// Constants of Material
const (
	Copper Material = iota
	Aluminum
)

func (m Material) String() string {
	if m == Copper {
		return "Cu"
	}
	return "Al"
}

// ParseMaterial maps a form value onto a Material. Anything that is not
// copper is treated as aluminum.
func ParseMaterial(v string) Material {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "cu", "copper":
		return Copper
	}
	return Aluminum
}

// Resistivity returns the material resistivity in Ω·mm²/m.
func (m Material) Resistivity() float64 {
	if m == Copper {
		return CopperResistivity
	}
	return AluminumResistivity
}

// VoltageDrop returns the drop in volts along a one-way run of length l (m)
// carrying current i (A) on a conductor of section s (mm²).
func VoltageDrop(sys System, m Material, l, i, s float64) float64 {
	return (sys.DropFactor() * l * i * m.Resistivity()) / s
}
