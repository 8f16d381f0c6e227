// Package breaker picks a standard breaker rating for a design current.
package breaker

import (
	"strconv"

	"github.com/ohowland/elecalc/internal/pkg/calc"
)

// SafetyMargin applied to the design current before rating selection.
const SafetyMargin = 1.25

// Display-only defaults of the protection form.
const (
	DefaultCurve = "C"
	DefaultRCD   = "30" // mA
)

// Input to Select. Curve and RCD are carried through to the output unchanged.
type Input struct {
	Current float64 // A
	Curve   string
	RCD     string
}

// Result of a breaker selection.
type Result struct {
	Rating   int
	Curve    string
	RCD      string
	Advisory calc.Advisory
}

// NextRating returns the first standard rating at or above target, or the
// largest rating when none is.
func NextRating(target float64) int {
	ratings := calc.BreakerRatings()
	for _, a := range ratings {
		if float64(a) >= target {
			return a
		}
	}
	return ratings[len(ratings)-1]
}

// Select applies SafetyMargin to the design current and picks a rating.
func Select(in Input) Result {
	if !calc.Present(in.Current) {
		return Result{Advisory: calc.MissingInput}
	}
	curve, rcd := in.Curve, in.RCD
	if curve == "" {
		curve = DefaultCurve
	}
	if rcd == "" {
		rcd = DefaultRCD
	}
	return Result{
		Rating: NextRating(in.Current * SafetyMargin),
		Curve:  curve,
		RCD:    rcd,
	}
}

func (r Result) String() string {
	if r.Advisory == calc.MissingInput {
		return "Enter design current."
	}
	return "Suggestion: breaker " + strconv.Itoa(r.Rating) + " A, curve " + r.Curve + ".\nRCD: " + r.RCD + " mA."
}
