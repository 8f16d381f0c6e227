package breaker

import (
	"testing"

	"github.com/ohowland/elecalc/internal/pkg/calc"
	"gotest.tools/v3/assert"
)

func TestNextRating(t *testing.T) {
	assert.Equal(t, NextRating(0), 6)
	assert.Equal(t, NextRating(6), 6)
	assert.Equal(t, NextRating(6.01), 10)
	assert.Equal(t, NextRating(250), 250)
	assert.Equal(t, NextRating(251), 250)
}

func TestSelectAppliesMargin(t *testing.T) {
	// 16 A * 1.25 = 20 A
	assert.Equal(t, Select(Input{Current: 16}).Rating, 20)
	// 17 A * 1.25 = 21.25 A
	assert.Equal(t, Select(Input{Current: 17}).Rating, 25)
}

func TestSelectBounds(t *testing.T) {
	assert.Equal(t, Select(Input{Current: 0}).Rating, 6)
	assert.Equal(t, Select(Input{Current: 1000}).Rating, 250)
}

func TestSelectOutput(t *testing.T) {
	res := Select(Input{Current: 10, Curve: "B", RCD: "300"})
	assert.Equal(t, res.String(), "Suggestion: breaker 13 A, curve B.\nRCD: 300 mA.")

	res = Select(Input{Current: 10})
	assert.Equal(t, res.String(), "Suggestion: breaker 13 A, curve C.\nRCD: 30 mA.")
}

func TestSelectMissing(t *testing.T) {
	res := Select(Input{Current: calc.Absent})
	assert.Equal(t, res.Advisory, calc.MissingInput)
	assert.Equal(t, res.String(), "Enter design current.")
}
