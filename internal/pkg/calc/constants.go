package calc

// AmpacityRow is one entry of a conductor ampacity table.
type AmpacityRow struct {
	Section    float64 `json:"Section"`    // mm²
	MaxCurrent float64 `json:"MaxCurrent"` // A
}

// AWGRow pairs an American Wire Gauge number with its cross-section.
type AWGRow struct {
	Gauge   int     `json:"Gauge"`
	Section float64 `json:"Section"` // mm²
}

// Resistivity of conductor materials in Ω·mm²/m.
const (
	CopperResistivity   = 0.0172
	AluminumResistivity = 0.0282
)

// simplified ampacity tables, ascending by section
var copperAmpacity = []AmpacityRow{
	{1.5, 15}, {2.5, 21}, {4, 28}, {6, 36}, {10, 50},
	{16, 68}, {25, 89}, {35, 110}, {50, 140}, {70, 175},
	{95, 215}, {120, 260},
}

var aluminumAmpacity = []AmpacityRow{
	{10, 39}, {16, 52}, {25, 68}, {35, 85}, {50, 105},
	{70, 135}, {95, 165}, {120, 195}, {150, 220},
}

var awgTable = []AWGRow{
	{0, 53.5}, {1, 42.4}, {2, 33.6}, {3, 26.7}, {4, 21.2},
	{5, 16.8}, {6, 13.3}, {8, 8.37}, {10, 5.26},
	{12, 3.31}, {14, 2.08}, {16, 1.31}, {18, 0.823},
}

var breakerRatings = []int{6, 10, 13, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125, 160, 200, 250}

// AmpacityTable returns a copy of the ampacity table for the material.
func AmpacityTable(m Material) []AmpacityRow {
	src := aluminumAmpacity
	if m == Copper {
		src = copperAmpacity
	}
	return append([]AmpacityRow(nil), src...)
}

// AWGTable returns a copy of the AWG reference table in gauge order.
func AWGTable() []AWGRow {
	return append([]AWGRow(nil), awgTable...)
}

// BreakerRatings returns a copy of the standard breaker ratings in amps, ascending.
func BreakerRatings() []int {
	return append([]int(nil), breakerRatings...)
}
