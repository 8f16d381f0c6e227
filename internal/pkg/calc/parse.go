package calc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Absent is the value of a numeric field that was left empty or did not parse.
var Absent = math.NaN()

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// Present reports whether x holds a value. Infinities count as present.
func Present(x float64) bool {
	return !math.IsNaN(x)
}

// Finite reports whether x holds a finite value.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ParseFloat reads the longest numeric prefix of s after leading
// whitespace, so "12 V" reads as 12. Text without a numeric prefix
// reads as NaN.
func ParseFloat(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return math.NaN()
	}
	// out-of-range literals still come back as ±Inf
	v, _ := strconv.ParseFloat(m, 64)
	return v
}

// ParseInt reads the leading decimal integer of s, or NaN.
func ParseInt(s string) float64 {
	m := intPrefix.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if m == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseList splits comma-separated text and keeps the entries that parse.
func ParseList(s string) []float64 {
	values := make([]float64, 0)
	for _, part := range strings.Split(s, ",") {
		v := ParseFloat(strings.TrimSpace(part))
		if Present(v) {
			values = append(values, v)
		}
	}
	return values
}
