package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// exactDigits is enough fraction digits to print any float64 exactly.
const exactDigits = 1100

// Fixed renders x with exactly digits decimals, rounding the exact value
// half away from zero. Non-finite values render as NaN, Infinity and
// -Infinity so they stay visible in the output.
func Fixed(x float64, digits int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case math.Abs(x) >= 1e21:
		return Number(x)
	}
	if digits < 0 {
		digits = 0
	}
	if digits > 100 {
		digits = 100
	}
	sign := ""
	if x < 0 {
		sign = "-"
	}

	exact := new(big.Float).SetFloat64(math.Abs(x)).Text('f', exactDigits)
	dot := strings.IndexByte(exact, '.')
	intPart, frac := exact[:dot], exact[dot+1:]

	kept := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		i := len(kept) - 1
		for ; i >= 0 && kept[i] == '9'; i-- {
			kept[i] = '0'
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept...)
		} else {
			kept[i]++
		}
	}

	n := len(kept) - digits
	if digits == 0 {
		return sign + string(kept)
	}
	return sign + string(kept[:n]) + "." + string(kept[n:])
}

// Number renders x in its shortest round-trip form, the way a user typed it.
func Number(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		return "0"
	}
	abs := math.Abs(x)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(x, 'e', -1, 64)
		mant, exp := s[:strings.IndexByte(s, 'e')], s[strings.IndexByte(s, 'e')+1:]
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// JoinNumbers renders values with Number, separated by sep.
func JoinNumbers(values []float64, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Number(v)
	}
	return strings.Join(parts, sep)
}
