package equation

import (
	"math"
	"strconv"
	"strings"
)

// IntegerTolerance is how close a value must be to an integer to be shown
// as one.
const IntegerTolerance = 1e-10

// FormatValue renders v for display. A finite value within
// IntegerTolerance of an integer prints as that integer; anything else
// prints with up to eight decimals, trailing zeros and a dangling '.'
// removed. NaN and infinities print as "NaN", "+Inf" and "-Inf".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	if r := math.Round(v); math.Abs(v-r) < IntegerTolerance {
		if r == 0 {
			return "0" // no "-0"
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}

	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
