package expr

import (
	"math"
	"sort"
)

// functions is the fixed table of one-argument functions. The first
// thirteen entries are the reserved names of the calculator keypad; the
// rest are conveniences. Go's math package already yields NaN outside a
// function's domain (log(-1), sqrt(-1), asin(2)) and ±Inf on overflow.
var functions = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"exp":  math.Exp,
	"log":  math.Log,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,

	"log10":  math.Log10,
	"log2":   math.Log2,
	"cbrt":   math.Cbrt,
	"floor":  math.Floor,
	"ceil":   math.Ceil,
	"signum": signum,
}

func signum(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // keeps the sign of zero
}

// IsFunction reports whether name is a function known to the evaluator.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// Functions returns the sorted names of all known functions.
func Functions() []string {
	out := make([]string, 0, len(functions))
	for name := range functions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
