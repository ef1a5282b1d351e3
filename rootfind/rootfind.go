// Package rootfind locates real roots of a single-variable equation by a
// uniform sign-change scan refined with bisection.
package rootfind

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/eqsolve/equation"
)

// ErrInvalidOptions is returned for an empty range or a non-positive
// step or iteration budget.
var ErrInvalidOptions = errors.New("rootfind: invalid options")

// Defaults.
const (
	DefaultLo            = -1000.0
	DefaultHi            = 1000.0
	DefaultSteps         = 400
	DefaultMaxBisections = 60
	DefaultTolerance     = 1e-10
)

// Options configures the scan.
type Options struct {
	Lo, Hi        float64 // search interval, Lo < Hi
	Steps         int     // number of uniform sub-intervals
	MaxBisections int     // bisection budget per bracket
	Tolerance     float64 // |f(mid)| below which bisection stops early
}

// DefaultOptions returns the [-1000, 1000] scan with 400 steps.
func DefaultOptions() Options {
	return Options{
		Lo:            DefaultLo,
		Hi:            DefaultHi,
		Steps:         DefaultSteps,
		MaxBisections: DefaultMaxBisections,
		Tolerance:     DefaultTolerance,
	}
}

// Validate checks the options for usable values.
func (o Options) Validate() error {
	switch {
	case math.IsNaN(o.Lo) || math.IsNaN(o.Hi) || math.IsInf(o.Lo, 0) || math.IsInf(o.Hi, 0):
		return fmt.Errorf("%w: range [%g, %g] is not finite", ErrInvalidOptions, o.Lo, o.Hi)
	case o.Lo >= o.Hi:
		return fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidOptions, o.Lo, o.Hi)
	case o.Steps < 1:
		return fmt.Errorf("%w: steps %d", ErrInvalidOptions, o.Steps)
	case o.MaxBisections < 0:
		return fmt.Errorf("%w: max bisections %d", ErrInvalidOptions, o.MaxBisections)
	case o.Tolerance < 0 || math.IsNaN(o.Tolerance):
		return fmt.Errorf("%w: tolerance %g", ErrInvalidOptions, o.Tolerance)
	}
	return nil
}

// Find returns the leftmost root of eq in [opts.Lo, opts.Hi], treating
// name as the unknown.
//
// The residual f = LHS - RHS is sampled at Steps+1 evenly spaced points.
// An exact zero at a sample is returned as is; the first sign change
// between two finite samples is refined by bisection. Samples where f is
// NaN or infinite are skipped and never bracket a root.
//
// Errors: ErrParse when eq does not parse or references names other than
// name, ErrNoRootFound when the scan sees neither a zero nor a sign change.
func Find(eq string, name string, opts Options) (float64, error) {
	f, err := residual(eq, name)
	if err != nil {
		return math.NaN(), err
	}
	return FindFunc(f, opts)
}

// FindFunc is Find over an arbitrary function.
func FindFunc(f func(float64) float64, opts Options) (float64, error) {
	if err := opts.Validate(); err != nil {
		return math.NaN(), err
	}
	root := math.NaN()
	scan(f, opts, func(x float64) bool {
		root = x
		return false
	})
	if math.IsNaN(root) {
		return root, equation.Errorf(equation.ErrNoRootFound, "no sign change in [%g, %g]", opts.Lo, opts.Hi)
	}
	return root, nil
}

// FindAll returns every root the scan brackets, left to right.
func FindAll(eq string, name string, opts Options) ([]float64, error) {
	f, err := residual(eq, name)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var roots []float64
	scan(f, opts, func(x float64) bool {
		roots = append(roots, x)
		return true
	})
	if len(roots) == 0 {
		return nil, equation.Errorf(equation.ErrNoRootFound, "no sign change in [%g, %g]", opts.Lo, opts.Hi)
	}
	return roots, nil
}

func residual(eq, name string) (func(float64) float64, error) {
	parsed, err := equation.Parse(eq)
	if err != nil {
		return nil, err
	}
	res, err := parsed.Residual([]string{name})
	if err != nil {
		return nil, err
	}
	vals := make([]float64, 1)
	return func(x float64) float64 {
		vals[0] = x
		return res.Eval(vals)
	}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// scan walks the sample grid and reports roots to emit until it returns
// false.
func scan(f func(float64) float64, o Options, emit func(float64) bool) {
	step := (o.Hi - o.Lo) / float64(o.Steps)

	var prevX, prevY float64
	prevOK := false
	for i := 0; i <= o.Steps; i++ {
		x := o.Lo + float64(i)*step
		if i == o.Steps {
			x = o.Hi
		}
		y := f(x)
		if !finite(y) {
			prevOK = false
			continue
		}
		if y == 0 {
			if !emit(x) {
				return
			}
			prevOK = false // the zero is not also a bracket endpoint
			continue
		}
		if prevOK && prevY*y < 0 {
			if !emit(bisect(f, prevX, x, prevY, o)) {
				return
			}
		}
		prevX, prevY, prevOK = x, y, true
	}
}

// bisect narrows [a, b] with f(a) = fa of opposite sign to f(b).
func bisect(f func(float64) float64, a, b, fa float64, o Options) float64 {
	for iter := 0; iter < o.MaxBisections; iter++ {
		mid := a + (b-a)/2
		fm := f(mid)
		if math.Abs(fm) < o.Tolerance {
			return mid
		}
		switch {
		case fa*fm < 0:
			b = mid
		case finite(fm):
			a, fa = mid, fm
		default:
			b = mid // undefined midpoint: keep the left half
		}
	}
	return a + (b-a)/2
}
