package newton

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/eqsolve/equation"
)

// ErrInvalidOptions is returned when Options fail validation.
var ErrInvalidOptions = errors.New("newton: invalid options")

// Defaults.
const (
	DefaultMaxIterations   = 100
	DefaultTolerance       = 1e-8
	DefaultVerifyTolerance = 1e-6
	DefaultStep            = 1e-6
	DefaultDetThreshold    = 1e-12
	DefaultMaxHalvings     = 10
	DefaultAcceptRatio     = 1.1
)

// Options configures the multi-start solver.
//   - MaxIterations: Newton iterations per initial guess.
//   - Tolerance: residual norm that counts as converged.
//   - VerifyTolerance: residual norm the converged point must still meet.
//   - Step: central-difference step δ for the Jacobian.
//   - DetThreshold: |det J| below this aborts the guess as singular.
//   - MaxHalvings: line-search attempts per iteration.
//   - AcceptRatio: a trial step is accepted when ||F(x_new)|| < AcceptRatio·||F(x)||.
//   - Guesses: initial vectors tried in order; nil means DefaultGuesses().
type Options struct {
	MaxIterations   int
	Tolerance       float64
	VerifyTolerance float64
	Step            float64
	DetThreshold    float64
	MaxHalvings     int
	AcceptRatio     float64
	Guesses         [][]float64
}

// DefaultOptions returns the documented defaults with the default guess bank.
func DefaultOptions() Options {
	return Options{
		MaxIterations:   DefaultMaxIterations,
		Tolerance:       DefaultTolerance,
		VerifyTolerance: DefaultVerifyTolerance,
		Step:            DefaultStep,
		DetThreshold:    DefaultDetThreshold,
		MaxHalvings:     DefaultMaxHalvings,
		AcceptRatio:     DefaultAcceptRatio,
		Guesses:         DefaultGuesses(),
	}
}

// DefaultGuesses returns the eight preset initial vectors. Scalars are
// broadcast to every variable; the last two are cycled.
func DefaultGuesses() [][]float64 {
	return [][]float64{
		{1},
		{0.5},
		{2},
		{-1},
		{0.1},
		{5},
		{3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		{-2, 3, -1, 4, -3, 5, -4, 6},
	}
}

// Broadcast expands v to length n by cycling, v[i % len(v)], and truncates
// longer vectors. An empty v yields zeros.
func Broadcast(v []float64, n int) []float64 {
	out := make([]float64, n)
	if len(v) == 0 {
		return out
	}
	for i := range out {
		out[i] = v[i%len(v)]
	}
	return out
}

// Validate checks every numeric field.
func (o Options) Validate() error {
	pos := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidOptions, name, v)
		}
		return nil
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("%w: MaxIterations %d", ErrInvalidOptions, o.MaxIterations)
	}
	if o.MaxHalvings < 1 {
		return fmt.Errorf("%w: MaxHalvings %d", ErrInvalidOptions, o.MaxHalvings)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"Tolerance", o.Tolerance},
		{"VerifyTolerance", o.VerifyTolerance},
		{"Step", o.Step},
		{"DetThreshold", o.DetThreshold},
		{"AcceptRatio", o.AcceptRatio},
	} {
		if err := pos(f.name, f.v); err != nil {
			return err
		}
	}
	for i, g := range o.Guesses {
		if len(g) == 0 {
			return fmt.Errorf("%w: guess %d is empty", ErrInvalidOptions, i)
		}
	}
	return nil
}

// Result is a verified solution.
type Result struct {
	Solution   equation.SolutionMap
	Guess      []float64 // broadcast initial vector that converged
	Iterations int       // Newton iterations used by the winning attempt
	Attempts   int       // initial guesses tried, including the winner
}
