// Package newton solves square nonlinear systems with a multi-start,
// damped Newton–Raphson iteration over central-difference Jacobians.
//
// Each initial guess runs at most MaxIterations steps. A step solves
// J·Δ = −F(x) and backtracks Δ by halving until the residual norm drops
// below AcceptRatio times the current one; the last trial point is kept
// even when no trial is accepted. The first guess whose iterate converges
// and re-verifies wins. When every guess fails the error is a
// *equation.DivergenceError carrying the last failure.
package newton

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/expr"
	"github.com/katalvlaran/eqsolve/matrix"
)

// Solve is SolveContext with a background context.
func Solve(eqs []equation.Equation, opts Options) (Result, error) {
	return SolveContext(context.Background(), eqs, opts)
}

// SolveContext solves eqs, checking ctx between iterations.
//
// Errors: ErrDimensionMismatch when the variable count differs from the
// equation count, ErrParse for malformed equations, ErrInvalidOptions,
// ctx.Err() on cancellation, and *equation.DivergenceError when every
// guess fails.
func SolveContext(ctx context.Context, eqs []equation.Equation, opts Options) (Result, error) {
	if opts.Guesses == nil {
		opts.Guesses = DefaultGuesses()
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	names, err := equation.VariablesOf(eqs)
	if err != nil {
		return Result{}, err
	}
	if len(names) != len(eqs) {
		return Result{}, equation.Errorf(equation.ErrDimensionMismatch,
			"%d equations in %d variables %v", len(eqs), len(names), names)
	}

	sys := &system{names: names, opts: opts}
	for _, eq := range eqs {
		res, err := eq.Residual(names)
		if err != nil {
			return Result{}, err
		}
		sys.res = append(sys.res, res)
	}

	var last error
	for i, g := range opts.Guesses {
		x0 := Broadcast(g, len(names))
		x, iters, err := sys.run(ctx, x0)
		if err == nil {
			err = sys.verify(x)
		}
		if err == nil {
			return Result{
				Solution:   equation.NewSolutionMap(names, x),
				Guess:      x0,
				Iterations: iters,
				Attempts:   i + 1,
			}, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		last = fmt.Errorf("guess %v: %w", x0, err)
	}

	return Result{}, &equation.DivergenceError{Attempts: len(opts.Guesses), Last: last}
}

// system holds the compiled residuals F_i = LHS_i − RHS_i.
type system struct {
	names []string
	res   []*expr.Expression
	opts  Options
}

// eval fills f with F(x) and reports whether every entry is finite.
func (s *system) eval(x, f []float64) bool {
	ok := true
	for i, r := range s.res {
		f[i] = r.Eval(x)
		if math.IsNaN(f[i]) || math.IsInf(f[i], 0) {
			ok = false
		}
	}
	return ok
}

// jacobian approximates J[i][j] = (f_i(x + δe_j) − f_i(x − δe_j)) / 2δ.
func (s *system) jacobian(x []float64) (*matrix.Dense, error) {
	n := len(x)
	j, err := matrix.NewFromRows(make2D(n), matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, err
	}
	h := s.opts.Step
	xp := append([]float64(nil), x...)
	for col := 0; col < n; col++ {
		orig := xp[col]
		xp[col] = orig + h
		plus := make([]float64, n)
		for i, r := range s.res {
			plus[i] = r.Eval(xp)
		}
		xp[col] = orig - h
		for i, r := range s.res {
			if err := j.Set(i, col, (plus[i]-r.Eval(xp))/(2*h)); err != nil {
				return nil, err
			}
		}
		xp[col] = orig
	}
	return j, nil
}

func make2D(n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	return rows
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// run iterates from x0 and returns the converged point.
func (s *system) run(ctx context.Context, x0 []float64) ([]float64, int, error) {
	n := len(x0)
	x := append([]float64(nil), x0...)
	f := make([]float64, n)
	fNew := make([]float64, n)
	xNew := make([]float64, n)
	rhs := make([]float64, n)

	for iter := 0; iter < s.opts.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, iter, err
		}
		if !s.eval(x, f) {
			return nil, iter, equation.Errorf(equation.ErrDomain, "residual not finite at %v (iteration %d)", x, iter)
		}
		fNorm := norm(f)
		if fNorm < s.opts.Tolerance {
			return x, iter, nil
		}

		jac, err := s.jacobian(x)
		if err != nil {
			return nil, iter, equation.Errorf(equation.ErrDomain, "jacobian at %v: %w", x, err)
		}
		det, err := matrix.Determinant(jac)
		if err != nil {
			return nil, iter, equation.Errorf(equation.ErrDomain, "jacobian at %v: %w", x, err)
		}
		if math.Abs(det) < s.opts.DetThreshold {
			return nil, iter, equation.Errorf(equation.ErrSingularMatrix,
				"jacobian determinant %g at %v (iteration %d)", det, x, iter)
		}

		for i := range f {
			rhs[i] = -f[i]
		}
		delta, err := matrix.Solve(jac, rhs)
		switch {
		case errors.Is(err, matrix.ErrSingular):
			return nil, iter, equation.Errorf(equation.ErrSingularMatrix, "newton step at %v: %w", x, err)
		case err != nil:
			return nil, iter, equation.Errorf(equation.ErrDomain, "newton step at %v: %w", x, err)
		}
		for _, d := range delta {
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return nil, iter, equation.Errorf(equation.ErrDomain, "newton step not finite at %v", x)
			}
		}

		// Backtracking: the last trial point is committed even if none
		// was accepted.
		alpha := 1.0
		for h := 0; h < s.opts.MaxHalvings; h++ {
			for i := range x {
				xNew[i] = x[i] + alpha*delta[i]
			}
			if s.eval(xNew, fNew) && norm(fNew) < s.opts.AcceptRatio*fNorm {
				break
			}
			alpha /= 2
		}
		copy(x, xNew)
	}

	return nil, s.opts.MaxIterations, equation.Errorf(equation.ErrDivergence,
		"no convergence after %d iterations", s.opts.MaxIterations)
}

// verify re-evaluates the residual at x.
func (s *system) verify(x []float64) error {
	f := make([]float64, len(x))
	if !s.eval(x, f) {
		return equation.Errorf(equation.ErrDomain, "residual not finite at solution %v", x)
	}
	if nrm := norm(f); nrm >= s.opts.VerifyTolerance {
		return equation.Errorf(equation.ErrDivergence, "residual norm %g at %v fails verification", nrm, x)
	}
	return nil
}
