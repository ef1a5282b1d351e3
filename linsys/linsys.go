// Package linsys turns a linear equation system into A·x = b and solves it
// with partial-pivot Gaussian elimination.
package linsys

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/expr"
	"github.com/katalvlaran/eqsolve/matrix"
)

// Options holds the elimination thresholds.
type Options struct {
	// PivotTolerance is the smallest accepted |pivot| during elimination.
	PivotTolerance float64
	// BackSubTolerance is the smallest accepted diagonal in back-substitution.
	BackSubTolerance float64
}

// DefaultOptions returns 1e-14 / 1e-15.
func DefaultOptions() Options {
	return Options{
		PivotTolerance:   matrix.DefaultPivotTolerance,
		BackSubTolerance: matrix.DefaultBackSubTolerance,
	}
}

func (o Options) matrixOptions() []matrix.Option {
	return []matrix.Option{
		matrix.WithPivotTolerance(o.PivotTolerance),
		matrix.WithBackSubTolerance(o.BackSubTolerance),
	}
}

// System is the matrix form of a linear equation system.
type System struct {
	Variables []string          // column order, first appearance across the left sides
	A         *matrix.Dense     // A[i][j]: coefficient of Variables[j] in equation i
	B         []float64         // B[i]: right side minus constant terms of equation i
	Equations []equation.Equation
}

// row is one equation reduced to coefficients plus a right-hand value.
type row struct {
	coeffs map[string]float64
	rhs    float64
}

// Build extracts coefficients from every left side and evaluates every
// right side.
//
// A right side that references variables is accepted when it is affine;
// its terms move to the left. Otherwise the right side must evaluate to a
// finite constant, first with the expression evaluator and then with
// EvalArithmetic.
//
// Errors: ErrParse for non-linear or malformed sides, ErrDimensionMismatch
// when the variable count differs from the equation count.
func Build(eqs []equation.Equation) (*System, error) {
	if len(eqs) == 0 {
		return nil, equation.Errorf(equation.ErrParse, "no equations")
	}

	var (
		vars []string
		seen = make(map[string]struct{})
		rows = make([]row, len(eqs))
	)
	register := func(order []string) {
		for _, name := range order {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				vars = append(vars, name)
			}
		}
	}

	for i, eq := range eqs {
		lhs, rhs, err := eq.Sides()
		if err != nil {
			return nil, err
		}
		left, err := expr.Linearize(lhs)
		if err != nil {
			return nil, equation.Errorf(equation.ErrParse, "equation %d %q: %w", i+1, eq.String(), err)
		}
		register(left.Order)

		r := row{coeffs: left.Coeffs, rhs: -left.Constant}
		if len(expr.Variables(rhs)) > 0 {
			right, err := expr.Linearize(rhs)
			if err != nil {
				return nil, equation.Errorf(equation.ErrParse, "equation %d %q: right side: %w", i+1, eq.String(), err)
			}
			register(right.Order)
			for name, c := range right.Coeffs {
				r.coeffs[name] -= c
			}
			r.rhs += right.Constant
		} else {
			v, err := evalConstant(eq.RHS, rhs)
			if err != nil {
				return nil, equation.Errorf(equation.ErrParse, "equation %d %q: %w", i+1, eq.String(), err)
			}
			r.rhs += v
		}
		rows[i] = r
	}

	if len(vars) != len(eqs) {
		return nil, equation.Errorf(equation.ErrDimensionMismatch,
			"%d equations in %d variables %v", len(eqs), len(vars), vars)
	}

	n := len(vars)
	a, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, equation.Errorf(equation.ErrDimensionMismatch, "%w", err)
	}
	b := make([]float64, n)
	for i, r := range rows {
		for j, name := range vars {
			if err := a.Set(i, j, r.coeffs[name]); err != nil {
				return nil, equation.Errorf(equation.ErrDomain, "coefficient of %s in equation %d: %w", name, i+1, err)
			}
		}
		b[i] = r.rhs
	}

	return &System{Variables: vars, A: a, B: b, Equations: eqs}, nil
}

// evalConstant evaluates a variable-free right side.
func evalConstant(text string, tree expr.Node) (float64, error) {
	e, err := expr.Compile(tree, nil)
	if err == nil {
		if v := e.Eval(nil); !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
	}
	v, ferr := EvalArithmetic(text)
	if ferr != nil {
		if err != nil {
			return 0, errors.Join(err, ferr)
		}
		return 0, ferr
	}
	return v, nil
}

// Solve runs elimination on the assembled system.
//
// Errors: ErrSingularMatrix when a pivot or diagonal is below tolerance,
// ErrDomain for non-finite coefficients.
func (s *System) Solve(opts Options) (equation.SolutionMap, error) {
	x, err := matrix.Solve(s.A, s.B, opts.matrixOptions()...)
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return equation.SolutionMap{}, equation.Errorf(equation.ErrSingularMatrix, "%w", err)
	case errors.Is(err, matrix.ErrNaNInf):
		return equation.SolutionMap{}, equation.Errorf(equation.ErrDomain, "%w", err)
	case err != nil:
		return equation.SolutionMap{}, equation.Errorf(equation.ErrDimensionMismatch, "%w", err)
	}
	return equation.NewSolutionMap(s.Variables, x), nil
}

// Residuals substitutes x (in Variables order) into every equation and
// returns LHS - RHS per equation.
func (s *System) Residuals(x []float64) ([]float64, error) {
	if len(x) != len(s.Variables) {
		return nil, equation.Errorf(equation.ErrDimensionMismatch, "got %d values for %d variables", len(x), len(s.Variables))
	}
	out := make([]float64, len(s.Equations))
	for i, eq := range s.Equations {
		res, err := eq.Residual(s.Variables)
		if err != nil {
			return nil, err
		}
		out[i] = res.Eval(x)
	}
	return out, nil
}

// Defect returns A·x − b, the residual of the assembled matrix form.
func (s *System) Defect(x []float64) ([]float64, error) {
	ax, err := matrix.MatVec(s.A, x)
	if err != nil {
		return nil, equation.Errorf(equation.ErrDimensionMismatch, "%w", err)
	}
	for i := range ax {
		ax[i] -= s.B[i]
	}
	return ax, nil
}

// Solve builds and solves eqs in one step.
func Solve(eqs []equation.Equation, opts Options) (equation.SolutionMap, error) {
	sys, err := Build(eqs)
	if err != nil {
		return equation.SolutionMap{}, err
	}
	return sys.Solve(opts)
}

// String renders the augmented matrix, one equation per line.
func (s *System) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", s.Variables)
	for i := range s.B {
		fmt.Fprintf(&b, "%v | %g\n", s.A.Row(i), s.B[i])
	}
	return b.String()
}
