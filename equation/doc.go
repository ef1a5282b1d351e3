// Package equation holds the data model shared by the solvers: the
// Equation and System types, the error taxonomy, input preprocessing,
// system classification, variable extraction and result formatting.
//
// Classification walks the parsed left-hand side of every equation:
// a system is Linear when each LHS is an affine combination of its
// variables (see expr.IsAffine) and Nonlinear otherwise. Right-hand sides
// are not inspected.
//
// Every error returned by the solvers matches exactly one taxonomy
// sentinel (ErrParse, ErrDimensionMismatch, ErrSingularMatrix, ErrDomain,
// ErrDivergence, ErrNoRootFound) and usually also the lower-level cause
// from expr or matrix, so both
//
//	errors.Is(err, equation.ErrParse)
//	errors.Is(err, expr.ErrUnknownFunction)
//
// hold for a call to an unknown function.
package equation
