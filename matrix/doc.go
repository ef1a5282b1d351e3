// Package matrix is the dense linear-algebra layer of the equation engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Solve, Gaussian elimination with partial pivoting and explicit
//     singularity thresholds (used by the linear system solver and by every
//     Newton step).
//   - Determinant and Inverse by pivoted elimination.
//   - Add, Sub, Mul, Transpose, MatVec and AllClose.
//   - Format and Parse for the "[1.00, 2.00]" rendering and "1,2;3,4" literals.
//
// All kernels validate first, copy their inputs, and return sentinel errors
// (ErrSingular, ErrDimensionMismatch, ...) wrapped with the operation name.
// Numeric thresholds are set with functional options:
//
//	x, err := matrix.Solve(a, b, matrix.WithPivotTolerance(1e-12))
//	if errors.Is(err, matrix.ErrSingular) {
//		// handle
//	}
package matrix
