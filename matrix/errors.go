// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so the sentinel is easy to
// grep for in logs. Kernels wrap with matrixErrorf(opTag, ErrX) at the
// facade; callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/dimension -> NaN/Inf -> singularity.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, Mul where a.Cols != b.Rows, or a
	// right-hand side whose length differs from the system size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// (Set under the finite-only policy, Solve inputs).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrSingular is returned when the best available pivot, or a diagonal
	// entry met during back-substitution, is below the configured tolerance.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrBadLiteral is returned by Parse for text that is not a
	// "1,2;3,4"-style matrix literal.
	ErrBadLiteral = errors.New("matrix: malformed matrix literal")
)
