// SPDX-License-Identifier: MIT
// Package matrix provides element-wise addition, subtraction, matrix
// multiplication and transpose over any Matrix implementation. All functions
// perform strict fail-fast validation and return clear errors on dimension
// mismatches.
//
// Purpose:
//   - Declare the arithmetic kernels behind the calculator's matrix operations.
//   - Define operation tags and shared constants for determinism and error reporting.
//
// Notes:
//   - Elimination kernels (Solve, Determinant, Inverse) live in solve.go.
//   - All kernels use the central validators and wrap via matrixErrorf at the facade.

package matrix

import (
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opTranspose   = "Transpose"
	opSolve       = "Solve"
	opDeterminant = "Determinant"
	opInverse     = "Inverse"
	opAllClose    = "AllClose"
	opParse       = "Parse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Inputs:
//   - tag: operation name/label (use package-level op* constants; no magic strings).
//   - err: underlying non-nil error to wrap.
//
// Returns:
//   - error: formats as "<tag>: <underlying>" and still matches Is/As.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b). Allocate result Dense(rows, cols).
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Inputs:
//   - a, b: conformable matrices (non-nil; same rows/cols).
//   - sign: +1 for Add, −1 for Sub (callers must enforce).
//   - opTag: opAdd for Add, opSub for Sub (for error wrapping).
//
// Errors:
//   - ErrNilMatrix          (when a or b is nil).
//   - ErrDimensionMismatch  (when shapes differ).
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := newDenseWithPolicy(rows, cols, false)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Add").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Sub").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Sub(a, b Matrix) (*Dense, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C (a.Rows × b.Cols).
//   - Stage 2: Dense fast path uses i→k→j loop order so the inner loop walks
//     contiguous rows of B and C; fallback reads through At.
//
// Behavior highlights:
//   - Deterministic summation order per output cell.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(n·m·p), Space O(n·p).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	n, m, p := a.Rows(), a.Cols(), b.Cols()
	res, err := newDenseWithPolicy(n, p, false)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	var i, k, j int
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var aik float64
			for i = 0; i < n; i++ {
				for k = 0; k < m; k++ {
					aik = da.data[i*m+k]
					if aik == 0 {
						continue
					}
					for j = 0; j < p; j++ {
						res.data[i*p+j] += aik * db.data[k*p+j]
					}
				}
			}

			return res, nil
		}
	}

	var av, bv, sum float64
	for i = 0; i < n; i++ {
		for j = 0; j < p; j++ {
			sum = ZeroSum
			for k = 0; k < m; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*p+j] = sum
		}
	}

	return res, nil
}

// Transpose returns a new matrix Mᵀ with swapped dimensions.
//
// Errors:
//   - ErrNilMatrix (wrapped with "Transpose").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	r, c := m.Rows(), m.Cols()
	res, err := newDenseWithPolicy(c, r, false)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				res.data[j*r+i] = d.data[i*c+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*r+i] = v
		}
	}

	return res, nil
}

// MatVec computes y = A·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != a.Cols()).
func MatVec(a Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateVecLen(x, a.Cols()); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	d, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	y := make([]float64, d.r)
	var i, j int
	for i = 0; i < d.r; i++ {
		sum := ZeroSum
		for j = 0; j < d.c; j++ {
			sum += d.data[i*d.c+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// AllClose reports whether a and b have the same shape and every pair of
// entries differs by at most tol.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, tol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	da, err := toDense(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	db, err := toDense(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for idx := range da.data {
		if math.Abs(da.data[idx]-db.data[idx]) > tol {
			return false, nil
		}
	}

	return true, nil
}
