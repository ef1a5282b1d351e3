// SPDX-License-Identifier: MIT
// Package matrix: elimination kernels (Solve, Determinant, Inverse).
//
// Purpose:
//   - Solve dense square systems A·x = b by Gaussian elimination with partial pivoting.
//   - Compute determinants by the same pivoted elimination with sign tracking.
//   - Invert by Gauss–Jordan elimination with partial pivoting.
//
// Determinism:
//   - Pivot search scans rows top-down and keeps the FIRST row holding the maximum |a[i,k]|,
//     so ties resolve identically on every run.
//
// Notes:
//   - Every kernel works on a private copy; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// pivotRow returns the row r ≥ k maximizing |a[r,k]| and that magnitude.
func pivotRow(a *Dense, k int) (int, float64) {
	n := a.c
	best, bestAbs := k, math.Abs(a.data[k*n+k])
	for i := k + 1; i < a.r; i++ {
		if v := math.Abs(a.data[i*n+k]); v > bestAbs {
			best, bestAbs = i, v
		}
	}

	return best, bestAbs
}

// swapRows exchanges rows i and j of a in place.
func swapRows(a *Dense, i, j int) {
	if i == j {
		return
	}
	n := a.c
	ri, rj := a.data[i*n:(i+1)*n], a.data[j*n:(j+1)*n]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// Solve returns x with A·x = b using Gaussian elimination with partial pivoting.
//
// Implementation:
//   - Stage 1: validate A square and non-nil, len(b) == n, all values finite.
//   - Stage 2: forward elimination. For each column k pick the row ≥ k with the largest
//     |a[i,k]|; if that maximum is below the pivot tolerance fail with ErrSingular;
//     swap it into place and eliminate every row below.
//   - Stage 3: back-substitution from the last row upward; a diagonal entry below the
//     back-substitution tolerance fails with ErrSingular.
//
// Behavior highlights:
//   - A and b are copied; callers keep their inputs.
//
// Inputs:
//   - a: n×n coefficient matrix.
//   - b: right-hand side of length n.
//   - opts: WithPivotTolerance, WithBackSubTolerance.
//
// Returns:
//   - []float64: the solution vector x.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch (shape).
//   - ErrNaNInf (non-finite input).
//   - ErrSingular (pivot or diagonal below tolerance).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Solve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := a.Rows()
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	m, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err = ValidateFinite(m, b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	rhs := append([]float64(nil), b...)

	// Stage 2: forward elimination with partial pivoting.
	var i, j, k, p int
	var pivAbs, f float64
	for k = 0; k < n; k++ {
		p, pivAbs = pivotRow(m, k)
		if pivAbs < o.pivotTol {
			return nil, matrixErrorf(opSolve, fmt.Errorf("column %d: best pivot %g: %w", k, pivAbs, ErrSingular))
		}
		if p != k {
			swapRows(m, p, k)
			rhs[p], rhs[k] = rhs[k], rhs[p]
		}
		for i = k + 1; i < n; i++ {
			f = m.data[i*n+k] / m.data[k*n+k]
			if f == 0 {
				continue
			}
			rhs[i] -= f * rhs[k]
			for j = k; j < n; j++ {
				m.data[i*n+j] -= f * m.data[k*n+j]
			}
		}
	}

	// Stage 3: back-substitution.
	x := make([]float64, n)
	var sum, diag float64
	for i = n - 1; i >= 0; i-- {
		sum = ZeroSum
		for j = i + 1; j < n; j++ {
			sum += m.data[i*n+j] * x[j]
		}
		diag = m.data[i*n+i]
		if math.Abs(diag) < o.backSubTol {
			return nil, matrixErrorf(opSolve, fmt.Errorf("row %d: diagonal %g: %w", i, diag, ErrSingular))
		}
		x[i] = (rhs[i] - sum) / diag
	}

	return x, nil
}

// Determinant returns det(A) by pivoted elimination with sign tracking.
//
// Implementation:
//   - Stage 1: validate A square, non-nil, finite.
//   - Stage 2: eliminate with partial pivoting; each row swap flips the sign; the
//     determinant is the signed product of the pivots.
//
// Behavior highlights:
//   - A column with no non-zero candidate pivot yields exactly 0 (no error). Near-zero
//     determinants are returned as computed; callers apply their own threshold.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Determinant(a Matrix) (float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	m, err := toDense(a)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}
	if err = ValidateFinite(m, nil); err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	n := m.r
	det := 1.0
	var i, j, k, p int
	var pivAbs, f float64
	for k = 0; k < n; k++ {
		p, pivAbs = pivotRow(m, k)
		if pivAbs == 0 {
			return 0, nil
		}
		if p != k {
			swapRows(m, p, k)
			det = -det
		}
		det *= m.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = m.data[i*n+k] / m.data[k*n+k]
			if f == 0 {
				continue
			}
			for j = k; j < n; j++ {
				m.data[i*n+j] -= f * m.data[k*n+j]
			}
		}
	}

	return det, nil
}

// Inverse returns A⁻¹ by Gauss–Jordan elimination with partial pivoting.
//
// Implementation:
//   - Stage 1: validate A square, non-nil, finite; set up the augmented pair [A | I].
//   - Stage 2: for each column pick the largest pivot (ErrSingular below the pivot
//     tolerance), swap, normalize the pivot row, clear the column in every other row.
//   - Stage 3: the right half now holds A⁻¹.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrSingular.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(a Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	m, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if err = ValidateFinite(m, nil); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := m.r
	inv, err := Identity(n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var i, j, k, p int
	var pivAbs, piv, f float64
	for k = 0; k < n; k++ {
		p, pivAbs = pivotRow(m, k)
		if pivAbs < o.pivotTol {
			return nil, matrixErrorf(opInverse, fmt.Errorf("column %d: best pivot %g: %w", k, pivAbs, ErrSingular))
		}
		swapRows(m, p, k)
		swapRows(inv, p, k)

		piv = m.data[k*n+k]
		for j = 0; j < n; j++ {
			m.data[k*n+j] /= piv
			inv.data[k*n+j] /= piv
		}
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			f = m.data[i*n+k]
			if f == 0 {
				continue
			}
			for j = 0; j < n; j++ {
				m.data[i*n+j] -= f * m.data[k*n+j]
				inv.data[i*n+j] -= f * inv.data[k*n+j]
			}
		}
	}

	return inv, nil
}
