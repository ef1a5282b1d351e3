// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolve_Exact solves a system that needs a row swap.
func TestSolve_Exact(t *testing.T) {
	a := MustDense(t, [][]float64{{0, 1, 1}, {2, 1, -1}, {1, -1, 2}})
	b := []float64{3, 1, 3}

	x, err := matrix.Solve(a, b)
	require.NoError(t, err)

	ax, err := matrix.MatVec(a, x)
	require.NoError(t, err)
	for i := range b {
		assert.InDelta(t, b[i], ax[i], 1e-12, "row %d", i)
	}
	assert.Equal(t, 0.0, MustAt(t, a, 0, 0), "input not mutated")
	assert.Equal(t, []float64{3, 1, 3}, b, "rhs not mutated")
}

// TestSolve_TwoByTwo is the canonical x+y=3, x-y=1 system.
func TestSolve_TwoByTwo(t *testing.T) {
	x, err := matrix.Solve(MustDense(t, [][]float64{{1, 1}, {1, -1}}), []float64{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, x)
}

// TestSolve_Singular covers an exactly dependent system and the tolerance.
func TestSolve_Singular(t *testing.T) {
	_, err := matrix.Solve(MustDense(t, [][]float64{{1, 1}, {2, 2}}), []float64{1, 3})
	assert.ErrorIs(t, err, matrix.ErrSingular)

	tiny := MustDense(t, [][]float64{{1e-13, 0}, {0, 1}})
	_, err = matrix.Solve(tiny, []float64{1, 1})
	require.NoError(t, err, "1e-13 is above the default pivot tolerance")

	_, err = matrix.Solve(tiny, []float64{1, 1}, matrix.WithPivotTolerance(1e-12))
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

// TestSolve_Validation checks shape and finiteness guards.
func TestSolve_Validation(t *testing.T) {
	_, err := matrix.Solve(MustDense(t, [][]float64{{1, 2, 3}}), []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.Solve(IdentityDense(t, 2), []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Solve(IdentityDense(t, 2), []float64{1, math.NaN()})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.Solve(nil, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestDeterminant checks sign tracking and singular input.
func TestDeterminant(t *testing.T) {
	cases := []struct {
		rows [][]float64
		want float64
	}{
		{[][]float64{{4, 7}, {2, 6}}, 10},
		{[][]float64{{0, 1}, {1, 0}}, -1},
		{[][]float64{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}, 24},
		{[][]float64{{1, 2}, {2, 4}}, 0},
		{[][]float64{{6, 1, 1}, {4, -2, 5}, {2, 8, 7}}, -306},
	}
	for _, tc := range cases {
		det, err := matrix.Determinant(MustDense(t, tc.rows))
		require.NoError(t, err)
		assert.InDelta(t, tc.want, det, 1e-9, "%v", tc.rows)
	}

	_, err := matrix.Determinant(MustDense(t, [][]float64{{1, 2}}))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
}

// TestInverse verifies A·A⁻¹ = I and the singular guard.
func TestInverse(t *testing.T) {
	a := MustDense(t, [][]float64{{4, 7}, {2, 6}})
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	RequireClose(t, IdentityDense(t, 2), prod, 1e-12)
	assert.Equal(t, "[0.60, -0.70]\n[-0.20, 0.40]\n", matrix.Format(inv))

	_, err = matrix.Inverse(MustDense(t, [][]float64{{1, 2}, {2, 4}}))
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

// TestInverse_Pivoting needs a row swap on the first column.
func TestInverse_Pivoting(t *testing.T) {
	a := MustDense(t, [][]float64{{0, 2, 1}, {1, 1, 0}, {3, 0, 1}})
	inv, err := matrix.Inverse(hide{a})
	require.NoError(t, err)

	prod, err := matrix.Mul(inv, a)
	require.NoError(t, err)
	RequireClose(t, IdentityDense(t, 3), prod, 1e-12)
}
