// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/stretchr/testify/assert"
)

// TestDefaultOptions pins the documented defaults.
func TestDefaultOptions(t *testing.T) {
	o := matrix.DefaultOptions()
	assert.Equal(t, matrix.DefaultPivotTolerance, o.PivotTolerance())
	assert.Equal(t, matrix.DefaultBackSubTolerance, o.BackSubTolerance())
	assert.Equal(t, matrix.DefaultValidateNaNInf, o.ValidateNaNInf())
	assert.Equal(t, matrix.DefaultPrecision, o.Precision())
	assert.Equal(t, 1e-14, matrix.DefaultPivotTolerance)
	assert.Equal(t, 1e-15, matrix.DefaultBackSubTolerance)
}

// TestOptions_PanicOnNonsense verifies constructor validation.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { matrix.WithPivotTolerance(-1) })
	assert.Panics(t, func() { matrix.WithPivotTolerance(math.NaN()) })
	assert.Panics(t, func() { matrix.WithBackSubTolerance(math.Inf(1)) })
	assert.Panics(t, func() { matrix.WithPrecision(-1) })
	assert.Panics(t, func() { matrix.WithPrecision(18) })
	assert.NotPanics(t, func() { matrix.WithPivotTolerance(0) })
}

// TestBackSubTolerance triggers the back-substitution guard alone.
func TestBackSubTolerance(t *testing.T) {
	a := MustDense(t, [][]float64{{1, 0}, {0, 1e-9}})
	_, err := matrix.Solve(a, []float64{1, 1},
		matrix.WithPivotTolerance(0), matrix.WithBackSubTolerance(1e-6))
	assert.ErrorIs(t, err, matrix.ErrSingular)

	x, err := matrix.Solve(a, []float64{1, 1})
	assert.NoError(t, err)
	assert.InDelta(t, 1e9, x[1], 1e-3)
}
