// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDense_InvalidDimensions verifies non-positive shapes are rejected.
func TestNewDense_InvalidDimensions(t *testing.T) {
	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(shape[0], shape[1])
		assert.ErrorIs(t, err, matrix.ErrInvalidDimensions, "shape %v", shape)
	}
}

// TestDense_AtSet covers bounds checks and the finite-only policy.
func TestDense_AtSet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	rows, cols := m.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	require.NoError(t, m.Set(1, 2, 7.5))
	assert.Equal(t, 7.5, MustAt(t, m, 1, 2))

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange, "row out of range")
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange, "col out of range")
	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf, "NaN rejected")
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf, "-Inf rejected")
}

// TestNewFromRows checks copying, raggedness and policy options.
func TestNewFromRows(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4}}
	m := MustDense(t, src)
	src[0][0] = 99
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0), "input is copied")
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.RawRows())
	assert.Equal(t, []float64{3, 4}, m.Row(1))
	assert.Nil(t, m.Row(2))

	_, err := matrix.NewFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewFromRows(nil)
	assert.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewFromRows([][]float64{{math.Inf(1)}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	relaxed, err := matrix.NewFromRows([][]float64{{math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	assert.True(t, math.IsInf(MustAt(t, relaxed, 0, 0), 1))
}

// TestDense_Clone ensures clones are independent.
func TestDense_Clone(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2}})
	c := m.Clone()
	require.NoError(t, c.Set(0, 0, 5))
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, 5.0, MustAt(t, c, 0, 0))
}

// TestDense_String uses the shortest %g-style representation.
func TestDense_String(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2.5}, {-3, 0}})
	assert.Equal(t, "[1, 2.5]\n[-3, 0]\n", m.String())
}

// TestFormat prints two decimals by default.
func TestFormat(t *testing.T) {
	m := MustDense(t, [][]float64{{1, 2}, {3.14159, -0.5}})
	assert.Equal(t, "[1.00, 2.00]\n[3.14, -0.50]\n", matrix.Format(m))
	assert.Equal(t, "[1.0, 2.0]\n[3.1, -0.5]\n", matrix.Format(m, matrix.WithPrecision(1)))
	assert.Equal(t, "", matrix.Format(nil))
}

// TestParse reads literals with ';' rows and ','/space separators.
func TestParse(t *testing.T) {
	m, err := matrix.Parse("1,2;3,4")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, m.RawRows())

	m, err = matrix.Parse("1 2 3\n4 5 6\n")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.RawRows())

	_, err = matrix.Parse("1,x;3,4")
	assert.ErrorIs(t, err, matrix.ErrBadLiteral)
	_, err = matrix.Parse(" ; ")
	assert.ErrorIs(t, err, matrix.ErrBadLiteral)
	_, err = matrix.Parse("1,2;3")
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
