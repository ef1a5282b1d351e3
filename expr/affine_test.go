package expr_test

import (
	"testing"

	"github.com/katalvlaran/eqsolve/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIsAffine classifies typical left-hand sides.
func TestIsAffine(t *testing.T) {
	affine := []string{
		"x + 2*y", "2*x", "3x - y/2", "-(x - y)", "x*2^3", "sqrt(4)*x + 1", "(x+y)*3", "x/4 + 0.5",
	}
	for _, src := range affine {
		assert.True(t, expr.IsAffine(expr.MustParse(src)), "%q should be affine", src)
	}

	nonlinear := []string{
		"x^2 + y", "x*y", "2/x", "sin(x) + y", "x^1", "(x+1)(y+1)", "exp(y)",
	}
	for _, src := range nonlinear {
		assert.False(t, expr.IsAffine(expr.MustParse(src)), "%q should be nonlinear", src)
	}
}

// TestLinearize collects coefficients in first-seen order.
func TestLinearize(t *testing.T) {
	f, err := expr.Linearize(expr.MustParse("3y - x + 2 + 2x - 5/2*y + 2^2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, f.Order)
	assert.InDelta(t, 1.0, f.Coeff("x"), 1e-15)
	assert.InDelta(t, 0.5, f.Coeff("y"), 1e-15)
	assert.InDelta(t, 6.0, f.Constant, 1e-15)
	assert.Zero(t, f.Coeff("z"))
}

// TestLinearize_Nested distributes constants through nested sums.
func TestLinearize_Nested(t *testing.T) {
	f, err := expr.Linearize(expr.MustParse("-2*(x - (y + 1))/4"))
	require.NoError(t, err)
	assert.InDelta(t, -0.5, f.Coeff("x"), 1e-15)
	assert.InDelta(t, 0.5, f.Coeff("y"), 1e-15)
	assert.InDelta(t, 0.5, f.Constant, 1e-15)
}

// TestLinearize_Errors rejects non-affine trees and unknown functions.
func TestLinearize_Errors(t *testing.T) {
	_, err := expr.Linearize(expr.MustParse("x*y"))
	assert.ErrorIs(t, err, expr.ErrNonlinear)

	_, err = expr.Linearize(expr.MustParse("x + foo(2)"))
	assert.ErrorIs(t, err, expr.ErrUnknownFunction)
}
