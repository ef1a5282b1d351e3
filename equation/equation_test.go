package equation_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalize covers every substitution and the cases that must stay
// untouched.
func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"2 × 3 ÷ 4", "2*3/4"},
		{"（1+2）×3", "(1+2)*3"},
		{"(−)5+1", "(-1)5+1"},
		{"2*π", "2*3.141592653589793"},
		{"2π", "2*3.141592653589793"},
		{"ππ", "3.141592653589793*3.141592653589793"},
		{"xπ(1)", "x*3.141592653589793*(1)"},
		{"sin(π/2)", "sin(3.141592653589793/2)"},
		{"e", "2.718281828459045"},
		{"e^2 + 1", "2.718281828459045^2+1"},
		{"2*e", "2*2.718281828459045"},
		{"exp(1)", "exp(1)"},
		{"1e5+x", "1e5+x"},
		{"xe + e_1", "xe+e_1"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, equation.Normalize(tc.in), "Normalize(%q)", tc.in)
	}
}

// TestNormalize_Idempotent verifies a second pass changes nothing.
func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"e×π÷2", "(−)x + 3 = e", "sin(π/2)"} {
		once := equation.Normalize(in)
		assert.Equal(t, once, equation.Normalize(once), in)
	}
}

// TestParse checks the single '=' rule.
func TestParse(t *testing.T) {
	eq, err := equation.Parse(" 2 * x = 4 ")
	require.NoError(t, err)
	assert.Equal(t, "2*x", eq.LHS)
	assert.Equal(t, "4", eq.RHS)
	assert.Equal(t, "2*x = 4", eq.String())

	for _, bad := range []string{"", "x + 1", "x = 1 = 2", "= 3", "x ="} {
		_, err := equation.Parse(bad)
		assert.ErrorIs(t, err, equation.ErrParse, "%q", bad)
	}
}

// TestClassify follows the documented classification examples.
func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		kind equation.Kind
		n    int
	}{
		{"2*x = 4", equation.KindSingle, 1},
		{"x^2 - 4 = 0", equation.KindSingle, 1},
		{"x + 2*y = 3", equation.KindLinear, 1},
		{"x^2 + y = 3", equation.KindNonlinear, 1},
		{"3 = t", equation.KindSingle, 1},
		{"2 = 2", equation.KindLinear, 1},
		{"x + 2*y = 3; x - y = 0", equation.KindLinear, 2},
		{"x^2 + y = 3; x - y = 1", equation.KindNonlinear, 2},
		{"x + y = 3\nx - y = 1", equation.KindLinear, 2},
		{"x + y = 3\r\n\r\nx - y = 1\n", equation.KindLinear, 2},
		{"x*y = 12; x + y = 7", equation.KindNonlinear, 2},
		{"2x + 3y = 1; x/2 - y = sin(1)", equation.KindLinear, 2},
		{"sin(x) = y; x + y = 1", equation.KindNonlinear, 2},
	}
	for _, tc := range cases {
		sys, err := equation.Classify(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.kind, sys.Kind, "%q", tc.in)
		assert.Len(t, sys.Equations, tc.n, "%q", tc.in)
	}
}

// TestClassify_LoneEquations routes a lone equation by its variable count:
// one variable goes to the root finder, more are classified by the left side.
func TestClassify_LoneEquations(t *testing.T) {
	for in, want := range map[string]equation.Kind{
		"x + 2*y = 3": equation.KindLinear,
		"x^2 + y = 3": equation.KindNonlinear,
		"2*x = 4":     equation.KindSingle,
	} {
		sys, err := equation.Classify(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, sys.Kind, "%q", in)
		require.Len(t, sys.Equations, 1, "%q", in)
	}

	_, err := equation.Classify("x^ + y = 3")
	assert.ErrorIs(t, err, equation.ErrParse)
}

// TestClassify_Errors exercises the parse failures.
func TestClassify_Errors(t *testing.T) {
	for _, bad := range []string{"", "   ", "x + 1", "x = 1 = 2 = 3;", "x+ = 1; y = 2", ";;"} {
		_, err := equation.Classify(bad)
		assert.ErrorIs(t, err, equation.ErrParse, "%q", bad)
	}
}

// TestExtractVariables verifies order across equations and function name
// exclusion.
func TestExtractVariables(t *testing.T) {
	got, err := equation.ExtractVariables([]string{"y + sin(x) = 1", "z*x = cos(y) + w"})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x", "z", "w"}, got)

	got, err = equation.ExtractVariables([]string{"exp(2) = e"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = equation.ExtractVariables([]string{"x + = 2"})
	assert.ErrorIs(t, err, equation.ErrParse)
}

// TestResidual builds LHS - RHS and reports unknown names as ErrParse.
func TestResidual(t *testing.T) {
	eq := equation.MustParse("x^2 = 4")
	res, err := eq.Residual([]string{"x"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Eval([]float64{2}))
	assert.Equal(t, -4.0, res.Eval([]float64{0}))

	_, err = equation.MustParse("y = 1").Residual([]string{"x"})
	assert.ErrorIs(t, err, equation.ErrParse)
	assert.ErrorIs(t, err, expr.ErrUnknownIdentifier)
}

// TestFormatValue covers integer snapping, decimals and non-finite values.
func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.00000000003, "2"},
		{-3, "-3"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1.5, "1.5"},
		{1.0 / 3.0, "0.33333333"},
		{-2.0 / 3.0, "-0.66666667"},
		{1e20, "100000000000000000000"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, equation.FormatValue(tc.in), "FormatValue(%v)", tc.in)
	}
}

// TestSolutionMap keeps insertion order and renders pairs.
func TestSolutionMap(t *testing.T) {
	var m equation.SolutionMap
	m.Set("x", 2)
	m.Set("y", 1)
	m.Set("x", 3)
	assert.Equal(t, []string{"x", "y"}, m.Names())
	assert.Equal(t, []float64{3, 1}, m.Values())
	assert.Equal(t, "x = 3, y = 1", m.String())
	assert.Equal(t, 2, m.Len())

	v, ok := m.Get("y")
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = m.Get("z")
	assert.False(t, ok)

	n := equation.NewSolutionMap([]string{"a", "b"}, []float64{0.5})
	assert.Equal(t, "a = 0.5", n.String())
}

// TestErrors checks DivergenceError unwrapping and Category.
func TestErrors(t *testing.T) {
	cause := equation.Errorf(equation.ErrSingularMatrix, "jacobian det %g", 1e-20)
	err := fmt.Errorf("solve: %w", &equation.DivergenceError{Attempts: 8, Last: cause})

	assert.ErrorIs(t, err, equation.ErrDivergence)
	assert.ErrorIs(t, err, equation.ErrSingularMatrix)
	assert.Equal(t, equation.ErrDivergence, equation.Category(err))
	assert.Contains(t, err.Error(), "8 initial guesses")

	var de *equation.DivergenceError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 8, de.Attempts)

	assert.Equal(t, equation.ErrParse, equation.Category(equation.Errorf(equation.ErrParse, "x")))
	assert.Nil(t, equation.Category(errors.New("other")))
}
