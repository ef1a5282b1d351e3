package engine_test

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/katalvlaran/eqsolve/engine"
	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/internal/logging"
	"github.com/katalvlaran/eqsolve/internal/metrics"
	"github.com/katalvlaran/eqsolve/newton"
	"github.com/katalvlaran/eqsolve/rootfind"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalculate covers keypad notation, constants and formatting.
func TestCalculate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2×3÷4", "1.5"},
		{"1 + 2 * 3", "7"},
		{"(−)5 + 2", "-3"},
		{"2π", "6.28318531"},
		{"e^0", "1"},
		{"sqrt(16) + 2^3", "12"},
		{"1/3", "0.33333333"},
		{"0.1 + 0.2", "0.3"},
	}
	s := engine.New()
	for _, tc := range cases {
		got, err := s.Calculate(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

// TestCalculate_Errors maps failures onto the taxonomy.
func TestCalculate_Errors(t *testing.T) {
	s := engine.New()
	cases := []struct {
		in   string
		kind error
	}{
		{"", equation.ErrParse},
		{"   ", equation.ErrParse},
		{"2 +", equation.ErrParse},
		{"x + 1", equation.ErrParse},
		{"log(-1)", equation.ErrDomain},
		{"0/0", equation.ErrDomain},
		{"1/0", equation.ErrDomain},
	}
	for _, tc := range cases {
		_, err := s.Calculate(tc.in)
		assert.ErrorIs(t, err, tc.kind, "%q", tc.in)
	}

	_, err := s.Calculate("1/0")
	assert.ErrorContains(t, err, "result infinite")
	_, err = s.Calculate("0/0")
	assert.ErrorContains(t, err, "result undefined")
}

// TestCalculate_LastAnswer feeds ans back and ignores failures.
func TestCalculate_LastAnswer(t *testing.T) {
	s := engine.New()
	assert.Equal(t, "0", s.LastAnswer())

	_, err := s.Calculate("6 * 7")
	require.NoError(t, err)
	assert.Equal(t, "42", s.LastAnswer())

	got, err := s.Calculate("ans / 2")
	require.NoError(t, err)
	assert.Equal(t, "21", got)

	_, err = s.Calculate("log(-1)")
	require.Error(t, err)
	assert.Equal(t, 21.0, s.LastAnswerValue())
}

// TestSolve_Dispatch routes each kind to its solver.
func TestSolve_Dispatch(t *testing.T) {
	s := engine.New()

	sol, err := s.Solve("2x + 1 = 7")
	require.NoError(t, err)
	assert.Equal(t, equation.KindSingle, sol.Kind)
	assert.Equal(t, "x = 3", sol.String())
	assert.Equal(t, "3", s.LastAnswer())

	sol, err = s.Solve("x + y = 3; x - y = 1")
	require.NoError(t, err)
	assert.Equal(t, equation.KindLinear, sol.Kind)
	assert.Equal(t, "x = 2, y = 1", sol.String())

	sol, err = s.Solve("x^2 - y = 1\nx + y = 5")
	require.NoError(t, err)
	assert.Equal(t, equation.KindNonlinear, sol.Kind)
	x, _ := sol.Values.Get("x")
	assert.InDelta(t, 2, x, 1e-6)
	assert.InDelta(t, 2, s.LastAnswerValue(), 1e-6)
}

// TestSolve_Errors covers each taxonomy class reachable from Solve.
func TestSolve_Errors(t *testing.T) {
	s := engine.New()
	cases := []struct {
		in   string
		kind error
	}{
		{"", equation.ErrParse},
		{"x + 1", equation.ErrParse},
		{"x + y = 1", equation.ErrDimensionMismatch},
		{"x^2 + y = 3", equation.ErrDimensionMismatch},
		{"2 = 2", equation.ErrDimensionMismatch},
		{"x^2 + 1 = 0", equation.ErrNoRootFound},
		{"x + y = 1; 2x + 2y = 3", equation.ErrSingularMatrix},
		{"x + y = 1; x - y = 2; x = 3", equation.ErrDimensionMismatch},
		{"x^2 + y^2 = -1; x - y = 0", equation.ErrDivergence},
	}
	for _, tc := range cases {
		_, err := s.Solve(tc.in)
		assert.ErrorIs(t, err, tc.kind, "%q", tc.in)
	}
	assert.Equal(t, "0", s.LastAnswer(), "failures leave the last answer alone")
}

// TestSolve_ConfiguredRange narrows the single-equation scan.
func TestSolve_ConfiguredRange(t *testing.T) {
	opts := rootfind.DefaultOptions()
	opts.Lo, opts.Hi = 0, 10
	s := engine.New(engine.WithRootOptions(opts))

	sol, err := s.Solve("x^2 = 4")
	require.NoError(t, err)
	assert.Equal(t, "x = 2", sol.String(), "the negative root is outside the range")
}

// TestSolve_NewtonOptions uses custom guesses.
func TestSolve_NewtonOptions(t *testing.T) {
	opts := newton.DefaultOptions()
	opts.Guesses = [][]float64{{1, 2}}
	s := engine.New(engine.WithNewtonOptions(opts))

	sol, err := s.Solve("x + y^2 = 3; x - y = 1")
	require.NoError(t, err)
	assert.Equal(t, "x = 2, y = 1", sol.String())
}

// TestFindRoot scans an explicit range.
func TestFindRoot(t *testing.T) {
	s := engine.New()
	x, err := s.FindRoot("cos(x) = x", "x", 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.7390851332, x, 1e-6)

	_, err = s.FindRoot("x = 5", "x", 0, 1)
	assert.ErrorIs(t, err, equation.ErrNoRootFound)

	_, err = s.FindRoot("x = 5", "x", 1, 0)
	assert.ErrorIs(t, err, rootfind.ErrInvalidOptions)
}

// TestMemory exercises the register operations.
func TestMemory(t *testing.T) {
	s := engine.New()
	assert.Equal(t, 0.0, s.MemoryRecall())

	s.MemoryStore(10)
	s.MemoryAdd(5)
	s.MemorySubtract(2.5)
	assert.Equal(t, 12.5, s.MemoryRecall())

	s.MemoryClear()
	assert.Equal(t, 0.0, s.MemoryRecall())
}

// TestSession_Concurrent hammers the shared state from several goroutines.
func TestSession_Concurrent(t *testing.T) {
	s := engine.New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.MemoryAdd(1)
				_, _ = s.Calculate("1 + 1")
				_, _ = s.Solve("x + y = 3; x - y = 1")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800.0, s.MemoryRecall())
}

// TestSession_LogsAndMetrics records outcomes and tags logs with the id.
func TestSession_LogsAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := engine.New(engine.WithLogger(logging.New(-4, &buf)), engine.WithMetrics(m))

	_, err := s.Solve("x + y = 3; x - y = 1")
	require.NoError(t, err)
	_, err = s.Solve("x^2 + y^2 = -1; x - y = 0")
	require.Error(t, err)
	_, err = s.Calculate("1/0")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("solve", "linear", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("solve", "nonlinear", metrics.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("solve", "divergence")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("calculate", "domain_error")))

	logs := buf.String()
	assert.Contains(t, logs, s.ID().String())
	assert.Contains(t, logs, `"category":"divergence"`)
	assert.Equal(t, 1, strings.Count(logs, `"level":"DEBUG"`))
	assert.Equal(t, 2, strings.Count(logs, `"level":"WARN"`))
}

// TestWithLogger_Nil panics.
func TestWithLogger_Nil(t *testing.T) {
	assert.Panics(t, func() { engine.WithLogger(nil) })
}

// TestSolution_FirstVariable keeps column order for the last answer.
func TestSolution_FirstVariable(t *testing.T) {
	s := engine.New()
	_, err := s.Solve("y + x = 10; 2y - x = 2")
	require.NoError(t, err)
	assert.Equal(t, "4", s.LastAnswer(), "y is the first variable")
	assert.False(t, math.IsNaN(s.LastAnswerValue()))
}

// TestSolve_NonlinearRightSide reroutes an affine-looking system to Newton.
func TestSolve_NonlinearRightSide(t *testing.T) {
	s := engine.New()
	sol, err := s.Solve("x + y = y^2; x - y = 1")
	require.NoError(t, err)
	assert.Equal(t, equation.KindNonlinear, sol.Kind)

	x, _ := sol.Values.Get("x")
	y, _ := sol.Values.Get("y")
	assert.InDelta(t, 0, x-y-1, 1e-6)
	assert.InDelta(t, 0, y*y-2*y-1, 1e-5)
}
