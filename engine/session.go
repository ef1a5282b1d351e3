// Package engine is the calculator's solving front end. A Session
// evaluates expressions, dispatches equations to the right solver and
// keeps the memory register and the last answer.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/expr"
	"github.com/katalvlaran/eqsolve/linsys"
	"github.com/katalvlaran/eqsolve/newton"
	"github.com/katalvlaran/eqsolve/rootfind"
)

// AnswerVariable names the last answer inside Calculate expressions.
const AnswerVariable = "ans"

// Operation labels used in logs and metrics.
const (
	opCalculate = "calculate"
	opSolve     = "solve"
	opRoot      = "root"
	opMatrix    = "matrix"
	noKind      = "-"
)

// Session holds the per-user calculator state. It is safe for concurrent
// use; solver calls share nothing.
type Session struct {
	id   uuid.UUID
	opts Options
	log  *slog.Logger

	mu         sync.Mutex
	memory     float64
	lastAnswer float64
}

// New creates a session with a fresh id.
func New(opts ...Option) *Session {
	o := gatherOptions(opts...)
	id := uuid.New()
	return &Session{
		id:   id,
		opts: o,
		log:  o.logger.With("session", id.String()),
	}
}

// ID returns the session id attached to every log line.
func (s *Session) ID() uuid.UUID { return s.id }

// Solution is the outcome of Solve.
type Solution struct {
	Kind   equation.Kind
	Values equation.SolutionMap
}

// String renders "x = 2, y = 1".
func (s *Solution) String() string { return s.Values.String() }

// Calculate evaluates a keypad expression and returns it formatted. The
// identifier ans reads the last answer. A successful result becomes the
// new last answer.
//
// Errors: ErrParse for empty or malformed input, ErrDomain when the
// result is NaN or infinite.
func (s *Session) Calculate(input string) (out string, err error) {
	start := time.Now()
	defer func() { s.observe(opCalculate, noKind, start, err) }()

	src := equation.Normalize(input)
	if src == "" {
		return "", equation.Errorf(equation.ErrParse, "empty expression")
	}
	e, err := expr.Build(src, []string{AnswerVariable})
	if err != nil {
		return "", equation.Errorf(equation.ErrParse, "%w", err)
	}

	v := e.Eval([]float64{s.answer()})
	switch {
	case math.IsNaN(v):
		return "", equation.Errorf(equation.ErrDomain, "result undefined")
	case math.IsInf(v, 0):
		return "", equation.Errorf(equation.ErrDomain, "result infinite")
	}

	s.setAnswer(v)
	return equation.FormatValue(v), nil
}

// Solve is SolveContext with a background context.
func (s *Session) Solve(input string) (*Solution, error) {
	return s.SolveContext(context.Background(), input)
}

// SolveContext classifies input and dispatches it: a single equation to
// the root finder, a linear system to Gaussian elimination, anything else
// to multi-start Newton. The first variable's value becomes the last
// answer.
func (s *Session) SolveContext(ctx context.Context, input string) (sol *Solution, err error) {
	start := time.Now()
	kind := noKind
	defer func() { s.observe(opSolve, kind, start, err) }()

	sys, err := equation.Classify(input)
	if err != nil {
		return nil, err
	}
	kind = sys.Kind.String()

	var values equation.SolutionMap
	switch sys.Kind {
	case equation.KindSingle:
		values, err = s.solveSingle(sys.Equations[0])
	case equation.KindLinear:
		values, err = linsys.Solve(sys.Equations, s.opts.linear)
		if errors.Is(err, expr.ErrNonlinear) {
			// Affine left sides with a nonlinear right side.
			s.log.Debug("linear assembly rejected, retrying with newton", "error", err)
			sys.Kind = equation.KindNonlinear
			kind = sys.Kind.String()
			values, err = s.solveNonlinear(ctx, sys.Equations)
		}
	default:
		values, err = s.solveNonlinear(ctx, sys.Equations)
	}
	if err != nil {
		return nil, err
	}

	if vals := values.Values(); len(vals) > 0 {
		s.setAnswer(vals[0])
	}
	return &Solution{Kind: sys.Kind, Values: values}, nil
}

func (s *Session) solveNonlinear(ctx context.Context, eqs []equation.Equation) (equation.SolutionMap, error) {
	res, err := newton.SolveContext(ctx, eqs, s.opts.newton)
	if err != nil {
		var div *equation.DivergenceError
		if errors.As(err, &div) {
			s.opts.metrics.ObserveAttempts(div.Attempts)
		}
		return equation.SolutionMap{}, err
	}
	s.opts.metrics.ObserveAttempts(res.Attempts)
	s.log.Debug("newton converged",
		"attempts", res.Attempts, "iterations", res.Iterations, "guess", res.Guess)
	return res.Solution, nil
}

func (s *Session) solveSingle(eq equation.Equation) (equation.SolutionMap, error) {
	names, err := eq.Variables()
	if err != nil {
		return equation.SolutionMap{}, err
	}
	if len(names) != 1 {
		return equation.SolutionMap{}, equation.Errorf(equation.ErrDimensionMismatch,
			"single equation must have exactly one variable, found %d %v", len(names), names)
	}
	x, err := rootfind.Find(eq.String(), names[0], s.opts.root)
	if err != nil {
		return equation.SolutionMap{}, err
	}
	return equation.NewSolutionMap(names, []float64{x}), nil
}

// FindRoot scans [lo, hi] for the leftmost root of eq in the variable
// name, with the session's step and bisection settings.
func (s *Session) FindRoot(eq, name string, lo, hi float64) (x float64, err error) {
	start := time.Now()
	defer func() { s.observe(opRoot, equation.KindSingle.String(), start, err) }()

	opts := s.opts.root
	opts.Lo, opts.Hi = lo, hi
	x, err = rootfind.Find(eq, strings.TrimSpace(name), opts)
	if err != nil {
		return x, err
	}
	s.setAnswer(x)
	return x, nil
}

// MemoryClear sets the memory register to zero.
func (s *Session) MemoryClear() { s.MemoryStore(0) }

// MemoryRecall returns the memory register.
func (s *Session) MemoryRecall() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory
}

// MemoryAdd adds v to the memory register.
func (s *Session) MemoryAdd(v float64) {
	s.mu.Lock()
	s.memory += v
	s.mu.Unlock()
}

// MemorySubtract subtracts v from the memory register.
func (s *Session) MemorySubtract(v float64) { s.MemoryAdd(-v) }

// MemoryStore replaces the memory register with v.
func (s *Session) MemoryStore(v float64) {
	s.mu.Lock()
	s.memory = v
	s.mu.Unlock()
}

// LastAnswer returns the last successful result, formatted. It is "0"
// for a fresh session.
func (s *Session) LastAnswer() string { return equation.FormatValue(s.answer()) }

// LastAnswerValue returns the last successful result.
func (s *Session) LastAnswerValue() float64 { return s.answer() }

func (s *Session) answer() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAnswer
}

func (s *Session) setAnswer(v float64) {
	s.mu.Lock()
	s.lastAnswer = v
	s.mu.Unlock()
}

// observe logs and records one request.
func (s *Session) observe(op, kind string, start time.Time, err error) {
	elapsed := time.Since(start)
	category := categoryLabel(err)
	s.opts.metrics.Observe(op, kind, category, err, elapsed)
	if err != nil {
		s.log.Warn(op+" failed", "kind", kind, "category", category, "error", err)
		return
	}
	s.log.Debug(op, "kind", kind, "duration", elapsed)
}

func categoryLabel(err error) string {
	if err == nil {
		return ""
	}
	if c := equation.Category(err); c != nil {
		return strings.ReplaceAll(c.Error(), " ", "_")
	}
	return "other"
}
