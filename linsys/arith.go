package linsys

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/eqsolve/equation"
)

// EvalArithmetic evaluates a constant expression made only of numbers,
// + - * / and parentheses. It is the fallback for right-hand sides the
// main evaluator rejects or evaluates to a non-finite value. Division by
// zero and any other token are ErrParse.
func EvalArithmetic(s string) (float64, error) {
	a := &arith{s: strings.ReplaceAll(s, " ", "")}
	if a.s == "" {
		return 0, equation.Errorf(equation.ErrParse, "empty arithmetic expression")
	}
	v, err := a.sum()
	if err != nil {
		return 0, err
	}
	if a.i != len(a.s) {
		return 0, equation.Errorf(equation.ErrParse, "unexpected %q at offset %d in %q", a.s[a.i], a.i, s)
	}
	return v, nil
}

type arith struct {
	s string
	i int
}

func (a *arith) peek() byte {
	if a.i < len(a.s) {
		return a.s[a.i]
	}
	return 0
}

func (a *arith) sum() (float64, error) {
	v, err := a.product()
	if err != nil {
		return 0, err
	}
	for c := a.peek(); c == '+' || c == '-'; c = a.peek() {
		a.i++
		r, err := a.product()
		if err != nil {
			return 0, err
		}
		if c == '+' {
			v += r
		} else {
			v -= r
		}
	}
	return v, nil
}

func (a *arith) product() (float64, error) {
	v, err := a.factor()
	if err != nil {
		return 0, err
	}
	for c := a.peek(); c == '*' || c == '/'; c = a.peek() {
		a.i++
		r, err := a.factor()
		if err != nil {
			return 0, err
		}
		if c == '*' {
			v *= r
			continue
		}
		if r == 0 {
			return 0, equation.Errorf(equation.ErrParse, "division by zero in %q", a.s)
		}
		v /= r
	}
	return v, nil
}

func (a *arith) factor() (float64, error) {
	switch c := a.peek(); {
	case c == '-':
		a.i++
		v, err := a.factor()
		return -v, err
	case c == '+':
		a.i++
		return a.factor()
	case c == '(':
		a.i++
		v, err := a.sum()
		if err != nil {
			return 0, err
		}
		if a.peek() != ')' {
			return 0, equation.Errorf(equation.ErrParse, "missing ')' in %q", a.s)
		}
		a.i++
		return v, nil
	case c == '.' || (c >= '0' && c <= '9'):
		start := a.i
		for a.i < len(a.s) && (a.s[a.i] == '.' || (a.s[a.i] >= '0' && a.s[a.i] <= '9')) {
			a.i++
		}
		v, err := strconv.ParseFloat(a.s[start:a.i], 64)
		if err != nil || math.IsInf(v, 0) {
			return 0, equation.Errorf(equation.ErrParse, "bad number %q", a.s[start:a.i])
		}
		return v, nil
	}
	return 0, equation.Errorf(equation.ErrParse, "unexpected input at offset %d in %q", a.i, a.s)
}
