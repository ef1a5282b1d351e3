package equation

import (
	"strings"

	"github.com/katalvlaran/eqsolve/expr"
)

// Equation is one "LHS = RHS" relation. LHS and RHS hold the normalized
// text of each side; Raw keeps the caller's input.
type Equation struct {
	Raw string
	LHS string
	RHS string
}

// Parse normalizes s and splits it at its single '='. Zero or several '='
// characters, or an empty side, are ErrParse.
func Parse(s string) (Equation, error) {
	norm := Normalize(strings.TrimSpace(s))
	switch n := strings.Count(norm, "="); {
	case n == 0:
		return Equation{}, Errorf(ErrParse, "%q has no '='", s)
	case n > 1:
		return Equation{}, Errorf(ErrParse, "%q has %d '=' signs, want exactly one", s, n)
	}
	lhs, rhs, _ := strings.Cut(norm, "=")
	if lhs == "" || rhs == "" {
		return Equation{}, Errorf(ErrParse, "%q has an empty side", s)
	}
	return Equation{Raw: s, LHS: lhs, RHS: rhs}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Equation {
	eq, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return eq
}

// String returns "LHS = RHS".
func (e Equation) String() string { return e.LHS + " = " + e.RHS }

// Sides parses both sides into expression trees.
func (e Equation) Sides() (lhs, rhs expr.Node, err error) {
	if lhs, err = expr.Parse(e.LHS); err != nil {
		return nil, nil, Errorf(ErrParse, "left side of %q: %w", e.String(), err)
	}
	if rhs, err = expr.Parse(e.RHS); err != nil {
		return nil, nil, Errorf(ErrParse, "right side of %q: %w", e.String(), err)
	}
	return lhs, rhs, nil
}

// Residual compiles LHS - RHS against declared. Unknown names and
// functions are ErrParse.
func (e Equation) Residual(declared []string) (*expr.Expression, error) {
	lhs, rhs, err := e.Sides()
	if err != nil {
		return nil, err
	}
	res, err := expr.Compile(expr.Binary{Op: '-', Left: lhs, Right: rhs}, declared)
	if err != nil {
		return nil, Errorf(ErrParse, "%q: %w", e.String(), err)
	}
	return res, nil
}

// Variables returns the variables of both sides in first-seen order.
func (e Equation) Variables() ([]string, error) {
	return VariablesOf([]Equation{e})
}

// Kind tells which solver a System needs.
type Kind uint8

const (
	// KindSingle is one equation solved by the root finder.
	KindSingle Kind = iota
	// KindLinear is a system whose every left side is affine.
	KindLinear
	// KindNonlinear is any other system.
	KindNonlinear
)

func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindLinear:
		return "linear"
	case KindNonlinear:
		return "nonlinear"
	}
	return "unknown"
}

// System is a classified input.
type System struct {
	Kind      Kind
	Equations []Equation
}
