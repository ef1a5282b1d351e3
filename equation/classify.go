package equation

import (
	"strings"

	"github.com/katalvlaran/eqsolve/expr"
)

// IsSystem reports whether input holds more than one equation: it contains
// ';', more than one non-empty line, or more than one '='.
func IsSystem(input string) bool {
	if strings.ContainsRune(input, ';') || strings.Count(input, "=") > 1 {
		return true
	}
	lines := 0
	for _, line := range strings.FieldsFunc(input, isLineBreak) {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	return lines > 1
}

// Split breaks a system into its non-empty equation texts.
func Split(input string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(input, func(r rune) bool { return r == ';' || isLineBreak(r) }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

// Classify parses input into a System.
//
// A lone equation in exactly one variable is KindSingle. Anything else is
// KindLinear when the left side of every equation is affine and
// KindNonlinear otherwise, so "x + 2*y = 3" is linear and "x^2 + y = 3"
// nonlinear even without a second equation. Empty input, an equation
// without exactly one '=' and a syntactically invalid side are ErrParse.
func Classify(input string) (System, error) {
	if strings.TrimSpace(input) == "" {
		return System{}, Errorf(ErrParse, "empty input")
	}

	if !IsSystem(input) {
		eq, err := Parse(input)
		if err != nil {
			return System{}, err
		}
		names, err := eq.Variables()
		if err != nil {
			return System{}, err
		}
		if len(names) == 1 {
			return System{Kind: KindSingle, Equations: []Equation{eq}}, nil
		}
		return classifyAll([]Equation{eq})
	}

	parts := Split(input)
	if len(parts) == 0 {
		return System{}, Errorf(ErrParse, "no equations in %q", input)
	}
	eqs := make([]Equation, 0, len(parts))
	for i, part := range parts {
		eq, err := Parse(part)
		if err != nil {
			return System{}, Errorf(ErrParse, "equation %d: %w", i+1, err)
		}
		eqs = append(eqs, eq)
	}
	return classifyAll(eqs)
}

// classifyAll picks linear or nonlinear from the left sides.
func classifyAll(eqs []Equation) (System, error) {
	sys := System{Kind: KindLinear, Equations: eqs}
	for i, eq := range eqs {
		lhs, err := expr.Parse(eq.LHS)
		if err != nil {
			return System{}, Errorf(ErrParse, "equation %d: %w", i+1, err)
		}
		if !expr.IsAffine(lhs) {
			sys.Kind = KindNonlinear
		}
	}
	return sys, nil
}
