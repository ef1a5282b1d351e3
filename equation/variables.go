package equation

import (
	"strings"

	"github.com/katalvlaran/eqsolve/expr"
)

// ExtractVariables returns the identifiers of all equations, both sides,
// in order of first appearance across the list. Function names are never
// variables. Each text is normalized first; a side that does not parse is
// ErrParse.
func ExtractVariables(eqs []string) ([]string, error) {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, raw := range eqs {
		for _, side := range strings.Split(Normalize(raw), "=") {
			if side == "" {
				continue
			}
			names, err := expr.Identifiers(side)
			if err != nil {
				return nil, Errorf(ErrParse, "%q: %w", raw, err)
			}
			for _, name := range names {
				if _, dup := seen[name]; dup {
					continue
				}
				seen[name] = struct{}{}
				out = append(out, name)
			}
		}
	}
	return out, nil
}

// VariablesOf is ExtractVariables over parsed equations.
func VariablesOf(eqs []Equation) ([]string, error) {
	texts := make([]string, len(eqs))
	for i, eq := range eqs {
		texts[i] = eq.LHS + "=" + eq.RHS
	}
	return ExtractVariables(texts)
}
