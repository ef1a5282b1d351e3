// Package expr parses and evaluates the arithmetic expressions that make up
// the two sides of an equation.
//
// What is inside:
//
//   - a lexer and a small recursive-descent parser producing a Node tree;
//   - Build, which resolves identifiers against a declared variable list and
//     compiles the tree into an Expression;
//   - Expression.Evaluate / Expression.Eval, which never fail at run time:
//     domain errors yield NaN, overflow and division by zero yield ±Inf;
//   - tree analysis used by the solvers: Identifiers, IsAffine, Linearize.
//
// Grammar (lowest to highest precedence):
//
//	sum     := product (('+' | '-') product)*
//	product := unary (('*' | '/') unary | <implicit> power)*
//	unary   := ('+' | '-') unary | power
//	power   := primary ('^' unary)?          // right associative
//	primary := number | ident | ident '(' sum ')' | '(' sum ')'
//
// Implicit multiplication covers the calculator notations "2x", "3(x+1)" and
// "(x+1)(x-1)". Unary minus binds looser than '^', so -x^2 == -(x^2).
//
// Usage:
//
//	e, err := expr.Build("x^2 + 3*y", []string{"x", "y"})
//	if err != nil {
//		// errors.Is(err, expr.ErrSyntax) / expr.ErrUnknownIdentifier / ...
//	}
//	v := e.Evaluate(map[string]float64{"x": 2, "y": 1}) // 7
package expr
