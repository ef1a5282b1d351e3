package expr

import (
	"fmt"
	"math"
)

// evalFn is a compiled node: it reads variable values by slot index.
type evalFn func(vals []float64) float64

// Expression is a parsed and resolved expression, ready for repeated
// evaluation. It is immutable and safe for concurrent use.
type Expression struct {
	src   string
	root  Node
	names []string
	slot  map[string]int
	fn    evalFn
}

// Build parses src and resolves every identifier against declared, whose
// order fixes the positional layout used by Eval.
//
// Errors:
//   - ErrEmpty, ErrSyntax from parsing;
//   - ErrUnknownIdentifier for a name that is not declared;
//   - ErrUnknownFunction for a call to a name outside the function table,
//     and ErrSyntax for a function name used without an argument.
func Build(src string, declared []string) (*Expression, error) {
	root, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Compile(root, declared)
}

// Compile resolves an already parsed tree against declared.
func Compile(root Node, declared []string) (*Expression, error) {
	e := &Expression{
		src:   String(root),
		root:  root,
		names: append([]string(nil), declared...),
		slot:  make(map[string]int, len(declared)),
	}
	for i, name := range declared {
		if _, dup := e.slot[name]; !dup {
			e.slot[name] = i
		}
	}

	fn, err := e.compile(root)
	if err != nil {
		return nil, err
	}
	e.fn = fn
	return e, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(src string, declared []string) *Expression {
	e, err := Build(src, declared)
	if err != nil {
		panic(fmt.Sprintf("expr.MustBuild(%q): %v", src, err))
	}
	return e
}

// Evaluate computes the expression with variables bound by name. Missing
// bindings read as 0.
func (e *Expression) Evaluate(bindings map[string]float64) float64 {
	vals := make([]float64, len(e.names))
	for i, name := range e.names {
		vals[i] = bindings[name]
	}
	return e.fn(vals)
}

// Eval computes the expression with values given in declared order. A
// short slice reads missing trailing variables as 0.
func (e *Expression) Eval(values []float64) float64 {
	if len(values) < len(e.names) {
		padded := make([]float64, len(e.names))
		copy(padded, values)
		values = padded
	}
	return e.fn(values)
}

// Root returns the parsed tree.
func (e *Expression) Root() Node { return e.root }

// Variables returns the declared names in slot order.
func (e *Expression) Variables() []string { return append([]string(nil), e.names...) }

// String returns the canonical rendering of the expression.
func (e *Expression) String() string { return e.src }

func (e *Expression) compile(n Node) (evalFn, error) {
	switch t := n.(type) {
	case Number:
		v := t.Value
		return func([]float64) float64 { return v }, nil

	case Ident:
		if IsFunction(t.Name) {
			return nil, fmt.Errorf("%w: function %s used without an argument", ErrSyntax, t.Name)
		}
		idx, ok := e.slot[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownIdentifier, t.Name)
		}
		return func(vals []float64) float64 { return vals[idx] }, nil

	case Unary:
		x, err := e.compile(t.X)
		if err != nil {
			return nil, err
		}
		if t.Op == '-' {
			return func(vals []float64) float64 { return -x(vals) }, nil
		}
		return x, nil

	case Binary:
		l, err := e.compile(t.Left)
		if err != nil {
			return nil, err
		}
		r, err := e.compile(t.Right)
		if err != nil {
			return nil, err
		}
		switch t.Op {
		case '+':
			return func(v []float64) float64 { return l(v) + r(v) }, nil
		case '-':
			return func(v []float64) float64 { return l(v) - r(v) }, nil
		case '*':
			return func(v []float64) float64 { return l(v) * r(v) }, nil
		case '/':
			return func(v []float64) float64 { return l(v) / r(v) }, nil
		case '^':
			return func(v []float64) float64 { return math.Pow(l(v), r(v)) }, nil
		}
		return nil, fmt.Errorf("%w: unknown operator %q", ErrSyntax, t.Op)

	case Call:
		f, ok := functions[t.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, t.Name)
		}
		arg, err := e.compile(t.Arg)
		if err != nil {
			return nil, err
		}
		return func(v []float64) float64 { return f(arg(v)) }, nil
	}
	return nil, fmt.Errorf("%w: unsupported node %T", ErrSyntax, n)
}

// evalConst evaluates a variable-free subtree. ok is false when the tree
// references a variable or an unknown function.
func evalConst(n Node) (float64, bool) {
	e := &Expression{slot: map[string]int{}}
	fn, err := e.compile(n)
	if err != nil {
		return 0, false
	}
	return fn(nil), true
}
