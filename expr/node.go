package expr

import (
	"strconv"
	"strings"
)

// Node is a parsed expression tree node. The concrete types are Number,
// Ident, Unary, Binary and Call.
type Node interface {
	node()
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// Ident is a variable reference.
type Ident struct {
	Name string
}

// Unary is a sign applied to an operand. Op is '+' or '-'.
type Unary struct {
	Op byte
	X  Node
}

// Binary is an infix operation. Op is one of '+', '-', '*', '/', '^'.
type Binary struct {
	Op          byte
	Left, Right Node
}

// Call is a one-argument function application such as sin(x).
type Call struct {
	Name string
	Arg  Node
}

func (Number) node() {}
func (Ident) node()  {}
func (Unary) node()  {}
func (Binary) node() {}
func (Call) node()   {}

// String renders n in a fully parenthesised canonical form, e.g.
// "((2 * x) + 1)". The output re-parses to an equivalent tree.
func String(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case Number:
		b.WriteString(strconv.FormatFloat(t.Value, 'g', -1, 64))
	case Ident:
		b.WriteString(t.Name)
	case Unary:
		b.WriteByte('(')
		b.WriteByte(t.Op)
		writeNode(b, t.X)
		b.WriteByte(')')
	case Binary:
		b.WriteByte('(')
		writeNode(b, t.Left)
		b.WriteByte(' ')
		b.WriteByte(t.Op)
		b.WriteByte(' ')
		writeNode(b, t.Right)
		b.WriteByte(')')
	case Call:
		b.WriteString(t.Name)
		b.WriteByte('(')
		writeNode(b, t.Arg)
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

// walk visits n and its children depth-first, left to right.
func walk(n Node, visit func(Node)) {
	visit(n)
	switch t := n.(type) {
	case Unary:
		walk(t.X, visit)
	case Binary:
		walk(t.Left, visit)
		walk(t.Right, visit)
	case Call:
		walk(t.Arg, visit)
	}
}

// Variables returns the distinct identifier names of n in left-to-right
// order of first appearance.
func Variables(n Node) []string {
	var (
		out  []string
		seen = make(map[string]struct{})
	)
	walk(n, func(c Node) {
		id, ok := c.(Ident)
		if !ok {
			return
		}
		if _, dup := seen[id.Name]; dup {
			return
		}
		seen[id.Name] = struct{}{}
		out = append(out, id.Name)
	})
	return out
}

// dependsOnVariable reports whether any identifier occurs in n.
func dependsOnVariable(n Node) bool {
	found := false
	walk(n, func(c Node) {
		if _, ok := c.(Ident); ok {
			found = true
		}
	})
	return found
}
