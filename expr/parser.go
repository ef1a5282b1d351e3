package expr

import "fmt"

type parser struct {
	lx  lexer
	cur token
}

// Parse turns src into an expression tree. It checks only syntax: names
// are not resolved, so "foo(x)" parses and fails later in Build.
func Parse(src string) (Node, error) {
	p := &parser{lx: lexer{s: src}}
	p.advance()
	if p.cur.kind == tokEOF {
		return nil, ErrEmpty
	}

	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) advance() { p.cur = p.lx.next() }

func (p *parser) unexpected() error {
	switch p.cur.kind {
	case tokEOF:
		return syntaxErrorf(p.cur.pos, "unexpected end of input")
	case tokIllegal:
		return syntaxErrorf(p.cur.pos, "illegal character %q", p.cur.text)
	default:
		return syntaxErrorf(p.cur.pos, "unexpected %q", p.cur.text)
	}
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.advance()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokStar, tokSlash:
			op := p.cur.text[0]
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: op, Left: left, Right: right}
		case tokIdent, tokNumber, tokLParen:
			// Implicit multiplication: "2x", "3(x+1)", "(a)(b)".
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = Binary{Op: '*', Left: left, Right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, X: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: '^', Left: base, Right: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.advance()
		return Number{Value: v}, nil

	case tokIdent:
		name := p.cur.text
		p.advance()
		if p.cur.kind != tokLParen {
			return Ident{Name: name}, nil
		}
		open := p.cur.pos
		p.advance()
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind == tokComma {
			return nil, syntaxErrorf(p.cur.pos, "%s takes exactly one argument", name)
		}
		if p.cur.kind != tokRParen {
			return nil, syntaxErrorf(open, "unclosed call to %s", name)
		}
		p.advance()
		return Call{Name: name, Arg: arg}, nil

	case tokLParen:
		open := p.cur.pos
		p.advance()
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, syntaxErrorf(open, "unbalanced parenthesis")
		}
		p.advance()
		return inner, nil
	}
	return nil, p.unexpected()
}

// Identifiers returns the variable names referenced by src in order of
// first appearance. Names used as function calls are excluded, and so is
// any bare identifier that names a known function.
func Identifiers(src string) ([]string, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	names := Variables(n)
	out := names[:0]
	for _, name := range names {
		if !IsFunction(name) {
			out = append(out, name)
		}
	}
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(src string) Node {
	n, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("expr.MustParse(%q): %v", src, err))
	}
	return n
}
