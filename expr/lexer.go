package expr

import (
	"strconv"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokIllegal
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lexer walks an ASCII-oriented source; any non-ASCII rune that survives
// preprocessing is reported as tokIllegal.
type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && isSpace(l.s[l.i]) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	switch c := l.s[l.i]; c {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		l.i++
		return token{kind: tokStar, text: "*", pos: start}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case '^':
		l.i++
		return token{kind: tokCaret, text: "^", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	case ',':
		l.i++
		return token{kind: tokComma, text: ",", pos: start}
	}

	c := l.s[l.i]
	if isIdentStart(c) {
		l.i++
		for l.i < len(l.s) && isIdentContinue(l.s[l.i]) {
			l.i++
		}
		return token{kind: tokIdent, text: l.s[start:l.i], pos: start}
	}
	if c == '.' || isDigit(c) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		v, err := strconv.ParseFloat(txt, 64)
		if err != nil {
			return token{kind: tokIllegal, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, num: v, pos: start}
	}

	_, size := utf8.DecodeRuneInString(l.s[l.i:])
	l.i += size
	return token{kind: tokIllegal, text: l.s[start:l.i], pos: start}
}

// scanNumber returns the end offset of the numeric literal starting at i.
// An exponent is consumed only when at least one digit follows it, so "2e"
// lexes as the number 2 followed by the identifier e.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool { return isIdentStart(c) || isDigit(c) }
