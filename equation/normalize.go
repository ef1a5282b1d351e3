package equation

import (
	"strconv"
	"strings"
)

// Literal renderings of the calculator constants.
var (
	PiLiteral = strconv.FormatFloat(3.141592653589793, 'g', -1, 64)
	ELiteral  = strconv.FormatFloat(2.718281828459045, 'g', -1, 64)
)

var symbolReplacer = strings.NewReplacer(
	"(−)", "(-1)",
	"×", "*",
	"÷", "/",
	"（", "(",
	"）", ")",
	" ", "",
)

// Normalize rewrites calculator keypad notation into plain expression
// syntax: × and ÷ become * and /, full-width parentheses become ASCII, the
// negation key "(−)" becomes "(-1)", spaces are removed, π and a standalone
// e become numeric literals. It never fails.
//
// An e counts as standalone when neither neighbour is a letter, digit, '_'
// or '.', so "exp(2)", "1e5" and "xe" are left intact. A π written next to
// an operand gets an explicit '*', so "2π" reads as 2*π.
func Normalize(raw string) string {
	s := symbolReplacer.Replace(raw)
	s = replaceStandaloneE(s)
	return replacePi(s)
}

func replacePi(s string) string {
	const pi = "π"
	if !strings.Contains(s, pi) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for s != "" {
		if !strings.HasPrefix(s, pi) {
			b.WriteByte(s[0])
			s = s[1:]
			continue
		}
		if out := b.String(); out != "" && (isWordByte(out[len(out)-1]) || out[len(out)-1] == ')') {
			b.WriteByte('*')
		}
		b.WriteString(PiLiteral)
		s = s[len(pi):]
		if s != "" && (isWordByte(s[0]) || s[0] == '(' || strings.HasPrefix(s, pi)) {
			b.WriteByte('*')
		}
	}
	return b.String()
}

func replaceStandaloneE(s string) string {
	if strings.IndexByte(s, 'e') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == 'e' && (i == 0 || !isWordByte(s[i-1])) && (i+1 == len(s) || !isWordByte(s[i+1])) {
			b.WriteString(ELiteral)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isWordByte(c byte) bool {
	return c == '_' || c == '.' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
