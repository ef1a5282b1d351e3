package expr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package wraps one of these,
// so callers match with errors.Is.
var (
	// ErrEmpty is returned when the source text has no tokens.
	ErrEmpty = errors.New("expr: empty expression")

	// ErrSyntax marks malformed input: unexpected tokens, unbalanced
	// parentheses, bad numbers.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownIdentifier is returned by Build for an identifier that is
	// neither declared nor a known function.
	ErrUnknownIdentifier = errors.New("expr: unknown identifier")

	// ErrUnknownFunction is returned for a call to a name outside the
	// function table.
	ErrUnknownFunction = errors.New("expr: unknown function")

	// ErrNonlinear is returned by Linearize when the tree is not an affine
	// combination of its variables.
	ErrNonlinear = errors.New("expr: expression is not linear")
)

// syntaxErrorf reports a syntax error at a byte offset of the source.
func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}
