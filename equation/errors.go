package equation

import (
	"errors"
	"fmt"
	"strings"
)

// Taxonomy sentinels.
var (
	// ErrParse marks a malformed equation, expression or term.
	ErrParse = errors.New("parse error")

	// ErrDimensionMismatch is returned when the equation count differs
	// from the variable count.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrSingularMatrix is returned when a pivot, a back-substitution
	// diagonal or a Jacobian determinant falls below its threshold.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrDomain is returned when a computation produces NaN or ±Inf.
	ErrDomain = errors.New("domain error")

	// ErrDivergence is returned when Newton iteration fails for every
	// initial guess.
	ErrDivergence = errors.New("divergence")

	// ErrNoRootFound is returned when the root scan sees neither a sign
	// change nor an exact zero.
	ErrNoRootFound = errors.New("no root found")
)

// Errorf builds an error that matches kind under errors.Is. The format may
// itself use %w to attach a lower-level cause.
//
//	equation.Errorf(equation.ErrParse, "equation %d: %w", i, err)
func Errorf(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{kind}, args...)...)
}

// DivergenceError reports that every Newton attempt failed. It matches
// ErrDivergence as well as the last per-guess failure.
type DivergenceError struct {
	Attempts int   // number of initial guesses tried
	Last     error // failure of the last attempt
}

func (e *DivergenceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: no solution after %d initial guesses", ErrDivergence, e.Attempts)
	if e.Last != nil {
		b.WriteString(": last: ")
		b.WriteString(e.Last.Error())
	}
	return b.String()
}

// Unwrap exposes both ErrDivergence and the last attempt's error.
func (e *DivergenceError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrDivergence}
	}
	return []error{ErrDivergence, e.Last}
}

// Category returns the taxonomy sentinel err matches, or nil. ErrDivergence is
// checked first because a DivergenceError also matches its last cause.
func Category(err error) error {
	for _, k := range []error{
		ErrDivergence, ErrParse, ErrDimensionMismatch, ErrSingularMatrix, ErrDomain, ErrNoRootFound,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
