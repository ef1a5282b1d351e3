// SPDX-License-Identifier: MIT
// Package matrix: fixed-precision rendering and text literals.

package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders m one row per line as "[1.00, 2.00]\n", using
// DefaultPrecision decimals unless WithPrecision overrides it. A nil
// matrix renders as the empty string.
func Format(m Matrix, opts ...Option) string {
	if ValidateNotNil(m) != nil {
		return ""
	}
	o := gatherOptions(opts...)

	var b strings.Builder
	for i := 0; i < m.Rows(); i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j) // indices are in range by construction
			b.WriteString(strconv.FormatFloat(v, 'f', o.precision, 64))
			if j+1 < m.Cols() {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Parse reads a matrix literal: rows separated by ';' or newlines, entries
// by ',' or whitespace. "1,2;3,4" is the 2×2 matrix [[1 2] [3 4]].
//
// Errors:
//   - ErrBadLiteral for empty input or unparsable numbers.
//   - ErrDimensionMismatch for ragged rows.
//   - ErrNaNInf for non-finite entries (unless WithNoValidateNaNInf).
func Parse(s string, opts ...Option) (*Dense, error) {
	var rows [][]float64
	for _, line := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' || r == '\r' }) {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, matrixErrorf(opParse, fmt.Errorf("row %d entry %q: %w", len(rows), f, ErrBadLiteral))
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, matrixErrorf(opParse, fmt.Errorf("%q: %w", s, ErrBadLiteral))
	}

	m, err := NewFromRows(rows, opts...)
	if err != nil {
		return nil, matrixErrorf(opParse, err)
	}

	return m, nil
}
