// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for the kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/eqsolve/matrix"
	"github.com/stretchr/testify/require"
)

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths.
type hide struct{ matrix.Matrix }

// MustDense builds a *Dense from rows or fails the test.
func MustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err, "NewFromRows(%v)", rows)

	return m
}

// MustAt reads m(i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// IdentityDense returns I_n or fails the test.
func IdentityDense(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.Identity(n)
	require.NoError(t, err)

	return m
}

// RequireClose asserts a and b agree within tol.
func RequireClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, tol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ beyond %g:\nwant:\n%sgot:\n%s", tol, matrix.Format(want, matrix.WithPrecision(6)), matrix.Format(got, matrix.WithPrecision(6)))
}
