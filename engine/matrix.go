package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/eqsolve/equation"
	"github.com/katalvlaran/eqsolve/matrix"
)

// Matrix operation names accepted by MatrixOp.
const (
	MatrixAdd       = "add"
	MatrixSub       = "sub"
	MatrixMul       = "mul"
	MatrixDet       = "det"
	MatrixInverse   = "inv"
	MatrixTranspose = "transpose"
)

// MatrixOps lists the operation names in display order.
var MatrixOps = []string{MatrixAdd, MatrixSub, MatrixMul, MatrixDet, MatrixInverse, MatrixTranspose}

// MatrixOp applies op to the matrix literals a and b ("1,2;3,4") and
// renders the result: matrices as "[1.00, 2.00]" rows, the determinant as
// "det(A) = 10.0000". b is ignored by the unary operations.
//
// Matrix errors are mapped onto the taxonomy: bad literals to ErrParse,
// shape problems to ErrDimensionMismatch, singular input to
// ErrSingularMatrix.
func (s *Session) MatrixOp(op, a, b string) (out string, err error) {
	start := time.Now()
	defer func() { s.observe(opMatrix, op, start, err) }()

	out, err = s.matrixOp(op, a, b)
	if err != nil {
		return "", mapMatrixError(op, err)
	}
	return out, nil
}

func (s *Session) matrixOp(op, a, b string) (string, error) {
	ma, err := matrix.Parse(a, s.opts.matrix...)
	if err != nil {
		return "", fmt.Errorf("A: %w", err)
	}

	binary := func(f func(x, y matrix.Matrix) (*matrix.Dense, error)) (string, error) {
		mb, err := matrix.Parse(b, s.opts.matrix...)
		if err != nil {
			return "", fmt.Errorf("B: %w", err)
		}
		r, err := f(ma, mb)
		if err != nil {
			return "", err
		}
		return matrix.Format(r, s.opts.matrix...), nil
	}

	switch op {
	case MatrixAdd:
		return binary(matrix.Add)
	case MatrixSub:
		return binary(matrix.Sub)
	case MatrixMul:
		return binary(matrix.Mul)
	case MatrixDet:
		det, err := matrix.Determinant(ma)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("det(A) = %.4f", det), nil
	case MatrixInverse:
		inv, err := matrix.Inverse(ma, s.opts.matrix...)
		if err != nil {
			return "", err
		}
		return matrix.Format(inv, s.opts.matrix...), nil
	case MatrixTranspose:
		t, err := matrix.Transpose(ma)
		if err != nil {
			return "", err
		}
		return matrix.Format(t, s.opts.matrix...), nil
	}
	return "", fmt.Errorf("unknown matrix operation %q: %w", op, matrix.ErrBadLiteral)
}

func mapMatrixError(op string, err error) error {
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return equation.Errorf(equation.ErrSingularMatrix, "%s: %w", op, err)
	case errors.Is(err, matrix.ErrDimensionMismatch), errors.Is(err, matrix.ErrNonSquare):
		return equation.Errorf(equation.ErrDimensionMismatch, "%s: %w", op, err)
	case errors.Is(err, matrix.ErrNaNInf):
		return equation.Errorf(equation.ErrDomain, "%s: %w", op, err)
	}
	return equation.Errorf(equation.ErrParse, "%s: %w", op, err)
}
