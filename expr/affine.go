package expr

import (
	"fmt"
	"math"
)

// LinearForm is an affine combination sum(Coeffs[v] * v) + Constant.
// Order lists the variables in order of first appearance in the tree.
type LinearForm struct {
	Order    []string
	Coeffs   map[string]float64
	Constant float64
}

// Coeff returns the coefficient of name, 0 if it does not occur.
func (f *LinearForm) Coeff(name string) float64 { return f.Coeffs[name] }

// IsAffine reports whether n is an affine combination of its variables:
// no power or function call over a variable-dependent operand, no product
// of two variable-dependent factors and no variable-dependent divisor.
// Variable-free subtrees of any shape are constants.
func IsAffine(n Node) bool {
	switch t := n.(type) {
	case Number, Ident:
		return true
	case Unary:
		return IsAffine(t.X)
	case Binary:
		ld, rd := dependsOnVariable(t.Left), dependsOnVariable(t.Right)
		switch t.Op {
		case '+', '-':
			return IsAffine(t.Left) && IsAffine(t.Right)
		case '*':
			if ld && rd {
				return false
			}
			return IsAffine(t.Left) && IsAffine(t.Right)
		case '/':
			return !rd && IsAffine(t.Left)
		case '^':
			return !ld && !rd
		}
		return false
	case Call:
		return !dependsOnVariable(t.Arg)
	}
	return false
}

// Linearize collects the coefficients and constant term of an affine tree.
// It returns ErrNonlinear when IsAffine(n) is false, and ErrUnknownFunction
// when a constant subtree calls an unknown function.
func Linearize(n Node) (*LinearForm, error) {
	f := &LinearForm{Coeffs: make(map[string]float64)}
	if err := f.collect(n, 1); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *LinearForm) collect(n Node, scale float64) error {
	if !dependsOnVariable(n) {
		v, ok := evalConst(n)
		if !ok {
			return fmt.Errorf("%w in constant term %s", ErrUnknownFunction, String(n))
		}
		f.Constant += scale * v
		return nil
	}

	switch t := n.(type) {
	case Ident:
		if _, seen := f.Coeffs[t.Name]; !seen {
			f.Order = append(f.Order, t.Name)
		}
		f.Coeffs[t.Name] += scale
		return nil

	case Unary:
		if t.Op == '-' {
			return f.collect(t.X, -scale)
		}
		return f.collect(t.X, scale)

	case Binary:
		switch t.Op {
		case '+':
			if err := f.collect(t.Left, scale); err != nil {
				return err
			}
			return f.collect(t.Right, scale)
		case '-':
			if err := f.collect(t.Left, scale); err != nil {
				return err
			}
			return f.collect(t.Right, -scale)
		case '*':
			if !dependsOnVariable(t.Left) {
				c, err := f.constant(t.Left)
				if err != nil {
					return err
				}
				return f.collect(t.Right, scale*c)
			}
			if !dependsOnVariable(t.Right) {
				c, err := f.constant(t.Right)
				if err != nil {
					return err
				}
				return f.collect(t.Left, scale*c)
			}
		case '/':
			if !dependsOnVariable(t.Right) {
				c, err := f.constant(t.Right)
				if err != nil {
					return err
				}
				return f.collect(t.Left, scale/c)
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrNonlinear, String(n))
}

func (f *LinearForm) constant(n Node) (float64, error) {
	v, ok := evalConst(n)
	if !ok {
		return math.NaN(), fmt.Errorf("%w in constant term %s", ErrUnknownFunction, String(n))
	}
	return v, nil
}
