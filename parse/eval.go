package parse

import (
	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
)

// maxExponent keeps "x^99999999" from exhausting memory.
const maxExponent = 1 << 16

// Eval evaluates n bottom-up into a polynomial of r.
//
// Division by a constant scales; division by a polynomial is exact and fails
// with poly.ErrNotAFactor otherwise. Exponents must be non-negative integer
// constants and are evaluated over the rationals, not in r.
func Eval(n Node, r poly.Ring) (*poly.Polynomial, error) {
	switch n := n.(type) {
	case *Num:
		return poly.Constant(r, n.Value)
	case *Ident:
		return poly.Var(r, n.Name), nil
	case *Neg:
		x, err := Eval(n.X, r)
		if err != nil {
			return nil, err
		}
		return x.Neg(), nil
	case *Binary:
		if n.Op == '^' {
			return evalPow(n, r)
		}
		x, err := Eval(n.X, r)
		if err != nil {
			return nil, err
		}
		y, err := Eval(n.Y, r)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case '+':
			return x.Add(y), nil
		case '-':
			return x.Sub(y), nil
		case '*':
			return x.Mul(y), nil
		case '/':
			q, err := x.Quo(y)
			if err != nil {
				return nil, errors.Wrapf(err, "offset %d", n.Offset)
			}
			return q, nil
		}
	}
	return nil, syntaxErr(n.Pos(), "unsupported node %s", n)
}

func evalPow(n *Binary, r poly.Ring) (*poly.Polynomial, error) {
	e, err := Eval(n.Y, poly.Rationals(r.Order()))
	if err != nil {
		return nil, err
	}
	v, ok := e.ConstantValue()
	if !ok {
		return nil, syntaxErr(n.Y.Pos(), "exponent %s is not a constant", e)
	}
	k, ok := v.(number.Integer)
	if !ok {
		return nil, syntaxErr(n.Y.Pos(), "exponent %s is not an integer", v)
	}
	if k.Sign() < 0 {
		return nil, errors.Wrapf(poly.ErrNegativeExponent, "offset %d: exponent %s", n.Y.Pos(), k)
	}
	x, ok := k.Int64()
	if !ok || x > maxExponent {
		return nil, syntaxErr(n.Y.Pos(), "exponent %s is too large", k)
	}
	base, err := Eval(n.X, r)
	if err != nil {
		return nil, err
	}
	return base.Pow(int(x))
}

// Polynomial parses s into a polynomial of r.
func Polynomial(r poly.Ring, s string) (*poly.Polynomial, error) {
	n, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Eval(n, r)
}

// Polynomials parses each string; the first failure is returned with its
// index.
func Polynomials(r poly.Ring, ss ...string) ([]*poly.Polynomial, error) {
	out := make([]*poly.Polynomial, len(ss))
	for i, s := range ss {
		p, err := Polynomial(r, s)
		if err != nil {
			return nil, errors.Wrapf(err, "polynomial %d (%q)", i+1, s)
		}
		out[i] = p
	}
	return out, nil
}

// MustPolynomial is Polynomial for inputs known to be valid.
func MustPolynomial(r poly.Ring, s string) *poly.Polynomial {
	p, err := Polynomial(r, s)
	if err != nil {
		panic(err)
	}
	return p
}
