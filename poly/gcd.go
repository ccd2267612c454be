package poly

import (
	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// GCD returns the monic greatest common divisor of a and b.
//
// Univariate inputs use Euclid's algorithm over the coefficient field. Among
// multivariate inputs only the monomial-like case is supported, where one
// side is a single term; anything else fails with ErrNotImplemented.
func (r Reducer) GCD(a, b *Polynomial) (*Polynomial, error) {
	a.check(b)
	a, b = align2(a, b)
	switch {
	case a.IsZero():
		return b.Monic(), nil
	case b.IsZero():
		return a.Monic(), nil
	case a.IsConstant() || b.IsConstant():
		return a.one(), nil
	}
	if len(unionVars(a.Variables(), b.Variables())) == 1 {
		return r.euclid(a, b)
	}
	if len(a.terms) == 1 || len(b.terms) == 1 {
		return monomialGCD(a, b), nil
	}
	return nil, errors.Wrapf(ErrNotImplemented, "gcd of multivariate %s and %s", a, b)
}

func (r Reducer) euclid(a, b *Polynomial) (*Polynomial, error) {
	for steps := 0; !b.IsZero(); steps++ {
		if r.exceeded(steps) {
			r.logger().Warn("GCD step ceiling reached", "steps", steps, "a", a.String(), "b", b.String())
			break
		}
		d, err := r.DivMod(a, b)
		if err != nil {
			return nil, err
		}
		a, b = b, d.Remainder
	}
	return a.Monic(), nil
}

// monomialGCD handles a single-term operand: the gcd is the largest monomial
// dividing every term of both.
func monomialGCD(a, b *Polynomial) *Polynomial {
	m := a.terms[0].Mono
	for _, p := range []*Polynomial{a, b} {
		for _, t := range p.terms {
			m = m.GCD(t.Mono)
		}
	}
	return &Polynomial{ring: a.ring, vars: a.vars, terms: []Term{{Coeff: number.One(), Mono: m}}}
}

// LCM returns the monic least common multiple, a*b/gcd(a, b).
func (r Reducer) LCM(a, b *Polynomial) (*Polynomial, error) {
	if a.IsZero() || b.IsZero() {
		a.check(b)
		x, _ := align2(a, b)
		return x.zero(), nil
	}
	g, err := r.GCD(a, b)
	if err != nil {
		return nil, err
	}
	d, err := r.DivMod(a.Mul(b), g)
	if err != nil {
		return nil, err
	}
	if !d.Remainder.IsZero() {
		return nil, errors.Wrapf(ErrNotAFactor, "gcd %s does not divide %s*%s", g, a, b)
	}
	return d.Quotients[0].Monic(), nil
}

// GCD uses the default reducer.
func GCD(a, b *Polynomial) (*Polynomial, error) { return DefaultReducer().GCD(a, b) }

// LCM uses the default reducer.
func LCM(a, b *Polynomial) (*Polynomial, error) { return DefaultReducer().LCM(a, b) }
