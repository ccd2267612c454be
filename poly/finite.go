package poly

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var ErrSearchExhausted = errors.New("poly: search exhausted")

// univariate returns the single occurring variable of p.
func (p *Polynomial) univariate() (string, error) {
	vs := p.Variables()
	if len(vs) != 1 {
		return "", errors.Wrapf(ErrNotImplemented, "%s is not univariate", p)
	}
	return vs[0], nil
}

func (r Reducer) rem(p, m *Polynomial) (*Polynomial, error) {
	d, err := r.DivMod(p, m)
	if err != nil {
		return nil, err
	}
	return d.Remainder, nil
}

// PowMod returns p^e modulo m by square-and-multiply.
func (r Reducer) PowMod(p *Polynomial, e *big.Int, m *Polynomial) (*Polynomial, error) {
	if e.Sign() < 0 {
		return nil, errors.Wrapf(ErrNegativeExponent, "exponent %s", e)
	}
	base, err := r.rem(p, m)
	if err != nil {
		return nil, err
	}
	acc, err := r.rem(base.one(), m)
	if err != nil {
		return nil, err
	}
	for i := e.BitLen() - 1; i >= 0; i-- {
		if acc, err = r.rem(acc.Mul(acc), m); err != nil {
			return nil, err
		}
		if e.Bit(i) == 1 {
			if acc, err = r.rem(acc.Mul(base), m); err != nil {
				return nil, err
			}
		}
	}
	return acc, nil
}

// IsIrreducible tests a univariate polynomial over a prime field with
// Ben-Or's algorithm: f of degree n is irreducible iff
// gcd(f, x^(p^i) - x) = 1 for every i <= n/2.
func (r Reducer) IsIrreducible(f *Polynomial) (bool, error) {
	if f.ring.IsRationals() {
		return false, errors.Wrapf(ErrNotImplemented, "irreducibility over %s", f.ring)
	}
	if f.IsConstant() {
		return false, nil
	}
	name, err := f.univariate()
	if err != nil {
		return false, err
	}
	p := f.ring.Characteristic()
	x := Var(f.ring, name)
	h := x
	for i := 1; i <= f.Degree(name)/2; i++ {
		if h, err = r.PowMod(h, p, f); err != nil {
			return false, err
		}
		g, err := r.GCD(f, h.Sub(x))
		if err != nil {
			return false, err
		}
		if !g.IsOne() {
			return false, nil
		}
	}
	return true, nil
}

// RandomMonic draws a monic polynomial of the given degree in one variable
// with coefficients read from src. A nil src uses crypto/rand.
func RandomMonic(r Ring, name string, degree int, src io.Reader) (*Polynomial, error) {
	if r.IsRationals() {
		return nil, errors.Wrapf(ErrNotImplemented, "random coefficients over %s", r)
	}
	if degree < 0 {
		return nil, errors.Wrapf(ErrNegativeExponent, "degree %d", degree)
	}
	if src == nil {
		src = rand.Reader
	}
	p := r.Characteristic()
	terms := []Term{{Coeff: number.One(), Mono: NewMonomial([]string{name}, []int{degree})}}
	for k := degree - 1; k >= 0; k-- {
		c, err := rand.Int(src, p)
		if err != nil {
			return nil, errors.Wrap(err, "reading random coefficient")
		}
		terms = append(terms, Term{Coeff: number.IntFromBig(c), Mono: NewMonomial([]string{name}, []int{k})})
	}
	return FromTerms(r, terms...)
}

// FindIrreducible samples random monic polynomials until one is
// irreducible. Roughly one in degree candidates qualifies; the search gives
// up with ErrSearchExhausted once the step ceiling is reached.
func (r Reducer) FindIrreducible(ring Ring, name string, degree int, src io.Reader) (*Polynomial, error) {
	if degree < 1 {
		return nil, errors.Errorf("poly: irreducible polynomials need degree >= 1, got %d", degree)
	}
	for attempts := 0; ; attempts++ {
		if r.exceeded(attempts) {
			r.logger().Warn("Irreducible search ceiling reached", "attempts", attempts, "degree", degree, "ring", ring.String())
			return nil, errors.Wrapf(ErrSearchExhausted, "degree %d over %s", degree, ring)
		}
		f, err := RandomMonic(ring, name, degree, src)
		if err != nil {
			return nil, err
		}
		ok, err := r.IsIrreducible(f)
		if err != nil {
			return nil, err
		}
		if ok {
			r.logger().Debug("Found irreducible polynomial", "poly", f.String(), "attempts", attempts+1)
			return f, nil
		}
	}
}

// IsIrreducible uses the default reducer.
func IsIrreducible(f *Polynomial) (bool, error) { return DefaultReducer().IsIrreducible(f) }

// FindIrreducible uses the default reducer.
func FindIrreducible(ring Ring, name string, degree int, src io.Reader) (*Polynomial, error) {
	return DefaultReducer().FindIrreducible(ring, name, degree, src)
}
