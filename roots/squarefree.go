package roots

import (
	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// Dense exact univariate helpers, ascending coefficients.

func trim(a []number.Number) []number.Number {
	n := len(a)
	for n > 0 && a[n-1].IsZero() {
		n--
	}
	return a[:n]
}

func derivative(a []number.Number) []number.Number {
	if len(a) < 2 {
		return nil
	}
	d := make([]number.Number, len(a)-1)
	for i := 1; i < len(a); i++ {
		d[i-1] = number.Mul(number.Int(int64(i)), a[i])
	}
	return trim(d)
}

// divmod divides a by the nonzero b.
func divmod(a, b []number.Number) (q, r []number.Number, err error) {
	r = trim(append([]number.Number(nil), a...))
	b = trim(b)
	if len(r) < len(b) {
		return nil, r, nil
	}
	q = make([]number.Number, len(r)-len(b)+1)
	for i := range q {
		q[i] = number.Zero()
	}
	lead := b[len(b)-1]
	for len(r) >= len(b) {
		c, err := number.Quo(r[len(r)-1], lead)
		if err != nil {
			return nil, nil, err
		}
		shift := len(r) - len(b)
		q[shift] = c
		for i, bc := range b {
			r[shift+i] = number.Sub(r[shift+i], number.Mul(c, bc))
		}
		r = trim(r[:len(r)-1])
	}
	return q, r, nil
}

func monic(a []number.Number) ([]number.Number, error) {
	out := make([]number.Number, len(a))
	for i, c := range a {
		v, err := number.Quo(c, a[len(a)-1])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func gcd(a, b []number.Number) ([]number.Number, error) {
	a, b = trim(a), trim(b)
	for len(b) > 0 {
		_, r, err := divmod(a, b)
		if err != nil {
			return nil, err
		}
		a, b = b, r
	}
	return monic(a)
}

// squareFreePart returns a / gcd(a, a'), which has the roots of a, each once.
// a must have degree at least one.
func squareFreePart(a []number.Number) ([]number.Number, error) {
	g, err := gcd(a, derivative(a))
	if err != nil {
		return nil, err
	}
	if len(g) == 1 {
		return trim(a), nil
	}
	q, _, err := divmod(a, g)
	return q, err
}

// exactSquareFree reduces exact coefficients to their square-free part and
// reports false when any coefficient is approximate.
func exactSquareFree(coeffs []Value) ([]Value, bool, error) {
	ns := make([]number.Number, len(coeffs))
	for i, c := range coeffs {
		if !c.IsExact() {
			return coeffs, false, nil
		}
		ns[i] = c.Number()
	}
	sf, err := squareFreePart(ns)
	if err != nil {
		return nil, false, err
	}
	out := make([]Value, len(sf))
	for i, c := range sf {
		out[i] = Exact(c)
	}
	return out, true, nil
}
