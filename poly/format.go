package poly

import (
	"strings"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var minusOne = number.Int(-1)

// String renders the term as coefficient*monomial, dropping a unit
// coefficient in front of a non-constant monomial.
func (t Term) String() string {
	if t.Mono.IsOne() {
		return t.Coeff.String()
	}
	switch {
	case t.Coeff.IsOne():
		return t.Mono.String()
	case number.Equal(t.Coeff, minusOne):
		return "-" + t.Mono.String()
	}
	return t.Coeff.String() + "*" + t.Mono.String()
}

// String renders p in descending term order, e.g. "x^2*y - 3/2*x + 1". The
// output parses back to the same polynomial.
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	parts := make([]string, len(p.terms))
	for i, t := range p.terms {
		parts[i] = t.String()
	}
	return strings.ReplaceAll(strings.Join(parts, " + "), "+ -", "- ")
}

func (p *Polynomial) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
