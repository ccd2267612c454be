package poly

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
	"github.com/mike006322/PolynomialCalculator-sub000/zp"
)

// ============================================================
// Term orders
// ============================================================

// Order is a monomial order. Variables are compared in the sorted order of
// their names, so under Lex x > y > z.
type Order int

const (
	Lex Order = iota
	GrLex
	GRevLex
)

func (o Order) String() string {
	switch o {
	case Lex:
		return "lex"
	case GrLex:
		return "grlex"
	case GRevLex:
		return "grevlex"
	}
	return "order(" + strconv.Itoa(int(o)) + ")"
}

// ParseOrder accepts lex, grlex/deglex and grevlex/degrevlex.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lex":
		return Lex, nil
	case "grlex", "deglex":
		return GrLex, nil
	case "grevlex", "degrevlex":
		return GRevLex, nil
	}
	return Lex, errors.Errorf("poly: unknown term order %q", s)
}

// compare orders two exponent vectors of equal length.
func (o Order) compare(a, b []int) int {
	switch o {
	case GrLex:
		if c := cmpInt(sum(a), sum(b)); c != 0 {
			return c
		}
		return lexCompare(a, b)
	case GRevLex:
		if c := cmpInt(sum(a), sum(b)); c != 0 {
			return c
		}
		// The smaller exponent in the last differing variable wins.
		for i := len(a) - 1; i >= 0; i-- {
			if a[i] != b[i] {
				return cmpInt(b[i], a[i])
			}
		}
		return 0
	}
	return lexCompare(a, b)
}

// Compare orders two monomials over the same variables.
func (o Order) Compare(a, b Monomial) int { return o.compare(a.exps, b.exps) }

func lexCompare(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			return cmpInt(a[i], b[i])
		}
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sum(e []int) int {
	s := 0
	for _, x := range e {
		s += x
	}
	return s
}

// ============================================================
// Coefficient rings
// ============================================================

// Ring tags a polynomial with its coefficient field and term order. The zero
// Ring is the rationals under Lex. Polynomials from different rings are never
// combined implicitly; see Polynomial.In.
type Ring struct {
	field *zp.Field
	order Order
}

// Rationals returns QQ with the given term order.
func Rationals(o Order) Ring { return Ring{order: o} }

// GF returns the prime field of characteristic p with the given term order.
// p = 0 returns the rationals.
func GF(p *big.Int, o Order) (Ring, error) {
	if p == nil || p.Sign() == 0 {
		return Rationals(o), nil
	}
	f, err := zp.New(p)
	if err != nil {
		return Ring{}, err
	}
	return Ring{field: f, order: o}, nil
}

// Characteristic returns p, or 0 for the rationals.
func (r Ring) Characteristic() *big.Int {
	if r.field == nil {
		return new(big.Int)
	}
	return r.field.Modulus()
}

func (r Ring) Order() Order           { return r.order }
func (r Ring) WithOrder(o Order) Ring { return Ring{field: r.field, order: o} }
func (r Ring) Equal(o Ring) bool      { return r.order == o.order && r.field.Equal(o.field) }
func (r Ring) IsRationals() bool      { return r.field == nil }

func (r Ring) String() string {
	if r.field == nil {
		return "QQ[" + r.order.String() + "]"
	}
	return r.field.String() + "[" + r.order.String() + "]"
}

// coeff brings an exact number into the ring.
func (r Ring) coeff(n number.Number) (number.Number, error) {
	if r.field == nil {
		return n, nil
	}
	return r.field.Reduce(n)
}

func (r Ring) mustCoeff(n number.Number) number.Number {
	c, err := r.coeff(n)
	if err != nil {
		panic(err)
	}
	return c
}

func (r Ring) add(a, b number.Number) number.Number {
	if r.field == nil {
		return number.Add(a, b)
	}
	return r.field.Add(a.(number.Integer), b.(number.Integer))
}

func (r Ring) mul(a, b number.Number) number.Number {
	if r.field == nil {
		return number.Mul(a, b)
	}
	return r.field.Mul(a.(number.Integer), b.(number.Integer))
}

func (r Ring) neg(a number.Number) number.Number {
	if r.field == nil {
		return number.Neg(a)
	}
	return r.field.Neg(a.(number.Integer))
}

func (r Ring) quo(a, b number.Number) (number.Number, error) {
	if b.IsZero() {
		return nil, errors.WithStack(number.ErrDivisionByZero)
	}
	if r.field == nil {
		return number.Quo(a, b)
	}
	return r.field.Quo(a.(number.Integer), b.(number.Integer))
}
