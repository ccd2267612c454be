// Package poly implements sparse multivariate polynomials with exact
// coefficients.
//
// A Polynomial is an immutable value: every operation returns a new
// Polynomial and never mutates its operands. Terms are kept sorted in
// descending order under the ring's term order, so the leading term is
// always the first one and needs no cache.
//
// Polynomials over different variable sets are re-indexed onto the sorted
// union of their variables before they are combined or compared. Polynomials
// over different rings are never combined; doing so panics. Use In to
// convert explicitly.
package poly

import (
	"cmp"
	"slices"

	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var (
	ErrNotAFactor       = errors.New("poly: divisor is not a factor")
	ErrNotImplemented   = errors.New("poly: not implemented")
	ErrRingMismatch     = errors.New("poly: polynomials belong to different rings")
	ErrNoDivisors       = errors.New("poly: no divisors given")
	ErrNegativeExponent = errors.New("poly: negative exponent")
	ErrUnbound          = errors.New("poly: variable has no value")
)

// Term is a coefficient paired with a monomial.
type Term struct {
	Coeff number.Number
	Mono  Monomial
}

// Polynomial is a sparse sum of terms over a sorted variable tuple.
type Polynomial struct {
	ring  Ring
	vars  []string
	terms []Term
}

// ============================================================
// Construction
// ============================================================

// builder accumulates terms over a fixed variable tuple, merging equal
// monomials and dropping zero coefficients on build.
type builder struct {
	ring  Ring
	vars  []string
	index map[string]int
	terms []Term
}

func newBuilder(r Ring, vars []string, capacity int) *builder {
	return &builder{
		ring:  r,
		vars:  vars,
		index: make(map[string]int, capacity),
		terms: make([]Term, 0, capacity),
	}
}

// add accumulates c*x^exps. c must already belong to the ring and exps is
// retained.
func (b *builder) add(c number.Number, exps []int) {
	if c.IsZero() {
		return
	}
	k := expKey(exps)
	if i, ok := b.index[k]; ok {
		b.terms[i].Coeff = b.ring.add(b.terms[i].Coeff, c)
		return
	}
	b.index[k] = len(b.terms)
	b.terms = append(b.terms, Term{Coeff: c, Mono: Monomial{vars: b.vars, exps: exps}})
}

func (b *builder) build() *Polynomial {
	out := b.terms[:0]
	for _, t := range b.terms {
		if !t.Coeff.IsZero() {
			out = append(out, t)
		}
	}
	sortTerms(b.ring.order, out)
	return &Polynomial{ring: b.ring, vars: b.vars, terms: out}
}

func sortTerms(o Order, ts []Term) {
	slices.SortFunc(ts, func(x, y Term) int { return o.compare(y.Mono.exps, x.Mono.exps) })
}

// Zero returns the zero polynomial of r.
func Zero(r Ring) *Polynomial { return &Polynomial{ring: r} }

// One returns the constant 1 of r.
func One(r Ring) *Polynomial { return Const(r, number.One()) }

// Constant returns c as a constant polynomial. It fails when c has no image
// in r, such as 1/7 in GF(7).
func Constant(r Ring, c number.Number) (*Polynomial, error) {
	v, err := r.coeff(c)
	if err != nil {
		return nil, err
	}
	b := newBuilder(r, nil, 1)
	b.add(v, []int{})
	return b.build(), nil
}

// Const is Constant for values known to lie in r. It panics otherwise.
func Const(r Ring, c number.Number) *Polynomial {
	p, err := Constant(r, c)
	if err != nil {
		panic(err)
	}
	return p
}

// Var returns the polynomial consisting of the single variable name.
func Var(r Ring, name string) *Polynomial {
	vars := []string{name}
	return &Polynomial{
		ring:  r,
		vars:  vars,
		terms: []Term{{Coeff: number.One(), Mono: Monomial{vars: vars, exps: []int{1}}}},
	}
}

// FromTerms sums the given terms. Each monomial may carry its own variables;
// the result is indexed over their union.
func FromTerms(r Ring, terms ...Term) (*Polynomial, error) {
	lists := make([][]string, 0, len(terms))
	for _, t := range terms {
		lists = append(lists, t.Mono.vars)
	}
	vars := unionVars(lists...)
	b := newBuilder(r, vars, len(terms))
	for _, t := range terms {
		c, err := r.coeff(t.Coeff)
		if err != nil {
			return nil, err
		}
		e := make([]int, len(vars))
		for i, v := range t.Mono.vars {
			if t.Mono.exps[i] < 0 {
				return nil, errors.Wrapf(ErrNegativeExponent, "%s^%d", v, t.Mono.exps[i])
			}
			j, _ := slices.BinarySearch(vars, v)
			e[j] += t.Mono.exps[i]
		}
		b.add(c, e)
	}
	return b.build(), nil
}

// In converts p into ring r, reducing every coefficient and re-sorting under
// r's term order. Converting out of characteristic p lifts each coefficient
// to its representative in [0, p).
func (p *Polynomial) In(r Ring) (*Polynomial, error) {
	if p.ring.Equal(r) {
		return p, nil
	}
	b := newBuilder(r, p.vars, len(p.terms))
	for _, t := range p.terms {
		c, err := r.coeff(t.Coeff)
		if err != nil {
			return nil, errors.Wrapf(err, "converting %s into %s", p, r)
		}
		b.add(c, t.Mono.exps)
	}
	return b.build(), nil
}

func (p *Polynomial) zero() *Polynomial { return &Polynomial{ring: p.ring, vars: p.vars} }

func (p *Polynomial) one() *Polynomial {
	return &Polynomial{
		ring:  p.ring,
		vars:  p.vars,
		terms: []Term{{Coeff: number.One(), Mono: Monomial{vars: p.vars, exps: make([]int, len(p.vars))}}},
	}
}

// ============================================================
// Alignment
// ============================================================

func unionVars(lists ...[]string) []string {
	s := set.NewTreeSet[string](cmp.Compare[string])
	for _, l := range lists {
		s.InsertSlice(l)
	}
	return s.Slice()
}

// extend re-indexes p onto vars, which must be a sorted superset of p's
// variables. Padding with zero exponents keeps the term order intact.
func (p *Polynomial) extend(vars []string) *Polynomial {
	if slices.Equal(p.vars, vars) {
		return p
	}
	pos := make([]int, len(p.vars))
	for i, v := range p.vars {
		j, ok := slices.BinarySearch(vars, v)
		if !ok {
			panic("poly: variable " + v + " missing from alignment target")
		}
		pos[i] = j
	}
	terms := make([]Term, len(p.terms))
	for i, t := range p.terms {
		e := make([]int, len(vars))
		for j, x := range t.Mono.exps {
			e[pos[j]] = x
		}
		terms[i] = Term{Coeff: t.Coeff, Mono: Monomial{vars: vars, exps: e}}
	}
	return &Polynomial{ring: p.ring, vars: vars, terms: terms}
}

// Align re-indexes every polynomial onto the sorted union of their variables.
func Align(ps ...*Polynomial) []*Polynomial {
	lists := make([][]string, len(ps))
	for i, p := range ps {
		lists[i] = p.vars
	}
	vars := unionVars(lists...)
	out := make([]*Polynomial, len(ps))
	for i, p := range ps {
		out[i] = p.extend(vars)
	}
	return out
}

func align2(a, b *Polynomial) (*Polynomial, *Polynomial) {
	if slices.Equal(a.vars, b.vars) {
		return a, b
	}
	vars := unionVars(a.vars, b.vars)
	return a.extend(vars), b.extend(vars)
}

func (p *Polynomial) check(q *Polynomial) {
	if !p.ring.Equal(q.ring) {
		panic(errors.Wrapf(ErrRingMismatch, "%s and %s", p.ring, q.ring))
	}
}

// ============================================================
// Accessors
// ============================================================

func (p *Polynomial) Ring() Ring        { return p.ring }
func (p *Polynomial) Vars() []string    { return slices.Clone(p.vars) }
func (p *Polynomial) Terms() []Term     { return slices.Clone(p.terms) }
func (p *Polynomial) Len() int          { return len(p.terms) }
func (p *Polynomial) IsZero() bool      { return len(p.terms) == 0 }
func (p *Polynomial) LM() Monomial      { return p.LT().Mono }
func (p *Polynomial) LC() number.Number { return p.LT().Coeff }

// Variables lists the variables that occur with a nonzero exponent.
func (p *Polynomial) Variables() []string {
	var out []string
	for i, v := range p.vars {
		for _, t := range p.terms {
			if t.Mono.exps[i] > 0 {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

// LT returns the leading term. The zero polynomial has a zero leading term.
func (p *Polynomial) LT() Term {
	if len(p.terms) == 0 {
		return Term{Coeff: number.Zero(), Mono: Monomial{vars: p.vars, exps: make([]int, len(p.vars))}}
	}
	return p.terms[0]
}

func (p *Polynomial) IsConstant() bool {
	return len(p.terms) == 0 || (len(p.terms) == 1 && p.terms[0].Mono.IsOne())
}

func (p *Polynomial) IsOne() bool {
	return len(p.terms) == 1 && p.terms[0].Mono.IsOne() && p.terms[0].Coeff.IsOne()
}

// ConstantValue returns the value of a constant polynomial.
func (p *Polynomial) ConstantValue() (number.Number, bool) {
	if !p.IsConstant() {
		return nil, false
	}
	return p.LC(), true
}

// Degree returns the highest exponent of name, or -1 for the zero
// polynomial.
func (p *Polynomial) Degree(name string) int {
	if p.IsZero() {
		return -1
	}
	i := slices.Index(p.vars, name)
	if i < 0 {
		return 0
	}
	d := 0
	for _, t := range p.terms {
		d = max(d, t.Mono.exps[i])
	}
	return d
}

// TotalDegree returns the largest total degree of a term, or -1 for the zero
// polynomial.
func (p *Polynomial) TotalDegree() int {
	d := -1
	for _, t := range p.terms {
		d = max(d, t.Mono.Degree())
	}
	return d
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether p and q belong to the same ring and have the same
// terms once aligned.
func (p *Polynomial) Equal(q *Polynomial) bool {
	if !p.ring.Equal(q.ring) || len(p.terms) != len(q.terms) {
		return false
	}
	a, b := align2(p, q)
	for i := range a.terms {
		x, y := a.terms[i], b.terms[i]
		if !x.Mono.Equal(y.Mono) || !number.Equal(x.Coeff, y.Coeff) {
			return false
		}
	}
	return true
}

// EqualUpToScalar reports whether p = c*q for some nonzero c.
func (p *Polynomial) EqualUpToScalar(q *Polynomial) bool {
	if p.IsZero() || q.IsZero() {
		return p.IsZero() && q.IsZero() && p.ring.Equal(q.ring)
	}
	return p.Monic().Equal(q.Monic())
}
