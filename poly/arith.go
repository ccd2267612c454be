package poly

import (
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// merge adds two sorted term lists over the same variables, negating b's
// coefficients when neg is set. The result stays sorted.
func merge(a, b *Polynomial, neg bool) *Polynomial {
	r, o := a.ring, a.ring.order
	out := make([]Term, 0, len(a.terms)+len(b.terms))
	bc := func(t Term) Term {
		if neg {
			return Term{Coeff: r.neg(t.Coeff), Mono: t.Mono}
		}
		return t
	}
	i, j := 0, 0
	for i < len(a.terms) && j < len(b.terms) {
		x, y := a.terms[i], b.terms[j]
		switch c := o.compare(x.Mono.exps, y.Mono.exps); {
		case c > 0:
			out = append(out, x)
			i++
		case c < 0:
			out = append(out, bc(y))
			j++
		default:
			if s := r.add(x.Coeff, bc(y).Coeff); !s.IsZero() {
				out = append(out, Term{Coeff: s, Mono: x.Mono})
			}
			i++
			j++
		}
	}
	out = append(out, a.terms[i:]...)
	for ; j < len(b.terms); j++ {
		out = append(out, bc(b.terms[j]))
	}
	return &Polynomial{ring: r, vars: a.vars, terms: out}
}

func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	p.check(q)
	a, b := align2(p, q)
	return merge(a, b, false)
}

func (p *Polynomial) Sub(q *Polynomial) *Polynomial {
	p.check(q)
	a, b := align2(p, q)
	return merge(a, b, true)
}

func (p *Polynomial) Neg() *Polynomial {
	out := make([]Term, len(p.terms))
	for i, t := range p.terms {
		out[i] = Term{Coeff: p.ring.neg(t.Coeff), Mono: t.Mono}
	}
	return &Polynomial{ring: p.ring, vars: p.vars, terms: out}
}

// Scale multiplies every coefficient by c. It panics when c has no image in
// the ring.
func (p *Polynomial) Scale(c number.Number) *Polynomial {
	k := p.ring.mustCoeff(c)
	if k.IsZero() {
		return p.zero()
	}
	return p.mulTerm(Term{Coeff: k, Mono: Monomial{vars: p.vars, exps: make([]int, len(p.vars))}})
}

// mulTerm multiplies p by a term over p's variables. Term orders respect
// multiplication, so the result needs no sorting.
func (p *Polynomial) mulTerm(t Term) *Polynomial {
	out := make([]Term, 0, len(p.terms))
	for _, x := range p.terms {
		c := p.ring.mul(x.Coeff, t.Coeff)
		if c.IsZero() {
			continue
		}
		out = append(out, Term{Coeff: c, Mono: x.Mono.Mul(t.Mono)})
	}
	return &Polynomial{ring: p.ring, vars: p.vars, terms: out}
}

func (p *Polynomial) Mul(q *Polynomial) *Polynomial {
	p.check(q)
	a, b := align2(p, q)
	switch {
	case a.IsZero() || b.IsZero():
		return a.zero()
	case len(b.terms) == 1:
		return a.mulTerm(b.terms[0])
	case len(a.terms) == 1:
		return b.mulTerm(a.terms[0])
	}
	out := newBuilder(a.ring, a.vars, len(a.terms)*len(b.terms))
	for _, x := range a.terms {
		for _, y := range b.terms {
			e := make([]int, len(a.vars))
			for i := range e {
				e[i] = x.Mono.exps[i] + y.Mono.exps[i]
			}
			out.add(a.ring.mul(x.Coeff, y.Coeff), e)
		}
	}
	return out.build()
}

// Pow raises p to a non-negative power by repeated squaring. p^0 is 1.
func (p *Polynomial) Pow(n int) (*Polynomial, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeExponent, "(%s)^%d", p, n)
	}
	result, base := p.one(), p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		n >>= 1
		if n > 0 {
			base = base.Mul(base)
		}
	}
	return result, nil
}

// Derivative differentiates p with respect to name. It returns zero when
// name does not occur.
func (p *Polynomial) Derivative(name string) *Polynomial {
	i := slices.Index(p.vars, name)
	if i < 0 {
		return p.zero()
	}
	out := newBuilder(p.ring, p.vars, len(p.terms))
	for _, t := range p.terms {
		e := t.Mono.exps[i]
		if e == 0 {
			continue
		}
		exps := slices.Clone(t.Mono.exps)
		exps[i]--
		out.add(p.ring.mul(t.Coeff, p.ring.mustCoeff(number.FromInt(e))), exps)
	}
	return out.build()
}

// Monic divides p by its leading coefficient. Zero stays zero.
func (p *Polynomial) Monic() *Polynomial {
	if p.IsZero() || p.LC().IsOne() {
		return p
	}
	inv, err := p.ring.quo(number.One(), p.LC())
	if err != nil {
		panic(err)
	}
	return p.mulTerm(Term{Coeff: inv, Mono: Monomial{vars: p.vars, exps: make([]int, len(p.vars))}})
}

// Substitute replaces the named variables by values. Substituted variables
// are removed from the result's variable tuple.
func (p *Polynomial) Substitute(vals map[string]number.Number) (*Polynomial, error) {
	names := maps.Keys(vals)
	slices.Sort(names)
	fixed := make(map[string]number.Number, len(names))
	for _, n := range names {
		c, err := p.ring.coeff(vals[n])
		if err != nil {
			return nil, errors.Wrapf(err, "value of %s", n)
		}
		fixed[n] = c
	}
	var keep []string
	for _, v := range p.vars {
		if _, ok := fixed[v]; !ok {
			keep = append(keep, v)
		}
	}
	out := newBuilder(p.ring, keep, len(p.terms))
	for _, t := range p.terms {
		c := t.Coeff
		e := make([]int, 0, len(keep))
		for i, v := range p.vars {
			val, ok := fixed[v]
			if !ok {
				e = append(e, t.Mono.exps[i])
				continue
			}
			if t.Mono.exps[i] == 0 {
				continue
			}
			pw, err := number.Pow(val, t.Mono.exps[i])
			if err != nil {
				return nil, err
			}
			c = p.ring.mul(c, p.ring.mustCoeff(pw))
		}
		out.add(c, e)
	}
	return out.build(), nil
}

// Eval substitutes every occurring variable and returns the resulting value.
func (p *Polynomial) Eval(vals map[string]number.Number) (number.Number, error) {
	q, err := p.Substitute(vals)
	if err != nil {
		return nil, err
	}
	if v := q.Variables(); len(v) > 0 {
		return nil, errors.Wrapf(ErrUnbound, "%s", v[0])
	}
	return q.LC(), nil
}

// Isolate writes p as the sum of c_i*name^i and returns c_0..c_d, each a
// polynomial in the remaining variables. The zero polynomial yields nil.
func (p *Polynomial) Isolate(name string) []*Polynomial {
	if p.IsZero() {
		return nil
	}
	i := slices.Index(p.vars, name)
	if i < 0 {
		return []*Polynomial{p}
	}
	rest := slices.Delete(slices.Clone(p.vars), i, i+1)
	bs := make([]*builder, p.Degree(name)+1)
	for k := range bs {
		bs[k] = newBuilder(p.ring, rest, 0)
	}
	for _, t := range p.terms {
		e := slices.Delete(slices.Clone(t.Mono.exps), i, i+1)
		bs[t.Mono.exps[i]].add(t.Coeff, e)
	}
	out := make([]*Polynomial, len(bs))
	for k, b := range bs {
		out[k] = b.build()
	}
	return out
}
