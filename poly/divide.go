package poly

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// DefaultMaxSteps bounds division and gcd loops. Termination is guaranteed
// for every supported term order; the ceiling only turns a runaway loop into
// a logged, partial result.
const DefaultMaxSteps = 1 << 20

// Reducer runs the division and gcd loops.
type Reducer struct {
	// MaxSteps caps the iterations of a single loop. Zero disables the cap.
	MaxSteps int
	Logger   log.Logger
}

func DefaultReducer() Reducer {
	return Reducer{MaxSteps: DefaultMaxSteps, Logger: log.Root()}
}

func (r Reducer) logger() log.Logger {
	if r.Logger == nil {
		return log.Root()
	}
	return r.Logger
}

func (r Reducer) exceeded(steps int) bool { return r.MaxSteps > 0 && steps >= r.MaxSteps }

// Division is the outcome of dividing f by g_1..g_k:
//
//	f = sum(Quotients[i]*g_i) + Remainder
//
// When Complete is false the step ceiling was reached; the identity still
// holds but the remainder may not be fully reduced.
type Division struct {
	Quotients []*Polynomial
	Remainder *Polynomial
	Steps     int
	Complete  bool
}

// DivMod divides f by the divisors in order. Every polynomial is aligned
// onto the union of all variables first. No monomial of a complete
// remainder is divisible by the leading monomial of any divisor.
func (r Reducer) DivMod(f *Polynomial, gs ...*Polynomial) (*Division, error) {
	if len(gs) == 0 {
		return nil, errors.WithStack(ErrNoDivisors)
	}
	for _, g := range gs {
		f.check(g)
	}
	all := Align(append([]*Polynomial{f}, gs...)...)
	p, divs := all[0], all[1:]
	for i, g := range divs {
		if g.IsZero() {
			return nil, errors.Wrapf(number.ErrDivisionByZero, "divisor %d is zero", i)
		}
	}
	ring := p.ring

	// Each step strictly lowers LT(p), so quotient and remainder terms are
	// produced in descending order and can be appended directly.
	quots := make([][]Term, len(divs))
	var rem []Term
	d := &Division{Complete: true}
	for !p.IsZero() {
		if r.exceeded(d.Steps) {
			r.logger().Warn("Division step ceiling reached", "steps", d.Steps, "divisors", len(divs), "pending", p.Len())
			d.Complete = false
			break
		}
		d.Steps++
		lt := p.terms[0]
		divided := false
		for i, g := range divs {
			glt := g.terms[0]
			mono, ok := lt.Mono.Quo(glt.Mono)
			if !ok {
				continue
			}
			c, err := ring.quo(lt.Coeff, glt.Coeff)
			if err != nil {
				return nil, err
			}
			m := Term{Coeff: c, Mono: mono}
			quots[i] = append(quots[i], m)
			p = merge(p, g.mulTerm(m), true)
			divided = true
			break
		}
		if !divided {
			rem = append(rem, lt)
			p = &Polynomial{ring: ring, vars: p.vars, terms: p.terms[1:]}
		}
	}
	d.Remainder = &Polynomial{ring: ring, vars: p.vars, terms: rem}
	if !d.Complete {
		d.Remainder = merge(d.Remainder, p, false)
	}
	d.Quotients = make([]*Polynomial, len(divs))
	for i, q := range quots {
		d.Quotients[i] = &Polynomial{ring: ring, vars: p.vars, terms: q}
	}
	return d, nil
}

// DivMod divides with the default reducer.
func DivMod(f *Polynomial, gs ...*Polynomial) (*Division, error) {
	return DefaultReducer().DivMod(f, gs...)
}

// Quo is exact division: it fails with ErrNotAFactor unless q divides p.
func (p *Polynomial) Quo(q *Polynomial) (*Polynomial, error) {
	d, err := DivMod(p, q)
	if err != nil {
		return nil, err
	}
	if !d.Remainder.IsZero() {
		return nil, errors.Wrapf(ErrNotAFactor, "%s does not divide %s", q, p)
	}
	return d.Quotients[0], nil
}

// Rem returns the remainder of p on division by q.
func (p *Polynomial) Rem(q *Polynomial) (*Polynomial, error) {
	return p.Reduce(q)
}

// Reduce returns the remainder of p on division by gs.
func (p *Polynomial) Reduce(gs ...*Polynomial) (*Polynomial, error) {
	d, err := DivMod(p, gs...)
	if err != nil {
		return nil, err
	}
	return d.Remainder, nil
}

// SPolynomial returns (L/LT(f))*f - (L/LT(g))*g where L = lcm(LM(f), LM(g)).
// The leading terms cancel.
func SPolynomial(f, g *Polynomial) (*Polynomial, error) {
	f.check(g)
	a, b := align2(f, g)
	if a.IsZero() || b.IsZero() {
		return nil, errors.WithStack(number.ErrDivisionByZero)
	}
	l := a.LM().LCM(b.LM())
	ma, _ := l.Quo(a.LM())
	mb, _ := l.Quo(b.LM())
	ca, err := a.ring.quo(number.One(), a.LC())
	if err != nil {
		return nil, err
	}
	cb, err := b.ring.quo(number.One(), b.LC())
	if err != nil {
		return nil, err
	}
	return merge(a.mulTerm(Term{Coeff: ca, Mono: ma}), b.mulTerm(Term{Coeff: cb, Mono: mb}), true), nil
}
