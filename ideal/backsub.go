package ideal

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/exp/maps"

	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/roots"
)

// vpoly is a polynomial over the solver's variables whose coefficients may
// have become approximate through substitution.
type vpoly []vterm

type vterm struct {
	c    roots.Value
	exps []int
}

func fromPolynomial(p *poly.Polynomial, vars []string) vpoly {
	out := make(vpoly, 0, p.Len())
	for _, t := range p.Terms() {
		e := make([]int, len(vars))
		for i, v := range vars {
			e[i] = t.Mono.Exp(v)
		}
		out = append(out, vterm{c: roots.Exact(t.Coeff), exps: e})
	}
	return out
}

func expsKey(e []int) string {
	var b strings.Builder
	for _, x := range e {
		b.WriteString(strconv.Itoa(x))
		b.WriteByte(',')
	}
	return b.String()
}

// clean drops coefficients that are zero, or within tol of zero when
// approximate.
func (p vpoly) clean(tol float64) vpoly {
	out := p[:0:0]
	for _, t := range p {
		if !t.c.IsZero(tol) {
			out = append(out, t)
		}
	}
	return out
}

// occurring lists the indices of variables with a nonzero exponent.
func (p vpoly) occurring() []int {
	var out []int
	for i := range p[0].exps {
		for _, t := range p {
			if t.exps[i] > 0 {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// substitute fixes variable i to x.
func (p vpoly) substitute(i int, x roots.Value, tol float64) vpoly {
	index := make(map[string]int, len(p))
	out := make(vpoly, 0, len(p))
	for _, t := range p {
		c, e := t.c, t.exps
		if e[i] > 0 {
			c = c.Mul(x.Pow(e[i]))
			e = append([]int(nil), e...)
			e[i] = 0
		}
		k := expsKey(e)
		if j, ok := index[k]; ok {
			out[j].c = out[j].c.Add(c)
			continue
		}
		index[k] = len(out)
		out = append(out, vterm{c: c, exps: e})
	}
	return out.clean(tol)
}

// univariate returns the ascending coefficients of p in variable i. Every
// other exponent must be zero.
func (p vpoly) univariate(i int) []roots.Value {
	deg := 0
	for _, t := range p {
		deg = max(deg, t.exps[i])
	}
	cs := make([]roots.Value, deg+1)
	for k := range cs {
		cs[k] = roots.Int(0)
	}
	for _, t := range p {
		cs[t.exps[i]] = cs[t.exps[i]].Add(t.c)
	}
	return cs
}

// solver back-substitutes through a lexicographic Gröbner basis.
type solver struct {
	vars  []string
	opts  roots.Options
	log   log.Logger
	found []Solution
}

func (s *solver) solve(system []vpoly, fixed Solution) error {
	tol := s.opts.SnapTolerance
	var live []vpoly
	for _, p := range system {
		p = p.clean(tol)
		if len(p) == 0 {
			continue
		}
		if len(p.occurring()) == 0 {
			// A nonzero constant survived: this branch has no solution.
			s.log.Trace("Dropping inconsistent branch", "partial", fixed.String())
			return nil
		}
		live = append(live, p)
	}
	if len(live) == 0 {
		if len(fixed) == len(s.vars) {
			s.add(fixed)
		} else {
			s.log.Debug("Branch leaves variables unassigned", "partial", fixed.String())
		}
		return nil
	}

	// The basis is sorted by descending leading monomial, so the members in
	// the fewest variables sit at the end.
	idx, pick := -1, vpoly(nil)
	for k := len(live) - 1; k >= 0; k-- {
		if occ := live[k].occurring(); len(occ) == 1 {
			idx, pick = occ[0], live[k]
			break
		}
	}
	if idx < 0 {
		s.log.Debug("No univariate member left", "partial", fixed.String(), "members", len(live))
		return nil
	}
	rs, err := roots.Solve(pick.univariate(idx), s.opts)
	if err != nil {
		return err
	}
	for _, r := range rs {
		next := make([]vpoly, len(live))
		for k, p := range live {
			next[k] = p.substitute(idx, r, tol)
		}
		sol := maps.Clone(fixed)
		sol[s.vars[idx]] = r
		if err := s.solve(next, sol); err != nil {
			return err
		}
	}
	return nil
}

func (s *solver) add(sol Solution) {
	for _, f := range s.found {
		if f.equal(sol, s.opts.SnapTolerance) {
			return
		}
	}
	s.found = append(s.found, sol)
}
