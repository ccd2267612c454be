package ideal

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/roots"
)

// Status classifies the outcome of Solve. Only Finite carries solutions;
// the other outcomes are answers, not errors.
type Status int

const (
	Finite Status = iota
	Inconsistent
	NotZeroDimensional
)

func (s Status) String() string {
	switch s {
	case Finite:
		return "finite"
	case Inconsistent:
		return "inconsistent"
	case NotZeroDimensional:
		return "not zero-dimensional"
	}
	return "unknown"
}

// Solution assigns a value to every variable of the system.
type Solution map[string]roots.Value

func (s Solution) String() string {
	names := maps.Keys(s)
	slices.Sort(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + "=" + s[n].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s Solution) equal(o Solution, tol float64) bool {
	if len(s) != len(o) {
		return false
	}
	for k, v := range s {
		w, ok := o[k]
		if !ok || !v.Equal(w, tol) {
			return false
		}
	}
	return true
}

// Result is the answer of Solve. Basis is the lexicographic Gröbner basis
// the solutions were read from.
type Result struct {
	Status    Status
	Basis     []*poly.Polynomial
	Solutions []Solution
}

// SolvabilityCriteria reports whether, for every variable, some member of
// the Gröbner basis G has a leading monomial that is a pure power of it.
// This holds exactly when the solution set is finite.
func SolvabilityCriteria(G []*poly.Polynomial, vars []string) bool {
	isolated := make(map[string]bool, len(vars))
	for _, g := range G {
		if v, ok := g.LM().PurePower(); ok {
			isolated[v] = true
		}
	}
	for _, v := range vars {
		if !isolated[v] {
			return false
		}
	}
	return true
}

// SolvabilityCriteria applies the finiteness test to the ideal's basis.
func (id *Ideal) SolvabilityCriteria() (bool, error) {
	G, err := id.GroebnerBasis()
	if err != nil {
		return false, err
	}
	return SolvabilityCriteria(G, id.Vars()), nil
}

// Solve finds every solution of the system when there are finitely many.
// The basis is recomputed under the lexicographic order and solved by
// back-substitution, one univariate polynomial at a time. Values stay exact
// while every root along a branch is exact.
//
// Only the rationals are supported; prime fields fail with
// poly.ErrNotImplemented.
func (id *Ideal) Solve() (*Result, error) {
	if !id.ring.IsRationals() {
		return nil, errors.Wrapf(poly.ErrNotImplemented, "solving over %s", id.ring)
	}
	lex := id
	if id.ring.Order() != poly.Lex {
		r := id.ring.WithOrder(poly.Lex)
		gens := make([]*poly.Polynomial, len(id.gens))
		for i, g := range id.gens {
			c, err := g.In(r)
			if err != nil {
				return nil, err
			}
			gens[i] = c
		}
		lex = &Ideal{ring: r, gens: gens, opts: id.opts}
	}
	G, err := lex.GroebnerBasis()
	if err != nil {
		return nil, err
	}
	res := &Result{Basis: G}
	vars := id.Vars()
	switch {
	case len(G) == 1 && G[0].IsOne():
		res.Status = Inconsistent
		return res, nil
	case len(G) == 0 || !SolvabilityCriteria(G, vars):
		res.Status = NotZeroDimensional
		return res, nil
	}

	s := &solver{vars: vars, opts: id.opts.Roots, log: id.opts.logger()}
	system := make([]vpoly, len(G))
	for i, g := range G {
		system[i] = fromPolynomial(g, vars)
	}
	if err := s.solve(system, Solution{}); err != nil {
		return nil, err
	}
	slices.SortFunc(s.found, func(a, b Solution) int { return strings.Compare(a.String(), b.String()) })
	res.Status = Finite
	res.Solutions = s.found
	return res, nil
}
