package ideal

import (
	"slices"

	"github.com/ethereum/go-ethereum/log"
	set "github.com/hashicorp/go-set/v3"

	"github.com/mike006322/PolynomialCalculator-sub000/poly"
)

// pair is a critical pair of indices into the candidate list, i < j.
type pair struct{ i, j int }

func newPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// engine holds the state of one Buchberger run:
//
//	F      every candidate polynomial seen so far
//	G      indices of F forming the current minimal, reduced basis
//	queue  unresolved critical pairs in insertion order
//
// pending mirrors queue for membership tests.
type engine struct {
	red     poly.Reducer
	log     log.Logger
	F       []*poly.Polynomial
	G       []int
	queue   []pair
	pending *set.Set[pair]

	pruned, reduced, rereduced int
}

func newEngine(opts Options) *engine {
	return &engine{
		red:     opts.reducer(),
		log:     opts.logger(),
		pending: set.New[pair](0),
	}
}

func (e *engine) push(a, b int) {
	p := newPair(a, b)
	if e.pending.Insert(p) {
		e.queue = append(e.queue, p)
	}
}

func (e *engine) pop() pair {
	p := e.queue[0]
	e.queue = e.queue[1:]
	e.pending.Remove(p)
	return p
}

func (e *engine) basis() []*poly.Polynomial {
	out := make([]*poly.Polynomial, len(e.G))
	for k, i := range e.G {
		out[k] = e.F[i]
	}
	return out
}

func (e *engine) run(gens []*poly.Polynomial) ([]*poly.Polynomial, error) {
	gens = poly.Align(gens...)
	for _, g := range gens {
		if g.IsZero() {
			continue
		}
		if g.IsConstant() {
			return unit(g), nil
		}
		e.G = append(e.G, len(e.F))
		e.F = append(e.F, g.Monic())
	}
	if len(e.F) == 0 {
		return nil, nil
	}
	for j := range e.F {
		for i := 0; i < j; i++ {
			e.push(i, j)
		}
	}
	if err := e.normalize(); err != nil {
		return nil, err
	}

	for len(e.queue) > 0 {
		p := e.pop()
		fi, fj := e.F[p.i], e.F[p.j]
		if fi.LM().Coprime(fj.LM()) || e.chain(p) {
			e.pruned++
			continue
		}
		e.log.Trace("Reducing critical pair", "i", p.i, "j", p.j, "pending", len(e.queue))
		s, err := poly.SPolynomial(fi, fj)
		if err != nil {
			return nil, err
		}
		d, err := e.red.DivMod(s, e.basis()...)
		if err != nil {
			return nil, err
		}
		e.reduced++
		r := d.Remainder
		if r.IsZero() {
			continue
		}
		if r.IsConstant() {
			e.log.Debug("Ideal is the unit ideal", "pairs", e.reduced)
			return unit(r), nil
		}
		if err := e.insert(r.Monic()); err != nil {
			return nil, err
		}
	}
	G := e.basis()
	slices.SortFunc(G, func(a, b *poly.Polynomial) int {
		return a.Ring().Order().Compare(b.LM(), a.LM())
	})
	e.log.Debug("Computed Gröbner basis", "size", len(G), "candidates", len(e.F), "reduced", e.reduced, "pruned", e.pruned, "rereduced", e.rereduced)
	return G, nil
}

// chain reports that some other candidate's leading monomial divides
// lcm(LM(F_i), LM(F_j)) while both of its pairs with i and j are resolved.
func (e *engine) chain(p pair) bool {
	l := e.F[p.i].LM().LCM(e.F[p.j].LM())
	for k := range e.F {
		if k == p.i || k == p.j {
			continue
		}
		if e.pending.Contains(newPair(p.i, k)) || e.pending.Contains(newPair(p.j, k)) {
			continue
		}
		if e.F[k].LM().Divides(l) {
			return true
		}
	}
	return false
}

// insert adds a new candidate to F and G, restores minimality and
// reducedness, and queues its pairs with every earlier candidate.
func (e *engine) insert(f *poly.Polynomial) error {
	n := len(e.F)
	e.F = append(e.F, f)
	e.G = append(e.G, n)
	e.log.Debug("Extended basis candidates", "index", n, "lm", f.LM().String(), "basis", len(e.G))
	if err := e.normalize(); err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		e.push(k, n)
	}
	return nil
}

// normalize drops basis members whose leading monomial is divisible by
// another member's, then replaces each remaining member by its monic
// remainder modulo the others. Leading monomials are pairwise incomparable
// after the first step, so the second keeps them unchanged. A member none
// of whose terms is divisible by another leading monomial is already
// reduced and is skipped; after an insertion that is every member the new
// leading monomial does not touch.
func (e *engine) normalize() error {
	var keep []int
	for a, i := range e.G {
		li := e.F[i].LM()
		redundant := false
		for b, j := range e.G {
			if a == b {
				continue
			}
			lj := e.F[j].LM()
			if lj.Divides(li) && (!lj.Equal(li) || b < a) {
				redundant = true
				break
			}
		}
		if !redundant {
			keep = append(keep, i)
		}
	}
	e.G = keep

	for a, i := range e.G {
		others := make([]*poly.Polynomial, 0, len(e.G)-1)
		for b, j := range e.G {
			if a != b {
				others = append(others, e.F[j])
			}
		}
		if len(others) == 0 || !reducible(e.F[i], others) {
			continue
		}
		e.rereduced++
		d, err := e.red.DivMod(e.F[i], others...)
		if err != nil {
			return err
		}
		e.F[i] = d.Remainder.Monic()
	}
	return nil
}

// reducible reports whether a leading monomial of gs divides some term of f.
func reducible(f *poly.Polynomial, gs []*poly.Polynomial) bool {
	for _, t := range f.Terms() {
		for _, g := range gs {
			if g.LM().Divides(t.Mono) {
				return true
			}
		}
	}
	return false
}

func unit(like *poly.Polynomial) []*poly.Polynomial {
	return []*poly.Polynomial{poly.One(like.Ring())}
}
