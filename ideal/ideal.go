// Package ideal computes reduced Gröbner bases of polynomial ideals and
// solves zero-dimensional polynomial systems.
package ideal

import (
	"cmp"
	"slices"

	"github.com/ethereum/go-ethereum/log"
	set "github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/roots"
)

var ErrEmptyIdeal = errors.New("ideal: no generators")

// Options configures basis computation and solving.
type Options struct {
	// MaxSteps is the division step ceiling, see poly.Reducer.
	MaxSteps int
	Roots    roots.Options
	Logger   log.Logger
}

func DefaultOptions() Options {
	return Options{
		MaxSteps: poly.DefaultMaxSteps,
		Roots:    roots.DefaultOptions(),
		Logger:   log.Root(),
	}
}

func (o Options) logger() log.Logger {
	if o.Logger == nil {
		return log.Root()
	}
	return o.Logger
}

func (o Options) reducer() poly.Reducer {
	return poly.Reducer{MaxSteps: o.MaxSteps, Logger: o.logger()}
}

// Ideal is the ideal generated by a tuple of polynomials over one ring. Its
// Gröbner basis is recomputed on every request.
type Ideal struct {
	ring poly.Ring
	gens []*poly.Polynomial
	opts Options
}

// New builds the ideal generated by gens with default options.
func New(gens ...*poly.Polynomial) (*Ideal, error) {
	return NewWithOptions(DefaultOptions(), gens...)
}

// NewWithOptions builds the ideal generated by gens. The generators are
// aligned onto the union of their variables and must share one ring.
func NewWithOptions(opts Options, gens ...*poly.Polynomial) (*Ideal, error) {
	if len(gens) == 0 {
		return nil, errors.WithStack(ErrEmptyIdeal)
	}
	r := gens[0].Ring()
	for i, g := range gens[1:] {
		if !g.Ring().Equal(r) {
			return nil, errors.Wrapf(poly.ErrRingMismatch, "generator %d is over %s, not %s", i+2, g.Ring(), r)
		}
	}
	return &Ideal{ring: r, gens: poly.Align(gens...), opts: opts}, nil
}

func (id *Ideal) Ring() poly.Ring { return id.ring }

// Generators returns the generators in input order.
func (id *Ideal) Generators() []*poly.Polynomial { return slices.Clone(id.gens) }

// Vars lists the variables occurring in some generator, sorted.
func (id *Ideal) Vars() []string {
	s := set.NewTreeSet[string](cmp.Compare[string])
	for _, g := range id.gens {
		s.InsertSlice(g.Variables())
	}
	return s.Slice()
}

// GroebnerBasis returns the reduced Gröbner basis: monic members sorted by
// descending leading monomial. The zero ideal has an empty basis and the
// unit ideal has basis {1}.
func (id *Ideal) GroebnerBasis() ([]*poly.Polynomial, error) {
	return newEngine(id.opts).run(id.gens)
}

// Reduce returns the normal form of f modulo the ideal.
func (id *Ideal) Reduce(f *poly.Polynomial) (*poly.Polynomial, error) {
	G, err := id.GroebnerBasis()
	if err != nil {
		return nil, err
	}
	return reduce(id.opts.reducer(), f, G)
}

func reduce(red poly.Reducer, f *poly.Polynomial, G []*poly.Polynomial) (*poly.Polynomial, error) {
	if len(G) == 0 {
		return f, nil
	}
	if !f.Ring().Equal(G[0].Ring()) {
		return nil, errors.Wrapf(poly.ErrRingMismatch, "%s is over %s", f, f.Ring())
	}
	d, err := red.DivMod(f, G...)
	if err != nil {
		return nil, err
	}
	return d.Remainder, nil
}

// Contains reports whether f belongs to the ideal.
func (id *Ideal) Contains(f *poly.Polynomial) (bool, error) {
	r, err := id.Reduce(f)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// Equal reports whether both ideals have the same reduced Gröbner basis.
// The two bases are computed concurrently.
func (id *Ideal) Equal(other *Ideal) (bool, error) {
	if !id.ring.Equal(other.ring) {
		return false, errors.Wrapf(poly.ErrRingMismatch, "%s and %s", id.ring, other.ring)
	}
	var g errgroup.Group
	var a, b []*poly.Polynomial
	g.Go(func() (err error) {
		a, err = id.GroebnerBasis()
		return err
	})
	g.Go(func() (err error) {
		b, err = other.GroebnerBasis()
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return EqualBases(a, b), nil
}

// EqualBases compares two bases as sets of polynomials up to nonzero
// scalar multiples.
func EqualBases(a, b []*poly.Polynomial) bool {
	return canonical(a).Equal(canonical(b))
}

func canonical(G []*poly.Polynomial) *set.Set[string] {
	s := set.New[string](len(G))
	for _, g := range G {
		s.Insert(g.Monic().String())
	}
	return s
}
