// Package polycalc is the front end of an exact multivariate polynomial
// calculator.
//
// Design goals:
//   - Exact arithmetic over the rationals or a prime field
//   - Deterministic Gröbner bases and stable, parseable output
//   - JSON reports and an MCP-ready tool interface
//   - Embeddable in Go services, CLI tools, and agent backends
//
// The algebra lives in the number, zp, poly, ideal, roots and parse
// packages. An Engine binds them to one coefficient ring and term order and
// accepts polynomials as strings.
package polycalc

import (
	"cmp"
	"io"
	"math"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mike006322/PolynomialCalculator-sub000/ideal"
	"github.com/mike006322/PolynomialCalculator-sub000/parse"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/roots"
)

var ErrInvalidOptions = errors.New("polycalc: invalid options")

// ============================================================
// Options
// ============================================================

// Options configures an Engine.
type Options struct {
	Order poly.Order
	// Characteristic selects GF(p); nil or zero selects the rationals.
	Characteristic *big.Int
	// StepLimit caps division, gcd and search loops. Zero disables the cap.
	StepLimit int
	// Tolerance decides when an approximate root is snapped to an integer
	// and when an approximate coefficient counts as zero.
	Tolerance     float64
	MaxIterations int
	// CacheBytes sizes the Gröbner basis cache. Zero disables it.
	CacheBytes int
	// Rand feeds random_monic and find_irreducible; nil uses crypto/rand.
	Rand   io.Reader
	Logger log.Logger
}

func DefaultOptions() Options {
	ro := roots.DefaultOptions()
	return Options{
		Order:         poly.Lex,
		StepLimit:     poly.DefaultMaxSteps,
		Tolerance:     ro.SnapTolerance,
		MaxIterations: ro.MaxIterations,
		CacheBytes:    32 << 20,
		Logger:        log.Root(),
	}
}

// Validate checks the numeric settings and that the characteristic is
// zero or a supported prime.
func (o Options) Validate() error {
	switch {
	case o.StepLimit < 0:
		return errors.Wrapf(ErrInvalidOptions, "step limit %d is negative", o.StepLimit)
	case math.IsNaN(o.Tolerance) || o.Tolerance <= 0:
		return errors.Wrapf(ErrInvalidOptions, "tolerance %g must be positive", o.Tolerance)
	case o.MaxIterations < 1:
		return errors.Wrapf(ErrInvalidOptions, "max iterations %d must be positive", o.MaxIterations)
	case o.CacheBytes < 0:
		return errors.Wrapf(ErrInvalidOptions, "cache size %d is negative", o.CacheBytes)
	case o.Characteristic != nil && o.Characteristic.Sign() < 0:
		return errors.Wrapf(ErrInvalidOptions, "characteristic %s is negative", o.Characteristic)
	}
	_, err := o.Ring()
	return err
}

// Ring returns the coefficient ring the options select.
func (o Options) Ring() (poly.Ring, error) { return poly.GF(o.Characteristic, o.Order) }

func (o Options) logger() log.Logger {
	if o.Logger == nil {
		return log.Root()
	}
	return o.Logger
}

// ============================================================
// Engine
// ============================================================

// Engine evaluates calculator commands over one ring. It is safe for
// concurrent use.
type Engine struct {
	opts  Options
	ring  poly.Ring
	cache *BasisCache
	log   log.Logger
}

func New(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r, err := opts.Ring()
	if err != nil {
		return nil, err
	}
	e := &Engine{opts: opts, ring: r, log: opts.logger()}
	if opts.CacheBytes > 0 {
		e.cache = NewBasisCache(opts.CacheBytes)
	}
	return e, nil
}

func (e *Engine) Ring() poly.Ring    { return e.ring }
func (e *Engine) Cache() *BasisCache { return e.cache }

// WithRing returns an engine over r that shares this engine's options and
// cache.
func (e *Engine) WithRing(r poly.Ring) *Engine {
	c := *e
	c.ring = r
	return &c
}

func (e *Engine) reducer() poly.Reducer {
	return poly.Reducer{MaxSteps: e.opts.StepLimit, Logger: e.log}
}

func (e *Engine) rootOptions() roots.Options {
	ro := roots.DefaultOptions()
	ro.SnapTolerance = e.opts.Tolerance
	ro.MaxIterations = e.opts.MaxIterations
	return ro
}

func (e *Engine) idealOptions() ideal.Options {
	return ideal.Options{MaxSteps: e.opts.StepLimit, Roots: e.rootOptions(), Logger: e.log}
}

// Parse reads polynomials over the engine's ring.
func (e *Engine) Parse(ss ...string) ([]*poly.Polynomial, error) { return parse.Polynomials(e.ring, ss...) }

func (e *Engine) parse1(s string) (*poly.Polynomial, error) { return parse.Polynomial(e.ring, s) }

func (e *Engine) parse2(a, b string) (*poly.Polynomial, *poly.Polynomial, error) {
	ps, err := e.Parse(a, b)
	if err != nil {
		return nil, nil, err
	}
	return ps[0], ps[1], nil
}

func (e *Engine) ideal(gens []string) (*ideal.Ideal, error) {
	ps, err := e.Parse(gens...)
	if err != nil {
		return nil, err
	}
	return ideal.NewWithOptions(e.idealOptions(), ps...)
}

// ============================================================
// Operations
// ============================================================

// GCD returns the monic gcd of a and b.
func (e *Engine) GCD(a, b string) (*poly.Polynomial, error) {
	p, q, err := e.parse2(a, b)
	if err != nil {
		return nil, err
	}
	return e.reducer().GCD(p, q)
}

// LCM returns the monic lcm of a and b.
func (e *Engine) LCM(a, b string) (*poly.Polynomial, error) {
	p, q, err := e.parse2(a, b)
	if err != nil {
		return nil, err
	}
	return e.reducer().LCM(p, q)
}

// Divide divides f by the divisors in order.
func (e *Engine) Divide(f string, divisors ...string) (*poly.Division, error) {
	ps, err := e.Parse(append([]string{f}, divisors...)...)
	if err != nil {
		return nil, err
	}
	return e.reducer().DivMod(ps[0], ps[1:]...)
}

// Groebner returns the reduced Gröbner basis of the ideal generated by gens.
func (e *Engine) Groebner(gens ...string) ([]*poly.Polynomial, error) {
	I, err := e.ideal(gens)
	if err != nil {
		return nil, err
	}
	return e.basis(I)
}

func (e *Engine) basis(I *ideal.Ideal) ([]*poly.Polynomial, error) {
	if e.cache != nil {
		if G, ok := e.cache.Get(I.Ring(), I.Generators()); ok {
			return G, nil
		}
	}
	G, err := I.GroebnerBasis()
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Put(I.Ring(), I.Generators(), G)
	}
	return G, nil
}

// Reduce returns the normal form of f modulo the ideal generated by gens.
func (e *Engine) Reduce(f string, gens ...string) (*poly.Polynomial, error) {
	p, err := e.parse1(f)
	if err != nil {
		return nil, err
	}
	I, err := e.ideal(gens)
	if err != nil {
		return nil, err
	}
	G, err := e.basis(I)
	if err != nil {
		return nil, err
	}
	if len(G) == 0 {
		return p, nil
	}
	d, err := e.reducer().DivMod(p, G...)
	if err != nil {
		return nil, err
	}
	return d.Remainder, nil
}

// Contains reports whether f lies in the ideal generated by gens.
func (e *Engine) Contains(f string, gens ...string) (bool, error) {
	r, err := e.Reduce(f, gens...)
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}

// Equal reports whether two generator lists span the same ideal. Both
// bases are computed concurrently.
func (e *Engine) Equal(a, b []string) (bool, error) {
	I, err := e.ideal(a)
	if err != nil {
		return false, err
	}
	J, err := e.ideal(b)
	if err != nil {
		return false, err
	}
	var g errgroup.Group
	var ga, gb []*poly.Polynomial
	g.Go(func() (err error) {
		ga, err = e.basis(I)
		return err
	})
	g.Go(func() (err error) {
		gb, err = e.basis(J)
		return err
	})
	if err := g.Wait(); err != nil {
		return false, err
	}
	return ideal.EqualBases(ga, gb), nil
}

// Solve solves the system gens = 0.
func (e *Engine) Solve(gens ...string) (*ideal.Result, error) {
	I, err := e.ideal(gens)
	if err != nil {
		return nil, err
	}
	return I.Solve()
}

// Derivative differentiates f with respect to name.
func (e *Engine) Derivative(f, name string) (*poly.Polynomial, error) {
	p, err := e.parse1(f)
	if err != nil {
		return nil, err
	}
	return p.Derivative(name), nil
}

// Roots returns the distinct complex roots of a univariate polynomial with
// rational coefficients, ordered by real and then imaginary part.
func (e *Engine) Roots(f string) ([]roots.Value, error) {
	if !e.ring.IsRationals() {
		return nil, errors.Wrapf(poly.ErrNotImplemented, "roots over %s", e.ring)
	}
	p, err := e.parse1(f)
	if err != nil {
		return nil, err
	}
	vs := p.Variables()
	if len(vs) > 1 {
		return nil, errors.Wrapf(poly.ErrNotImplemented, "roots of multivariate %s", p)
	}
	cs := []*poly.Polynomial{p}
	if len(vs) == 1 {
		cs = p.Isolate(vs[0])
	}
	coeffs := make([]roots.Value, len(cs))
	for i, c := range cs {
		n, _ := c.ConstantValue()
		coeffs[i] = roots.Exact(n)
	}
	rs, err := roots.Solve(coeffs, e.rootOptions())
	if err != nil {
		return nil, err
	}
	slices.SortFunc(rs, func(a, b roots.Value) int {
		ca, cb := a.Complex(), b.Complex()
		if c := cmp.Compare(real(ca), real(cb)); c != 0 {
			return c
		}
		return cmp.Compare(imag(ca), imag(cb))
	})
	return rs, nil
}

// FiniteField reads f over the rationals and reduces it into GF(p).
func (e *Engine) FiniteField(f string, p *big.Int) (*poly.Polynomial, error) {
	q, err := parse.Polynomial(poly.Rationals(e.ring.Order()), f)
	if err != nil {
		return nil, err
	}
	r, err := poly.GF(p, e.ring.Order())
	if err != nil {
		return nil, err
	}
	return q.In(r)
}

// RandomMonic draws a monic polynomial in name over the engine's prime
// field.
func (e *Engine) RandomMonic(name string, degree int) (*poly.Polynomial, error) {
	return poly.RandomMonic(e.ring, name, degree, e.opts.Rand)
}

// FindIrreducible searches for a monic irreducible polynomial in name over
// the engine's prime field.
func (e *Engine) FindIrreducible(name string, degree int) (*poly.Polynomial, error) {
	return e.reducer().FindIrreducible(e.ring, name, degree, e.opts.Rand)
}

// IsIrreducible tests a univariate polynomial over the engine's prime field.
func (e *Engine) IsIrreducible(f string) (bool, error) {
	p, err := e.parse1(f)
	if err != nil {
		return false, err
	}
	return e.reducer().IsIrreducible(p)
}
