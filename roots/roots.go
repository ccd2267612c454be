// Package roots finds the roots of univariate polynomials.
//
// Exact coefficients are first reduced to their square-free part, so every
// root is simple. Linear and quadratic polynomials are solved in closed
// form, exactly when the coefficients and the discriminant allow it. Higher
// degrees use the Durand–Kerner iteration, after which near-integer parts
// are snapped, exact candidates are verified against exact coefficients and
// approximations that do not vanish are dropped.
package roots

import (
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var ErrZeroPolynomial = errors.New("roots: every complex number is a root of the zero polynomial")

// Options tunes the numeric paths.
type Options struct {
	// Tolerance is the total root movement, relative to the largest root,
	// below which Durand–Kerner stops.
	Tolerance float64
	// SnapTolerance is the distance to an integer that gets rounded away, and
	// the size below which an approximate coefficient counts as zero.
	SnapTolerance float64
	// ClusterTolerance is the relative distance under which approximations
	// of a polynomial with inexact coefficients count as one repeated root.
	ClusterTolerance float64
	MaxIterations    int
}

func DefaultOptions() Options {
	return Options{Tolerance: 1e-14, SnapTolerance: 1e-7, ClusterTolerance: 1e-3, MaxIterations: 5000}
}

// Solve returns the distinct roots of c_0 + c_1*x + ... + c_n*x^n.
// Constant nonzero polynomials have no roots.
func Solve(coeffs []Value, opts Options) ([]Value, error) {
	n := len(coeffs) - 1
	for n >= 0 && coeffs[n].IsZero(opts.SnapTolerance) {
		n--
	}
	if n < 0 {
		return nil, errors.WithStack(ErrZeroPolynomial)
	}
	coeffs = coeffs[:n+1]

	// x^k divides the polynomial: 0 is a root and the rest is solved on the
	// quotient.
	var out []Value
	k := 0
	for k < n && coeffs[k].IsZero(opts.SnapTolerance) {
		k++
	}
	if k > 0 {
		out = append(out, Int(0))
		coeffs = coeffs[k:]
	}

	// Repeated roots stall the numeric iteration, so exact input is reduced
	// to its square-free part first.
	squareFree := false
	if len(coeffs) > 2 {
		sf, ok, err := exactSquareFree(coeffs)
		if err != nil {
			return nil, err
		}
		coeffs, squareFree = sf, ok
	}

	var rs []Value
	var err error
	switch len(coeffs) - 1 {
	case 0:
	case 1:
		rs, err = Linear(coeffs[1], coeffs[0])
		if err == nil {
			rs[0] = Snap(rs[0], opts.SnapTolerance)
		}
	case 2:
		rs, err = Quadratic(coeffs[2], coeffs[1], coeffs[0], opts)
	default:
		rs = durandKerner(coeffs, squareFree, opts)
	}
	if err != nil {
		return nil, err
	}
	for _, r := range rs {
		out = appendDistinct(out, r, opts.SnapTolerance)
	}
	return out, nil
}

func appendDistinct(vs []Value, v Value, tol float64) []Value {
	for _, w := range vs {
		if w.Equal(v, tol) {
			return vs
		}
	}
	return append(vs, v)
}

// Linear solves a*x + b = 0.
func Linear(a, b Value) ([]Value, error) {
	r, err := b.Neg().Quo(a)
	if err != nil {
		return nil, err
	}
	return []Value{r}, nil
}

// Quadratic solves a*x^2 + b*x + c = 0. Exact coefficients with a rational
// square discriminant give exact roots.
func Quadratic(a, b, c Value, opts Options) ([]Value, error) {
	if a.IsZero(0) {
		return nil, errors.WithStack(number.ErrDivisionByZero)
	}
	if a.IsExact() && b.IsExact() && c.IsExact() {
		disc := number.Sub(number.Mul(b.exact, b.exact), number.Mul(number.Int(4), number.Mul(a.exact, c.exact)))
		if s, ok := number.Sqrt(disc); ok {
			two := Exact(number.Mul(number.Int(2), a.exact))
			r1, err := b.Neg().Add(Exact(s)).Quo(two)
			if err != nil {
				return nil, err
			}
			r2, err := b.Neg().Sub(Exact(s)).Quo(two)
			if err != nil {
				return nil, err
			}
			if s.IsZero() {
				return []Value{r1}, nil
			}
			return []Value{r1, r2}, nil
		}
	}
	ac, bc, cc := a.Complex(), b.Complex(), c.Complex()
	sq := cmplx.Sqrt(bc*bc - 4*ac*cc)
	r1 := Snap(Approx((-bc+sq)/(2*ac)), opts.SnapTolerance)
	r2 := Snap(Approx((-bc-sq)/(2*ac)), opts.SnapTolerance)
	if r1.Equal(r2, opts.SnapTolerance) {
		return []Value{r1}, nil
	}
	return []Value{r1, r2}, nil
}

// DurandKerner approximates every root of the polynomial with ascending
// coefficients, repeated roots included. Approximations at a repeated root
// converge slowly and stop in a small cluster around it.
func DurandKerner(coeffs []complex128, opts Options) []complex128 {
	n := len(coeffs) - 1
	if n < 1 {
		return nil
	}
	a := make([]complex128, n+1)
	for i, c := range coeffs {
		a[i] = c / coeffs[n]
	}
	z := make([]complex128, n)
	z[0] = 1
	for k := 1; k < n; k++ {
		z[k] = z[k-1] * complex(0.4, 0.9)
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		moved, scale := 0.0, 1.0
		for i := range z {
			den := complex(1, 0)
			for j := range z {
				if j != i {
					den *= z[i] - z[j]
				}
			}
			if den == 0 {
				// Two approximations collided; push this one off the other.
				nudge := complex(1e-3, 1e-3) * complex(1+cmplx.Abs(z[i]), 0)
				z[i] += nudge
				moved += cmplx.Abs(nudge)
				continue
			}
			delta := horner(a, z[i]) / den
			z[i] -= delta
			moved += cmplx.Abs(delta)
			scale = max(scale, cmplx.Abs(z[i]))
		}
		if moved < opts.Tolerance*scale {
			break
		}
	}
	return z
}

func horner(a []complex128, x complex128) complex128 {
	acc := complex(0, 0)
	for i := len(a) - 1; i >= 0; i-- {
		acc = acc*x + a[i]
	}
	return acc
}

// residual reports |p(x)| relative to the size of its terms at x.
func residual(a []complex128, x complex128) float64 {
	acc, size, pow := complex(0, 0), 0.0, 1.0
	for i := len(a) - 1; i >= 0; i-- {
		acc = acc*x + a[i]
	}
	for _, c := range a {
		size += cmplx.Abs(c) * pow
		pow *= cmplx.Abs(x)
	}
	if size == 0 {
		return 0
	}
	return cmplx.Abs(acc) / size
}

// durandKerner runs the iteration and cleans up its output. Approximations
// that do not vanish are dropped. When the input was not reduced to its
// square-free part, approximations within ClusterTolerance of each other
// are merged into their mean.
func durandKerner(coeffs []Value, squareFree bool, opts Options) []Value {
	exact := true
	cs := make([]complex128, len(coeffs))
	for i, c := range coeffs {
		cs[i] = c.Complex()
		exact = exact && c.IsExact()
	}
	zs := DurandKerner(cs, opts)
	if !squareFree {
		zs = mergeClusters(zs, opts.ClusterTolerance)
	}
	var out []Value
	for _, z := range zs {
		if residual(cs, z) > opts.SnapTolerance {
			continue
		}
		v := Snap(Approx(z), opts.SnapTolerance)
		// A snapped integer must be an exact root; otherwise keep the
		// approximation.
		if v.IsExact() && exact && !Eval(coeffs, v).IsZero(0) {
			v = Approx(z)
		}
		out = appendDistinct(out, v, opts.SnapTolerance)
	}
	return out
}

func mergeClusters(zs []complex128, radius float64) []complex128 {
	var out []complex128
	used := make([]bool, len(zs))
	for i, z := range zs {
		if used[i] {
			continue
		}
		sum, n := z, 1
		for j := i + 1; j < len(zs); j++ {
			if !used[j] && cmplx.Abs(zs[j]-z) <= radius*(1+cmplx.Abs(z)) {
				used[j] = true
				sum += zs[j]
				n++
			}
		}
		out = append(out, sum/complex(float64(n), 0))
	}
	return out
}
