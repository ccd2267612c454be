package roots

import (
	"math"
	"math/cmplx"
	"strconv"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// Value is an exact number or a complex approximation. Arithmetic stays
// exact while both operands are exact.
type Value struct {
	exact  number.Number
	approx complex128
}

func Exact(n number.Number) Value     { return Value{exact: n} }
func Approx(c complex128) Value       { return Value{approx: c} }
func Int(n int64) Value               { return Exact(number.Int(n)) }
func (v Value) IsExact() bool         { return v.exact != nil }
func (v Value) Number() number.Number { return v.exact }

// Complex returns v as a complex128, rounding exact values.
func (v Value) Complex() complex128 {
	if v.exact != nil {
		return complex(v.exact.Float64(), 0)
	}
	return v.approx
}

func (v Value) Add(o Value) Value {
	if v.IsExact() && o.IsExact() {
		return Exact(number.Add(v.exact, o.exact))
	}
	return Approx(v.Complex() + o.Complex())
}

func (v Value) Sub(o Value) Value { return v.Add(o.Neg()) }

func (v Value) Mul(o Value) Value {
	if v.IsExact() && o.IsExact() {
		return Exact(number.Mul(v.exact, o.exact))
	}
	return Approx(v.Complex() * o.Complex())
}

func (v Value) Neg() Value {
	if v.IsExact() {
		return Exact(number.Neg(v.exact))
	}
	return Approx(-v.approx)
}

func (v Value) Quo(o Value) (Value, error) {
	if v.IsExact() && o.IsExact() {
		q, err := number.Quo(v.exact, o.exact)
		if err != nil {
			return Value{}, err
		}
		return Exact(q), nil
	}
	if o.Complex() == 0 {
		return Value{}, errors.WithStack(number.ErrDivisionByZero)
	}
	return Approx(v.Complex() / o.Complex()), nil
}

// Pow raises v to a non-negative power.
func (v Value) Pow(k int) Value {
	if v.IsExact() {
		p, err := number.Pow(v.exact, k)
		if err == nil {
			return Exact(p)
		}
	}
	r := complex(1, 0)
	for i := 0; i < k; i++ {
		r *= v.Complex()
	}
	return Approx(r)
}

// IsZero reports an exact zero, or an approximation within tol of zero.
func (v Value) IsZero(tol float64) bool {
	if v.IsExact() {
		return v.exact.IsZero()
	}
	return cmplx.Abs(v.approx) <= tol
}

// Equal compares exact values exactly and anything else within tol.
func (v Value) Equal(o Value, tol float64) bool {
	if v.IsExact() && o.IsExact() {
		return number.Equal(v.exact, o.exact)
	}
	return cmplx.Abs(v.Complex()-o.Complex()) <= tol
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', 12, 64) }

func (v Value) String() string {
	if v.IsExact() {
		return v.exact.String()
	}
	re, im := real(v.approx), imag(v.approx)
	if im == 0 {
		return formatFloat(re)
	}
	var is string
	switch im {
	case 1:
		is = "i"
	case -1:
		is = "-i"
	default:
		is = formatFloat(im) + "i"
	}
	if re == 0 {
		return is
	}
	if im > 0 {
		return formatFloat(re) + "+" + is
	}
	return formatFloat(re) + is
}

func (v Value) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Snap rounds real and imaginary parts lying within tol of an integer. A
// snapped value with no imaginary part becomes exact.
func Snap(v Value, tol float64) Value {
	if v.IsExact() {
		return v
	}
	re, im := snap(real(v.approx), tol), snap(imag(v.approx), tol)
	if im == 0 && re == math.Trunc(re) && math.Abs(re) < 1<<53 {
		return Int(int64(re))
	}
	return Approx(complex(re, im))
}

func snap(f, tol float64) float64 {
	if r := math.Round(f); math.Abs(f-r) <= tol {
		return r + 0 // normalizes -0
	}
	return f
}

// Eval evaluates the polynomial with ascending coefficients at x.
func Eval(coeffs []Value, x Value) Value {
	acc := Int(0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}
