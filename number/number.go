// Package number provides the exact numeric tower used for polynomial
// coefficients.
//
// Two concrete types implement Number:
//   - Integer: an arbitrary-precision signed integer (math/big.Int)
//   - Rational: a reduced fraction with positive denominator (math/big.Rat)
//
// Values are immutable. Every operation returns a fresh value, and any
// rational result whose denominator is 1 is demoted to an Integer, so the
// concrete type of a Number always reflects its reduced value.
package number

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	ErrDivisionByZero   = errors.New("number: division by zero")
	ErrNegativeExponent = errors.New("number: zero raised to a negative power")
	ErrSyntax           = errors.New("number: invalid numeric literal")
)

// Number is an exact Integer or Rational.
type Number interface {
	Sign() int
	IsZero() bool
	IsOne() bool
	IsInteger() bool
	Rat() *big.Rat
	Float64() float64
	String() string
	isNumber()
}

// ============================================================
// Integer
// ============================================================

type Integer struct{ v *big.Int }

var bigZero = new(big.Int)

func Int(n int64) Integer { return Integer{v: big.NewInt(n)} }

// FromInt builds an Integer from any built-in integer type.
func FromInt[T constraints.Integer](n T) Integer {
	if n < 0 {
		return Integer{v: big.NewInt(int64(n))}
	}
	return Integer{v: new(big.Int).SetUint64(uint64(n))}
}

// IntFromBig copies b into a new Integer.
func IntFromBig(b *big.Int) Integer { return Integer{v: new(big.Int).Set(b)} }

func (i Integer) int() *big.Int {
	if i.v == nil {
		return bigZero
	}
	return i.v
}

func (i Integer) Sign() int       { return i.int().Sign() }
func (i Integer) IsZero() bool    { return i.int().Sign() == 0 }
func (i Integer) IsOne() bool     { return i.int().IsInt64() && i.int().Int64() == 1 }
func (i Integer) IsInteger() bool { return true }
func (i Integer) Rat() *big.Rat   { return new(big.Rat).SetInt(i.int()) }
func (i Integer) Big() *big.Int   { return new(big.Int).Set(i.int()) }
func (i Integer) String() string  { return i.int().String() }
func (i Integer) isNumber()        {}
func (i Integer) Int64() (int64, bool) {
	return i.int().Int64(), i.int().IsInt64()
}

func (i Integer) Float64() float64 {
	f, _ := new(big.Float).SetInt(i.int()).Float64()
	return f
}

// ============================================================
// Rational
// ============================================================

// Rational is a fraction that does not reduce to an integer. It is only
// produced through normalize, so its denominator is always greater than one.
type Rational struct{ v *big.Rat }

// Frac returns p/q in lowest terms. It panics when q is zero, like a
// literal with a zero denominator would.
func Frac(p, q int64) Number {
	if q == 0 {
		panic("number: denominator is zero")
	}
	return normalize(big.NewRat(p, q))
}

// FromRat converts r into its reduced Number form.
func FromRat(r *big.Rat) Number { return normalize(new(big.Rat).Set(r)) }

// FromFloat converts a finite float64 exactly.
func FromFloat(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Wrapf(ErrSyntax, "non-finite value %v", f)
	}
	return normalize(new(big.Rat).SetFloat64(f)), nil
}

func (r Rational) Sign() int       { return r.v.Sign() }
func (r Rational) IsZero() bool    { return false }
func (r Rational) IsOne() bool     { return false }
func (r Rational) IsInteger() bool { return false }
func (r Rational) Rat() *big.Rat   { return new(big.Rat).Set(r.v) }
func (r Rational) Num() Integer    { return IntFromBig(r.v.Num()) }
func (r Rational) Denom() Integer  { return IntFromBig(r.v.Denom()) }
func (r Rational) String() string  { return r.v.RatString() }
func (r Rational) isNumber()       {}

func (r Rational) Float64() float64 {
	f, _ := r.v.Float64()
	return f
}

// normalize takes ownership of r.
func normalize(r *big.Rat) Number {
	if r.IsInt() {
		return Integer{v: new(big.Int).Set(r.Num())}
	}
	return Rational{v: r}
}

// ============================================================
// Arithmetic
// ============================================================

func Zero() Number { return Int(0) }
func One() Number  { return Int(1) }

func Add(a, b Number) Number {
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			return Integer{v: new(big.Int).Add(x.int(), y.int())}
		}
	}
	return normalize(new(big.Rat).Add(a.Rat(), b.Rat()))
}

func Sub(a, b Number) Number {
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			return Integer{v: new(big.Int).Sub(x.int(), y.int())}
		}
	}
	return normalize(new(big.Rat).Sub(a.Rat(), b.Rat()))
}

func Mul(a, b Number) Number {
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			return Integer{v: new(big.Int).Mul(x.int(), y.int())}
		}
	}
	return normalize(new(big.Rat).Mul(a.Rat(), b.Rat()))
}

func Neg(a Number) Number {
	if x, ok := a.(Integer); ok {
		return Integer{v: new(big.Int).Neg(x.int())}
	}
	return normalize(new(big.Rat).Neg(a.Rat()))
}

func Abs(a Number) Number {
	if a.Sign() < 0 {
		return Neg(a)
	}
	return a
}

// Quo returns a/b. Two Integers that divide evenly yield an Integer,
// otherwise the reduced Rational.
func Quo(a, b Number) (Number, error) {
	if b.IsZero() {
		return nil, errors.WithStack(ErrDivisionByZero)
	}
	if x, ok := a.(Integer); ok {
		if y, ok := b.(Integer); ok {
			q, m := new(big.Int).QuoRem(x.int(), y.int(), new(big.Int))
			if m.Sign() == 0 {
				return Integer{v: q}, nil
			}
		}
	}
	return normalize(new(big.Rat).Quo(a.Rat(), b.Rat())), nil
}

func Recip(a Number) (Number, error) { return Quo(One(), a) }

// FloorDiv returns floor(a/b) as an Integer.
func FloorDiv(a, b Number) (Integer, error) {
	if b.IsZero() {
		return Integer{}, errors.WithStack(ErrDivisionByZero)
	}
	q := new(big.Rat).Quo(a.Rat(), b.Rat())
	// big.Int.Div is Euclidean; with a positive denominator it floors.
	return Integer{v: new(big.Int).Div(q.Num(), q.Denom())}, nil
}

// Mod returns a - b*floor(a/b); the result takes the sign of b.
func Mod(a, b Number) (Number, error) {
	f, err := FloorDiv(a, b)
	if err != nil {
		return nil, err
	}
	return Sub(a, Mul(b, f)), nil
}

// Pow raises a to an integer power. Negative powers take the reciprocal.
func Pow(a Number, n int) (Number, error) {
	if n < 0 {
		if a.IsZero() {
			return nil, errors.WithStack(ErrNegativeExponent)
		}
		p, err := Pow(a, -n)
		if err != nil {
			return nil, err
		}
		return Recip(p)
	}
	e := big.NewInt(int64(n))
	if x, ok := a.(Integer); ok {
		return Integer{v: new(big.Int).Exp(x.int(), e, nil)}, nil
	}
	r := a.Rat()
	num := new(big.Int).Exp(r.Num(), e, nil)
	den := new(big.Int).Exp(r.Denom(), e, nil)
	return normalize(new(big.Rat).SetFrac(num, den)), nil
}

func Cmp(a, b Number) int    { return a.Rat().Cmp(b.Rat()) }
func Equal(a, b Number) bool { return Cmp(a, b) == 0 }

// GCD returns the non-negative greatest common divisor of two Integers.
func GCD(a, b Integer) Integer {
	x := new(big.Int).Abs(a.int())
	y := new(big.Int).Abs(b.int())
	return Integer{v: new(big.Int).GCD(nil, nil, x, y)}
}

// Sqrt returns the exact square root of a non-negative Number when both
// its reduced numerator and denominator are perfect squares.
func Sqrt(a Number) (Number, bool) {
	if a.Sign() < 0 {
		return nil, false
	}
	r := a.Rat()
	num, ok := isqrt(r.Num())
	if !ok {
		return nil, false
	}
	den, ok := isqrt(r.Denom())
	if !ok {
		return nil, false
	}
	return normalize(new(big.Rat).SetFrac(num, den)), true
}

func isqrt(n *big.Int) (*big.Int, bool) {
	s := new(big.Int).Sqrt(n)
	return s, new(big.Int).Mul(s, s).Cmp(n) == 0
}

// ============================================================
// Parsing
// ============================================================

// Parse reads an integer ("42"), decimal ("1.25") or fraction ("3/4")
// literal. Decimals are converted exactly: 1.25 becomes 5/4.
func Parse(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE") {
		return nil, errors.Wrapf(ErrSyntax, "%q", s)
	}
	if strings.Contains(s, "/") {
		parts := strings.SplitN(s, "/", 2)
		if d, ok := new(big.Int).SetString(strings.TrimSpace(parts[1]), 10); ok && d.Sign() == 0 {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, errors.Wrapf(ErrSyntax, "%q", s)
	}
	return normalize(r), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}
