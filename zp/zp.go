// Package zp implements arithmetic in the prime field Z/pZ.
//
// Elements are held as 256-bit words, so the modulus must be a prime below
// 2^256. Values cross the package boundary as reduced number.Integer values
// in [0, p).
package zp

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var (
	ErrNotPrime        = errors.New("zp: modulus is not prime")
	ErrModulusTooLarge = errors.New("zp: modulus does not fit in 256 bits")
	ErrNotInvertible   = errors.New("zp: element is not invertible")
)

// Field is Z/pZ for a prime p.
type Field struct {
	p   uint256.Int
	mod *big.Int
}

// New returns the field of characteristic p.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Sign() <= 0 || !p.ProbablyPrime(20) {
		return nil, errors.Wrapf(ErrNotPrime, "p=%v", p)
	}
	u, overflow := uint256.FromBig(p)
	if overflow {
		return nil, errors.WithStack(ErrModulusTooLarge)
	}
	return &Field{p: *u, mod: new(big.Int).Set(p)}, nil
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int { return new(big.Int).Set(f.mod) }

func (f *Field) String() string { return "GF(" + f.mod.String() + ")" }

func (f *Field) Equal(o *Field) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.p.Eq(&o.p)
}

// elem maps an arbitrary integer onto its representative in [0, p).
func (f *Field) elem(n number.Integer) *uint256.Int {
	r := new(big.Int).Mod(n.Big(), f.mod)
	u, _ := uint256.FromBig(r)
	return u
}

func (f *Field) out(u *uint256.Int) number.Integer { return number.IntFromBig(u.ToBig()) }

// Reduce maps an exact number into the field. A rational a/b becomes
// a * b^-1, which fails when p divides b.
func (f *Field) Reduce(n number.Number) (number.Integer, error) {
	switch v := n.(type) {
	case number.Integer:
		return f.out(f.elem(v)), nil
	case number.Rational:
		num := f.elem(v.Num())
		inv, err := f.inv(f.elem(v.Denom()))
		if err != nil {
			return number.Integer{}, errors.Wrapf(err, "reducing %s mod %s", v, f.mod)
		}
		return f.out(new(uint256.Int).MulMod(num, inv, &f.p)), nil
	}
	return number.Integer{}, errors.Errorf("zp: unsupported number %T", n)
}

func (f *Field) Add(a, b number.Integer) number.Integer {
	return f.out(new(uint256.Int).AddMod(f.elem(a), f.elem(b), &f.p))
}

func (f *Field) Sub(a, b number.Integer) number.Integer {
	return f.out(new(uint256.Int).AddMod(f.elem(a), f.neg(f.elem(b)), &f.p))
}

func (f *Field) Mul(a, b number.Integer) number.Integer {
	return f.out(new(uint256.Int).MulMod(f.elem(a), f.elem(b), &f.p))
}

func (f *Field) Neg(a number.Integer) number.Integer { return f.out(f.neg(f.elem(a))) }

func (f *Field) neg(u *uint256.Int) *uint256.Int {
	if u.IsZero() {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(&f.p, u)
}

// Inv returns a^-1.
func (f *Field) Inv(a number.Integer) (number.Integer, error) {
	u, err := f.inv(f.elem(a))
	if err != nil {
		return number.Integer{}, err
	}
	return f.out(u), nil
}

// Quo returns a * b^-1.
func (f *Field) Quo(a, b number.Integer) (number.Integer, error) {
	inv, err := f.inv(f.elem(b))
	if err != nil {
		return number.Integer{}, err
	}
	return f.out(new(uint256.Int).MulMod(f.elem(a), inv, &f.p)), nil
}

// Pow returns a^e for e >= 0.
func (f *Field) Pow(a number.Integer, e *big.Int) number.Integer {
	return f.out(f.exp(f.elem(a), e))
}

// inv uses Fermat's little theorem: a^(p-2) = a^-1.
func (f *Field) inv(u *uint256.Int) (*uint256.Int, error) {
	if u.IsZero() {
		return nil, errors.WithStack(ErrNotInvertible)
	}
	e := new(big.Int).Sub(f.mod, big.NewInt(2))
	return f.exp(u, e), nil
}

func (f *Field) exp(base *uint256.Int, e *big.Int) *uint256.Int {
	r := uint256.NewInt(1)
	for i := e.BitLen() - 1; i >= 0; i-- {
		r.MulMod(r, r, &f.p)
		if e.Bit(i) == 1 {
			r.MulMod(r, base, &f.p)
		}
	}
	return r
}
