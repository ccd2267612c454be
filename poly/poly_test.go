package poly_test

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
	"github.com/mike006322/PolynomialCalculator-sub000/parse"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/zp"
)

var qq = poly.Rationals(poly.Lex)

func mustParse(t *testing.T, r poly.Ring, s string) *poly.Polynomial {
	t.Helper()
	p, err := parse.Polynomial(r, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return p
}

func mustGF(t *testing.T, p int64) poly.Ring {
	t.Helper()
	r, err := poly.GF(big.NewInt(p), poly.Lex)
	if err != nil {
		t.Fatalf("GF(%d): %v", p, err)
	}
	return r
}

// ============================================================
// Monomials and term orders
// ============================================================

func TestMonomial_Operations(t *testing.T) {
	vars := []string{"x", "y", "z"}
	a := poly.NewMonomial(vars, []int{2, 1, 0})
	b := poly.NewMonomial(vars, []int{1, 3, 0})

	if got := a.LCM(b).String(); got != "x^2*y^3" {
		t.Errorf("lcm: want x^2*y^3, got %s", got)
	}
	if got := a.GCD(b).String(); got != "x*y" {
		t.Errorf("gcd: want x*y, got %s", got)
	}
	if a.Divides(b) || !a.GCD(b).Divides(a) {
		t.Errorf("divisibility is wrong")
	}
	q, ok := a.Mul(b).Quo(b)
	if !ok || !q.Equal(a) {
		t.Errorf("a*b/b: want %s, got %s", a, q)
	}
	if a.Degree() != 3 || a.Exp("y") != 1 || a.Exp("w") != 0 {
		t.Errorf("degree or exponent lookup is wrong")
	}
	if _, ok := a.PurePower(); ok {
		t.Errorf("x^2*y is not a pure power")
	}
	if v, ok := poly.NewMonomial(vars, []int{0, 0, 4}).PurePower(); !ok || v != "z" {
		t.Errorf("z^4: want pure power of z, got %q", v)
	}
	if !poly.NewMonomial(vars, nil).IsOne() {
		t.Errorf("all-zero exponents should be the unit monomial")
	}
}

func TestOrder_LeadingTerm(t *testing.T) {
	tests := []struct {
		order poly.Order
		want  string
	}{
		{poly.Lex, "x*z + y^2"},
		{poly.GrLex, "x*z + y^2"},
		{poly.GRevLex, "y^2 + x*z"},
	}
	for _, tt := range tests {
		p := mustParse(t, poly.Rationals(tt.order), "y^2 + x*z")
		if got := p.String(); got != tt.want {
			t.Errorf("%s: want %s, got %s", tt.order, tt.want, got)
		}
	}

	p := mustParse(t, poly.Rationals(poly.GrLex), "x^2 + y^3 + x*y^2")
	if got := p.LT().String(); got != "x*y^2" {
		t.Errorf("grlex LT: want x*y^2, got %s", got)
	}
	p = mustParse(t, qq, "x^2 + y^3 + x*y^2")
	if got := p.LM().String(); got != "x^2" {
		t.Errorf("lex LM: want x^2, got %s", got)
	}
}

func TestParseOrder(t *testing.T) {
	for in, want := range map[string]poly.Order{"": poly.Lex, "grlex": poly.GrLex, "DegRevLex": poly.GRevLex} {
		got, err := poly.ParseOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseOrder(%q): want %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := poly.ParseOrder("elimination"); err == nil {
		t.Errorf("unknown order should fail")
	}
}

// ============================================================
// Arithmetic
// ============================================================

func TestArithmetic(t *testing.T) {
	x := poly.Var(qq, "x")
	y := poly.Var(qq, "y")

	sum := x.Add(y)
	if got := sum.String(); got != "x + y" {
		t.Errorf("x + y: want x + y, got %s", got)
	}
	if got := sum.Vars(); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("vars: want [x y], got %v", got)
	}
	if !sum.Sub(y).Equal(x) {
		t.Errorf("(x + y) - y should equal x")
	}
	if got := sum.Mul(x.Sub(y)).String(); got != "x^2 - y^2" {
		t.Errorf("(x + y)(x - y): want x^2 - y^2, got %s", got)
	}
	if got := sum.Scale(number.Frac(1, 2)).String(); got != "1/2*x + 1/2*y" {
		t.Errorf("scale: want 1/2*x + 1/2*y, got %s", got)
	}
	if !sum.Scale(number.Zero()).IsZero() {
		t.Errorf("scale by zero should be zero")
	}
	if got := sum.Neg().String(); got != "-x - y" {
		t.Errorf("neg: want -x - y, got %s", got)
	}
	if !x.Sub(x).IsZero() {
		t.Errorf("x - x should be zero")
	}
}

func TestPow(t *testing.T) {
	p := mustParse(t, qq, "x + 1")
	got, err := p.Pow(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "x^3 + 3*x^2 + 3*x + 1" {
		t.Errorf("(x + 1)^3: want x^3 + 3*x^2 + 3*x + 1, got %s", got)
	}
	got, err = p.Pow(0)
	if err != nil || !got.IsOne() {
		t.Errorf("p^0: want 1, got %v", got)
	}
	if _, err := p.Pow(-1); !errors.Is(err, poly.ErrNegativeExponent) {
		t.Errorf("want ErrNegativeExponent, got %v", err)
	}
}

func TestDerivative(t *testing.T) {
	p := mustParse(t, qq, "x^3*y + 2*x*y^2 + 5")
	if got := p.Derivative("x").String(); got != "3*x^2*y + 2*y^2" {
		t.Errorf("d/dx: want 3*x^2*y + 2*y^2, got %s", got)
	}
	if got := p.Derivative("y").String(); got != "x^3 + 4*x*y" {
		t.Errorf("d/dy: want x^3 + 4*x*y, got %s", got)
	}
	if !p.Derivative("z").IsZero() {
		t.Errorf("d/dz should be zero")
	}
}

func TestDegrees(t *testing.T) {
	p := mustParse(t, qq, "x^3*y + x*y^4 + 2")
	if p.Degree("x") != 3 || p.Degree("y") != 4 || p.Degree("z") != 0 {
		t.Errorf("degrees: got x=%d y=%d z=%d", p.Degree("x"), p.Degree("y"), p.Degree("z"))
	}
	if p.TotalDegree() != 5 {
		t.Errorf("total degree: want 5, got %d", p.TotalDegree())
	}
	zero := poly.Zero(qq)
	if zero.Degree("x") != -1 || zero.TotalDegree() != -1 {
		t.Errorf("zero polynomial should have degree -1")
	}
}

func TestPredicates(t *testing.T) {
	if !poly.One(qq).IsOne() || !poly.One(qq).IsConstant() {
		t.Errorf("1 should be one and constant")
	}
	if !poly.Zero(qq).IsConstant() || poly.Zero(qq).IsOne() {
		t.Errorf("0 is constant but not one")
	}
	if mustParse(t, qq, "2").IsOne() {
		t.Errorf("2 is not one")
	}
	if v, ok := mustParse(t, qq, "3/4").ConstantValue(); !ok || v.String() != "3/4" {
		t.Errorf("constant value: want 3/4, got %v", v)
	}
}

// ============================================================
// Alignment and equality
// ============================================================

func TestEqual_AlignsVariables(t *testing.T) {
	a := mustParse(t, qq, "x + 1")
	b := mustParse(t, qq, "x + y + 1 - y")
	if !a.Equal(b) || !b.Equal(a) {
		t.Errorf("%s and %s should be equal", a, b)
	}
	if got := b.Variables(); len(got) != 1 || got[0] != "x" {
		t.Errorf("occurring variables: want [x], got %v", got)
	}
	if len(b.Vars()) != 2 {
		t.Errorf("declared variables: want [x y], got %v", b.Vars())
	}
	aligned := poly.Align(a, poly.Var(qq, "z"))
	if got := aligned[0].Vars(); len(got) != 2 || got[1] != "z" {
		t.Errorf("Align: want [x z], got %v", got)
	}
	if !aligned[0].Equal(a) {
		t.Errorf("alignment must not change the polynomial")
	}
}

func TestEqualUpToScalar(t *testing.T) {
	a := mustParse(t, qq, "2*x + 4")
	b := mustParse(t, qq, "-x - 2")
	if !a.EqualUpToScalar(b) {
		t.Errorf("%s and %s differ only by a scalar", a, b)
	}
	if a.EqualUpToScalar(mustParse(t, qq, "x + 1")) {
		t.Errorf("2x + 4 and x + 1 are not scalar multiples")
	}
	if got := a.Monic().String(); got != "x + 2" {
		t.Errorf("monic: want x + 2, got %s", got)
	}
}

// ============================================================
// Substitution and isolation
// ============================================================

func TestSubstituteAndEval(t *testing.T) {
	p := mustParse(t, qq, "x^2*y + 1")
	q, err := p.Substitute(map[string]number.Number{"x": number.Int(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.String() != "4*y + 1" {
		t.Errorf("substitute: want 4*y + 1, got %s", q)
	}
	v, err := p.Eval(map[string]number.Number{"x": number.Int(2), "y": number.Frac(1, 2)})
	if err != nil || v.String() != "3" {
		t.Errorf("eval: want 3, got %v (%v)", v, err)
	}
	if _, err := p.Eval(map[string]number.Number{"x": number.Int(1)}); !errors.Is(err, poly.ErrUnbound) {
		t.Errorf("want ErrUnbound, got %v", err)
	}
}

func TestIsolate(t *testing.T) {
	p := mustParse(t, qq, "x^2*y + x*y + 3*y + x^2")
	cs := p.Isolate("x")
	want := []string{"3*y", "y", "y + 1"}
	if len(cs) != len(want) {
		t.Fatalf("want %d coefficients, got %d", len(want), len(cs))
	}
	for i, c := range cs {
		if c.String() != want[i] {
			t.Errorf("coefficient of x^%d: want %s, got %s", i, want[i], c)
		}
	}
}

// ============================================================
// Rings
// ============================================================

func TestPrimeField_Merging(t *testing.T) {
	gf2 := mustGF(t, 2)
	p, err := mustParse(t, gf2, "x + 1").Pow(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "x^2 + 1" {
		t.Errorf("(x + 1)^2 over GF(2): want x^2 + 1, got %s", p)
	}
	if !mustParse(t, mustGF(t, 3), "x^3 + 2").Derivative("x").IsZero() {
		t.Errorf("d/dx x^3 over GF(3) should vanish")
	}
}

func TestIn_ConvertsExplicitly(t *testing.T) {
	gf7 := mustGF(t, 7)
	p, err := mustParse(t, qq, "x/2 + 1").In(gf7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.String() != "4*x + 1" {
		t.Errorf("want 4*x + 1, got %s", p)
	}
	if _, err := mustParse(t, qq, "x/7").In(gf7); !errors.Is(err, zp.ErrNotInvertible) {
		t.Errorf("want ErrNotInvertible, got %v", err)
	}
}

func TestRingMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding polynomials of different rings should panic")
		}
	}()
	poly.Var(qq, "x").Add(poly.Var(mustGF(t, 7), "x"))
}

// ============================================================
// Rendering
// ============================================================

func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"x^2*y - 3/2*x + 1",
		"-x^2 + 1",
		"x*y^2 - y",
		"-7",
		"0",
	} {
		p := mustParse(t, qq, s)
		if p.String() != s {
			t.Errorf("want %s, got %s", s, p)
		}
		if !mustParse(t, qq, p.String()).Equal(p) {
			t.Errorf("%s does not survive a round trip", s)
		}
	}
}
