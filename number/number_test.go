package number_test

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

// ============================================================
// Construction and normalization
// ============================================================

func TestFrac_Normalizes(t *testing.T) {
	tests := []struct {
		p, q int64
		want string
	}{
		{6, 8, "3/4"},
		{-6, 8, "-3/4"},
		{6, -8, "-3/4"},
		{0, 5, "0"},
		{10, 5, "2"},
	}
	for _, tt := range tests {
		got := number.Frac(tt.p, tt.q)
		if got.String() != tt.want {
			t.Errorf("Frac(%d, %d): want %s, got %s", tt.p, tt.q, tt.want, got)
		}
	}
}

func TestFrac_IntegerDemotion(t *testing.T) {
	if _, ok := number.Frac(4, 2).(number.Integer); !ok {
		t.Errorf("4/2 should be an Integer")
	}
	if _, ok := number.Frac(1, 2).(number.Rational); !ok {
		t.Errorf("1/2 should be a Rational")
	}
}

func TestFrac_ZeroDenominatorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Frac(1, 0) should panic")
		}
	}()
	number.Frac(1, 0)
}

func TestFromInt_Unsigned(t *testing.T) {
	got := number.FromInt(uint64(1) << 63)
	if got.String() != "9223372036854775808" {
		t.Errorf("want 2^63, got %s", got)
	}
	if number.FromInt(int8(-3)).String() != "-3" {
		t.Errorf("want -3")
	}
}

// ============================================================
// Arithmetic
// ============================================================

func TestArithmetic_Exact(t *testing.T) {
	a := number.Frac(1, 3)
	b := number.Frac(5, 6)
	if got := number.Add(a, b).String(); got != "7/6" {
		t.Errorf("1/3 + 5/6: want 7/6, got %s", got)
	}
	if got := number.Sub(a, b).String(); got != "-1/2" {
		t.Errorf("1/3 - 5/6: want -1/2, got %s", got)
	}
	if got := number.Mul(a, number.Int(3)); !got.IsOne() {
		t.Errorf("1/3 * 3: want 1, got %s", got)
	}
}

func TestQuo_IntegersDividingEvenly(t *testing.T) {
	q, err := number.Quo(number.Int(12), number.Int(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(number.Integer); !ok || q.String() != "3" {
		t.Errorf("12/4: want Integer 3, got %#v", q)
	}
	q, err = number.Quo(number.Int(12), number.Int(8))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := q.(number.Rational); !ok || q.String() != "3/2" {
		t.Errorf("12/8: want Rational 3/2, got %s", q)
	}
}

func TestQuo_DivisionByZero(t *testing.T) {
	_, err := number.Quo(number.Int(1), number.Int(0))
	if !errors.Is(err, number.ErrDivisionByZero) {
		t.Errorf("want ErrDivisionByZero, got %v", err)
	}
	_, err = number.Mod(number.Int(1), number.Zero())
	if !errors.Is(err, number.ErrDivisionByZero) {
		t.Errorf("Mod: want ErrDivisionByZero, got %v", err)
	}
}

func TestMod_FloorSemantics(t *testing.T) {
	tests := []struct {
		a, b number.Number
		want string
	}{
		{number.Int(7), number.Int(3), "1"},
		{number.Int(-7), number.Int(3), "2"},
		{number.Int(7), number.Int(-3), "-2"},
		{number.Frac(7, 2), number.Int(1), "1/2"},
	}
	for _, tt := range tests {
		got, err := number.Mod(tt.a, tt.b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != tt.want {
			t.Errorf("%s %% %s: want %s, got %s", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestPow(t *testing.T) {
	got, err := number.Pow(number.Frac(2, 3), 3)
	if err != nil || got.String() != "8/27" {
		t.Errorf("(2/3)^3: want 8/27, got %v (%v)", got, err)
	}
	got, err = number.Pow(number.Int(2), -2)
	if err != nil || got.String() != "1/4" {
		t.Errorf("2^-2: want 1/4, got %v (%v)", got, err)
	}
	got, err = number.Pow(number.Int(0), 0)
	if err != nil || !got.IsOne() {
		t.Errorf("0^0: want 1, got %v", got)
	}
	if _, err := number.Pow(number.Int(0), -1); !errors.Is(err, number.ErrNegativeExponent) {
		t.Errorf("0^-1: want ErrNegativeExponent, got %v", err)
	}
}

func TestSqrt(t *testing.T) {
	if r, ok := number.Sqrt(number.Frac(9, 4)); !ok || r.String() != "3/2" {
		t.Errorf("sqrt(9/4): want 3/2, got %v", r)
	}
	if _, ok := number.Sqrt(number.Int(2)); ok {
		t.Errorf("sqrt(2) is not rational")
	}
	if _, ok := number.Sqrt(number.Int(-4)); ok {
		t.Errorf("sqrt(-4) is not real")
	}
}

func TestGCD(t *testing.T) {
	if got := number.GCD(number.Int(-12), number.Int(18)); got.String() != "6" {
		t.Errorf("gcd(-12, 18): want 6, got %s", got)
	}
}

func TestCmp(t *testing.T) {
	if number.Cmp(number.Frac(1, 3), number.Frac(1, 2)) >= 0 {
		t.Errorf("1/3 should be less than 1/2")
	}
	if !number.Equal(number.Frac(2, 4), number.Frac(1, 2)) {
		t.Errorf("2/4 should equal 1/2")
	}
}

// ============================================================
// Parsing
// ============================================================

func TestParse(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"42", "42"},
		{"-7", "-7"},
		{"1.25", "5/4"},
		{"0.5", "1/2"},
		{"3/4", "3/4"},
		{"10/5", "2"},
	}
	for _, tt := range tests {
		got, err := number.Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q): want %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "abc", "1e5", "1.2.3"} {
		if _, err := number.Parse(in); !errors.Is(err, number.ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", in, err)
		}
	}
	if _, err := number.Parse("1/0"); !errors.Is(err, number.ErrDivisionByZero) {
		t.Errorf("Parse(1/0): want ErrDivisionByZero, got %v", err)
	}
}

func TestRat_IsCopy(t *testing.T) {
	n := number.Frac(1, 2)
	r := n.Rat()
	r.Add(r, big.NewRat(1, 1))
	if n.String() != "1/2" {
		t.Errorf("mutating Rat() result must not change the value, got %s", n)
	}
}
