package ideal_test

import (
	"fmt"
	"math/big"
	"math/cmplx"
	"testing"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/ideal"
	"github.com/mike006322/PolynomialCalculator-sub000/parse"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
	"github.com/mike006322/PolynomialCalculator-sub000/roots"
)

var qq = poly.Rationals(poly.Lex)

func mustIdeal(t *testing.T, r poly.Ring, gens ...string) *ideal.Ideal {
	t.Helper()
	ps, err := parse.Polynomials(r, gens...)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	I, err := ideal.New(ps...)
	if err != nil {
		t.Fatalf("ideal: %v", err)
	}
	return I
}

func basisStrings(t *testing.T, I *ideal.Ideal) []string {
	t.Helper()
	G, err := I.GroebnerBasis()
	if err != nil {
		t.Fatalf("groebner: %v", err)
	}
	out := make([]string, len(G))
	for i, g := range G {
		out[i] = g.String()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ============================================================
// Gröbner bases
// ============================================================

func TestGroebnerBasis(t *testing.T) {
	tests := []struct {
		name  string
		order poly.Order
		gens  []string
		want  []string
	}{
		{"lex", poly.Lex, []string{"x^2y - 1", "xy^2 - x"}, []string{"x^2 - y", "y^2 - 1"}},
		{"grlex", poly.GrLex, []string{"x^3 - 2xy", "x^2y - 2y^2 + x"}, []string{"x^2", "x*y", "y^2 - 1/2*x"}},
		{"linear", poly.Lex, []string{"x + y", "x - y"}, []string{"x", "y"}},
		{"redundant generators", poly.Lex, []string{"x - 1", "2x - 2", "x^2 - 1"}, []string{"x - 1"}},
		{"unit", poly.Lex, []string{"x", "x - 1"}, []string{"1"}},
		{"constant generator", poly.Lex, []string{"x", "3"}, []string{"1"}},
		{"zero", poly.Lex, []string{"0"}, []string{}},
	}
	for _, tt := range tests {
		got := basisStrings(t, mustIdeal(t, poly.Rationals(tt.order), tt.gens...))
		if !equalStrings(got, tt.want) {
			t.Errorf("%s: want %v, got %v", tt.name, tt.want, got)
		}
	}
}

var systems = [][]string{
	{"x^2y - 1", "xy^2 - x"},
	{"x^2 + y^2 + z^2 - 1", "x - y", "y^2 - z"},
	{"x^3 - 2xy", "x^2y - 2y^2 + x"},
	{"xy - z", "yz - x", "zx - y"},
	{"xy", "yz", "xz"},
	{"x^2 - 2", "y^3 - x", "z - xy"},
}

var orders = []poly.Order{poly.Lex, poly.GrLex, poly.GRevLex}

func TestGroebnerBasis_GeneratorsReduceToZero(t *testing.T) {
	for _, order := range orders {
		r := poly.Rationals(order)
		for _, gens := range systems {
			I := mustIdeal(t, r, gens...)
			G, err := I.GroebnerBasis()
			if err != nil {
				t.Fatalf("groebner: %v", err)
			}
			for _, f := range I.Generators() {
				rem, err := f.Reduce(G...)
				if err != nil {
					t.Fatalf("reduce: %v", err)
				}
				if !rem.IsZero() {
					t.Errorf("%s %v: generator %s leaves remainder %s", order, gens, f, rem)
				}
			}
			for _, g := range G {
				if !g.LC().IsOne() {
					t.Errorf("%s %v: basis member %s is not monic", order, gens, g)
				}
			}
		}
	}
}

// checkReducedBasis verifies Buchberger's criterion (every S-polynomial of
// two members reduces to zero) and that no term of a member is divisible by
// another member's leading monomial.
func checkReducedBasis(t *testing.T, label string, G []*poly.Polynomial) {
	t.Helper()
	for a := range G {
		for b := a + 1; b < len(G); b++ {
			s, err := poly.SPolynomial(G[a], G[b])
			if err != nil {
				t.Fatalf("%s: S(%s, %s): %v", label, G[a], G[b], err)
			}
			rem, err := s.Reduce(G...)
			if err != nil {
				t.Fatalf("%s: reduce: %v", label, err)
			}
			if !rem.IsZero() {
				t.Errorf("%s: S(%s, %s) leaves remainder %s", label, G[a], G[b], rem)
			}
		}
		for b := range G {
			if a == b {
				continue
			}
			for _, term := range G[a].Terms() {
				if G[b].LM().Divides(term.Mono) {
					t.Errorf("%s: term %s of %s is divisible by LM(%s)", label, term, G[a], G[b])
				}
			}
		}
	}
}

func TestGroebnerBasis_SPairsReduceToZero(t *testing.T) {
	for _, order := range orders {
		r := poly.Rationals(order)
		for _, gens := range systems {
			G, err := mustIdeal(t, r, gens...).GroebnerBasis()
			if err != nil {
				t.Fatalf("groebner: %v", err)
			}
			checkReducedBasis(t, fmt.Sprintf("%s %v", order, gens), G)
		}
	}
}

func TestGroebnerBasis_LexThreeVariables(t *testing.T) {
	if testing.Short() {
		t.Skip("lexicographic basis with large coefficients")
	}
	gens := []string{"2xy^2z + xy + 2y^2 - 2y", "2xy^2 - 2xy + 3", "3xz - 3y^2z - y^2 - 3y"}
	I := mustIdeal(t, qq, gens...)
	G, err := I.GroebnerBasis()
	if err != nil {
		t.Fatalf("groebner: %v", err)
	}
	checkReducedBasis(t, "lex", G)
	for _, f := range I.Generators() {
		rem, err := f.Reduce(G...)
		if err != nil || !rem.IsZero() {
			t.Errorf("generator %s leaves remainder %s (%v)", f, rem, err)
		}
	}
}

func TestGroebnerBasis_Deterministic(t *testing.T) {
	I := mustIdeal(t, qq, "xy - z", "yz - x", "zx - y")
	first := basisStrings(t, I)
	for i := 0; i < 5; i++ {
		if got := basisStrings(t, I); !equalStrings(got, first) {
			t.Fatalf("run %d: want %v, got %v", i, first, got)
		}
	}
}

func TestGroebnerBasis_PrimeField(t *testing.T) {
	gf5, err := poly.GF(big.NewInt(5), poly.Lex)
	if err != nil {
		t.Fatal(err)
	}
	// 2 is a root of x^2 + 1 mod 5.
	got := basisStrings(t, mustIdeal(t, gf5, "x^2 + 1", "x - 2"))
	if !equalStrings(got, []string{"x + 3"}) {
		t.Errorf("want [x + 3], got %v", got)
	}
}

// ============================================================
// Membership and equality
// ============================================================

func TestContainsAndReduce(t *testing.T) {
	I := mustIdeal(t, qq, "x^2y - 1", "xy^2 - x")
	in, err := I.Contains(parse.MustPolynomial(qq, "x^2 - y"))
	if err != nil || !in {
		t.Errorf("x^2 - y should be in the ideal (%v)", err)
	}
	in, err = I.Contains(parse.MustPolynomial(qq, "x"))
	if err != nil || in {
		t.Errorf("x should not be in the ideal (%v)", err)
	}
	nf, err := I.Reduce(parse.MustPolynomial(qq, "x^3 + y^3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// x^3 = x*y and y^3 = y modulo the ideal.
	if nf.String() != "x*y + y" {
		t.Errorf("normal form: want x*y + y, got %s", nf)
	}
}

func TestEqual(t *testing.T) {
	a := mustIdeal(t, qq, "x^2y - 1", "xy^2 - x")
	b := mustIdeal(t, qq, "y^2 - 1", "3x^2 - 3y")
	eq, err := a.Equal(b)
	if err != nil || !eq {
		t.Errorf("ideals should be equal (%v)", err)
	}
	eq, err = mustIdeal(t, qq, "x", "y").Equal(mustIdeal(t, qq, "x + y", "x - y"))
	if err != nil || !eq {
		t.Errorf("(x, y) should equal (x + y, x - y) (%v)", err)
	}
	eq, err = a.Equal(mustIdeal(t, qq, "x^2 - y"))
	if err != nil || eq {
		t.Errorf("ideals should differ (%v)", err)
	}
	grlex := mustIdeal(t, poly.Rationals(poly.GrLex), "x")
	if _, err := a.Equal(grlex); !errors.Is(err, poly.ErrRingMismatch) {
		t.Errorf("want ErrRingMismatch, got %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := ideal.New(); !errors.Is(err, ideal.ErrEmptyIdeal) {
		t.Errorf("want ErrEmptyIdeal, got %v", err)
	}
	gf7, err := poly.GF(big.NewInt(7), poly.Lex)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ideal.New(poly.Var(qq, "x"), poly.Var(gf7, "x")); !errors.Is(err, poly.ErrRingMismatch) {
		t.Errorf("want ErrRingMismatch, got %v", err)
	}
}

// ============================================================
// Solving
// ============================================================

func solutionStrings(res *ideal.Result) []string {
	out := make([]string, len(res.Solutions))
	for i, s := range res.Solutions {
		out[i] = s.String()
	}
	return out
}

func TestSolve_Finite(t *testing.T) {
	tests := []struct {
		name string
		gens []string
		want []string
	}{
		{"linear", []string{"x - 1", "y - 2", "z - 3"}, []string{"{x=1, y=2, z=3}"}},
		{"multiple root", []string{"x^2", "y", "z"}, []string{"{x=0, y=0, z=0}"}},
		{"complex branch", []string{"x^2y - 1", "xy^2 - x"}, []string{
			"{x=-1, y=1}", "{x=-i, y=-1}", "{x=1, y=1}", "{x=i, y=-1}",
		}},
		{"rational", []string{"2x - 1", "y^2 - x^2"}, []string{"{x=1/2, y=-1/2}", "{x=1/2, y=1/2}"}},
		{"quadruple root", []string{"(x - 2)^4", "y - 1"}, []string{"{x=2, y=1}"}},
		{"triple roots", []string{"x^3", "(y - 1)^3", "z + x"}, []string{"{x=0, y=1, z=0}"}},
		{"repeated cubic factor", []string{"(x - 1)^3 (x + 2)", "y - x"}, []string{"{x=-2, y=-2}", "{x=1, y=1}"}},
	}
	for _, tt := range tests {
		res, err := mustIdeal(t, qq, tt.gens...).Solve()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if res.Status != ideal.Finite {
			t.Errorf("%s: want finite, got %s", tt.name, res.Status)
			continue
		}
		if got := solutionStrings(res); !equalStrings(got, tt.want) {
			t.Errorf("%s: want %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestSolve_SolutionsSatisfySystem(t *testing.T) {
	gens := []string{"x^2 + y^2 - 1", "x - y"}
	res, err := mustIdeal(t, qq, gens...).Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ideal.Finite || len(res.Solutions) != 2 {
		t.Fatalf("want 2 solutions, got %s %v", res.Status, res.Solutions)
	}
	for _, sol := range res.Solutions {
		x, y := sol["x"].Complex(), sol["y"].Complex()
		if v := cmplx.Abs(x*x + y*y - 1); v > 1e-9 {
			t.Errorf("%s: x^2 + y^2 - 1 = %g", sol, v)
		}
		if v := cmplx.Abs(x - y); v > 1e-9 {
			t.Errorf("%s: x - y = %g", sol, v)
		}
	}
}

func TestSolve_RepeatedRootThenQuadratic(t *testing.T) {
	res, err := mustIdeal(t, qq, "(x - 2)^4", "y^2 - x").Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ideal.Finite || len(res.Solutions) != 2 {
		t.Fatalf("want 2 solutions, got %s %v", res.Status, res.Solutions)
	}
	for _, sol := range res.Solutions {
		if x := sol["x"]; !x.IsExact() || x.String() != "2" {
			t.Errorf("%s: want x = 2 exactly", sol)
		}
		y := sol["y"].Complex()
		if v := cmplx.Abs(y*y - 2); v > 1e-9 {
			t.Errorf("%s: y^2 - 2 = %g", sol, v)
		}
	}
}

func TestSolve_NonFiniteOutcomes(t *testing.T) {
	res, err := mustIdeal(t, qq, "xy", "y").Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ideal.NotZeroDimensional || len(res.Solutions) != 0 {
		t.Errorf("(xy, y): want not zero-dimensional, got %s", res.Status)
	}

	res, err = mustIdeal(t, qq, "x - 1", "x - 2").Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != ideal.Inconsistent {
		t.Errorf("(x - 1, x - 2): want inconsistent, got %s", res.Status)
	}

	res, err = mustIdeal(t, qq, "0").Solve()
	if err != nil || res.Status != ideal.NotZeroDimensional {
		t.Errorf("zero ideal: want not zero-dimensional, got %v (%v)", res, err)
	}
}

func TestSolve_OtherOrderUsesLex(t *testing.T) {
	res, err := mustIdeal(t, poly.Rationals(poly.GRevLex), "x + y - 3", "x - y - 1").Solve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := solutionStrings(res); !equalStrings(got, []string{"{x=2, y=1}"}) {
		t.Errorf("want [{x=2, y=1}], got %v", got)
	}
}

func TestSolve_PrimeFieldNotImplemented(t *testing.T) {
	gf7, err := poly.GF(big.NewInt(7), poly.Lex)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := mustIdeal(t, gf7, "x - 1").Solve(); !errors.Is(err, poly.ErrNotImplemented) {
		t.Errorf("want ErrNotImplemented, got %v", err)
	}
}

func TestSolvabilityCriteria(t *testing.T) {
	ok, err := mustIdeal(t, qq, "xy", "y").SolvabilityCriteria()
	if err != nil || ok {
		t.Errorf("(xy, y): want false, got %v (%v)", ok, err)
	}
	ok, err = mustIdeal(t, qq, "x - 1", "y - 2", "z - 3").SolvabilityCriteria()
	if err != nil || !ok {
		t.Errorf("(x - 1, y - 2, z - 3): want true, got %v (%v)", ok, err)
	}
	G := []*poly.Polynomial{parse.MustPolynomial(qq, "x^2 - y"), parse.MustPolynomial(qq, "y^3")}
	if !ideal.SolvabilityCriteria(G, []string{"x", "y"}) {
		t.Errorf("x^2 and y^3 isolate both variables")
	}
	if ideal.SolvabilityCriteria(G, []string{"x", "y", "z"}) {
		t.Errorf("z is never isolated")
	}
}

func TestSolution_String(t *testing.T) {
	s := ideal.Solution{"y": roots.Int(2), "x": roots.Approx(complex(0, 1))}
	if got := s.String(); got != "{x=i, y=2}" {
		t.Errorf("want {x=i, y=2}, got %s", got)
	}
}
