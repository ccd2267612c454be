package poly

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Monomial is an exponent vector over an ordered tuple of variable names.
// Monomials of one polynomial share its variable slice; neither slice is
// mutated after construction.
type Monomial struct {
	vars []string
	exps []int
}

// NewMonomial pairs vars with exps. Missing exponents are zero.
func NewMonomial(vars []string, exps []int) Monomial {
	e := make([]int, len(vars))
	copy(e, exps)
	v := make([]string, len(vars))
	copy(v, vars)
	return Monomial{vars: v, exps: e}
}

func (m Monomial) Vars() []string { return append([]string(nil), m.vars...) }
func (m Monomial) Exps() []int    { return append([]int(nil), m.exps...) }
func (m Monomial) Degree() int    { return sum(m.exps) }

// Exp returns the exponent of name, zero if absent.
func (m Monomial) Exp(name string) int {
	for i, v := range m.vars {
		if v == name {
			return m.exps[i]
		}
	}
	return 0
}

func (m Monomial) IsOne() bool {
	for _, e := range m.exps {
		if e != 0 {
			return false
		}
	}
	return true
}

// PurePower reports the variable when m is x^k, k > 0, for a single x.
func (m Monomial) PurePower() (string, bool) {
	name := ""
	for i, e := range m.exps {
		if e == 0 {
			continue
		}
		if name != "" {
			return "", false
		}
		name = m.vars[i]
	}
	return name, name != ""
}

func (m Monomial) Equal(o Monomial) bool {
	if len(m.exps) != len(o.exps) {
		return false
	}
	for i := range m.exps {
		if m.vars[i] != o.vars[i] || m.exps[i] != o.exps[i] {
			return false
		}
	}
	return true
}

// Mul adds exponents. Both monomials must share variables.
func (m Monomial) Mul(o Monomial) Monomial {
	e := make([]int, len(m.exps))
	for i := range e {
		e[i] = m.exps[i] + o.exps[i]
	}
	return Monomial{vars: m.vars, exps: e}
}

// Divides reports whether m | o.
func (m Monomial) Divides(o Monomial) bool {
	for i := range m.exps {
		if m.exps[i] > o.exps[i] {
			return false
		}
	}
	return true
}

// Quo returns m / o when o divides m.
func (m Monomial) Quo(o Monomial) (Monomial, bool) {
	if !o.Divides(m) {
		return Monomial{}, false
	}
	e := make([]int, len(m.exps))
	for i := range e {
		e[i] = m.exps[i] - o.exps[i]
	}
	return Monomial{vars: m.vars, exps: e}, true
}

// LCM takes per-variable maxima.
func (m Monomial) LCM(o Monomial) Monomial {
	e := make([]int, len(m.exps))
	for i := range e {
		e[i] = max(m.exps[i], o.exps[i])
	}
	return Monomial{vars: m.vars, exps: e}
}

// GCD takes per-variable minima.
func (m Monomial) GCD(o Monomial) Monomial {
	e := make([]int, len(m.exps))
	for i := range e {
		e[i] = min(m.exps[i], o.exps[i])
	}
	return Monomial{vars: m.vars, exps: e}
}

// Coprime reports that no variable occurs in both.
func (m Monomial) Coprime(o Monomial) bool {
	for i := range m.exps {
		if m.exps[i] > 0 && o.exps[i] > 0 {
			return false
		}
	}
	return true
}

func (m Monomial) String() string {
	var parts []string
	for i, e := range m.exps {
		switch {
		case e == 1:
			parts = append(parts, m.vars[i])
		case e > 1:
			parts = append(parts, m.vars[i]+"^"+strconv.Itoa(e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, "*")
}

func expKey(exps []int) string {
	buf := make([]byte, 0, len(exps)*2)
	for _, e := range exps {
		buf = binary.AppendUvarint(buf, uint64(e))
	}
	return string(buf)
}
