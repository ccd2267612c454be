package polycalc

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/mike006322/PolynomialCalculator-sub000/ideal"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
)

// ============================================================
// Reports
// ============================================================

// Report statuses.
const (
	StatusOK           = "ok"
	StatusError        = "error"
	StatusNoSolutions  = "no_solutions"
	StatusUndetermined = "undetermined"
)

// Report is the JSON answer to one command. Exactly one of Result, Basis,
// Solutions or Roots is set on success; Count is its size.
type Report struct {
	Command   string              `json:"command"`
	Status    string              `json:"status"`
	Result    string              `json:"result,omitempty"`
	Quotients []string            `json:"quotients,omitempty"`
	Remainder string              `json:"remainder,omitempty"`
	Complete  *bool               `json:"complete,omitempty"`
	Basis     []string            `json:"basis,omitempty"`
	Solutions []map[string]string `json:"solutions,omitempty"`
	Roots     []string            `json:"roots,omitempty"`
	Count     int                 `json:"count"`
	Error     string              `json:"error,omitempty"`
}

// Failure reports err for command.
func Failure(command string, err error) Report {
	return Report{Command: command, Status: StatusError, Error: err.Error()}
}

// PolynomialReport reports a single polynomial.
func PolynomialReport(command string, p *poly.Polynomial) Report {
	return Report{Command: command, Status: StatusOK, Result: p.String(), Count: 1}
}

// BoolReport reports a yes/no answer as "true" or "false".
func BoolReport(command string, b bool) Report {
	return Report{Command: command, Status: StatusOK, Result: fmt.Sprint(b), Count: 1}
}

// BasisReport reports a Gröbner basis.
func BasisReport(command string, G []*poly.Polynomial) Report {
	return Report{Command: command, Status: StatusOK, Basis: strs(G), Count: len(G)}
}

// DivisionReport reports quotients and remainder.
func DivisionReport(command string, d *poly.Division) Report {
	complete := d.Complete
	return Report{
		Command:   command,
		Status:    StatusOK,
		Quotients: strs(d.Quotients),
		Remainder: d.Remainder.String(),
		Complete:  &complete,
		Count:     len(d.Quotients),
	}
}

// SolveReport maps a solver result onto the report statuses: a finite set
// is ok, an inconsistent system has no solutions and anything else is
// undetermined.
func SolveReport(command string, res *ideal.Result) Report {
	rep := Report{Command: command, Basis: strs(res.Basis)}
	switch res.Status {
	case ideal.Finite:
		rep.Status = StatusOK
		rep.Basis = nil
		rep.Solutions = make([]map[string]string, len(res.Solutions))
		for i, s := range res.Solutions {
			m := make(map[string]string, len(s))
			for k, v := range s {
				m[k] = v.String()
			}
			rep.Solutions[i] = m
		}
		rep.Count = len(res.Solutions)
	case ideal.Inconsistent:
		rep.Status = StatusNoSolutions
	default:
		rep.Status = StatusUndetermined
		rep.Error = "no finite solution set"
	}
	return rep
}

func strs(ps []*poly.Polynomial) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.String()
	}
	return out
}

// Text renders the report for a terminal.
func (r Report) Text() string {
	switch {
	case r.Status == StatusError:
		return "error: " + r.Error
	case r.Status == StatusNoSolutions:
		return "no solutions"
	case r.Status == StatusUndetermined:
		return "no finite solution set"
	case r.Solutions != nil:
		lines := make([]string, len(r.Solutions))
		for i, s := range r.Solutions {
			b, _ := json.Marshal(s)
			lines[i] = string(b)
		}
		return strings.Join(lines, "\n")
	case r.Quotients != nil:
		s := "quotients: [" + strings.Join(r.Quotients, ", ") + "]\nremainder: " + r.Remainder
		if r.Complete != nil && !*r.Complete {
			s += "\n(step limit reached, remainder may not be fully reduced)"
		}
		return s
	case r.Basis != nil:
		return strings.Join(r.Basis, "\n")
	case r.Roots != nil:
		return strings.Join(r.Roots, "\n")
	}
	return r.Result
}

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// HandleToolCall runs one tool request. The optional "order" and
// "characteristic" params override the engine's ring for this call.
func (e *Engine) HandleToolCall(req ToolRequest) Report {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			s, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = s
		}
		return result, nil
	}
	getInt := func(key string) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, fmt.Errorf("missing param: %s", key)
		}
		f, ok := v.(float64)
		if !ok || f != float64(int(f)) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(f), nil
	}
	// Characteristics may exceed float64 precision, so strings are accepted
	// alongside numbers.
	getBig := func(key string) (*big.Int, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch x := v.(type) {
		case float64:
			if x != float64(int64(x)) {
				return nil, fmt.Errorf("param %s must be an integer", key)
			}
			return big.NewInt(int64(x)), nil
		case string:
			n, ok := new(big.Int).SetString(x, 10)
			if !ok {
				return nil, fmt.Errorf("param %s must be an integer", key)
			}
			return n, nil
		}
		return nil, fmt.Errorf("param %s must be an integer", key)
	}
	getVar := func() (string, error) {
		if _, ok := req.Params["var"]; !ok {
			return "x", nil
		}
		return getString("var")
	}
	fail := func(err error) Report { return Failure(req.Tool, err) }

	eng := e
	if _, ok := req.Params["order"]; ok || req.Params["characteristic"] != nil {
		order, p := e.ring.Order(), e.ring.Characteristic()
		if _, ok := req.Params["order"]; ok {
			s, err := getString("order")
			if err != nil {
				return fail(err)
			}
			if order, err = poly.ParseOrder(s); err != nil {
				return fail(err)
			}
		}
		if req.Params["characteristic"] != nil {
			var err error
			if p, err = getBig("characteristic"); err != nil {
				return fail(err)
			}
		}
		r, err := poly.GF(p, order)
		if err != nil {
			return fail(err)
		}
		eng = e.WithRing(r)
	}

	switch req.Tool {
	case "gcd", "lcm":
		a, err := getString("a")
		if err != nil {
			return fail(err)
		}
		b, err := getString("b")
		if err != nil {
			return fail(err)
		}
		op := eng.GCD
		if req.Tool == "lcm" {
			op = eng.LCM
		}
		p, err := op(a, b)
		if err != nil {
			return fail(err)
		}
		return PolynomialReport(req.Tool, p)

	case "divide":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		divs, err := getStrings("divisors")
		if err != nil {
			return fail(err)
		}
		d, err := eng.Divide(f, divs...)
		if err != nil {
			return fail(err)
		}
		return DivisionReport(req.Tool, d)

	case "groebner":
		gens, err := getStrings("gens")
		if err != nil {
			return fail(err)
		}
		G, err := eng.Groebner(gens...)
		if err != nil {
			return fail(err)
		}
		return BasisReport(req.Tool, G)

	case "reduce", "contains":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		gens, err := getStrings("gens")
		if err != nil {
			return fail(err)
		}
		r, err := eng.Reduce(f, gens...)
		if err != nil {
			return fail(err)
		}
		if req.Tool == "contains" {
			return BoolReport(req.Tool, r.IsZero())
		}
		return PolynomialReport(req.Tool, r)

	case "equal":
		a, err := getStrings("gens")
		if err != nil {
			return fail(err)
		}
		b, err := getStrings("other")
		if err != nil {
			return fail(err)
		}
		eq, err := eng.Equal(a, b)
		if err != nil {
			return fail(err)
		}
		return BoolReport(req.Tool, eq)

	case "solve":
		gens, err := getStrings("gens")
		if err != nil {
			return fail(err)
		}
		res, err := eng.Solve(gens...)
		if err != nil {
			return fail(err)
		}
		return SolveReport(req.Tool, res)

	case "derivative":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		name, err := getString("var")
		if err != nil {
			return fail(err)
		}
		p, err := eng.Derivative(f, name)
		if err != nil {
			return fail(err)
		}
		return PolynomialReport(req.Tool, p)

	case "roots":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		rs, err := eng.Roots(f)
		if err != nil {
			return fail(err)
		}
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.String()
		}
		return Report{Command: req.Tool, Status: StatusOK, Roots: out, Count: len(out)}

	case "finite_field":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		p, err := getBig("p")
		if err != nil {
			return fail(err)
		}
		q, err := eng.FiniteField(f, p)
		if err != nil {
			return fail(err)
		}
		return PolynomialReport(req.Tool, q)

	case "random_monic", "find_irreducible":
		name, err := getVar()
		if err != nil {
			return fail(err)
		}
		degree, err := getInt("degree")
		if err != nil {
			return fail(err)
		}
		op := eng.RandomMonic
		if req.Tool == "find_irreducible" {
			op = eng.FindIrreducible
		}
		p, err := op(name, degree)
		if err != nil {
			return fail(err)
		}
		return PolynomialReport(req.Tool, p)

	case "is_irreducible":
		f, err := getString("f")
		if err != nil {
			return fail(err)
		}
		ok, err := eng.IsIrreducible(f)
		if err != nil {
			return fail(err)
		}
		return BoolReport(req.Tool, ok)

	case "tool_spec":
		return Report{Command: req.Tool, Status: StatusOK, Result: ToolSchema(), Count: len(Tools())}
	}

	return fail(fmt.Errorf("unknown tool: %s", req.Tool))
}

// ============================================================
// Tool schema
// ============================================================

// ToolSpec describes one tool. Params maps a parameter name to its JSON
// schema type.
type ToolSpec struct {
	Name        string
	Description string
	Required    []string
	Params      map[string]string
}

var ringParams = map[string]string{"order": "string", "characteristic": "string"}

func with(props map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range ringParams {
		out[k] = v
	}
	for k, v := range props {
		out[k] = v
	}
	return out
}

// Tools lists every tool HandleToolCall accepts. Each also takes the
// optional "order" (lex, grlex, grevlex) and "characteristic" params.
func Tools() []ToolSpec {
	return []ToolSpec{
		ts("gcd", "Monic gcd of two polynomials (univariate or monomial-like)", []string{"a", "b"}, with(map[string]string{"a": "string", "b": "string"})),
		ts("lcm", "Monic lcm of two polynomials", []string{"a", "b"}, with(map[string]string{"a": "string", "b": "string"})),
		ts("divide", "Multivariate division of f by an ordered divisor list: quotients and remainder", []string{"f", "divisors"}, with(map[string]string{"f": "string", "divisors": "array"})),
		ts("groebner", "Reduced Gröbner basis of the ideal generated by gens", []string{"gens"}, with(map[string]string{"gens": "array"})),
		ts("reduce", "Normal form of f modulo the ideal generated by gens", []string{"f", "gens"}, with(map[string]string{"f": "string", "gens": "array"})),
		ts("contains", "Ideal membership test for f", []string{"f", "gens"}, with(map[string]string{"f": "string", "gens": "array"})),
		ts("equal", "Whether gens and other generate the same ideal", []string{"gens", "other"}, with(map[string]string{"gens": "array", "other": "array"})),
		ts("solve", "All solutions of the system gens = 0 when finitely many exist", []string{"gens"}, with(map[string]string{"gens": "array"})),
		ts("derivative", "Partial derivative of f by var", []string{"f", "var"}, with(map[string]string{"f": "string", "var": "string"})),
		ts("roots", "Distinct complex roots of a univariate rational polynomial", []string{"f"}, with(map[string]string{"f": "string"})),
		ts("finite_field", "Reduce a rational polynomial into GF(p)", []string{"f", "p"}, with(map[string]string{"f": "string", "p": "string"})),
		ts("random_monic", "Random monic polynomial of a degree over GF(characteristic)", []string{"degree", "characteristic"}, with(map[string]string{"degree": "integer", "var": "string"})),
		ts("find_irreducible", "Random monic irreducible polynomial of a degree over GF(characteristic)", []string{"degree", "characteristic"}, with(map[string]string{"degree": "integer", "var": "string"})),
		ts("is_irreducible", "Irreducibility test for a univariate polynomial over GF(characteristic)", []string{"f", "characteristic"}, with(map[string]string{"f": "string"})),
		ts("tool_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
}

func ts(name, description string, required []string, props map[string]string) ToolSpec {
	return ToolSpec{Name: name, Description: description, Required: required, Params: props}
}

func (s ToolSpec) schema() map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range s.Params {
		p := map[string]interface{}{"type": typ}
		if typ == "array" {
			p["items"] = map[string]interface{}{"type": "string"}
		}
		properties[k] = p
	}
	return map[string]interface{}{
		"name":        s.Name,
		"description": s.Description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   s.Required,
		},
	}
}

// ToolSchema renders Tools as JSON for agent registration.
func ToolSchema() string {
	specs := Tools()
	tools := make([]map[string]interface{}, len(specs))
	for i, s := range specs {
		tools[i] = s.schema()
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}
