// cmd/polycalc/main.go — command-line polynomial calculator
//
// Usage:
//
//	polycalc [global flags] <command> [polynomials...]
//
// Global flags must precede the command. Arguments starting with '-' need a
// preceding "--".
//
//	polycalc gcd "x^2 - 1" "x - 1"
//	polycalc --order grevlex groebner "x^2y - 1" "xy^2 - x"
//	polycalc --json solve "x - 1" "y - 2" "z - 3"
//	polycalc --characteristic 2 find_irreducible 8
//
// The exit code is 0 on success and 1 on any error.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	polycalc "github.com/mike006322/PolynomialCalculator-sub000"
	"github.com/mike006322/PolynomialCalculator-sub000/poly"
)

var version = "v0.1.0"

// errReported marks a failure whose report was already written.
var errReported = errors.New("reported")

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}
	return 0
}

func setupLogging(verbosity int, w io.Writer) {
	var lvl slog.Level
	switch {
	case verbosity <= 1:
		lvl = slog.LevelError
	case verbosity == 2:
		lvl = slog.LevelWarn
	case verbosity == 3:
		lvl = slog.LevelInfo
	case verbosity == 4:
		lvl = slog.LevelDebug
	default:
		lvl = log.LevelTrace
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(w, lvl, false)))
}

func newApp(stdout, stderr io.Writer) *cli.App {
	defaults := polycalc.DefaultOptions()
	return &cli.App{
		Name:            "polycalc",
		Usage:           "exact polynomial arithmetic, Gröbner bases and polynomial system solving",
		Version:         version,
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Usage:   "print a JSON report",
				EnvVars: []string{"POLYCALC_JSON"},
			},
			&cli.StringFlag{
				Name:    "characteristic",
				Aliases: []string{"p"},
				Usage:   "prime characteristic of the coefficient field, 0 for the rationals",
				Value:   "0",
				EnvVars: []string{"POLYCALC_CHARACTERISTIC"},
			},
			&cli.StringFlag{
				Name:    "order",
				Usage:   "term order: lex, grlex or grevlex",
				Value:   defaults.Order.String(),
				EnvVars: []string{"POLYCALC_ORDER"},
			},
			&cli.IntFlag{
				Name:    "step-limit",
				Usage:   "iteration ceiling for division, gcd and searches (0 = unlimited)",
				Value:   defaults.StepLimit,
				EnvVars: []string{"POLYCALC_STEP_LIMIT"},
			},
			&cli.Float64Flag{
				Name:    "tolerance",
				Usage:   "snapping tolerance for approximate roots",
				Value:   defaults.Tolerance,
				EnvVars: []string{"POLYCALC_TOLERANCE"},
			},
			&cli.IntFlag{
				Name:    "max-iterations",
				Usage:   "Durand-Kerner iteration cap",
				Value:   defaults.MaxIterations,
				EnvVars: []string{"POLYCALC_MAX_ITERATIONS"},
			},
			&cli.IntFlag{
				Name:    "verbosity",
				Usage:   "log level 0-5 (0=silent, 5=trace)",
				Value:   2,
				EnvVars: []string{"POLYCALC_VERBOSITY"},
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.Int("verbosity"), stderr)
			return nil
		},
		Commands: commands(),
	}
}

// command describes a subcommand by how it turns its arguments into tool
// params.
type command struct {
	name, usage, args string
	min, max          int // max < 0 means unbounded
	params            func(args []string) (map[string]interface{}, error)
}

func list(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// splitList splits a comma-separated generator list.
func splitList(s string) []interface{} {
	parts := strings.Split(s, ",")
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func degreeParams(args []string) (map[string]interface{}, error) {
	d, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, errors.Errorf("degree %q is not an integer", args[0])
	}
	params := map[string]interface{}{"degree": float64(d)}
	if len(args) > 1 {
		params["var"] = args[1]
	}
	return params, nil
}

var commandTable = []command{
	{"gcd", "monic gcd of two polynomials", "A B", 2, 2, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"a": a[0], "b": a[1]}, nil
	}},
	{"lcm", "monic lcm of two polynomials", "A B", 2, 2, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"a": a[0], "b": a[1]}, nil
	}},
	{"divide", "divide F by an ordered list of divisors", "F G1 [G2 ...]", 2, -1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0], "divisors": list(a[1:])}, nil
	}},
	{"groebner", "reduced Gröbner basis of the ideal generated by the arguments", "G1 [G2 ...]", 1, -1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"gens": list(a)}, nil
	}},
	{"reduce", "normal form of F modulo the ideal", "F G1 [G2 ...]", 2, -1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0], "gens": list(a[1:])}, nil
	}},
	{"contains", "whether F lies in the ideal", "F G1 [G2 ...]", 2, -1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0], "gens": list(a[1:])}, nil
	}},
	{"equal", "whether two comma-separated generator lists span the same ideal", `"G1, G2, ..." "H1, H2, ..."`, 2, 2, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"gens": splitList(a[0]), "other": splitList(a[1])}, nil
	}},
	{"solve", "solve the system G1 = ... = Gn = 0", "G1 [G2 ...]", 1, -1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"gens": list(a)}, nil
	}},
	{"derivative", "partial derivative of F by VAR", "F VAR", 2, 2, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0], "var": a[1]}, nil
	}},
	{"roots", "distinct complex roots of a univariate polynomial", "F", 1, 1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0]}, nil
	}},
	{"finite_field", "reduce F into GF(P)", "F P", 2, 2, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0], "p": a[1]}, nil
	}},
	{"random_monic", "random monic polynomial over GF(characteristic)", "DEGREE [VAR]", 1, 2, degreeParams},
	{"find_irreducible", "random irreducible polynomial over GF(characteristic)", "DEGREE [VAR]", 1, 2, degreeParams},
	{"is_irreducible", "irreducibility test over GF(characteristic)", "F", 1, 1, func(a []string) (map[string]interface{}, error) {
		return map[string]interface{}{"f": a[0]}, nil
	}},
}

func commands() []*cli.Command {
	out := make([]*cli.Command, len(commandTable))
	for i, cmd := range commandTable {
		out[i] = &cli.Command{
			Name:      cmd.name,
			Usage:     cmd.usage,
			ArgsUsage: cmd.args,
			Action: func(c *cli.Context) error {
				args := c.Args().Slice()
				if len(args) < cmd.min || (cmd.max >= 0 && len(args) > cmd.max) {
					return errors.Errorf("usage: %s %s %s", c.App.Name, cmd.name, cmd.args)
				}
				params, err := cmd.params(args)
				if err != nil {
					return err
				}
				return execute(c, polycalc.ToolRequest{Tool: cmd.name, Params: params})
			},
		}
	}
	return out
}

func engine(c *cli.Context) (*polycalc.Engine, error) {
	o := polycalc.DefaultOptions()
	order, err := poly.ParseOrder(c.String("order"))
	if err != nil {
		return nil, err
	}
	p, ok := new(big.Int).SetString(c.String("characteristic"), 10)
	if !ok {
		return nil, errors.Errorf("characteristic %q is not an integer", c.String("characteristic"))
	}
	o.Order = order
	o.Characteristic = p
	o.StepLimit = c.Int("step-limit")
	o.Tolerance = c.Float64("tolerance")
	o.MaxIterations = c.Int("max-iterations")
	// A single command never repeats a basis.
	o.CacheBytes = 0
	return polycalc.New(o)
}

func execute(c *cli.Context, req polycalc.ToolRequest) error {
	e, err := engine(c)
	if err != nil {
		return err
	}
	log.Debug("Running command", "command", req.Tool, "ring", e.Ring().String())
	rep := e.HandleToolCall(req)
	w := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
		if rep.Status == polycalc.StatusError {
			return errReported
		}
		return nil
	}
	if rep.Status == polycalc.StatusError {
		return errors.New(rep.Error)
	}
	if text := rep.Text(); text != "" {
		fmt.Fprintln(w, text)
	}
	return nil
}
