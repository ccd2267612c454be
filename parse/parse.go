// Package parse turns algebraic text such as "x^2y - 3/2*x + 1" into
// polynomials.
//
// Grammar, loosest binding first:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | <implicit>) unary }
//	unary   = ("-" | "+") unary | power
//	power   = primary [ ("^" | "**") unary ]
//	primary = number | variable | "(" expr ")"
//
// Implicit multiplication applies when a number, variable or "(" directly
// follows a complete factor, so "2xy" is 2*x*y and "(x+1)(x-1)" is a
// product. A variable is a letter optionally followed by digits. Numbers
// are integers or decimals and are read exactly.
package parse

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/mike006322/PolynomialCalculator-sub000/number"
)

var ErrSyntax = errors.New("parse: syntax error")

// Error is a syntax error at a byte offset of the input.
type Error struct {
	Offset int
	Msg    string
}

func (e *Error) Error() string { return fmt.Sprintf("parse: offset %d: %s", e.Offset, e.Msg) }

func (e *Error) Is(target error) bool { return target == ErrSyntax }

func syntaxErr(off int, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Offset: off, Msg: fmt.Sprintf(format, args...)})
}

// ============================================================
// Expression tree
// ============================================================

// Node is a parsed expression.
type Node interface {
	Pos() int
	String() string
}

// Num is a numeric literal.
type Num struct {
	Value  number.Number
	Offset int
}

// Ident is a variable.
type Ident struct {
	Name   string
	Offset int
}

// Neg is unary minus.
type Neg struct {
	X      Node
	Offset int
}

// Binary is X Op Y with Op one of + - * / ^.
type Binary struct {
	Op     byte
	X, Y   Node
	Offset int
}

func (n *Num) Pos() int    { return n.Offset }
func (n *Ident) Pos() int  { return n.Offset }
func (n *Neg) Pos() int    { return n.Offset }
func (n *Binary) Pos() int { return n.Offset }

func (n *Num) String() string    { return n.Value.String() }
func (n *Ident) String() string  { return n.Name }
func (n *Neg) String() string    { return "(-" + n.X.String() + ")" }
func (n *Binary) String() string { return "(" + n.X.String() + " " + string(n.Op) + " " + n.Y.String() + ")" }

// ============================================================
// Lexer
// ============================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNum
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	op   byte
	off  int
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || c == '.':
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j < len(s) && s[j] == '.' {
				j++
				for j < len(s) && isDigit(s[j]) {
					j++
				}
			}
			if j-i == 1 && c == '.' {
				return nil, syntaxErr(i, "unexpected %q", c)
			}
			toks = append(toks, token{kind: tokNum, text: s[i:j], off: i})
			i = j
		case isLetter(c):
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: s[i:j], off: i})
			i = j
		case c == '*' && i+1 < len(s) && s[i+1] == '*':
			toks = append(toks, token{kind: tokOp, op: '^', text: "**", off: i})
			i += 2
		case strings.IndexByte("+-*/^", c) >= 0:
			toks = append(toks, token{kind: tokOp, op: c, text: string(c), off: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", off: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", off: i})
			i++
		default:
			return nil, syntaxErr(i, "illegal character %q", c)
		}
	}
	return append(toks, token{kind: tokEOF, off: len(s)}), nil
}

// ============================================================
// Parser
// ============================================================

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops string) bool {
	t := p.peek()
	return t.kind == tokOp && strings.IndexByte(ops, t.op) >= 0
}

// Parse builds the expression tree for s.
func Parse(s string) (Node, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	if toks[0].kind == tokEOF {
		return nil, syntaxErr(0, "empty expression")
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		if t.kind == tokRParen {
			return nil, syntaxErr(t.off, "unbalanced ')'")
		}
		return nil, syntaxErr(t.off, "unexpected %q", t.text)
	}
	return n, nil
}

func (p *parser) expr() (Node, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+-") {
		op := p.next()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op.op, X: x, Y: y, Offset: op.off}
	}
	return x, nil
}

func (p *parser) term() (Node, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var op byte
		switch {
		case p.isOp("*/"):
			op = p.next().op
		case t.kind == tokNum || t.kind == tokIdent || t.kind == tokLParen:
			op = '*'
		default:
			return x, nil
		}
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y, Offset: t.off}
	}
}

func (p *parser) unary() (Node, error) {
	if p.isOp("+-") {
		op := p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op.op == '+' {
			return x, nil
		}
		return &Neg{X: x, Offset: op.off}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.isOp("^") {
		return x, nil
	}
	op := p.next()
	y, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: '^', X: x, Y: y, Offset: op.off}, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		v, err := number.Parse(t.text)
		if err != nil {
			return nil, syntaxErr(t.off, "bad number %q", t.text)
		}
		return &Num{Value: v, Offset: t.off}, nil
	case tokIdent:
		return &Ident{Name: t.text, Offset: t.off}, nil
	case tokLParen:
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, syntaxErr(t.off, "unbalanced '('")
		}
		return x, nil
	case tokEOF:
		return nil, syntaxErr(t.off, "unexpected end of expression")
	}
	return nil, syntaxErr(t.off, "unexpected %q", t.text)
}
