// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse parses an expression. The syntax is conventional infix notation:
// "+ - * /", "^" (or "**") for powers, function calls like sin(x), the
// constants pi, E and I, relations "< <= > >= = !=", the connectives "&"
// and "|", and finite sums written sum(body, k, lo, hi).
func Parse(src string) (Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, p.errorf("unexpected %q", p.peek().text)
	}
	return e, nil
}

// MustParse is Parse for expressions known to be valid; it panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokIdent
	tokOp
)

type token struct {
	kind tokKind
	text string
	val  float64
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(src) && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			if j < len(src) && (src[j] == 'e' || src[j] == 'E') &&
				j+1 < len(src) && (src[j+1] == '+' || src[j+1] == '-' || src[j+1] >= '0' && src[j+1] <= '9') {
				j += 2
				for j < len(src) && src[j] >= '0' && src[j] <= '9' {
					j++
				}
			}
			v, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: bad number at %d", src, i)
			}
			toks = append(toks, token{tokNum, src[i:j], v, i})
			i = j
		case isIdentRune(rune(c), true):
			j := i
			for j < len(src) && isIdentRune(rune(src[j]), false) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j], 0, i})
			i = j
		case strings.ContainsRune("+-*/^(),<>=!&|", rune(c)):
			op := string(c)
			if i+1 < len(src) {
				two := src[i : i+2]
				switch two {
				case "**", "<=", ">=", "==", "!=":
					op = two
				}
			}
			toks = append(toks, token{tokOp, op, 0, i})
			i += len(op)
		default:
			return nil, fmt.Errorf("parse %q: unexpected character %q at %d", src, c, i)
		}
	}
	toks = append(toks, token{tokEOF, "", 0, len(src)})
	return toks, nil
}

func isIdentRune(c rune, first bool) bool {
	if unicode.IsLetter(c) || c == '_' {
		return true
	}
	return !first && unicode.IsDigit(c)
}

type parser struct {
	src  string
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

func (p *parser) accept(op string) bool {
	if t := p.peek(); t.kind == tokOp && t.text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(op string) error {
	if !p.accept(op) {
		return p.errorf("expected %q, found %q", op, p.peek().text)
	}
	return nil
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("parse %q: %s at offset %d", p.src, fmt.Sprintf(format, args...), p.peek().pos)
}

func (p *parser) parseOr() (Expr, error) {
	e, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{e}
	for p.accept("|") {
		t, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return Or(terms...), nil
}

func (p *parser) parseAnd() (Expr, error) {
	e, err := p.parseRel()
	if err != nil {
		return nil, err
	}
	terms := []Expr{e}
	for p.accept("&") {
		t, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return And(terms...), nil
}

var relOps = map[string]RelOp{
	"<": OpLt, "<=": OpLe, ">": OpGt, ">=": OpGe, "=": OpEq, "==": OpEq, "!=": OpNe,
}

func (p *parser) parseRel() (Expr, error) {
	lhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokOp {
		return lhs, nil
	}
	op, ok := relOps[t.text]
	if !ok {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return rel{op, lhs, rhs}, nil
}

func (p *parser) parseAdd() (Expr, error) {
	e, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	terms := []Expr{e}
	for {
		if p.accept("+") {
			t, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		} else if p.accept("-") {
			t, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			terms = append(terms, neg{t})
		} else {
			return Add(terms...), nil
		}
	}
}

func (p *parser) parseMul() (Expr, error) {
	e, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		if p.accept("*") {
			t, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			e = Mul(e, t)
		} else if p.accept("/") {
			t, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			e = Div(e, t)
		} else {
			return e, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.accept("-") {
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return neg{e}, nil
	}
	p.accept("+")
	return p.parsePow()
}

func (p *parser) parsePow() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.accept("^") || p.accept("**") {
		// Right associative; the exponent may carry a unary minus.
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return pow{base, exp}, nil
	}
	return base, nil
}

// Function-name aliases accepted by the parser.
var fnAliases = map[string]string{
	"ln": "log", "ceil": "ceiling", "conj": "conjugate",
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		return Number(complex(t.val, 0)), nil
	case tokIdent:
		switch t.text {
		case "pi", "Pi":
			return Pi, nil
		case "E":
			return E, nil
		case "I":
			return I, nil
		case "sum", "Sum":
			return p.parseSum()
		case "cbrt":
			args, err := p.parseArgs(1)
			if err != nil {
				return nil, err
			}
			return Cbrt(args[0]), nil
		}
		name := t.text
		if a, ok := fnAliases[name]; ok {
			name = a
		}
		for fn := fnID(0); fn < numFns; fn++ {
			if fnNames[fn] == name {
				args, err := p.parseArgs(fnArity[fn])
				if err != nil {
					return nil, err
				}
				return cal{fn, args}, nil
			}
		}
		if p.peek().kind == tokOp && p.peek().text == "(" {
			return nil, p.errorf("unknown function %q", t.text)
		}
		return Var(t.text), nil
	case tokOp:
		if t.text == "(" {
			e, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	}
	return nil, p.errorf("unexpected %q", t.text)
}

func (p *parser) parseArgs(n int) ([]Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := make([]Expr, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := p.expect(","); err != nil {
				return nil, err
			}
		}
		a, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parseSum() (Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	body, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	// The index may be written bare, sum(b, k, 0, 5), or as a tuple,
	// sum(b, (k, 0, 5)), which is the form String produces.
	tuple := p.accept("(")
	vt := p.next()
	if vt.kind != tokIdent {
		return nil, p.errorf("sum index must be a symbol, found %q", vt.text)
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	lo, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(","); err != nil {
		return nil, err
	}
	hi, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tuple {
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return sum{body, vt.text, lo, hi}, nil
}
