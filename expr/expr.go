// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expr provides a small symbolic expression kernel for plotting:
// immutable expression trees with printable and LaTeX forms, free-variable
// extraction, substitution, and compilation to stack programs that can be
// evaluated with complex128 arithmetic, real float64 arithmetic, or
// arbitrary-precision big.Float arithmetic.
//
// The kernel is deliberately not a full computer algebra system. It has no
// simplifier and no calculus; it exists so that a plotting series can carry
// an expression, print it as a label, discover its free symbols, and
// evaluate it pointwise over a numeric grid.
package expr

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Expr is an immutable symbolic expression. Expressions are value objects:
// they may be shared freely and are never mutated after construction.
type Expr interface {
	// String returns the printable form, e.g. "cos(u*x)".
	String() string
	// LaTeX returns the LaTeX form, e.g. `\cos\left(u x\right)`.
	LaTeX() string

	isExpr()
}

// RelOp identifies a relational operator.
type RelOp int

const (
	OpLt RelOp = iota
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

var relNames = [...]string{"<", "<=", ">", ">=", "=", "!="}
var relLaTeX = [...]string{"<", `\leq`, ">", `\geq`, "=", `\neq`}

func (op RelOp) String() string { return relNames[op] }

// LogicOp identifies a boolean connective.
type LogicOp int

const (
	OpAnd LogicOp = iota
	OpOr
)

// Node kinds. All are unexported; construct them with the functions below.
type (
	num   struct{ v complex128 }
	konst struct {
		name, tex string
		v         complex128
	}
	sym struct{ name string }
	add struct{ terms []Expr }
	mul struct{ factors []Expr }
	div struct{ a, b Expr }
	neg struct{ x Expr }
	pow struct{ b, e Expr }
	cal struct {
		fn   fnID
		args []Expr
	}
	sum struct {
		body   Expr
		v      string
		lo, hi Expr
	}
	rel struct {
		op   RelOp
		a, b Expr
	}
	logic struct {
		op LogicOp
		xs []Expr
	}
	opaque struct {
		arity int
		fn    func(args []complex128) complex128
	}
)

func (num) isExpr()    {}
func (konst) isExpr()  {}
func (sym) isExpr()    {}
func (add) isExpr()    {}
func (mul) isExpr()    {}
func (div) isExpr()    {}
func (neg) isExpr()    {}
func (pow) isExpr()    {}
func (cal) isExpr()    {}
func (sum) isExpr()    {}
func (rel) isExpr()    {}
func (logic) isExpr()  {}
func (opaque) isExpr() {}

// Number returns a numeric literal. The argument may be complex; untyped
// constants convert implicitly, so Number(2) and Number(2+3i) both work.
func Number(v complex128) Expr { return num{v} }

// Var returns the symbol with the given name.
func Var(name string) Expr { return sym{name} }

// Named constants.
var (
	Pi = Expr(konst{"pi", `\pi`, complex(math.Pi, 0)})
	E  = Expr(konst{"E", "e", complex(math.E, 0)})
	I  = Expr(konst{"I", "i", complex(0, 1)})
)

// Add returns the sum of terms. Add() is 0 and Add(x) is x.
func Add(terms ...Expr) Expr {
	switch len(terms) {
	case 0:
		return Number(0)
	case 1:
		return terms[0]
	}
	return add{terms}
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return add{[]Expr{a, neg{b}}} }

// Mul returns the product of factors. Mul() is 1 and Mul(x) is x.
func Mul(factors ...Expr) Expr {
	switch len(factors) {
	case 0:
		return Number(1)
	case 1:
		return factors[0]
	}
	return mul{factors}
}

// Div returns a / b.
func Div(a, b Expr) Expr { return div{a, b} }

// Neg returns -x.
func Neg(x Expr) Expr { return neg{x} }

// Pow returns b raised to e.
func Pow(b, e Expr) Expr { return pow{b, e} }

// SumOf returns the finite sum of body for v ranging over lo..hi
// inclusive. The bounds may themselves contain free symbols; they are
// evaluated (and rounded to integers) at evaluation time.
func SumOf(body Expr, v string, lo, hi Expr) Expr { return sum{body, v, lo, hi} }

// Relations and boolean connectives, for implicit plots.
func Lt(a, b Expr) Expr { return rel{OpLt, a, b} }
func Le(a, b Expr) Expr { return rel{OpLe, a, b} }
func Gt(a, b Expr) Expr { return rel{OpGt, a, b} }
func Ge(a, b Expr) Expr { return rel{OpGe, a, b} }
func Eq(a, b Expr) Expr { return rel{OpEq, a, b} }
func Ne(a, b Expr) Expr { return rel{OpNe, a, b} }

func And(xs ...Expr) Expr {
	if len(xs) == 1 {
		return xs[0]
	}
	return logic{OpAnd, xs}
}

func Or(xs ...Expr) Expr {
	if len(xs) == 1 {
		return xs[0]
	}
	return logic{OpOr, xs}
}

// Func1 wraps a plain numeric function of one argument as an expression.
// Wrapped functions have no printable form: String returns "", so series
// labels derived from them are empty. They are accepted only at the top
// level of an expression.
func Func1(fn func(complex128) complex128) Expr {
	return opaque{1, func(args []complex128) complex128 { return fn(args[0]) }}
}

// Func2 wraps a plain numeric function of two arguments.
func Func2(fn func(a, b complex128) complex128) Expr {
	return opaque{2, func(args []complex128) complex128 { return fn(args[0], args[1]) }}
}

// Func3 wraps a plain numeric function of three arguments.
func Func3(fn func(a, b, c complex128) complex128) Expr {
	return opaque{3, func(args []complex128) complex128 { return fn(args[0], args[1], args[2]) }}
}

// fnID enumerates the builtin functions.
type fnID int

const (
	fnSin fnID = iota
	fnCos
	fnTan
	fnAsin
	fnAcos
	fnAtan
	fnAtan2
	fnSinh
	fnCosh
	fnTanh
	fnExp
	fnLog
	fnSqrt
	fnAbs
	fnRe
	fnIm
	fnArg
	fnConj
	fnFloor
	fnCeil
	fnFrac
	fnSign
	numFns
)

var fnNames = [numFns]string{
	"sin", "cos", "tan", "asin", "acos", "atan", "atan2",
	"sinh", "cosh", "tanh", "exp", "log", "sqrt", "abs",
	"re", "im", "arg", "conjugate", "floor", "ceiling", "frac", "sign",
}

var fnArity = [numFns]int{
	1, 1, 1, 1, 1, 1, 2,
	1, 1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, 1, 1, 1,
}

func call1(fn fnID, x Expr) Expr { return cal{fn, []Expr{x}} }

// Builtin function constructors.
func Sin(x Expr) Expr      { return call1(fnSin, x) }
func Cos(x Expr) Expr      { return call1(fnCos, x) }
func Tan(x Expr) Expr      { return call1(fnTan, x) }
func Asin(x Expr) Expr     { return call1(fnAsin, x) }
func Acos(x Expr) Expr     { return call1(fnAcos, x) }
func Atan(x Expr) Expr     { return call1(fnAtan, x) }
func Atan2(y, x Expr) Expr { return cal{fnAtan2, []Expr{y, x}} }
func Sinh(x Expr) Expr     { return call1(fnSinh, x) }
func Cosh(x Expr) Expr     { return call1(fnCosh, x) }
func Tanh(x Expr) Expr     { return call1(fnTanh, x) }
func Exp(x Expr) Expr      { return call1(fnExp, x) }
func Log(x Expr) Expr      { return call1(fnLog, x) }
func Sqrt(x Expr) Expr     { return call1(fnSqrt, x) }
func Abs(x Expr) Expr      { return call1(fnAbs, x) }
func Re(x Expr) Expr       { return call1(fnRe, x) }
func Im(x Expr) Expr       { return call1(fnIm, x) }
func Arg(x Expr) Expr      { return call1(fnArg, x) }
func Conj(x Expr) Expr     { return call1(fnConj, x) }
func Floor(x Expr) Expr    { return call1(fnFloor, x) }
func Ceil(x Expr) Expr     { return call1(fnCeil, x) }
func Frac(x Expr) Expr     { return call1(fnFrac, x) }
func Sign(x Expr) Expr     { return call1(fnSign, x) }
func Cbrt(x Expr) Expr     { return pow{x, div{Number(1), Number(3)}} }

// IsBoolean reports whether e is a relation or a boolean combination of
// relations.
func IsBoolean(e Expr) bool {
	switch e.(type) {
	case rel, logic:
		return true
	}
	return false
}

// Relation deconstructs a relational comparison. ok is false if e is not
// a single relation (boolean combinations do not count).
func Relation(e Expr) (op RelOp, lhs, rhs Expr, ok bool) {
	r, ok := e.(rel)
	if !ok {
		return 0, nil, nil, false
	}
	return r.op, r.a, r.b, true
}

// Numbers wraps float64 values as expressions. It is a convenience for
// building list series from plain data.
func Numbers(vs ...float64) []Expr {
	es := make([]Expr, len(vs))
	for i, v := range vs {
		es[i] = Number(complex(v, 0))
	}
	return es
}

// IsOpaque reports whether e contains a wrapped plain numeric function
// anywhere in its tree.
func IsOpaque(e Expr) bool {
	found := false
	walk(e, func(e Expr) {
		if _, ok := e.(opaque); ok {
			found = true
		}
	})
	return found
}

// walk calls f for e and every subexpression of e.
func walk(e Expr, f func(Expr)) {
	f(e)
	switch e := e.(type) {
	case add:
		for _, t := range e.terms {
			walk(t, f)
		}
	case mul:
		for _, t := range e.factors {
			walk(t, f)
		}
	case div:
		walk(e.a, f)
		walk(e.b, f)
	case neg:
		walk(e.x, f)
	case pow:
		walk(e.b, f)
		walk(e.e, f)
	case cal:
		for _, a := range e.args {
			walk(a, f)
		}
	case sum:
		walk(e.body, f)
		walk(e.lo, f)
		walk(e.hi, f)
	case rel:
		walk(e.a, f)
		walk(e.b, f)
	case logic:
		for _, x := range e.xs {
			walk(x, f)
		}
	}
}

// FreeVars returns the sorted free symbols of e. A Sum binds its index
// variable within its body; the bounds are evaluated in the enclosing
// scope.
func FreeVars(e Expr) []string {
	set := map[string]bool{}
	freeVars(e, set, map[string]bool{})
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func freeVars(e Expr, set, bound map[string]bool) {
	switch e := e.(type) {
	case sym:
		if !bound[e.name] {
			set[e.name] = true
		}
	case add:
		for _, t := range e.terms {
			freeVars(t, set, bound)
		}
	case mul:
		for _, t := range e.factors {
			freeVars(t, set, bound)
		}
	case div:
		freeVars(e.a, set, bound)
		freeVars(e.b, set, bound)
	case neg:
		freeVars(e.x, set, bound)
	case pow:
		freeVars(e.b, set, bound)
		freeVars(e.e, set, bound)
	case cal:
		for _, a := range e.args {
			freeVars(a, set, bound)
		}
	case sum:
		freeVars(e.lo, set, bound)
		freeVars(e.hi, set, bound)
		if bound[e.v] {
			freeVars(e.body, set, bound)
		} else {
			bound[e.v] = true
			freeVars(e.body, set, bound)
			delete(bound, e.v)
		}
	case rel:
		freeVars(e.a, set, bound)
		freeVars(e.b, set, bound)
	case logic:
		for _, x := range e.xs {
			freeVars(x, set, bound)
		}
	}
}

// Subs returns e with every free occurrence of the named symbols replaced
// by the corresponding expression.
func Subs(e Expr, m map[string]Expr) Expr {
	if len(m) == 0 {
		return e
	}
	switch e := e.(type) {
	case sym:
		if r, ok := m[e.name]; ok {
			return r
		}
		return e
	case add:
		return add{subsAll(e.terms, m)}
	case mul:
		return mul{subsAll(e.factors, m)}
	case div:
		return div{Subs(e.a, m), Subs(e.b, m)}
	case neg:
		return neg{Subs(e.x, m)}
	case pow:
		return pow{Subs(e.b, m), Subs(e.e, m)}
	case cal:
		return cal{e.fn, subsAll(e.args, m)}
	case sum:
		lo, hi := Subs(e.lo, m), Subs(e.hi, m)
		if _, shadowed := m[e.v]; shadowed {
			inner := make(map[string]Expr, len(m))
			for k, v := range m {
				if k != e.v {
					inner[k] = v
				}
			}
			return sum{Subs(e.body, inner), e.v, lo, hi}
		}
		return sum{Subs(e.body, m), e.v, lo, hi}
	case rel:
		return rel{e.op, Subs(e.a, m), Subs(e.b, m)}
	case logic:
		return logic{e.op, subsAll(e.xs, m)}
	}
	return e
}

func subsAll(xs []Expr, m map[string]Expr) []Expr {
	out := make([]Expr, len(xs))
	for i, x := range xs {
		out[i] = Subs(x, m)
	}
	return out
}

// SubsNumbers substitutes numeric values for symbols.
func SubsNumbers(e Expr, m map[string]float64) Expr {
	if len(m) == 0 {
		return e
	}
	em := make(map[string]Expr, len(m))
	for k, v := range m {
		em[k] = Number(complex(v, 0))
	}
	return Subs(e, em)
}

// Constant evaluates e if it has no free symbols and no wrapped plain
// functions. ok is false otherwise.
func Constant(e Expr) (v complex128, ok bool) {
	if IsOpaque(e) || len(FreeVars(e)) > 0 {
		return 0, false
	}
	p, err := Compile(e, nil)
	if err != nil {
		return 0, false
	}
	return p.Eval(), true
}

// Printing. Precedence levels: relations bind loosest, then sums, products,
// unary minus, powers, atoms.
const (
	precRel = iota
	precAdd
	precMul
	precNeg
	precPow
	precAtom
)

func (e num) String() string   { return formatComplex(e.v) }
func (e konst) String() string { return e.name }
func (e sym) String() string   { return e.name }

func (e add) String() string {
	var b strings.Builder
	for i, t := range e.terms {
		s, negated := stripNeg(t)
		if i == 0 {
			if negated {
				b.WriteString("-")
			}
		} else if negated {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(parenIf(s, precedence(s) < precAdd || isAdd(s)))
	}
	return b.String()
}

func (e mul) String() string {
	var b strings.Builder
	for i, f := range e.factors {
		if i > 0 {
			b.WriteString("*")
		}
		b.WriteString(parenIf(f, precedence(f) < precMul))
	}
	return b.String()
}

func (e div) String() string {
	return parenIf(e.a, precedence(e.a) < precMul) + "/" + parenIf(e.b, precedence(e.b) <= precMul)
}

func (e neg) String() string {
	return "-" + parenIf(e.x, precedence(e.x) < precNeg)
}

func (e pow) String() string {
	return parenIf(e.b, precedence(e.b) <= precPow) + "^" + parenIf(e.e, precedence(e.e) < precPow)
}

func (e cal) String() string {
	args := make([]string, len(e.args))
	for i, a := range e.args {
		args[i] = a.String()
	}
	return fnNames[e.fn] + "(" + strings.Join(args, ", ") + ")"
}

func (e sum) String() string {
	return fmt.Sprintf("Sum(%s, (%s, %s, %s))", e.body, e.v, e.lo, e.hi)
}

func (e rel) String() string {
	return fmt.Sprintf("%s %s %s", e.a, relNames[e.op], e.b)
}

func (e logic) String() string {
	sep := " & "
	if e.op == OpOr {
		sep = " | "
	}
	parts := make([]string, len(e.xs))
	for i, x := range e.xs {
		parts[i] = parenIf(x, precedence(x) <= precRel)
	}
	return strings.Join(parts, sep)
}

func (e opaque) String() string { return "" }

func isAdd(e Expr) bool {
	_, ok := e.(add)
	return ok
}

// stripNeg peels a leading negation off e for "a - b" style printing.
func stripNeg(e Expr) (Expr, bool) {
	switch e := e.(type) {
	case neg:
		return e.x, true
	case num:
		if imag(e.v) == 0 && real(e.v) < 0 {
			return num{complex(-real(e.v), 0)}, true
		}
	case mul:
		if n, ok := e.factors[0].(num); ok && imag(n.v) == 0 && real(n.v) < 0 {
			f := append([]Expr{num{complex(-real(n.v), 0)}}, e.factors[1:]...)
			if real(n.v) == -1 {
				return Mul(f[1:]...), true
			}
			return mul{f}, true
		}
	}
	return e, false
}

func precedence(e Expr) int {
	switch e := e.(type) {
	case rel, logic:
		return precRel
	case add:
		return precAdd
	case mul, div:
		return precMul
	case neg:
		return precNeg
	case pow:
		return precPow
	case num:
		if imag(e.v) != 0 {
			return precAdd // prints as re + im*I
		}
		if real(e.v) < 0 {
			return precNeg
		}
	}
	return precAtom
}

func parenIf(e Expr, need bool) string {
	if need {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// formatComplex renders a numeric literal in mathematical notation:
// "2", "-3.5", "2 + 3*I", "-I".
func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	if im == 0 {
		return formatFloat(re)
	}
	imPart := ""
	switch im {
	case 1:
		imPart = "I"
	case -1:
		imPart = "-I"
	default:
		imPart = formatFloat(im) + "*I"
	}
	if re == 0 {
		return imPart
	}
	if im < 0 {
		return formatFloat(re) + " - " + strings.TrimPrefix(imPart, "-")
	}
	return formatFloat(re) + " + " + imPart
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
