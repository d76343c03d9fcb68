// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"math"
	"math/cmplx"
)

// A Program is an expression compiled against an ordered set of variables.
// It is immutable and safe to evaluate from multiple goroutines.
//
// Programs offer three backends. Eval computes with complex128 arithmetic
// following math/cmplx conventions (IEEE signed zeros select branch-cut
// sides). EvalReal computes with float64 arithmetic following the math
// package (sqrt of a negative is NaN, im of anything is 0). EvalPrec
// computes element-wise with big.Float pairs at a configurable precision;
// its branch-cut convention intentionally differs from Eval's (see
// precise.go).
type Program struct {
	vars   []string
	code   []instr
	consts []complex128
	fns    []opaque
	sums   []sumSpec
	depth  int
}

type instr struct {
	op  opcode
	imm int
}

type sumSpec struct {
	v      string
	lo, hi *Program
	body   *Program
}

type opcode uint8

const (
	opConst opcode = iota // push consts[imm]
	opVar                 // push args[imm]
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opPow
	opPowInt // imm is the exponent
	opCall   // imm is the fnID; pops arity args
	opOpaque // push fns[imm](args...); top level only
	opSum    // push sums[imm] evaluated over args
	opRel    // imm is the RelOp; pops 2, pushes 1/0
	opAnd    // pops 2 booleans
	opOr
)

// Compile compiles e against the given variable order. Every free symbol
// of e must appear in vars; vars may name symbols e does not use. A
// wrapped plain function (Func1...) is only accepted as the entire
// expression, and its arity must equal len(vars).
func Compile(e Expr, vars []string) (*Program, error) {
	p := &Program{vars: vars}
	if o, ok := e.(opaque); ok {
		if o.arity != len(vars) {
			return nil, fmt.Errorf("wrapped function takes %d arguments, have %d variables", o.arity, len(vars))
		}
		p.fns = append(p.fns, o)
		p.code = append(p.code, instr{opOpaque, 0})
		p.depth = 1
		return p, nil
	}
	if err := p.emit(e); err != nil {
		return nil, err
	}
	p.depth = p.measure()
	return p, nil
}

func (p *Program) emit(e Expr) error {
	switch e := e.(type) {
	case num:
		p.pushConst(e.v)
	case konst:
		p.pushConst(e.v)
	case sym:
		i := indexOf(p.vars, e.name)
		if i < 0 {
			return fmt.Errorf("unknown symbol %q (variables are %v)", e.name, p.vars)
		}
		p.code = append(p.code, instr{opVar, i})
	case add:
		for i, t := range e.terms {
			if err := p.emit(t); err != nil {
				return err
			}
			if i > 0 {
				p.code = append(p.code, instr{opAdd, 0})
			}
		}
	case mul:
		for i, f := range e.factors {
			if err := p.emit(f); err != nil {
				return err
			}
			if i > 0 {
				p.code = append(p.code, instr{opMul, 0})
			}
		}
	case div:
		if err := p.emit(e.a); err != nil {
			return err
		}
		if err := p.emit(e.b); err != nil {
			return err
		}
		p.code = append(p.code, instr{opDiv, 0})
	case neg:
		if err := p.emit(e.x); err != nil {
			return err
		}
		p.code = append(p.code, instr{opNeg, 0})
	case pow:
		if err := p.emit(e.b); err != nil {
			return err
		}
		// Integral constant exponents multiply out exactly, the way
		// array libraries treat integer powers. Everything else goes
		// through exp(e log b) and gets principal-branch behavior.
		if n, ok := intExponent(e.e); ok {
			p.code = append(p.code, instr{opPowInt, n})
			return nil
		}
		if err := p.emit(e.e); err != nil {
			return err
		}
		p.code = append(p.code, instr{opPow, 0})
	case cal:
		for _, a := range e.args {
			if err := p.emit(a); err != nil {
				return err
			}
		}
		p.code = append(p.code, instr{opCall, int(e.fn)})
	case sum:
		lo, err := Compile(e.lo, p.vars)
		if err != nil {
			return err
		}
		hi, err := Compile(e.hi, p.vars)
		if err != nil {
			return err
		}
		inner := make([]string, len(p.vars), len(p.vars)+1)
		copy(inner, p.vars)
		inner = append(inner, e.v)
		body, err := Compile(e.body, inner)
		if err != nil {
			return err
		}
		p.sums = append(p.sums, sumSpec{e.v, lo, hi, body})
		p.code = append(p.code, instr{opSum, len(p.sums) - 1})
	case rel:
		if err := p.emit(e.a); err != nil {
			return err
		}
		if err := p.emit(e.b); err != nil {
			return err
		}
		p.code = append(p.code, instr{opRel, int(e.op)})
	case logic:
		op := opAnd
		if e.op == OpOr {
			op = opOr
		}
		for i, x := range e.xs {
			if err := p.emit(x); err != nil {
				return err
			}
			if i > 0 {
				p.code = append(p.code, instr{op, 0})
			}
		}
	case opaque:
		return fmt.Errorf("wrapped function must be the entire expression")
	default:
		return fmt.Errorf("cannot compile %T", e)
	}
	return nil
}

func (p *Program) pushConst(v complex128) {
	for i, c := range p.consts {
		if c == v {
			p.code = append(p.code, instr{opConst, i})
			return
		}
	}
	p.consts = append(p.consts, v)
	p.code = append(p.code, instr{opConst, len(p.consts) - 1})
}

func intExponent(e Expr) (int, bool) {
	n, ok := e.(num)
	if !ok || imag(n.v) != 0 {
		return 0, false
	}
	r := real(n.v)
	if r != math.Trunc(r) || math.Abs(r) > 64 {
		return 0, false
	}
	return int(r), true
}

func (p *Program) measure() int {
	depth, max := 0, 0
	for _, in := range p.code {
		switch in.op {
		case opConst, opVar, opOpaque, opSum:
			depth++
		case opNeg, opPowInt:
			// unary
		default:
			if in.op == opCall {
				depth -= fnArity[fnID(in.imm)] - 1
			} else {
				depth--
			}
		}
		if depth > max {
			max = depth
		}
	}
	return max
}

// Vars returns the variable order the program was compiled with.
func (p *Program) Vars() []string { return p.vars }

func indexOf(xs []string, s string) int {
	for i, x := range xs {
		if x == s {
			return i
		}
	}
	return -1
}

// Eval evaluates the program with complex128 arithmetic. len(args) must
// equal the number of compiled variables or Eval panics. Undefined points
// surface as NaN or Inf components, never as panics.
func (p *Program) Eval(args ...complex128) complex128 {
	if len(args) != len(p.vars) {
		panic(fmt.Sprintf("expr: program wants %d arguments, got %d", len(p.vars), len(args)))
	}
	var buf [16]complex128
	st := buf[:0]
	if p.depth > len(buf) {
		st = make([]complex128, 0, p.depth)
	}
	for _, in := range p.code {
		switch in.op {
		case opConst:
			st = append(st, p.consts[in.imm])
		case opVar:
			st = append(st, args[in.imm])
		case opAdd:
			st[len(st)-2] += st[len(st)-1]
			st = st[:len(st)-1]
		case opSub:
			st[len(st)-2] -= st[len(st)-1]
			st = st[:len(st)-1]
		case opMul:
			st[len(st)-2] *= st[len(st)-1]
			st = st[:len(st)-1]
		case opDiv:
			st[len(st)-2] /= st[len(st)-1]
			st = st[:len(st)-1]
		case opNeg:
			st[len(st)-1] = -st[len(st)-1]
		case opPow:
			st[len(st)-2] = cmplx.Pow(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opPowInt:
			st[len(st)-1] = powIntC(st[len(st)-1], in.imm)
		case opCall:
			fn := fnID(in.imm)
			if fnArity[fn] == 2 {
				st[len(st)-2] = callC2(fn, st[len(st)-2], st[len(st)-1])
				st = st[:len(st)-1]
			} else {
				st[len(st)-1] = callC(fn, st[len(st)-1])
			}
		case opOpaque:
			st = append(st, p.fns[in.imm].fn(args))
		case opSum:
			st = append(st, p.sums[in.imm].evalC(args))
		case opRel:
			st[len(st)-2] = boolToC(evalRelC(RelOp(in.imm), st[len(st)-2], st[len(st)-1]))
			st = st[:len(st)-1]
		case opAnd:
			st[len(st)-2] = boolToC(st[len(st)-2] != 0 && st[len(st)-1] != 0)
			st = st[:len(st)-1]
		case opOr:
			st[len(st)-2] = boolToC(st[len(st)-2] != 0 || st[len(st)-1] != 0)
			st = st[:len(st)-1]
		}
	}
	return st[len(st)-1]
}

// EvalReal evaluates the program with float64 arithmetic. Functions follow
// the math package: sqrt and log of negatives are NaN, im(·) is 0, re(·)
// and conjugate(·) are identity.
func (p *Program) EvalReal(args ...float64) float64 {
	if len(args) != len(p.vars) {
		panic(fmt.Sprintf("expr: program wants %d arguments, got %d", len(p.vars), len(args)))
	}
	var buf [16]float64
	st := buf[:0]
	if p.depth > len(buf) {
		st = make([]float64, 0, p.depth)
	}
	for _, in := range p.code {
		switch in.op {
		case opConst:
			st = append(st, real(p.consts[in.imm]))
		case opVar:
			st = append(st, args[in.imm])
		case opAdd:
			st[len(st)-2] += st[len(st)-1]
			st = st[:len(st)-1]
		case opSub:
			st[len(st)-2] -= st[len(st)-1]
			st = st[:len(st)-1]
		case opMul:
			st[len(st)-2] *= st[len(st)-1]
			st = st[:len(st)-1]
		case opDiv:
			st[len(st)-2] /= st[len(st)-1]
			st = st[:len(st)-1]
		case opNeg:
			st[len(st)-1] = -st[len(st)-1]
		case opPow:
			st[len(st)-2] = math.Pow(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opPowInt:
			st[len(st)-1] = powIntF(st[len(st)-1], in.imm)
		case opCall:
			fn := fnID(in.imm)
			if fnArity[fn] == 2 {
				st[len(st)-2] = callF2(fn, st[len(st)-2], st[len(st)-1])
				st = st[:len(st)-1]
			} else {
				st[len(st)-1] = callF(fn, st[len(st)-1])
			}
		case opOpaque:
			// A wrapped function sees complex arguments; in the real
			// backend a result with a nonzero imaginary part is
			// undefined.
			cargs := make([]complex128, len(args))
			for i, a := range args {
				cargs[i] = complex(a, 0)
			}
			v := p.fns[in.imm].fn(cargs)
			if imag(v) != 0 {
				st = append(st, math.NaN())
			} else {
				st = append(st, real(v))
			}
		case opSum:
			st = append(st, p.sums[in.imm].evalF(args))
		case opRel:
			st[len(st)-2] = boolToF(evalRelF(RelOp(in.imm), st[len(st)-2], st[len(st)-1]))
			st = st[:len(st)-1]
		case opAnd:
			st[len(st)-2] = boolToF(st[len(st)-2] != 0 && st[len(st)-1] != 0)
			st = st[:len(st)-1]
		case opOr:
			st[len(st)-2] = boolToF(st[len(st)-2] != 0 || st[len(st)-1] != 0)
			st = st[:len(st)-1]
		}
	}
	return st[len(st)-1]
}

func (s *sumSpec) evalC(args []complex128) complex128 {
	k0 := int64(math.Round(real(s.lo.Eval(args...))))
	k1 := int64(math.Round(real(s.hi.Eval(args...))))
	buf := make([]complex128, len(args)+1)
	copy(buf, args)
	var acc complex128
	for k := k0; k <= k1; k++ {
		buf[len(args)] = complex(float64(k), 0)
		acc += s.body.Eval(buf...)
	}
	return acc
}

func (s *sumSpec) evalF(args []float64) float64 {
	k0 := int64(math.Round(s.lo.EvalReal(args...)))
	k1 := int64(math.Round(s.hi.EvalReal(args...)))
	buf := make([]float64, len(args)+1)
	copy(buf, args)
	var acc float64
	for k := k0; k <= k1; k++ {
		buf[len(args)] = float64(k)
		acc += s.body.EvalReal(buf...)
	}
	return acc
}

func evalRelC(op RelOp, a, b complex128) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	}
	// Ordering compares real parts; imaginary parts have no order.
	return evalRelF(op, real(a), real(b))
}

func evalRelF(op RelOp, a, b float64) bool {
	switch op {
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	}
	return false
}

func boolToC(b bool) complex128 {
	if b {
		return 1
	}
	return 0
}

func boolToF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func powIntC(z complex128, n int) complex128 {
	if n == 0 {
		return 1
	}
	m := n
	if m < 0 {
		m = -m
	}
	acc := complex128(1)
	base := z
	for m > 0 {
		if m&1 != 0 {
			acc *= base
		}
		base *= base
		m >>= 1
	}
	if n < 0 {
		return 1 / acc
	}
	return acc
}

func powIntF(x float64, n int) float64 {
	if n == 0 {
		return 1
	}
	m := n
	if m < 0 {
		m = -m
	}
	acc := 1.0
	base := x
	for m > 0 {
		if m&1 != 0 {
			acc *= base
		}
		base *= base
		m >>= 1
	}
	if n < 0 {
		return 1 / acc
	}
	return acc
}

func callC(fn fnID, z complex128) complex128 {
	switch fn {
	case fnSin:
		return cmplx.Sin(z)
	case fnCos:
		return cmplx.Cos(z)
	case fnTan:
		return cmplx.Tan(z)
	case fnAsin:
		return cmplx.Asin(z)
	case fnAcos:
		return cmplx.Acos(z)
	case fnAtan:
		return cmplx.Atan(z)
	case fnSinh:
		return cmplx.Sinh(z)
	case fnCosh:
		return cmplx.Cosh(z)
	case fnTanh:
		return cmplx.Tanh(z)
	case fnExp:
		return cmplx.Exp(z)
	case fnLog:
		return cmplx.Log(z)
	case fnSqrt:
		return cmplx.Sqrt(z)
	case fnAbs:
		return complex(cmplx.Abs(z), 0)
	case fnRe:
		return complex(real(z), 0)
	case fnIm:
		return complex(imag(z), 0)
	case fnArg:
		return complex(cmplx.Phase(z), 0)
	case fnConj:
		return cmplx.Conj(z)
	case fnFloor:
		return complex(math.Floor(real(z)), math.Floor(imag(z)))
	case fnCeil:
		return complex(math.Ceil(real(z)), math.Ceil(imag(z)))
	case fnFrac:
		return complex(real(z)-math.Floor(real(z)), imag(z)-math.Floor(imag(z)))
	case fnSign:
		if z == 0 {
			return 0
		}
		return z / complex(cmplx.Abs(z), 0)
	}
	panic("expr: bad function")
}

func callC2(fn fnID, a, b complex128) complex128 {
	if fn != fnAtan2 {
		panic("expr: bad function")
	}
	if imag(a) == 0 && imag(b) == 0 {
		return complex(math.Atan2(real(a), real(b)), 0)
	}
	// atan2 extended to complex operands.
	r := cmplx.Sqrt(a*a + b*b)
	return -1i * cmplx.Log((b+1i*a)/r)
}

func callF(fn fnID, x float64) float64 {
	switch fn {
	case fnSin:
		return math.Sin(x)
	case fnCos:
		return math.Cos(x)
	case fnTan:
		return math.Tan(x)
	case fnAsin:
		return math.Asin(x)
	case fnAcos:
		return math.Acos(x)
	case fnAtan:
		return math.Atan(x)
	case fnSinh:
		return math.Sinh(x)
	case fnCosh:
		return math.Cosh(x)
	case fnTanh:
		return math.Tanh(x)
	case fnExp:
		return math.Exp(x)
	case fnLog:
		return math.Log(x)
	case fnSqrt:
		return math.Sqrt(x)
	case fnAbs:
		return math.Abs(x)
	case fnRe, fnConj:
		return x
	case fnIm:
		return 0
	case fnArg:
		return math.Atan2(0, x)
	case fnFloor:
		return math.Floor(x)
	case fnCeil:
		return math.Ceil(x)
	case fnFrac:
		return x - math.Floor(x)
	case fnSign:
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return 0
	}
	panic("expr: bad function")
}

func callF2(fn fnID, a, b float64) float64 {
	if fn != fnAtan2 {
		panic("expr: bad function")
	}
	return math.Atan2(a, b)
}
