// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"math"
	"math/big"
)

// DefaultPrec is the precision, in mantissa bits, used by EvalPrec when the
// caller passes 0.
const DefaultPrec = 128

// bigC is a complex number as a pair of big.Floats.
type bigC struct {
	re, im *big.Float
}

// EvalPrec evaluates the program element-wise with arbitrary-precision
// arithmetic at the given mantissa precision (0 means DefaultPrec) and
// rounds the result to complex128.
//
// Branch cuts: unlike Eval, EvalPrec ignores the sign of a zero imaginary
// part. The argument of a negative real is always +pi, so values exactly on
// the negative real axis take the counterclockwise side of sqrt/log/pow
// cuts. Eval, following math/cmplx, lets a negative zero select the other
// side. Both behaviors are deliberate and must not be reconciled; plots of
// expressions like im(sqrt(-z)) legitimately differ between backends.
//
// Evaluation failures at the point (0/0, bad domain) are reported as an
// error rather than a panic; callers are expected to record the point as
// undefined and continue.
func (p *Program) EvalPrec(prec uint, args ...complex128) (v complex128, err error) {
	if len(args) != len(p.vars) {
		panic(fmt.Sprintf("expr: program wants %d arguments, got %d", len(p.vars), len(args)))
	}
	if prec == 0 {
		prec = DefaultPrec
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(big.ErrNaN); ok {
				err = fmt.Errorf("precise evaluation: %s", e.Error())
				return
			}
			panic(r)
		}
	}()
	pc := precCtx{prec}
	st := make([]bigC, 0, p.depth)
	for _, in := range p.code {
		switch in.op {
		case opConst:
			st = append(st, pc.fromComplex(p.consts[in.imm]))
		case opVar:
			st = append(st, pc.fromComplex(args[in.imm]))
		case opAdd:
			st[len(st)-2] = pc.add(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opSub:
			st[len(st)-2] = pc.sub(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opMul:
			st[len(st)-2] = pc.mul(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opDiv:
			st[len(st)-2] = pc.div(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opNeg:
			st[len(st)-1] = pc.neg(st[len(st)-1])
		case opPow:
			st[len(st)-2] = pc.pow(st[len(st)-2], st[len(st)-1])
			st = st[:len(st)-1]
		case opPowInt:
			st[len(st)-1] = pc.powInt(st[len(st)-1], in.imm)
		case opCall:
			fn := fnID(in.imm)
			if fnArity[fn] == 2 {
				st[len(st)-2] = pc.call2(fn, st[len(st)-2], st[len(st)-1])
				st = st[:len(st)-1]
			} else {
				st[len(st)-1] = pc.call(fn, st[len(st)-1])
			}
		case opOpaque:
			st = append(st, pc.fromComplex(p.fns[in.imm].fn(args)))
		case opSum:
			s := p.sums[in.imm]
			k0 := int64(math.Round(real(s.lo.Eval(args...))))
			k1 := int64(math.Round(real(s.hi.Eval(args...))))
			buf := make([]complex128, len(args)+1)
			copy(buf, args)
			acc := pc.fromComplex(0)
			for k := k0; k <= k1; k++ {
				buf[len(args)] = complex(float64(k), 0)
				t, terr := s.body.EvalPrec(pc.prec, buf...)
				if terr != nil {
					panic(big.ErrNaN{})
				}
				acc = pc.add(acc, pc.fromComplex(t))
			}
			st = append(st, acc)
		case opRel:
			st[len(st)-2] = pc.fromComplex(boolToC(pc.evalRel(RelOp(in.imm), st[len(st)-2], st[len(st)-1])))
			st = st[:len(st)-1]
		case opAnd:
			st[len(st)-2] = pc.fromComplex(boolToC(!pc.isZero(st[len(st)-2]) && !pc.isZero(st[len(st)-1])))
			st = st[:len(st)-1]
		case opOr:
			st[len(st)-2] = pc.fromComplex(boolToC(!pc.isZero(st[len(st)-2]) || !pc.isZero(st[len(st)-1])))
			st = st[:len(st)-1]
		}
	}
	return pc.toComplex(st[len(st)-1]), nil
}

type precCtx struct {
	prec uint
}

func (pc precCtx) newF() *big.Float { return new(big.Float).SetPrec(pc.prec) }

func (pc precCtx) fromComplex(v complex128) bigC {
	re := pc.newF()
	im := pc.newF()
	if !math.IsNaN(real(v)) && !math.IsNaN(imag(v)) {
		re.SetFloat64(real(v))
		im.SetFloat64(imag(v))
	} else {
		panic(big.ErrNaN{})
	}
	return bigC{re, im}
}

func (pc precCtx) toComplex(z bigC) complex128 {
	re, _ := z.re.Float64()
	im, _ := z.im.Float64()
	return complex(re, im)
}

func (pc precCtx) isZero(z bigC) bool { return z.re.Sign() == 0 && z.im.Sign() == 0 }

func (pc precCtx) add(a, b bigC) bigC {
	return bigC{pc.newF().Add(a.re, b.re), pc.newF().Add(a.im, b.im)}
}

func (pc precCtx) sub(a, b bigC) bigC {
	return bigC{pc.newF().Sub(a.re, b.re), pc.newF().Sub(a.im, b.im)}
}

func (pc precCtx) mul(a, b bigC) bigC {
	re := pc.newF().Mul(a.re, b.re)
	re.Sub(re, pc.newF().Mul(a.im, b.im))
	im := pc.newF().Mul(a.re, b.im)
	im.Add(im, pc.newF().Mul(a.im, b.re))
	return bigC{re, im}
}

func (pc precCtx) div(a, b bigC) bigC {
	d := pc.newF().Mul(b.re, b.re)
	d.Add(d, pc.newF().Mul(b.im, b.im))
	re := pc.newF().Mul(a.re, b.re)
	re.Add(re, pc.newF().Mul(a.im, b.im))
	im := pc.newF().Mul(a.im, b.re)
	im.Sub(im, pc.newF().Mul(a.re, b.im))
	return bigC{re.Quo(re, d), im.Quo(im, d)}
}

func (pc precCtx) neg(z bigC) bigC {
	return bigC{pc.newF().Neg(z.re), pc.newF().Neg(z.im)}
}

func (pc precCtx) powInt(z bigC, n int) bigC {
	if n == 0 {
		return pc.fromComplex(1)
	}
	m := n
	if m < 0 {
		m = -m
	}
	acc := pc.fromComplex(1)
	base := z
	for m > 0 {
		if m&1 != 0 {
			acc = pc.mul(acc, base)
		}
		base = pc.mul(base, base)
		m >>= 1
	}
	if n < 0 {
		return pc.div(pc.fromComplex(1), acc)
	}
	return acc
}

// arg returns the argument of z in (-pi, pi]. The sign of a zero imaginary
// part is ignored: arg of any negative real is +pi. This is the precise
// backend's branch-cut convention.
func (pc precCtx) arg(z bigC) *big.Float {
	if z.im.Sign() == 0 {
		if z.re.Sign() >= 0 {
			return pc.newF()
		}
		return bigPi(pc.prec)
	}
	return atan2Big(z.im, z.re, pc.prec)
}

func (pc precCtx) abs(z bigC) *big.Float {
	if z.im.Sign() == 0 {
		return pc.newF().Abs(z.re)
	}
	if z.re.Sign() == 0 {
		return pc.newF().Abs(z.im)
	}
	h := pc.newF().Mul(z.re, z.re)
	h.Add(h, pc.newF().Mul(z.im, z.im))
	return sqrtBig(h, pc.prec)
}

func (pc precCtx) exp(z bigC) bigC {
	er := expBig(z.re, pc.prec)
	if z.im.Sign() == 0 {
		return bigC{er, pc.newF()}
	}
	c := cosBig(z.im, pc.prec)
	s := sinBig(z.im, pc.prec)
	return bigC{pc.newF().Mul(er, c), pc.newF().Mul(er, s)}
}

func (pc precCtx) log(z bigC) bigC {
	return bigC{logBig(pc.abs(z), pc.prec), pc.arg(z)}
}

func (pc precCtx) sqrt(z bigC) bigC {
	if z.im.Sign() == 0 {
		if z.re.Sign() >= 0 {
			return bigC{sqrtBig(pc.newF().Set(z.re), pc.prec), pc.newF()}
		}
		// Negative real axis: always the +i branch.
		return bigC{pc.newF(), sqrtBig(pc.newF().Neg(z.re), pc.prec)}
	}
	r := sqrtBig(pc.abs(z), pc.prec)
	half := pc.newF().Quo(pc.arg(z), big.NewFloat(2))
	return bigC{pc.newF().Mul(r, cosBig(half, pc.prec)), pc.newF().Mul(r, sinBig(half, pc.prec))}
}

func (pc precCtx) pow(b, e bigC) bigC {
	if pc.isZero(b) {
		if e.im.Sign() == 0 && e.re.Sign() == 0 {
			return pc.fromComplex(1)
		}
		if e.re.Sign() > 0 {
			return bigC{pc.newF(), pc.newF()}
		}
		return bigC{pc.newF().SetInf(false), pc.newF()}
	}
	return pc.exp(pc.mul(e, pc.log(b)))
}

func (pc precCtx) sin(z bigC) bigC {
	if z.im.Sign() == 0 {
		return bigC{sinBig(z.re, pc.prec), pc.newF()}
	}
	sh, ch := pc.sinhCoshReal(z.im)
	return bigC{
		pc.newF().Mul(sinBig(z.re, pc.prec), ch),
		pc.newF().Mul(cosBig(z.re, pc.prec), sh),
	}
}

func (pc precCtx) cos(z bigC) bigC {
	if z.im.Sign() == 0 {
		return bigC{cosBig(z.re, pc.prec), pc.newF()}
	}
	sh, ch := pc.sinhCoshReal(z.im)
	return bigC{
		pc.newF().Mul(cosBig(z.re, pc.prec), ch),
		pc.newF().Neg(pc.newF().Mul(sinBig(z.re, pc.prec), sh)),
	}
}

// sinhCoshReal returns sinh(x), cosh(x) for a real x.
func (pc precCtx) sinhCoshReal(x *big.Float) (sh, ch *big.Float) {
	ex := expBig(x, pc.prec)
	emx := expBig(pc.newF().Neg(x), pc.prec)
	two := big.NewFloat(2)
	sh = pc.newF().Sub(ex, emx)
	sh.Quo(sh, two)
	ch = pc.newF().Add(ex, emx)
	ch.Quo(ch, two)
	return sh, ch
}

func (pc precCtx) call(fn fnID, z bigC) bigC {
	switch fn {
	case fnSin:
		return pc.sin(z)
	case fnCos:
		return pc.cos(z)
	case fnTan:
		return pc.div(pc.sin(z), pc.cos(z))
	case fnAsin:
		return pc.asin(z)
	case fnAcos:
		// acos(z) = pi/2 - asin(z)
		as := pc.asin(z)
		halfPi := pc.newF().Quo(bigPi(pc.prec), big.NewFloat(2))
		return bigC{pc.newF().Sub(halfPi, as.re), pc.newF().Neg(as.im)}
	case fnAtan:
		return pc.atan(z)
	case fnSinh:
		// sinh(z) = -i sin(iz)
		s := pc.sin(bigC{pc.newF().Neg(z.im), pc.newF().Set(z.re)})
		return bigC{s.im, pc.newF().Neg(s.re)}
	case fnCosh:
		// cosh(z) = cos(iz)
		return pc.cos(bigC{pc.newF().Neg(z.im), pc.newF().Set(z.re)})
	case fnTanh:
		s := pc.call(fnSinh, z)
		c := pc.call(fnCosh, z)
		return pc.div(s, c)
	case fnExp:
		return pc.exp(z)
	case fnLog:
		return pc.log(z)
	case fnSqrt:
		return pc.sqrt(z)
	case fnAbs:
		return bigC{pc.abs(z), pc.newF()}
	case fnRe:
		return bigC{z.re, pc.newF()}
	case fnIm:
		return bigC{z.im, pc.newF()}
	case fnArg:
		return bigC{pc.arg(z), pc.newF()}
	case fnConj:
		return bigC{z.re, pc.newF().Neg(z.im)}
	case fnFloor:
		return bigC{floorBig(z.re, pc.prec), floorBig(z.im, pc.prec)}
	case fnCeil:
		return bigC{ceilBig(z.re, pc.prec), ceilBig(z.im, pc.prec)}
	case fnFrac:
		return bigC{
			pc.newF().Sub(z.re, floorBig(z.re, pc.prec)),
			pc.newF().Sub(z.im, floorBig(z.im, pc.prec)),
		}
	case fnSign:
		if pc.isZero(z) {
			return z
		}
		a := pc.abs(z)
		return bigC{pc.newF().Quo(z.re, a), pc.newF().Quo(z.im, a)}
	}
	panic("expr: bad function")
}

func (pc precCtx) call2(fn fnID, a, b bigC) bigC {
	if fn != fnAtan2 {
		panic("expr: bad function")
	}
	if a.im.Sign() == 0 && b.im.Sign() == 0 {
		if a.re.Sign() == 0 {
			// Zero-sign convention as in arg: atan2(0, x) is 0 for
			// x >= 0 and +pi for x < 0.
			return bigC{pc.arg(bigC{b.re, a.re}), pc.newF()}
		}
		return bigC{atan2Big(a.re, b.re, pc.prec), pc.newF()}
	}
	// atan2 extended to complex operands: -i log((b+ia)/sqrt(a^2+b^2)).
	r := pc.sqrt(pc.add(pc.mul(a, a), pc.mul(b, b)))
	ia := bigC{pc.newF().Neg(a.im), pc.newF().Set(a.re)}
	l := pc.log(pc.div(pc.add(b, ia), r))
	return bigC{l.im, pc.newF().Neg(l.re)}
}

func (pc precCtx) asin(z bigC) bigC {
	// asin(z) = -i log(iz + sqrt(1-z^2))
	iz := bigC{pc.newF().Neg(z.im), pc.newF().Set(z.re)}
	s := pc.sqrt(pc.sub(pc.fromComplex(1), pc.mul(z, z)))
	l := pc.log(pc.add(iz, s))
	return bigC{l.im, pc.newF().Neg(l.re)}
}

func (pc precCtx) atan(z bigC) bigC {
	if z.im.Sign() == 0 {
		return bigC{atanBig(z.re, pc.prec), pc.newF()}
	}
	// atan(z) = i/2 (log(1-iz) - log(1+iz))
	iz := bigC{pc.newF().Neg(z.im), pc.newF().Set(z.re)}
	one := pc.fromComplex(1)
	l := pc.sub(pc.log(pc.sub(one, iz)), pc.log(pc.add(one, iz)))
	half := big.NewFloat(0.5)
	return bigC{pc.newF().Mul(pc.newF().Neg(l.im), half), pc.newF().Mul(l.re, half)}
}

func (pc precCtx) evalRel(op RelOp, a, b bigC) bool {
	switch op {
	case OpEq:
		return a.re.Cmp(b.re) == 0 && a.im.Cmp(b.im) == 0
	case OpNe:
		return a.re.Cmp(b.re) != 0 || a.im.Cmp(b.im) != 0
	}
	c := a.re.Cmp(b.re)
	switch op {
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	}
	return false
}
