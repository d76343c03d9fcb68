// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

// Real-valued big.Float helpers for the precise backend. bigfloat supplies
// Exp, Log, Pow and Sqrt; the trigonometric functions and pi are computed
// here by argument reduction and Maclaurin series, carrying guard bits
// beyond the requested precision.

import (
	"math"
	"math/big"
	"sync"

	"github.com/ALTree/bigfloat"
)

const guardBits = 32

var piCache struct {
	sync.Mutex
	m map[uint]*big.Float
}

// bigPi returns pi at the given precision, computed by Machin's formula
// pi = 16 atan(1/5) - 4 atan(1/239) and cached per precision.
func bigPi(prec uint) *big.Float {
	piCache.Lock()
	defer piCache.Unlock()
	if p, ok := piCache.m[prec]; ok {
		return p
	}
	wp := prec + guardBits
	oneFifth := new(big.Float).SetPrec(wp).Quo(big.NewFloat(1), big.NewFloat(5))
	one239 := new(big.Float).SetPrec(wp).Quo(big.NewFloat(1), big.NewFloat(239))
	pi := new(big.Float).SetPrec(wp).Mul(big.NewFloat(16), atanSeries(oneFifth, wp))
	pi.Sub(pi, new(big.Float).SetPrec(wp).Mul(big.NewFloat(4), atanSeries(one239, wp)))
	pi.SetPrec(prec)
	if piCache.m == nil {
		piCache.m = make(map[uint]*big.Float)
	}
	piCache.m[prec] = pi
	return pi
}

// atanSeries evaluates atan by its Maclaurin series. It requires |x| < 1
// and converges usefully only for |x| well below 1; callers reduce first.
func atanSeries(x *big.Float, prec uint) *big.Float {
	sum := new(big.Float).SetPrec(prec).Set(x)
	term := new(big.Float).SetPrec(prec).Set(x)
	x2 := new(big.Float).SetPrec(prec).Mul(x, x)
	eps := epsFor(prec)
	tmp := new(big.Float).SetPrec(prec)
	for n := 1; ; n++ {
		term.Mul(term, x2)
		term.Neg(term)
		tmp.Quo(term, big.NewFloat(float64(2*n+1)))
		sum.Add(sum, tmp)
		if new(big.Float).Abs(tmp).Cmp(eps) < 0 {
			return sum
		}
	}
}

// atanBig returns atan(x) at the given precision.
func atanBig(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		half := new(big.Float).SetPrec(prec).Quo(bigPi(prec), big.NewFloat(2))
		if x.Signbit() {
			half.Neg(half)
		}
		return half
	}
	wp := prec + guardBits
	ax := new(big.Float).SetPrec(wp).Abs(x)
	var r *big.Float
	switch {
	case ax.Cmp(big.NewFloat(0.4375)) <= 0: // 7/16
		r = atanSeries(ax, wp)
	case ax.Cmp(big.NewFloat(1)) <= 0:
		// atan(x) = pi/4 + atan((x-1)/(x+1))
		num := new(big.Float).SetPrec(wp).Sub(ax, big.NewFloat(1))
		den := new(big.Float).SetPrec(wp).Add(ax, big.NewFloat(1))
		r = new(big.Float).SetPrec(wp).Quo(bigPi(wp), big.NewFloat(4))
		r.Add(r, atanSeries(num.Quo(num, den), wp))
	default:
		// atan(x) = pi/2 - atan(1/x)
		inv := new(big.Float).SetPrec(wp).Quo(big.NewFloat(1), ax)
		r = new(big.Float).SetPrec(wp).Quo(bigPi(wp), big.NewFloat(2))
		r.Sub(r, atanBig(inv, wp))
	}
	if x.Sign() < 0 {
		r.Neg(r)
	}
	return r.SetPrec(prec)
}

// atan2Big returns atan2(y, x) with the usual quadrant conventions. A zero
// y maps to 0 for x >= 0 and +pi for x < 0 regardless of zero signs.
func atan2Big(y, x *big.Float, prec uint) *big.Float {
	if y.IsInf() || x.IsInf() {
		yf, _ := y.Float64()
		xf, _ := x.Float64()
		return new(big.Float).SetPrec(prec).SetFloat64(math.Atan2(yf, xf))
	}
	switch {
	case y.Sign() == 0:
		if x.Sign() >= 0 {
			return new(big.Float).SetPrec(prec)
		}
		return bigPi(prec)
	case x.Sign() == 0:
		half := new(big.Float).SetPrec(prec).Quo(bigPi(prec), big.NewFloat(2))
		if y.Sign() < 0 {
			half.Neg(half)
		}
		return half
	}
	q := new(big.Float).SetPrec(prec + guardBits).Quo(y, x)
	at := atanBig(q, prec)
	if x.Sign() > 0 {
		return at
	}
	if y.Sign() >= 0 {
		return at.Add(at, bigPi(prec))
	}
	return at.Sub(at, bigPi(prec))
}

// sinBig returns sin(x) at the given precision. It panics with big.ErrNaN
// for infinite x, as float64 sin would return NaN.
func sinBig(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	wp := prec + guardBits
	r, neg := reduceAngle(x, wp)
	// r is in [-pi, pi]; sin converges quickly there.
	sum := new(big.Float).SetPrec(wp).Set(r)
	term := new(big.Float).SetPrec(wp).Set(r)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	eps := epsFor(wp)
	for n := 1; ; n++ {
		term.Mul(term, r2)
		term.Quo(term, big.NewFloat(float64(2*n*(2*n+1))))
		term.Neg(term)
		sum.Add(sum, term)
		if new(big.Float).Abs(term).Cmp(eps) < 0 {
			break
		}
	}
	if neg {
		sum.Neg(sum)
	}
	return sum.SetPrec(prec)
}

// cosBig returns cos(x) at the given precision.
func cosBig(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		panic(big.ErrNaN{})
	}
	wp := prec + guardBits
	r, _ := reduceAngle(x, wp)
	sum := new(big.Float).SetPrec(wp).SetInt64(1)
	term := new(big.Float).SetPrec(wp).SetInt64(1)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	eps := epsFor(wp)
	for n := 1; ; n++ {
		term.Mul(term, r2)
		term.Quo(term, big.NewFloat(float64((2*n-1)*(2*n))))
		term.Neg(term)
		sum.Add(sum, term)
		if new(big.Float).Abs(term).Cmp(eps) < 0 {
			break
		}
	}
	return sum.SetPrec(prec)
}

// reduceAngle maps x into [-pi, pi] modulo 2 pi. For sin the sign flip of
// mapping x to -x is reported separately so callers can reduce |x| first.
func reduceAngle(x *big.Float, prec uint) (r *big.Float, neg bool) {
	r = new(big.Float).SetPrec(prec).Set(x)
	if r.Sign() < 0 {
		r.Neg(r)
		neg = true
	}
	pi := bigPi(prec)
	twoPi := new(big.Float).SetPrec(prec).Mul(pi, big.NewFloat(2))
	if r.Cmp(twoPi) >= 0 {
		q := new(big.Float).SetPrec(prec).Quo(r, twoPi)
		k, _ := q.Int(nil)
		kf := new(big.Float).SetPrec(prec).SetInt(k)
		r.Sub(r, kf.Mul(kf, twoPi))
	}
	if r.Cmp(pi) > 0 {
		r.Sub(r, twoPi)
	}
	return r, neg
}

func epsFor(prec uint) *big.Float {
	eps := new(big.Float).SetPrec(32).SetInt64(1)
	return eps.SetMantExp(eps, -int(prec)-2)
}

// floorBig returns floor(x).
func floorBig(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		return new(big.Float).SetPrec(prec).Set(x)
	}
	i, acc := x.Int(nil)
	r := new(big.Float).SetPrec(prec).SetInt(i)
	// Int truncates toward zero; floor of a negative non-integer is one
	// below the truncation.
	if x.Sign() < 0 && acc != big.Exact {
		r.Sub(r, big.NewFloat(1))
	}
	return r
}

// ceilBig returns ceil(x).
func ceilBig(x *big.Float, prec uint) *big.Float {
	n := floorBig(new(big.Float).SetPrec(prec).Neg(x), prec)
	return n.Neg(n)
}

// The bigfloat wrappers guard the infinities and zeros the library does
// not accept.

func expBig(x *big.Float, prec uint) *big.Float {
	if x.IsInf() {
		if x.Signbit() {
			return new(big.Float).SetPrec(prec)
		}
		return new(big.Float).SetPrec(prec).SetInf(false)
	}
	z := new(big.Float).SetPrec(prec + guardBits).Set(x)
	return bigfloat.Exp(z).SetPrec(prec)
}

func logBig(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec).SetInf(true)
	}
	if x.IsInf() {
		return new(big.Float).SetPrec(prec).SetInf(false)
	}
	z := new(big.Float).SetPrec(prec + guardBits).Set(x)
	return bigfloat.Log(z).SetPrec(prec)
}

func sqrtBig(x *big.Float, prec uint) *big.Float {
	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec)
	}
	if x.IsInf() {
		return new(big.Float).SetPrec(prec).SetInf(false)
	}
	z := new(big.Float).SetPrec(prec + guardBits).Set(x)
	return bigfloat.Sqrt(z).SetPrec(prec)
}
