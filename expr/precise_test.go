// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"
	"math/cmplx"
	"testing"
)

func evalPrec(t *testing.T, p *Program, prec uint, args ...complex128) complex128 {
	t.Helper()
	v, err := p.EvalPrec(prec, args...)
	if err != nil {
		t.Fatalf("EvalPrec: %v", err)
	}
	return v
}

func TestEvalPrecMatchesEval(t *testing.T) {
	// Away from branch cuts the precise backend agrees with the fast one.
	for _, test := range []struct {
		src string
		arg complex128
	}{
		{"x^2 - 3*x + 2", 2.5},
		{"x^2 - 3*x + 2", 1 + 2i},
		{"sin(x)", 1},
		{"sin(x)", 1 + 2i},
		{"cos(x)", -0.7},
		{"tan(x)", 0.5},
		{"asin(x)", 0.5},
		{"acos(x)", 0.5},
		{"atan(x)", 0.3},
		{"atan(x)", 0.7},
		{"atan(x)", 3},
		{"atan(x)", -5},
		{"atan(x)", 1 + 1i},
		{"sinh(x)", 1.3},
		{"cosh(x)", -0.4},
		{"tanh(x)", 0.5 + 0.25i},
		{"exp(x)", 1},
		{"exp(x)", 1 + 2i},
		{"log(x)", 2},
		{"log(x)", 3 + 4i},
		{"sqrt(x)", 2},
		{"sqrt(x)", 3 + 4i},
		{"x^2.5", 3},
		{"x^(0.5 + 0.2*I)", 1 + 1i},
		{"abs(x)", 3 + 4i},
		{"arg(x)", 1 + 1i},
		{"conjugate(x)", 1 + 2i},
		{"sign(x)", 3 - 4i},
		{"floor(x)", -2.5},
		{"ceiling(x)", -2.5},
		{"frac(x)", -0.25},
		{"atan2(x, 1)", 1},
		{"atan2(x, 2 + I)", 1 + 1i},
		{"sum(x^k, k, 0, 5)", 1.1},
	} {
		p := mustCompile(t, MustParse(test.src), "x")
		want := p.Eval(test.arg)
		got := evalPrec(t, p, 0, test.arg)
		if !closeC(got, want) {
			t.Errorf("%s at %v: EvalPrec = %v, Eval = %v", test.src, test.arg, got, want)
		}
	}
}

func TestEvalPrecBranchCut(t *testing.T) {
	// On the negative real axis the two backends intentionally disagree:
	// Eval's IEEE negation produces a negative zero imaginary part and
	// takes the clockwise side, while EvalPrec ignores zero signs and
	// always takes arg = +pi.
	p := mustCompile(t, MustParse("sqrt(-x)"), "x")
	fast := p.Eval(4)
	prec := evalPrec(t, p, 0, 4)
	if imag(fast) >= 0 {
		t.Errorf("Eval sqrt(-4) = %v, want imaginary part < 0", fast)
	}
	if imag(prec) <= 0 {
		t.Errorf("EvalPrec sqrt(-4) = %v, want imaginary part > 0", prec)
	}
	if !closeC(prec, 2i) {
		t.Errorf("EvalPrec sqrt(-4) = %v, want 2i", prec)
	}

	p = mustCompile(t, MustParse("log(-x)"), "x")
	if got := evalPrec(t, p, 0, 2); !closeC(got, complex(math.Log(2), math.Pi)) {
		t.Errorf("EvalPrec log(-2) = %v, want log 2 + i pi", got)
	}

	p = mustCompile(t, MustParse("arg(-x)"), "x")
	if got := evalPrec(t, p, 0, 3); real(got) <= 0 {
		t.Errorf("EvalPrec arg(-3) = %v, want +pi", got)
	}
}

func TestEvalPrecPrecision(t *testing.T) {
	// (1 + x) - 1 vanishes in float64 for tiny x but not at 128 bits.
	p := mustCompile(t, MustParse("(1 + x) - 1"), "x")
	if got := p.Eval(1e-30); got != 0 {
		t.Errorf("Eval (1+x)-1 at 1e-30 = %v, want 0 (this is the float64 limitation)", got)
	}
	got := evalPrec(t, p, 0, 1e-30)
	if math.Abs(real(got)-1e-30) > 1e-45 {
		t.Errorf("EvalPrec (1+x)-1 at 1e-30 = %v, want 1e-30", got)
	}

	// Pythagorean identity holds through large-argument reduction.
	p = mustCompile(t, MustParse("sin(x)^2 + cos(x)^2 - 1"), "x")
	for _, x := range []complex128{0.5, 3.25, 1e3, 1e6} {
		if got := evalPrec(t, p, 0, x); math.Abs(real(got)) > 1e-16 {
			t.Errorf("sin^2+cos^2-1 at %v = %v, want 0", x, got)
		}
	}
}

func TestEvalPrecUndefined(t *testing.T) {
	p := mustCompile(t, MustParse("(x - x)/(x - x)"), "x")
	if _, err := p.EvalPrec(0, 1); err == nil {
		t.Error("EvalPrec of 0/0 succeeded, want error")
	}

	// NaN arguments are rejected rather than propagated.
	p = mustCompile(t, MustParse("x + 1"), "x")
	if _, err := p.EvalPrec(0, cmplx.NaN()); err == nil {
		t.Error("EvalPrec with NaN argument succeeded, want error")
	}

	// A failing term poisons the whole sum.
	p = mustCompile(t, MustParse("sum((k - k)/(k - k), k, 1, 2)"), "x")
	if _, err := p.EvalPrec(0, 1); err == nil {
		t.Error("EvalPrec of a sum with undefined terms succeeded, want error")
	}
}

func TestEvalPrecSum(t *testing.T) {
	p := mustCompile(t, MustParse("sum(1/k^2, k, 1, 50)"), "x")
	want := 0.0
	for k := 1; k <= 50; k++ {
		want += 1 / float64(k*k)
	}
	if got := evalPrec(t, p, 0, 0); math.Abs(real(got)-want) > 1e-14 {
		t.Errorf("sum 1/k^2 = %v, want %v", got, want)
	}
}

func TestEvalPrecRelations(t *testing.T) {
	p := mustCompile(t, MustParse("x > 0 & x < 1"), "x")
	if got := evalPrec(t, p, 0, 0.5); got != 1 {
		t.Errorf("0 < 0.5 < 1 = %v, want 1", got)
	}
	if got := evalPrec(t, p, 0, 2); got != 0 {
		t.Errorf("0 < 2 < 1 = %v, want 0", got)
	}
}
