// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"math"
	"math/big"
	"testing"
)

// Reference digits for checking bigPi beyond float64.
const piDigits = "3.14159265358979323846264338327950288419716939937510582097494459"

func TestBigPi(t *testing.T) {
	ref, _, err := big.ParseFloat(piDigits, 10, 300, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	for _, prec := range []uint{64, 128, 200} {
		pi := bigPi(prec)
		diff := new(big.Float).SetPrec(300).Sub(pi, ref)
		bound := new(big.Float).SetMantExp(big.NewFloat(1), -int(prec)+4)
		if diff.Abs(diff).Cmp(bound) > 0 {
			t.Errorf("bigPi(%d) off by %v", prec, diff)
		}
	}
	if f, _ := bigPi(64).Float64(); f != math.Pi {
		t.Errorf("bigPi(64) rounds to %v, want math.Pi", f)
	}
}

func TestBigTrig(t *testing.T) {
	xs := []float64{0, 0.1, -0.3, 1, -1.7, 3.14, -3.2, 10, 100, 12345.678}
	for _, x := range xs {
		bx := big.NewFloat(x)
		if got, _ := sinBig(bx, 64).Float64(); math.Abs(got-math.Sin(x)) > 1e-14 {
			t.Errorf("sinBig(%v) = %v, want %v", x, got, math.Sin(x))
		}
		if got, _ := cosBig(bx, 64).Float64(); math.Abs(got-math.Cos(x)) > 1e-14 {
			t.Errorf("cosBig(%v) = %v, want %v", x, got, math.Cos(x))
		}
	}
	for _, x := range []float64{0, 0.3, 0.4375, 0.7, 1, 3, -5, 1000, 1e9} {
		if got, _ := atanBig(big.NewFloat(x), 64).Float64(); math.Abs(got-math.Atan(x)) > 1e-14 {
			t.Errorf("atanBig(%v) = %v, want %v", x, got, math.Atan(x))
		}
	}
}

func TestBigAtan2(t *testing.T) {
	for _, test := range []struct{ y, x float64 }{
		{1, 1}, {1, -1}, {-1, -1}, {-1, 1},
		{0, 5}, {5, 0}, {-5, 0}, {0, 0},
		{2, 3}, {-2, 3}, {0.5, -4},
	} {
		got, _ := atan2Big(big.NewFloat(test.y), big.NewFloat(test.x), 64).Float64()
		want := math.Atan2(test.y, test.x)
		if math.Abs(got-want) > 1e-14 {
			t.Errorf("atan2Big(%v, %v) = %v, want %v", test.y, test.x, got, want)
		}
	}
	// Unlike math.Atan2 there is no negative-zero y: anything with a zero
	// y and negative x maps to +pi.
	got, _ := atan2Big(big.NewFloat(0), big.NewFloat(-3), 64).Float64()
	if got != math.Pi {
		t.Errorf("atan2Big(0, -3) = %v, want +pi", got)
	}
}

func TestBigExpLogSqrt(t *testing.T) {
	for _, x := range []float64{0.1, 1, 2.5, -3, 20} {
		if got, _ := expBig(big.NewFloat(x), 64).Float64(); math.Abs(got-math.Exp(x))/math.Exp(x) > 1e-14 {
			t.Errorf("expBig(%v) = %v, want %v", x, got, math.Exp(x))
		}
	}
	for _, x := range []float64{0.1, 1, 2.5, 1000} {
		if got, _ := logBig(big.NewFloat(x), 64).Float64(); math.Abs(got-math.Log(x)) > 1e-14 {
			t.Errorf("logBig(%v) = %v, want %v", x, got, math.Log(x))
		}
		if got, _ := sqrtBig(big.NewFloat(x), 64).Float64(); math.Abs(got-math.Sqrt(x)) > 1e-14*math.Sqrt(x) {
			t.Errorf("sqrtBig(%v) = %v, want %v", x, got, math.Sqrt(x))
		}
	}
	if got := logBig(new(big.Float), 64); !got.IsInf() || !got.Signbit() {
		t.Errorf("logBig(0) = %v, want -Inf", got)
	}
	if got := expBig(new(big.Float).SetInf(true), 64); got.Sign() != 0 {
		t.Errorf("expBig(-Inf) = %v, want 0", got)
	}
}

func TestBigFloorCeil(t *testing.T) {
	for _, test := range []struct{ x, floor, ceil float64 }{
		{2.7, 2, 3},
		{-2.7, -3, -2},
		{3, 3, 3},
		{-3, -3, -3},
		{0, 0, 0},
		{0.5, 0, 1},
		{-0.5, -1, 0},
	} {
		if got, _ := floorBig(big.NewFloat(test.x), 64).Float64(); got != test.floor {
			t.Errorf("floorBig(%v) = %v, want %v", test.x, got, test.floor)
		}
		if got, _ := ceilBig(big.NewFloat(test.x), 64).Float64(); got != test.ceil {
			t.Errorf("ceilBig(%v) = %v, want %v", test.x, got, test.ceil)
		}
	}
}
