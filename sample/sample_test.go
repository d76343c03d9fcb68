// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import (
	"errors"
	"math"
	"sort"
	"testing"
)

func sin1(t float64) ([]float64, error) {
	return []float64{math.Sin(t)}, nil
}

func TestRefineSmooth(t *testing.T) {
	ts, vs, err := Refine(sin1, 0, 2*math.Pi, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != len(vs) {
		t.Fatalf("len(ts) = %d, len(vs) = %d", len(ts), len(vs))
	}
	if len(ts) < defaultSeed || len(ts) > DefaultMaxPoints {
		t.Fatalf("point count %d outside [%d, %d]", len(ts), defaultSeed, DefaultMaxPoints)
	}
	if !sort.Float64sAreSorted(ts) {
		t.Error("parameters not sorted")
	}
	if ts[0] != 0 || math.Abs(ts[len(ts)-1]-2*math.Pi) > 1e-12 {
		t.Errorf("endpoints = %v, %v", ts[0], ts[len(ts)-1])
	}
	for i, v := range vs {
		if len(v) != 1 || math.IsNaN(v[0]) {
			t.Fatalf("point %d: bad output %v", i, v)
		}
		if math.Abs(v[0]-math.Sin(ts[i])) > 1e-12 {
			t.Fatalf("point %d: output %v, want sin(%v)", i, v[0], ts[i])
		}
	}
}

func TestRefineMonotonicInGoal(t *testing.T) {
	prev := 0
	for _, goal := range []float64{0.05, 0.01, 0.002} {
		ts, _, err := Refine(sin1, 0, 2*math.Pi, Options{Goal: goal})
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) < prev {
			t.Errorf("goal %v produced %d points, looser goal produced %d", goal, len(ts), prev)
		}
		prev = len(ts)
	}
}

func TestRefineConcentrates(t *testing.T) {
	// A near-step function should attract most points to the step.
	f := func(t float64) ([]float64, error) {
		return []float64{math.Atan(50 * (t - 0.3))}, nil
	}
	ts, _, err := Refine(f, 0, 1, Options{Goal: 0.005})
	if err != nil {
		t.Fatal(err)
	}
	near, far := 0, 0
	for _, x := range ts {
		if math.Abs(x-0.3) < 0.05 {
			near++
		}
		if math.Abs(x-0.8) < 0.05 {
			far++
		}
	}
	if near <= far {
		t.Errorf("%d points near the step, %d in a flat region", near, far)
	}
}

func TestCurvatureLossNeedsFewerPoints(t *testing.T) {
	dts, _, err := Refine(sin1, 0, 2*math.Pi, Options{Goal: 0.01})
	if err != nil {
		t.Fatal(err)
	}
	cts, _, err := Refine(sin1, 0, 2*math.Pi, Options{Goal: 0.01, Loss: CurvatureLoss})
	if err != nil {
		t.Fatal(err)
	}
	if len(cts) >= len(dts) {
		t.Errorf("curvature loss used %d points, distance loss %d", len(cts), len(dts))
	}
}

func TestRefineEvalErrors(t *testing.T) {
	// Evaluation failures become NaN points and refinement still
	// terminates by width around the failed region.
	f := func(t float64) ([]float64, error) {
		if t >= 0.4 && t <= 0.6 {
			return nil, errors.New("undefined here")
		}
		return []float64{t * t}, nil
	}
	ts, vs, err := Refine(f, 0, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) >= DefaultMaxPoints {
		t.Fatalf("refinement around failures did not terminate early (%d points)", len(ts))
	}
	sawNaN := false
	for i, x := range ts {
		if x >= 0.4 && x <= 0.6 {
			if !math.IsNaN(vs[i][0]) {
				t.Fatalf("point %v in failed region has value %v, want NaN", x, vs[i][0])
			}
			sawNaN = true
		} else if math.IsNaN(vs[i][0]) {
			t.Fatalf("point %v outside failed region is NaN", x)
		}
	}
	if !sawNaN {
		t.Error("no points recorded in the failed region")
	}
}

func TestRefineSurvivesPole(t *testing.T) {
	f := func(t float64) ([]float64, error) {
		return []float64{1 / t}, nil
	}
	ts, vs, err := Refine(f, -1, 1, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !sort.Float64sAreSorted(ts) {
		t.Error("parameters not sorted")
	}
	// The exact pole lands on a seed point and must be kept, not chased.
	for i, x := range ts {
		if x == 0 && !math.IsInf(vs[i][0], 0) {
			t.Errorf("f(0) recorded as %v, want Inf", vs[i][0])
		}
	}
	if len(ts) >= DefaultMaxPoints {
		t.Errorf("pole exhausted the point budget (%d points)", len(ts))
	}
}

func TestRefineGoalPredicate(t *testing.T) {
	ts, _, err := Refine(sin1, 0, 1, Options{
		GoalFunc: func(s Stats) bool { return s.Points >= 40 },
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 40 {
		t.Errorf("got %d points, want exactly 40", len(ts))
	}
}

func TestRefineMaxPoints(t *testing.T) {
	ts, _, err := Refine(sin1, 0, 2*math.Pi, Options{
		GoalFunc:  func(Stats) bool { return false },
		MaxPoints: 50,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != 50 {
		t.Errorf("got %d points, want the 50-point cap", len(ts))
	}
}

func TestRefineDeterministic(t *testing.T) {
	a, _, err := Refine(sin1, 0, 2*math.Pi, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Refine(sin1, 0, 2*math.Pi, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRefineBadInterval(t *testing.T) {
	if _, _, err := Refine(sin1, 1, 1, Options{}); err == nil {
		t.Error("empty interval succeeded")
	}
	if _, _, err := Refine(sin1, 2, 1, Options{}); err == nil {
		t.Error("reversed interval succeeded")
	}
}

func TestRefineVectorOutput(t *testing.T) {
	f := func(t float64) ([]float64, error) {
		return []float64{math.Cos(t), math.Sin(t)}, nil
	}
	ts, vs, err := Refine(f, 0, 2*math.Pi, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i := range ts {
		if len(vs[i]) != 2 {
			t.Fatalf("output dim = %d, want 2", len(vs[i]))
		}
	}
}

func TestTriangleArea(t *testing.T) {
	p := Point{0, []float64{0}}
	q := Point{1, []float64{0}}
	r := Point{0, []float64{1}}
	if got := triangleArea(p, q, r); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("unit right triangle area = %v, want 0.5", got)
	}
	// Collinear points span no area.
	r = Point{2, []float64{0}}
	if got := triangleArea(p, q, r); got != 0 {
		t.Errorf("collinear area = %v, want 0", got)
	}
}
