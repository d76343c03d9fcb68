// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"errors"
	"math"
	"testing"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

func TestSurfaceMesh(t *testing.T) {
	s, err := Surface(expr.MustParse("x*y"), grid.R("x", 0, 2), grid.R("y", 0, 4), N1(3), N2(2))
	if err != nil {
		t.Fatal(err)
	}
	if s.N1() != 3 || s.N2() != 2 {
		t.Fatalf("counts = %d, %d, want 3, 2", s.N1(), s.N2())
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	shape := []int{2, 3}
	checkArray(t, "X", d.X, shape, []float64{0, 1, 2, 0, 1, 2}, 1e-12)
	checkArray(t, "Y", d.Y, shape, []float64{0, 0, 0, 4, 4, 4}, 1e-12)
	checkArray(t, "Z", d.Z, shape, []float64{0, 0, 0, 0, 4, 8}, 1e-12)
}

func TestSurfaceConstant(t *testing.T) {
	s, err := Surface(expr.Number(3), grid.R("x", 0, 1), grid.R("y", 0, 1), N(2))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkArray(t, "Z", d.Z, []int{2, 2}, []float64{3, 3, 3, 3}, 0)
}

func TestSurfacePolar(t *testing.T) {
	// The expression sees (radius, angle); X and Y come back Cartesian.
	s, err := Surface(expr.MustParse("x"), grid.R("x", 1, 2), grid.R("y", 0, math.Pi/2),
		N1(2), N2(3), Polar(true))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	shape := []int{3, 2}
	checkArray(t, "Z", d.Z, shape, []float64{1, 2, 1, 2, 1, 2}, 1e-12)
	r2 := math.Sqrt2 / 2
	checkArray(t, "X", d.X, shape, []float64{1, 2, r2, 2 * r2, 0, 0}, 1e-9)
	checkArray(t, "Y", d.Y, shape, []float64{0, 0, r2, 2 * r2, 1, 2}, 1e-9)
}

func TestSurfaceEvalColor(t *testing.T) {
	mk := func(opts ...Option) (*SurfaceSeries, *SurfaceData) {
		t.Helper()
		opts = append([]Option{N1(3), N2(2)}, opts...)
		s, err := Surface(expr.MustParse("x*y"), grid.R("x", 0, 2), grid.R("y", 0, 4), opts...)
		if err != nil {
			t.Fatal(err)
		}
		d, err := s.Data()
		if err != nil {
			t.Fatal(err)
		}
		return s, d
	}
	sum := func(as ...[]float64) []float64 {
		out := make([]float64, len(as[0]))
		for _, a := range as {
			for i, v := range a {
				out[i] += v
			}
		}
		return out
	}

	s, d := mk()
	c, err := s.EvalColor(d.X, d.Y, d.Z)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "default", c.Data, d.Z.Data, 0)

	s, d = mk(ColorFunc1(func(xs []float64) []float64 { return sum(xs) }))
	c, err = s.EvalColor(d.X, d.Y, d.Z)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(x)", c.Data, d.X.Data, 0)

	s, d = mk(ColorFunc2(func(xs, ys []float64) []float64 { return sum(xs, ys) }))
	c, err = s.EvalColor(d.X, d.Y, d.Z)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(x, y)", c.Data, []float64{0, 1, 2, 4, 5, 6}, 1e-12)

	s, d = mk(ColorFunc3(func(xs, ys, zs []float64) []float64 { return sum(zs) }))
	c, err = s.EvalColor(d.X, d.Y, d.Z)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(x, y, z)", c.Data, d.Z.Data, 0)

	if _, err := s.EvalColor(d.X, d.Y); !errors.Is(err, ErrConfig) {
		t.Errorf("EvalColor with two arrays: %v, want ErrConfig", err)
	}
}

func TestSurfaceLogScale(t *testing.T) {
	s, err := Surface(expr.MustParse("x"), grid.R("x", 1, 100), grid.R("y", 0, 1),
		N1(3), N2(2), XScale(grid.Log))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	shape := []int{2, 3}
	checkArray(t, "X", d.X, shape, []float64{1, 10, 100, 1, 10, 100}, 1e-9)
	checkArray(t, "Z", d.Z, shape, []float64{1, 10, 100, 1, 10, 100}, 1e-9)

	s, err = Surface(expr.MustParse("x"), grid.R("x", 0, 100), grid.R("y", 0, 1),
		XScale(grid.Log))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Data(); !errors.Is(err, ErrDomain) {
		t.Errorf("log scale from 0: %v, want ErrDomain", err)
	}
}

func TestSurfaceInteractive(t *testing.T) {
	s, err := Surface(expr.MustParse("u*x*y"), grid.R("x", 0, 2), grid.R("y", 0, 4),
		N1(3), N2(2), Params(map[string]float64{"u": 2}))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "Z", d.Z.Data, []float64{0, 0, 0, 0, 8, 16}, 1e-12)
	if err := s.SetParams(map[string]float64{"u": 3}); err != nil {
		t.Fatal(err)
	}
	d, err = s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "Z", d.Z.Data, []float64{0, 0, 0, 0, 12, 24}, 1e-12)
}

func TestSurfaceStrings(t *testing.T) {
	rx, ry := grid.R("x", -4, 3), grid.R("y", 0, 1)

	s, err := Surface(expr.MustParse("x*y"), rx, ry)
	if err != nil {
		t.Fatal(err)
	}
	want := "cartesian surface: x*y for x over (-4.0, 3.0) and y over (0.0, 1.0)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	c, err := Contour(expr.MustParse("x*y"), rx, ry)
	if err != nil {
		t.Fatal(err)
	}
	if c.Kind() != KindContour {
		t.Errorf("Kind = %v, want %v", c.Kind(), KindContour)
	}
	if c.Is3DSurface() {
		t.Error("contour reports Is3DSurface")
	}
	want = "contour: x*y for x over (-4.0, 3.0) and y over (0.0, 1.0)"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	i, err := Surface(expr.MustParse("u*x*y"), rx, ry, Params(map[string]float64{"u": 1}))
	if err != nil {
		t.Fatal(err)
	}
	want = "interactive cartesian surface: u*x*y with ranges (x, -4.0, 3.0), (y, 0.0, 1.0) and parameters (u,)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	p, err := ParametricSurface(expr.MustParse("x"), expr.MustParse("y"), expr.MustParse("x*y"), rx, ry)
	if err != nil {
		t.Fatal(err)
	}
	want = "parametric cartesian surface: (x, y, x*y) for x over (-4.0, 3.0) and y over (0.0, 1.0)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParametricSurface(t *testing.T) {
	s, err := ParametricSurface(expr.MustParse("x"), expr.MustParse("y"), expr.MustParse("x*y"),
		grid.R("x", 0, 1), grid.R("y", 0, 2), N1(3), N2(2))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	shape := []int{2, 3}
	checkArray(t, "U", d.U, shape, []float64{0, 0.5, 1, 0, 0.5, 1}, 1e-12)
	checkArray(t, "V", d.V, shape, []float64{0, 0, 0, 2, 2, 2}, 1e-12)
	checkVals(t, "X", d.X.Data, d.U.Data, 0)
	checkVals(t, "Y", d.Y.Data, d.V.Data, 0)
	checkArray(t, "Z", d.Z, shape, []float64{0, 0, 0, 0, 1, 2}, 1e-12)

	// The default label is the coordinate tuple.
	if got, want := s.Label(false), "(x, y, x*y)"; got != want {
		t.Errorf("Label = %q, want %q", got, want)
	}
}

func TestParametricSurfaceEvalColor(t *testing.T) {
	first := func(as ...[]float64) []float64 { return as[0] }
	mk := func(opts ...Option) (*ParametricSurfaceSeries, *ParametricSurfaceData) {
		t.Helper()
		opts = append([]Option{N1(3), N2(2)}, opts...)
		s, err := ParametricSurface(expr.MustParse("x + 1"), expr.MustParse("y + 2"), expr.MustParse("x*y"),
			grid.R("x", 0, 1), grid.R("y", 0, 2), opts...)
		if err != nil {
			t.Fatal(err)
		}
		d, err := s.Data()
		if err != nil {
			t.Fatal(err)
		}
		return s, d
	}
	args := func(d *ParametricSurfaceData) []grid.Array {
		return []grid.Array{d.X, d.Y, d.Z, d.U, d.V}
	}

	s, d := mk()
	c, err := s.EvalColor(args(d)...)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "default", c.Data, d.Z.Data, 0)

	s, d = mk(ColorFunc1(func(us []float64) []float64 { return first(us) }))
	c, err = s.EvalColor(args(d)...)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(u)", c.Data, d.U.Data, 0)

	s, d = mk(ColorFunc2(func(us, vs []float64) []float64 { return first(vs) }))
	c, err = s.EvalColor(args(d)...)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(u, v)", c.Data, d.V.Data, 0)

	s, d = mk(ColorFunc3(func(xs, ys, zs []float64) []float64 { return first(xs) }))
	c, err = s.EvalColor(args(d)...)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(x, y, z)", c.Data, d.X.Data, 0)

	s, d = mk(ColorFunc5(func(xs, ys, zs, us, vs []float64) []float64 { return first(vs) }))
	c, err = s.EvalColor(args(d)...)
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "f(x, y, z, u, v)", c.Data, d.V.Data, 0)

	if _, err := s.EvalColor(d.X, d.Y, d.Z); !errors.Is(err, ErrConfig) {
		t.Errorf("EvalColor with three arrays: %v, want ErrConfig", err)
	}
}
