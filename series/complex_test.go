// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"bytes"
	"errors"
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

func TestComplexPoints(t *testing.T) {
	s, err := ComplexPoints([]expr.Expr{expr.Number(3 + 4i), expr.Number(1 + 2i)})
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsPoint() {
		t.Error("complex points are not points")
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "X", d.X, []float64{3, 1}, 0)
	checkVals(t, "Y", d.Y, []float64{4, 2}, 0)
	if d.Color != nil {
		t.Errorf("Color = %v, want nil", d.Color)
	}

	s, err = ComplexPoints([]expr.Expr{expr.Number(3 + 4i), expr.Number(1 + 2i)},
		ColorFunc2(func(xs, ys []float64) []float64 {
			out := make([]float64, len(xs))
			for i := range xs {
				out[i] = xs[i] + ys[i]
			}
			return out
		}))
	if err != nil {
		t.Fatal(err)
	}
	d, err = s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "Color", d.Color, []float64{7, 3}, 0)

	// Without a colormap the color function is not evaluated.
	s, err = ComplexPoints([]expr.Expr{expr.Number(3 + 4i)},
		ColorFunc2(func(xs, ys []float64) []float64 { return xs }), UseCM(false))
	if err != nil {
		t.Fatal(err)
	}
	d, err = s.Data()
	if err != nil {
		t.Fatal(err)
	}
	if d.Color != nil {
		t.Errorf("Color = %v with UseCM(false), want nil", d.Color)
	}
}

func TestComplexPointsSteps(t *testing.T) {
	s, err := ComplexPoints([]expr.Expr{expr.Number(1 + 1i), expr.Number(2 + 2i), expr.Number(3 + 3i)},
		Steps(true))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "X", d.X, []float64{1, 2, 2, 3, 3}, 0)
	checkVals(t, "Y", d.Y, []float64{1, 1, 2, 2, 3}, 0)
}

func TestComplexPointsSymbolic(t *testing.T) {
	s, err := ComplexPoints([]expr.Expr{expr.MustParse("u*I")},
		Params(map[string]float64{"u": 3}))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "X", d.X, []float64{0}, 0)
	checkVals(t, "Y", d.Y, []float64{3}, 0)

	if err := s.SetParams(map[string]float64{"u": 4}); err != nil {
		t.Fatal(err)
	}
	d, err = s.Data()
	if err != nil {
		t.Fatal(err)
	}
	checkVals(t, "Y", d.Y, []float64{4}, 0)
}

func TestComplexPointsErrors(t *testing.T) {
	if _, err := ComplexPoints(nil); !errors.Is(err, ErrConfig) {
		t.Errorf("no points: %v, want ErrConfig", err)
	}
	if _, err := ComplexPoints([]expr.Expr{expr.MustParse("u*I")}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("unbound symbol: %v, want ErrUnsupported", err)
	}
	_, err := ComplexPoints([]expr.Expr{expr.MustParse("u*I")}, Params(map[string]float64{"v": 1}))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("symbol not in parameters: %v, want ErrConfig", err)
	}
	f := expr.Func1(func(z complex128) complex128 { return z })
	if _, err := ComplexPoints([]expr.Expr{f}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("opaque point: %v, want ErrUnsupported", err)
	}
}

func TestComplexPointsStrings(t *testing.T) {
	s, err := ComplexPoints([]expr.Expr{expr.Number(2 + 3i)})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := s.String(), "complex points: (2 + 3*I,)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	i, err := ComplexPoints([]expr.Expr{expr.Number(2 + 3i), expr.MustParse("x*I")},
		Params(map[string]float64{"x": 1}))
	if err != nil {
		t.Fatal(err)
	}
	want := "interactive complex points: (2 + 3*I, x*I) with parameters (x,)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestComplexSurface(t *testing.T) {
	s, err := ComplexSurface(expr.MustParse("x"), grid.CR("x", -1-2i, 1+2i), N1(3), N2(2))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	shape := []int{2, 3}
	checkArray(t, "X", d.X, shape, []float64{-1, 0, 1, -1, 0, 1}, 1e-12)
	checkArray(t, "Y", d.Y, shape, []float64{-2, -2, -2, 2, 2, 2}, 1e-12)
	checkVals(t, "Z", d.Z.Data, d.X.Data, 0)
	if !s.ImagDropped() {
		t.Error("ImagDropped not set for the identity over a complex rectangle")
	}

	def, err := ComplexSurface(expr.MustParse("x"), grid.CR("x", -1-2i, 1+2i))
	if err != nil {
		t.Fatal(err)
	}
	if def.N1() != Defaults.NComplex || def.N2() != Defaults.NComplex {
		t.Errorf("default counts = %d, %d, want %d", def.N1(), def.N2(), Defaults.NComplex)
	}

	if _, err := ComplexSurface(expr.MustParse("x"), grid.R("x", -1, 1)); !errors.Is(err, ErrConfig) {
		t.Errorf("real range: %v, want ErrConfig", err)
	}
	f := expr.Func1(func(z complex128) complex128 { return z })
	if _, err := ComplexSurface(f, grid.CR("x", -1-2i, 1+2i)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("opaque function: %v, want ErrUnsupported", err)
	}
}

func TestComplexSurfaceStrings(t *testing.T) {
	r := grid.CR("x", -1-2i, 1+2i)

	s, err := ComplexSurface(expr.MustParse("x"), r)
	if err != nil {
		t.Fatal(err)
	}
	want := "complex contour: x for re(x) over (-1.0, 1.0) and im(x) over (-2.0, 2.0)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s.Is3DSurface() {
		t.Error("complex contour reports Is3DSurface")
	}

	s, err = ComplexSurface(expr.MustParse("x"), r, ThreeD(true))
	if err != nil {
		t.Fatal(err)
	}
	want = "complex cartesian surface: x for re(x) over (-1.0, 1.0) and im(x) over (-2.0, 2.0)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !s.Is3DSurface() {
		t.Error("3D complex surface does not report Is3DSurface")
	}

	i, err := ComplexSurface(expr.MustParse("u*x"), r, Params(map[string]float64{"u": 1}))
	if err != nil {
		t.Fatal(err)
	}
	want = "interactive complex contour for expression: u*x over (x, (-1-2j), (1+2j)) and parameters (u,)"
	if got := i.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDomainColoring(t *testing.T) {
	s, err := DomainColoring(expr.MustParse("z"), grid.CR("z", -1-1i, 1+1i), N(3))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	r2 := math.Sqrt2
	checkArray(t, "Mag", d.Mag, []int{3, 3}, []float64{r2, 1, r2, 1, 0, 1, r2, 1, r2}, 1e-12)
	q := math.Pi / 4
	checkArray(t, "Arg", d.Arg, []int{3, 3},
		[]float64{-3 * q, -2 * q, -q, 4 * q, 0, 0, 3 * q, 2 * q, q}, 1e-12)

	if got := d.Img.Bounds().Dx(); got != 3 {
		t.Fatalf("image width %d, want 3", got)
	}
	if got := d.Img.Bounds().Dy(); got != 3 {
		t.Fatalf("image height %d, want 3", got)
	}
	// The zero of the function colors black.
	black := color.NRGBA{0, 0, 0, 0xff}
	if got := d.Img.NRGBAAt(1, 1); got != black {
		t.Errorf("center pixel = %v, want %v", got, black)
	}
	if len(d.Colorscale) != 256 {
		t.Errorf("%d colorscale entries, want 256", len(d.Colorscale))
	}
}

func TestDomainColoringOrientation(t *testing.T) {
	// Mesh row 0 is the lowest imaginary part and lands on the bottom
	// scanline of the image.
	s, err := DomainColoring(expr.MustParse("z - 1 - I"), grid.CR("z", -1-1i, 1+1i), N(3))
	if err != nil {
		t.Fatal(err)
	}
	d, err := s.Data()
	if err != nil {
		t.Fatal(err)
	}
	black := color.NRGBA{0, 0, 0, 0xff}
	if got := d.Img.NRGBAAt(2, 0); got != black {
		t.Errorf("pixel at the zero = %v, want %v", got, black)
	}
	if got := d.Img.NRGBAAt(1, 1); got == black {
		t.Error("center pixel is black")
	}
}

func TestDomainColoringTZ(t *testing.T) {
	r := grid.CR("z", -1-1i, 1+1i)
	plain, err := DomainColoring(expr.MustParse("z"), r, N(3))
	if err != nil {
		t.Fatal(err)
	}
	dp, err := plain.Data()
	if err != nil {
		t.Fatal(err)
	}

	scaled, err := DomainColoring(expr.MustParse("z"), r, N(3),
		TZ(func(v float64) float64 { return 2 * v }))
	if err != nil {
		t.Fatal(err)
	}
	ds, err := scaled.Data()
	if err != nil {
		t.Fatal(err)
	}

	for i := range dp.Mag.Data {
		if !feq(ds.Mag.Data[i], 2*dp.Mag.Data[i], 1e-12) {
			t.Fatalf("Mag[%d] = %v, want %v", i, ds.Mag.Data[i], 2*dp.Mag.Data[i])
		}
	}
	// The image and colorscale reflect the untransformed magnitude.
	if !bytes.Equal(ds.Img.Pix, dp.Img.Pix) {
		t.Error("TZ changed the coloring image")
	}
	if !reflect.DeepEqual(ds.Colorscale, dp.Colorscale) {
		t.Error("TZ changed the colorscale")
	}
}

func TestDomainColoringStrings(t *testing.T) {
	r := grid.CR("z", -1-1i, 1+1i)

	s, err := DomainColoring(expr.MustParse("z"), r)
	if err != nil {
		t.Fatal(err)
	}
	want := "complex domain coloring: z for re(z) over (-1.0, 1.0) and im(z) over (-1.0, 1.0)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	s, err = DomainColoring(expr.MustParse("z"), r, ThreeD(true))
	if err != nil {
		t.Fatal(err)
	}
	want = "complex 3D domain coloring: z for re(z) over (-1.0, 1.0) and im(z) over (-1.0, 1.0)"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !s.Is3DSurface() {
		t.Error("3D domain coloring does not report Is3DSurface")
	}

	if _, err := DomainColoring(expr.MustParse("z"), grid.R("z", -1, 1)); !errors.Is(err, ErrConfig) {
		t.Errorf("real range: %v, want ErrConfig", err)
	}
}
