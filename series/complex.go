// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"image"
	"image/color"

	"github.com/aclements/go-symplot/coloring"
	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

// A ComplexPointSeries plots a list of points in the complex plane.
type ComplexPointSeries struct {
	base
	points []expr.Expr
}

var _ Series = (*ComplexPointSeries)(nil)

// ComplexPoints returns a series plotting pts as points at
// (re(p), im(p)). Symbolic points must be bound by parameters.
func ComplexPoints(pts []expr.Expr, opts ...Option) (*ComplexPointSeries, error) {
	if len(pts) == 0 {
		return nil, configErrf("complex point series needs at least one point")
	}
	s := &ComplexPointSeries{points: pts}
	s.base = newBase(KindComplexPoints, nil)
	s.point = true
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	for _, pt := range pts {
		if expr.IsOpaque(pt) {
			return nil, unsupportedErrf("complex point series cannot plot wrapped functions")
		}
		for _, v := range expr.FreeVars(pt) {
			if _, ok := s.params[v]; !ok {
				if len(s.params) == 0 {
					return nil, unsupportedErrf("point %s has free symbols, pass Params to bind them", pt)
				}
				return nil, configErrf("point %s: symbol %s is not a parameter", pt, v)
			}
		}
	}
	s.setDefaultLabel(exprTuple(pts...), exprTupleLaTeX(pts...))
	return s, nil
}

func (s *ComplexPointSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive complex points: %s with parameters %s",
			exprTuple(s.points...), s.paramTuple())
	}
	return fmt.Sprintf("complex points: %s", exprTuple(s.points...))
}

// ComplexPointData is the result of ComplexPointSeries.Data.
type ComplexPointData struct {
	X, Y []float64
	// Color is the evaluated color function, present only with UseCM
	// and a configured color function.
	Color []float64
}

// Data resolves the points. A point that fails to evaluate becomes NaN.
func (s *ComplexPointSeries) Data() (*ComplexPointData, error) {
	xs := make([]float64, len(s.points))
	ys := make([]float64, len(s.points))
	for i, pt := range s.points {
		p, err := expr.Compile(expr.SubsNumbers(pt, s.params), nil)
		if err != nil {
			return nil, configErrf("point %s: %v", pt, err)
		}
		z := s.evalC(p)
		xs[i], ys[i] = real(z), imag(z)
	}
	if s.steps {
		xs, ys = stepsLead(xs), stepsTrail(ys)
	}
	var cs []float64
	if s.useCM && s.color.n != 0 {
		var err error
		cs, err = s.color.apply(xs, ys)
		if err != nil {
			return nil, err
		}
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tp, cs)
	return &ComplexPointData{X: xs, Y: ys, Color: cs}, nil
}

// complexDesc formats the description of a complex-domain series.
func (b *base) complexDesc(name string, e expr.Expr) string {
	r := b.ranges[0]
	if b.Interactive() {
		return fmt.Sprintf("interactive %s for expression: %s over %s and parameters %s",
			name, e, rangeTupleC(r), b.paramTuple())
	}
	return fmt.Sprintf("%s: %s for re(%s) over (%s, %s) and im(%s) over (%s, %s)",
		name, e, r.Var, fmtF(real(r.Lo)), fmtF(real(r.Hi)),
		r.Var, fmtF(imag(r.Lo)), fmtF(imag(r.Hi)))
}

// A ComplexSurfaceSeries plots the real projection of a complex
// function over a rectangle of the complex plane, as a 3D surface or,
// with ThreeD(false), as a contour.
type ComplexSurfaceSeries struct {
	base
	expr expr.Expr
}

var _ Series = (*ComplexSurfaceSeries)(nil)

// ComplexSurface returns a series plotting e over the complex rectangle
// r.
func ComplexSurface(e expr.Expr, r grid.Range, opts ...Option) (*ComplexSurfaceSeries, error) {
	if expr.IsOpaque(e) {
		return nil, unsupportedErrf("complex surface series cannot plot wrapped functions")
	}
	s := &ComplexSurfaceSeries{expr: e}
	s.base = newBase(KindComplexSurface, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, true); err != nil {
		return nil, err
	}
	if !r.IsComplex() {
		return nil, configErrf("range for %s must span a complex rectangle", r.Var)
	}
	if err := s.checkVars([]string{r.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *ComplexSurfaceSeries) String() string {
	name := "complex contour"
	if s.threeD {
		name = "complex cartesian surface"
	}
	return s.complexDesc(name, s.expr)
}

// ComplexSurfaceData is the result of ComplexSurfaceSeries.Data. All
// three arrays share the shape (N2, N1) spanning the real axis along
// rows and the imaginary axis along columns.
type ComplexSurfaceData struct {
	X, Y grid.Array // re and im coordinates
	Z    grid.Array // real projection of the function values
}

// Data meshes the complex rectangle and evaluates the function.
func (s *ComplexSurfaceSeries) Data() (*ComplexSurfaceData, error) {
	p, err := s.progFor(s.expr, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}
	X, Y, Zc, err := s.complexGrid(s.ranges[0])
	if err != nil {
		return nil, err
	}
	Z := s.realParts(s.evalCGrid(p, Zc))
	applyTA(s.tx, X)
	applyTA(s.ty, Y)
	applyTA(s.tz, Z)
	return &ComplexSurfaceData{X: X, Y: Y, Z: Z}, nil
}

// A DomainColoringSeries plots the magnitude and argument of a complex
// function over a rectangle of the complex plane, along with a domain
// coloring image of them. With ThreeD the magnitude becomes a surface
// colored by the image.
type DomainColoringSeries struct {
	base
	expr expr.Expr
}

var _ Series = (*DomainColoringSeries)(nil)

// DomainColoring returns a series coloring the complex rectangle r by
// the argument of e.
func DomainColoring(e expr.Expr, r grid.Range, opts ...Option) (*DomainColoringSeries, error) {
	s := &DomainColoringSeries{expr: e}
	s.base = newBase(KindDomainColoring, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, true); err != nil {
		return nil, err
	}
	if !r.IsComplex() {
		return nil, configErrf("range for %s must span a complex rectangle", r.Var)
	}
	if err := s.checkVars([]string{r.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *DomainColoringSeries) String() string {
	name := "complex domain coloring"
	if s.threeD {
		name = "complex 3D domain coloring"
	}
	return s.complexDesc(name, s.expr)
}

// DomainColoringData is the result of DomainColoringSeries.Data. The
// image and the colorscale reflect the raw magnitude and argument; the
// TZ transform applies to Mag afterwards.
type DomainColoringData struct {
	X, Y       grid.Array // re and im coordinates
	Mag, Arg   grid.Array // absolute value and argument of the function
	Img        *image.NRGBA
	Colorscale []color.NRGBA
}

// Data meshes the complex rectangle, evaluates the function and renders
// the coloring image.
func (s *DomainColoringSeries) Data() (*DomainColoringData, error) {
	p, err := s.progFor(s.expr, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}
	X, Y, Zc, err := s.complexGrid(s.ranges[0])
	if err != nil {
		return nil, err
	}
	W := s.evalCGrid(p, Zc)
	mag, arg := W.Abs(), W.Arg()
	img := coloring.Image(mag, arg, s.scheme)
	scale := coloring.Colorscale(s.scheme, 256)
	applyTA(s.tx, X)
	applyTA(s.ty, Y)
	applyTA(s.tz, mag)
	return &DomainColoringData{X: X, Y: Y, Mag: mag, Arg: arg, Img: img, Colorscale: scale}, nil
}
