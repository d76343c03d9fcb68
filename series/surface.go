// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

// A SurfaceSeries plots an expression of two variables as z over the
// (x, y) plane, either as a 3D surface or as a 2D contour plot.
type SurfaceSeries struct {
	base
	expr expr.Expr
}

var _ Series = (*SurfaceSeries)(nil)

// Surface returns a series plotting e as a surface over the real ranges
// rx and ry.
func Surface(e expr.Expr, rx, ry grid.Range, opts ...Option) (*SurfaceSeries, error) {
	return newSurface(KindSurface, e, rx, ry, opts)
}

// Contour returns a series plotting e as contour lines over the real
// ranges rx and ry. It produces the same data as Surface; only the
// rendering intent differs.
func Contour(e expr.Expr, rx, ry grid.Range, opts ...Option) (*SurfaceSeries, error) {
	return newSurface(KindContour, e, rx, ry, opts)
}

func newSurface(kind Kind, e expr.Expr, rx, ry grid.Range, opts []Option) (*SurfaceSeries, error) {
	s := &SurfaceSeries{expr: e}
	s.base = newBase(kind, []grid.Range{rx, ry})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{rx.Var, ry.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *SurfaceSeries) String() string {
	name := "cartesian surface"
	if s.kind == KindContour {
		name = "contour"
	}
	if s.Interactive() {
		return fmt.Sprintf("interactive %s: %s with ranges %s and parameters %s",
			name, s.expr, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("%s: %s for %s and %s",
		name, s.expr, rangeOver(s.ranges[0]), rangeOver(s.ranges[1]))
}

// SurfaceData is the result of SurfaceSeries.Data. All arrays have shape
// (N2, N1): rows scan the second range, columns the first.
type SurfaceData struct {
	X, Y, Z grid.Array
}

// Data discretizes the plane and evaluates the series. With Polar the
// first range is a radius and the second an angle; z is evaluated on the
// (r, theta) grid and the returned X, Y are the derived Cartesian
// coordinates.
func (s *SurfaceSeries) Data() (*SurfaceData, error) {
	p, err := s.progFor(s.expr, s.ranges[0].Var, s.ranges[1].Var)
	if err != nil {
		return nil, err
	}
	xs, err := s.axis(0)
	if err != nil {
		return nil, err
	}
	ys, err := s.axis(1)
	if err != nil {
		return nil, err
	}
	X, Y := grid.Mesh2D(xs, ys)

	Z := s.gridVals(p, X, Y)
	if s.polar {
		X, Y = polarMesh(X, Y)
	}
	applyTA(s.tx, X)
	applyTA(s.ty, Y)
	applyTA(s.tz, Z)
	return &SurfaceData{X: X, Y: Y, Z: Z}, nil
}

// EvalColor evaluates the colormap channel over the arrays returned by
// Data, passed in (X, Y, Z) order. Without a color function the channel
// is z. A 1-argument function sees x, a 2-argument function (x, y) and a
// 3-argument function (x, y, z).
func (s *SurfaceSeries) EvalColor(args ...grid.Array) (grid.Array, error) {
	if len(args) < 3 {
		return grid.Array{}, configErrf("surface color wants (x, y, z) arrays, got %d", len(args))
	}
	switch s.color.n {
	case 0:
		return args[2], nil
	case 1:
		return s.color.applyA(args[0])
	case 2:
		return s.color.applyA(args[0], args[1])
	}
	return s.color.applyA(args[0], args[1], args[2])
}

func (s *SurfaceSeries) surfaceGrid() (grid.Array, grid.Array, grid.Array, error) {
	d, err := s.Data()
	if err != nil {
		return grid.Array{}, grid.Array{}, grid.Array{}, err
	}
	return d.X, d.Y, d.Z, nil
}

// A ParametricSurfaceSeries plots the surface (x(u,v), y(u,v), z(u,v)).
type ParametricSurfaceSeries struct {
	base
	ex, ey, ez expr.Expr
}

var _ Series = (*ParametricSurfaceSeries)(nil)

// ParametricSurface returns a series plotting (ex, ey, ez) over the
// parameter ranges ru and rv.
func ParametricSurface(ex, ey, ez expr.Expr, ru, rv grid.Range, opts ...Option) (*ParametricSurfaceSeries, error) {
	s := &ParametricSurfaceSeries{ex: ex, ey: ey, ez: ez}
	s.base = newBase(KindParametricSurface, []grid.Range{ru, rv})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{ru.Var, rv.Var}, ex, ey, ez); err != nil {
		return nil, err
	}
	s.setDefaultLabel(exprTuple(ex, ey, ez), exprTupleLaTeX(ex, ey, ez))
	return s, nil
}

func (s *ParametricSurfaceSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive parametric cartesian surface: (%s, %s, %s) with ranges %s and parameters %s",
			s.ex, s.ey, s.ez, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("parametric cartesian surface: (%s, %s, %s) for %s and %s",
		s.ex, s.ey, s.ez, rangeOver(s.ranges[0]), rangeOver(s.ranges[1]))
}

// ParametricSurfaceData is the result of ParametricSurfaceSeries.Data.
// All arrays have shape (N2, N1). U and V are the parameter grids the
// coordinates were evaluated on.
type ParametricSurfaceData struct {
	X, Y, Z grid.Array
	U, V    grid.Array
}

// Data discretizes the parameter plane and evaluates all three
// coordinates over it.
func (s *ParametricSurfaceSeries) Data() (*ParametricSurfaceData, error) {
	px, err := s.progFor(s.ex, s.ranges[0].Var, s.ranges[1].Var)
	if err != nil {
		return nil, err
	}
	py, err := s.progFor(s.ey, s.ranges[0].Var, s.ranges[1].Var)
	if err != nil {
		return nil, err
	}
	pz, err := s.progFor(s.ez, s.ranges[0].Var, s.ranges[1].Var)
	if err != nil {
		return nil, err
	}
	us, err := s.axis(0)
	if err != nil {
		return nil, err
	}
	vs, err := s.axis(1)
	if err != nil {
		return nil, err
	}
	U, V := grid.Mesh2D(us, vs)

	X := s.gridVals(px, U, V)
	Y := s.gridVals(py, U, V)
	Z := s.gridVals(pz, U, V)
	applyTA(s.tx, X)
	applyTA(s.ty, Y)
	applyTA(s.tz, Z)
	return &ParametricSurfaceData{X: X, Y: Y, Z: Z, U: U, V: V}, nil
}

// EvalColor evaluates the colormap channel over the arrays returned by
// Data, passed in (X, Y, Z, U, V) order. Without a color function the
// channel is z. A 1-argument function sees u, a 2-argument function
// (u, v), a 3-argument function (x, y, z) and a 5-argument function all
// five arrays.
func (s *ParametricSurfaceSeries) EvalColor(args ...grid.Array) (grid.Array, error) {
	if len(args) < 5 {
		return grid.Array{}, configErrf("parametric surface color wants (x, y, z, u, v) arrays, got %d", len(args))
	}
	switch s.color.n {
	case 0:
		return args[2], nil
	case 1:
		return s.color.applyA(args[3])
	case 2:
		return s.color.applyA(args[3], args[4])
	case 3:
		return s.color.applyA(args[0], args[1], args[2])
	}
	return s.color.applyA(args...)
}

func (s *ParametricSurfaceSeries) surfaceGrid() (grid.Array, grid.Array, grid.Array, error) {
	d, err := s.Data()
	if err != nil {
		return grid.Array{}, grid.Array{}, grid.Array{}, err
	}
	return d.X, d.Y, d.Z, nil
}
