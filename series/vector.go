// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/geom"
	"github.com/aclements/go-symplot/grid"
)

// A Vector2DSeries plots the planar vector field (u(x, y), v(x, y)).
type Vector2DSeries struct {
	base
	eu, ev expr.Expr
}

var _ Series = (*Vector2DSeries)(nil)

// Vector2D returns a series plotting the vector field with components
// eu and ev over the rectangle rx by ry.
func Vector2D(eu, ev expr.Expr, rx, ry grid.Range, opts ...Option) (*Vector2DSeries, error) {
	s := &Vector2DSeries{eu: eu, ev: ev}
	s.base = newBase(KindVector2D, []grid.Range{rx, ry})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{rx.Var, ry.Var}, eu, ev); err != nil {
		return nil, err
	}
	s.setDefaultLabel(exprTuple(eu, ev), exprTupleLaTeX(eu, ev))
	return s, nil
}

func (s *Vector2DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive 2D vector series: (%s, %s) with ranges %s and parameters %s",
			s.eu, s.ev, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("2D vector series: [%s, %s] over %s",
		s.eu, s.ev, rangeTuples(s.ranges, rangeTuple))
}

// Vector2DData is the result of Vector2DSeries.Data. All four arrays
// share the shape (N2, N1).
type Vector2DData struct {
	X, Y grid.Array // grid coordinates
	U, V grid.Array // field components
}

// Data meshes the domain and evaluates the field components at every
// grid point.
func (s *Vector2DSeries) Data() (*Vector2DData, error) {
	pu, err := s.progFor(s.eu, s.ranges[0].Var, s.ranges[1].Var)
	if err != nil {
		return nil, err
	}
	pv, err := s.progFor(s.ev, s.ranges[0].Var, s.ranges[1].Var)
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
	U := s.gridVals(pu, X, Y)
	V := s.gridVals(pv, X, Y)
	if s.normalize {
		normalizeField(U, V)
	}
	applyTA(s.tx, X)
	applyTA(s.ty, Y)
	applyTA(s.tx, U)
	applyTA(s.ty, V)
	return &Vector2DData{X: X, Y: Y, U: U, V: V}, nil
}

// A Vector3DSeries plots the spatial vector field
// (u(x, y, z), v(x, y, z), w(x, y, z)).
type Vector3DSeries struct {
	base
	eu, ev, ew expr.Expr
}

var _ Series = (*Vector3DSeries)(nil)

// Vector3D returns a series plotting the vector field with components
// eu, ev and ew over the box rx by ry by rz.
func Vector3D(eu, ev, ew expr.Expr, rx, ry, rz grid.Range, opts ...Option) (*Vector3DSeries, error) {
	s := &Vector3DSeries{eu: eu, ev: ev, ew: ew}
	s.base = newBase(KindVector3D, []grid.Range{rx, ry, rz})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{rx.Var, ry.Var, rz.Var}, eu, ev, ew); err != nil {
		return nil, err
	}
	s.setDefaultLabel(exprTuple(eu, ev, ew), exprTupleLaTeX(eu, ev, ew))
	return s, nil
}

func (s *Vector3DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive 3D vector series: (%s, %s, %s) with ranges %s and parameters %s",
			s.eu, s.ev, s.ew, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("3D vector series: [%s, %s, %s] over %s",
		s.eu, s.ev, s.ew, rangeTuples(s.ranges, rangeTuple))
}

// Vector3DData is the result of Vector3DSeries.Data. All six arrays
// share the shape (N1, N2, N3): the first axis walks the x samples, the
// second the y samples and the third the z samples.
type Vector3DData struct {
	X, Y, Z grid.Array // grid coordinates
	U, V, W grid.Array // field components
}

// Data meshes the domain and evaluates the field components at every
// grid point.
func (s *Vector3DSeries) Data() (*Vector3DData, error) {
	vars := []string{s.ranges[0].Var, s.ranges[1].Var, s.ranges[2].Var}
	pu, err := s.progFor(s.eu, vars...)
	if err != nil {
		return nil, err
	}
	pv, err := s.progFor(s.ev, vars...)
	if err != nil {
		return nil, err
	}
	pw, err := s.progFor(s.ew, vars...)
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
	zs, err := s.axis(2)
	if err != nil {
		return nil, err
	}
	X, Y, Z := grid.Mesh3D(xs, ys, zs)
	U := s.gridVals(pu, X, Y, Z)
	V := s.gridVals(pv, X, Y, Z)
	W := s.gridVals(pw, X, Y, Z)
	if s.normalize {
		normalizeField(U, V, W)
	}
	applyVectorT(&s.base, X, Y, Z, U, V, W)
	return &Vector3DData{X: X, Y: Y, Z: Z, U: U, V: V, W: W}, nil
}

// normalizeField rescales every grid vector to unit length, preserving
// direction. Zero vectors come out as NaN.
func normalizeField(comps ...grid.Array) {
	for i := range comps[0].Data {
		var m float64
		for _, c := range comps {
			m = math.Hypot(m, c.Data[i])
		}
		for _, c := range comps {
			c.Data[i] /= m
		}
	}
}

// applyVectorT applies the coordinate transforms to the grid and to the
// field components alike.
func applyVectorT(b *base, X, Y, Z, U, V, W grid.Array) {
	applyTA(b.tx, X)
	applyTA(b.ty, Y)
	applyTA(b.tz, Z)
	applyTA(b.tx, U)
	applyTA(b.ty, V)
	applyTA(b.tz, W)
}

// sliceSurface is a surface-like series that can supply the grid a
// sliced vector field is evaluated on.
type sliceSurface interface {
	Series
	surfaceGrid() (X, Y, Z grid.Array, err error)
}

// A SlicedVector3DSeries plots a spatial vector field evaluated on a
// surface rather than on a full 3D mesh. The surface may be a plane, an
// expression of two of the plot variables, or a previously constructed
// surface series.
type SlicedVector3DSeries struct {
	base
	eu, ev, ew expr.Expr
	slice      sliceSurface
	// perm maps the slice grid arrays (X, Y, Z) to domain axes:
	// coordinate perm[i] of the field takes the slice's i-th array.
	perm    [3]int
	extents [3]grid.Range
}

var _ Series = (*SlicedVector3DSeries)(nil)

// SlicedVector3D returns a series plotting the vector field with
// components eu, ev and ew on the slice surface, bounded by the box rx
// by ry by rz. The slice may be a geom.Plane, an expr.Expr depending on
// exactly two of the plot variables, or a surface-like series. A nil
// slice takes the surface from the Slice option.
func SlicedVector3D(slice interface{}, eu, ev, ew expr.Expr, rx, ry, rz grid.Range, opts ...Option) (*SlicedVector3DSeries, error) {
	s := &SlicedVector3DSeries{eu: eu, ev: ev, ew: ew}
	s.base = newBase(KindSlicedVector3D, []grid.Range{rx, ry, rz})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if slice == nil {
		slice = s.base.slice
	}
	if slice == nil {
		return nil, configErrf("sliced vector field needs a slice surface")
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{rx.Var, ry.Var, rz.Var}, eu, ev, ew); err != nil {
		return nil, err
	}
	if err := s.buildSlice(slice); err != nil {
		return nil, err
	}
	s.setDefaultLabel(exprTuple(eu, ev, ew), exprTupleLaTeX(eu, ev, ew))
	if s.Interactive() {
		if err := s.computeExtents(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// buildSlice turns the slice argument into the sub-series that produces
// the evaluation grid.
func (s *SlicedVector3DSeries) buildSlice(slice interface{}) error {
	switch sl := slice.(type) {
	case geom.Plane:
		opts := []Option{N1(s.n[0]), N2(s.n[1]), N3(s.n[2])}
		if len(geom.FreeVars(sl)) > 0 {
			opts = append(opts, Params(s.params))
		}
		ps, err := Plane(sl, s.ranges[0], s.ranges[1], s.ranges[2], opts...)
		if err != nil {
			return err
		}
		s.slice, s.perm = ps, [3]int{0, 1, 2}
		return nil
	case expr.Expr:
		return s.buildSliceExpr(sl)
	case sliceSurface:
		s.slice, s.perm = sl, [3]int{0, 1, 2}
		return nil
	}
	return unsupportedErrf("cannot slice a vector field with %T", slice)
}

// buildSliceExpr builds the slice surface for an expression slice. The
// expression's two plot variables pick the mesh axes; its value supplies
// the remaining coordinate.
func (s *SlicedVector3DSeries) buildSliceExpr(e expr.Expr) error {
	pos := make(map[string]int, len(s.ranges))
	for i, r := range s.ranges {
		pos[r.Var] = i
	}
	var axes []int
	withParams := false
	for _, v := range expr.FreeVars(e) {
		if i, ok := pos[v]; ok {
			axes = append(axes, i)
		} else if _, ok := s.params[v]; ok {
			withParams = true
		} else {
			return configErrf("symbol %s is neither a plot variable nor a parameter", v)
		}
	}
	if len(axes) != 2 {
		return configErrf("slice expression %s must depend on exactly two plot variables", e)
	}
	sort.Ints(axes)
	i, j := axes[0], axes[1]
	opts := []Option{N1(s.n[i]), N2(s.n[j])}
	if withParams {
		opts = append(opts, Params(s.params))
	}
	surf, err := Surface(e, s.ranges[i], s.ranges[j], opts...)
	if err != nil {
		return err
	}
	s.slice, s.perm = surf, [3]int{i, j, 3 - i - j}
	return nil
}

// SetParams updates the parameter values and keeps an interactive slice
// surface in lockstep for the parameters the two share.
func (s *SlicedVector3DSeries) SetParams(params map[string]float64) error {
	if err := s.base.SetParams(params); err != nil {
		return err
	}
	if s.slice == nil || !s.slice.Interactive() {
		return nil
	}
	sub := make(map[string]float64)
	for k, v := range s.slice.Params() {
		sub[k] = v
	}
	for k, v := range s.params {
		if _, ok := sub[k]; ok {
			sub[k] = v
		}
	}
	if err := s.slice.SetParams(sub); err != nil {
		return err
	}
	return s.computeExtents()
}

// sliceGrid evaluates the slice surface and orders its arrays by domain
// axis.
func (s *SlicedVector3DSeries) sliceGrid() (coords [3]grid.Array, err error) {
	gx, gy, gz, err := s.slice.surfaceGrid()
	if err != nil {
		return coords, err
	}
	coords[s.perm[0]], coords[s.perm[1]], coords[s.perm[2]] = gx, gy, gz
	return coords, nil
}

// computeExtents records the coordinate extents of the slice grid.
// Interactive series print these instead of the nominal ranges.
func (s *SlicedVector3DSeries) computeExtents() error {
	coords, err := s.sliceGrid()
	if err != nil {
		return err
	}
	for i, c := range coords {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range c.Data {
			if math.IsNaN(v) {
				continue
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		if lo > hi {
			lo, hi = math.NaN(), math.NaN()
		}
		s.extents[i] = grid.R(s.ranges[i].Var, lo, hi)
	}
	return nil
}

func (s *SlicedVector3DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("sliced interactive 3D vector series: (%s, %s, %s) with ranges %s and parameters %s at %s",
			s.eu, s.ev, s.ew, rangeTuples(s.extents[:], rangeTuple), s.paramTuple(), s.slice)
	}
	return fmt.Sprintf("sliced 3D vector series: [%s, %s, %s] over %s at %s",
		s.eu, s.ev, s.ew, rangeTuples(s.ranges, rangeTuple), s.slice)
}

// SlicedVector3DData is the result of SlicedVector3DSeries.Data. The
// coordinate arrays trace the slice surface and all six arrays share
// its shape.
type SlicedVector3DData struct {
	X, Y, Z grid.Array
	U, V, W grid.Array
}

// Data evaluates the slice surface and then the field components at
// every point of it.
func (s *SlicedVector3DSeries) Data() (*SlicedVector3DData, error) {
	coords, err := s.sliceGrid()
	if err != nil {
		return nil, err
	}
	vars := []string{s.ranges[0].Var, s.ranges[1].Var, s.ranges[2].Var}
	pu, err := s.progFor(s.eu, vars...)
	if err != nil {
		return nil, err
	}
	pv, err := s.progFor(s.ev, vars...)
	if err != nil {
		return nil, err
	}
	pw, err := s.progFor(s.ew, vars...)
	if err != nil {
		return nil, err
	}
	U := s.gridVals(pu, coords[0], coords[1], coords[2])
	V := s.gridVals(pv, coords[0], coords[1], coords[2])
	W := s.gridVals(pw, coords[0], coords[1], coords[2])
	if s.normalize {
		normalizeField(U, V, W)
	}
	applyVectorT(&s.base, coords[0], coords[1], coords[2], U, V, W)
	return &SlicedVector3DData{X: coords[0], Y: coords[1], Z: coords[2], U: U, V: V, W: W}, nil
}
