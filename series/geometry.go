// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"math"

	"github.com/aclements/go-symplot/geom"
	"github.com/aclements/go-symplot/grid"
)

// A GeometrySeries plots a geometric entity: a point, a segment, a
// circle, an ellipse or a polygon. Circles and ellipses are discretized
// into N boundary points; segments and polygons yield their vertices.
type GeometrySeries struct {
	base
	entity geom.Entity
}

var _ Series = (*GeometrySeries)(nil)

// Geometry returns a series plotting the entity. Symbolic coordinates
// must be bound by parameters. Planes carry their own ranges; use Plane
// for those.
func Geometry(ent geom.Entity, opts ...Option) (*GeometrySeries, error) {
	if _, ok := ent.(geom.Plane); ok {
		return nil, unsupportedErrf("plane entities need three ranges, use Plane")
	}
	s := &GeometrySeries{entity: ent}
	s.base = newBase(KindGeometry, nil)
	switch ent.(type) {
	case geom.Point2, geom.Point3:
		s.point = true
	}
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	for _, v := range geom.FreeVars(ent) {
		if _, ok := s.params[v]; !ok {
			return nil, configErrf("symbol %s is neither a plot variable nor a parameter", v)
		}
	}
	s.setDefaultLabel(ent.String(), ent.LaTeX())
	return s, nil
}

func (s *GeometrySeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive geometry entity: %s with parameters %s", s.entity, s.paramTuple())
	}
	return fmt.Sprintf("geometry entity: %s", s.entity)
}

// GeometryData is the result of GeometrySeries.Data. Z is set only for
// spatial points.
type GeometryData struct {
	X, Y []float64
	Z    []float64
}

// Data resolves the entity's coordinates and discretizes its boundary.
// Closed shapes repeat their first point at the end.
func (s *GeometrySeries) Data() (*GeometryData, error) {
	switch ent := s.entity.(type) {
	case geom.Point2:
		x, y, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		return &GeometryData{X: []float64{x}, Y: []float64{y}}, nil

	case geom.Point3:
		x, y, z, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		return &GeometryData{X: []float64{x}, Y: []float64{y}, Z: []float64{z}}, nil

	case geom.Segment:
		x1, y1, x2, y2, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		return &GeometryData{X: []float64{x1, x2}, Y: []float64{y1, y2}}, nil

	case geom.Circle:
		cx, cy, r, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		return s.ellipsePoints(cx, cy, r, r)

	case geom.Ellipse:
		cx, cy, hr, vr, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		return s.ellipsePoints(cx, cy, hr, vr)

	case geom.Polygon:
		xs, ys, err := ent.Resolve(s.params)
		if err != nil {
			return nil, configErrf("%v", err)
		}
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
		return &GeometryData{X: xs, Y: ys}, nil
	}
	return nil, unsupportedErrf("cannot discretize %T", s.entity)
}

// ellipsePoints samples the boundary of an axis-aligned ellipse. The
// first and last points coincide.
func (s *GeometrySeries) ellipsePoints(cx, cy, hr, vr float64) (*GeometryData, error) {
	ts, err := grid.Points(0, 2*math.Pi, s.n[0], grid.Lin)
	if err != nil {
		return nil, domainErrf("%v", err)
	}
	xs := make([]float64, len(ts))
	ys := make([]float64, len(ts))
	for i, t := range ts {
		xs[i] = cx + hr*math.Cos(t)
		ys[i] = cy + vr*math.Sin(t)
	}
	return &GeometryData{X: xs, Y: ys}, nil
}

// A PlaneSeries meshes the part of a plane that crosses a box-shaped
// domain, oriented so the mesh axes follow the plot axes the plane
// spans.
type PlaneSeries struct {
	base
	plane geom.Plane
}

var _ Series = (*PlaneSeries)(nil)

// Plane returns a series meshing the plane p inside the box rx by ry by
// rz. Symbolic coordinates of p must be bound by parameters.
func Plane(p geom.Plane, rx, ry, rz grid.Range, opts ...Option) (*PlaneSeries, error) {
	s := &PlaneSeries{plane: p}
	s.base = newBase(KindPlane, []grid.Range{rx, ry, rz})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	for _, v := range geom.FreeVars(p) {
		if _, ok := s.params[v]; !ok {
			return nil, configErrf("symbol %s is neither a plot variable nor a parameter", v)
		}
	}
	s.setDefaultLabel(p.String(), p.LaTeX())
	return s, nil
}

func (s *PlaneSeries) String() string {
	str := fmt.Sprintf("plane series: %s over %s", s.plane, rangeTuples(s.ranges, rangeTupleInt))
	if s.Interactive() {
		return "interactive " + str + " with parameters " + s.paramList()
	}
	return str
}

// PlaneData is the result of PlaneSeries.Data. The three arrays share
// one 2D shape.
type PlaneData struct {
	X, Y, Z grid.Array
}

// Data resolves the plane and meshes it. Planes with a vertical
// component are extruded along z. For general orientations the mesh
// covers the x and y ranges and z values outside the z range become
// NaN; NaNClip(false) keeps them.
func (s *PlaneSeries) Data() (*PlaneData, error) {
	px, py, pz, a, b, c, err := s.plane.Resolve(s.params)
	if err != nil {
		return nil, configErrf("%v", err)
	}

	switch {
	case b == 0 && c == 0:
		// Parallel to the yz plane.
		ys, err := s.axis(1)
		if err != nil {
			return nil, err
		}
		zs, err := s.axis(2)
		if err != nil {
			return nil, err
		}
		Y, Z := grid.Mesh2D(ys, zs)
		return &PlaneData{X: grid.Const(px, Y.Shape...), Y: Y, Z: Z}, nil

	case a == 0 && c == 0:
		// Parallel to the xz plane.
		xs, err := s.axis(0)
		if err != nil {
			return nil, err
		}
		zs, err := s.axis(2)
		if err != nil {
			return nil, err
		}
		X, Z := grid.Mesh2D(xs, zs)
		return &PlaneData{X: X, Y: grid.Const(py, X.Shape...), Z: Z}, nil

	case a == 0 && b == 0:
		// Parallel to the xy plane.
		xs, err := s.axis(0)
		if err != nil {
			return nil, err
		}
		ys, err := s.axis(1)
		if err != nil {
			return nil, err
		}
		X, Y := grid.Mesh2D(xs, ys)
		return &PlaneData{X: X, Y: Y, Z: grid.Const(pz, X.Shape...)}, nil

	case c == 0:
		// Vertical: the intersection with the xy plane extruded
		// along z. Mesh the better-conditioned coordinate.
		zs, err := s.axis(2)
		if err != nil {
			return nil, err
		}
		if math.Abs(a) <= math.Abs(b) {
			xs, err := s.axis(0)
			if err != nil {
				return nil, err
			}
			X, Z := grid.Mesh2D(xs, zs)
			Y := X.Map(func(x float64) float64 { return py - a/b*(x-px) })
			return &PlaneData{X: X, Y: Y, Z: Z}, nil
		}
		ys, err := s.axis(1)
		if err != nil {
			return nil, err
		}
		Y, Z := grid.Mesh2D(ys, zs)
		X := Y.Map(func(y float64) float64 { return px - b/a*(y-py) })
		return &PlaneData{X: X, Y: Y, Z: Z}, nil
	}

	// General orientation: z as a function of x and y.
	xs, err := s.axis(0)
	if err != nil {
		return nil, err
	}
	ys, err := s.axis(1)
	if err != nil {
		return nil, err
	}
	X, Y := grid.Mesh2D(xs, ys)
	Z := grid.Zeros(X.Shape...)
	zlo, zhi := s.ranges[2].Real()
	if zlo > zhi {
		zlo, zhi = zhi, zlo
	}
	for i := range Z.Data {
		z := pz - (a*(X.Data[i]-px)+b*(Y.Data[i]-py))/c
		if s.nanClip && (z < zlo || z > zhi) {
			z = math.NaN()
		}
		Z.Data[i] = z
	}
	return &PlaneData{X: X, Y: Y, Z: Z}, nil
}

func (s *PlaneSeries) surfaceGrid() (grid.Array, grid.Array, grid.Array, error) {
	d, err := s.Data()
	if err != nil {
		return grid.Array{}, grid.Array{}, grid.Array{}, err
	}
	return d.X, d.Y, d.Z, nil
}
