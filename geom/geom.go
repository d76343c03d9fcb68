// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom defines geometric entities with symbolic coordinates:
// points, segments, circles, ellipses, polygons and planes. Coordinates
// are expressions, so an entity may depend on parameters that are bound
// to numbers only when the entity is discretized.
package geom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-symplot/expr"
)

// An Entity is a geometric object that a data series can discretize.
type Entity interface {
	fmt.Stringer
	// LaTeX returns the LaTeX form of the entity.
	LaTeX() string

	entity()
}

// Point2 is a point in the plane.
type Point2 struct {
	X, Y expr.Expr
}

// Point3 is a point in space.
type Point3 struct {
	X, Y, Z expr.Expr
}

// Segment is the line segment between two points.
type Segment struct {
	P1, P2 Point2
}

// Circle is a circle with the given center and radius.
type Circle struct {
	Center Point2
	Radius expr.Expr
}

// Ellipse is an axis-aligned ellipse with horizontal semi-axis HRadius
// and vertical semi-axis VRadius.
type Ellipse struct {
	Center  Point2
	HRadius expr.Expr
	VRadius expr.Expr
}

// Polygon is a closed polygon. The boundary runs through the vertices in
// order and back to the first one.
type Polygon struct {
	Vertices []Point2
}

// Plane is the plane through P with the given normal vector.
type Plane struct {
	P      Point3
	Normal [3]expr.Expr
}

func (Point2) entity()  {}
func (Point3) entity()  {}
func (Segment) entity() {}
func (Circle) entity()  {}
func (Ellipse) entity() {}
func (Polygon) entity() {}
func (Plane) entity()   {}

// P2 returns a Point2 with numeric coordinates.
func P2(x, y float64) Point2 {
	return Point2{expr.Number(complex(x, 0)), expr.Number(complex(y, 0))}
}

// P3 returns a Point3 with numeric coordinates.
func P3(x, y, z float64) Point3 {
	return Point3{expr.Number(complex(x, 0)), expr.Number(complex(y, 0)), expr.Number(complex(z, 0))}
}

// NormalV returns a numeric normal vector for constructing a Plane.
func NormalV(a, b, c float64) [3]expr.Expr {
	return [3]expr.Expr{expr.Number(complex(a, 0)), expr.Number(complex(b, 0)), expr.Number(complex(c, 0))}
}

func (p Point2) String() string {
	return fmt.Sprintf("Point2D(%s, %s)", p.X, p.Y)
}

func (p Point3) String() string {
	return fmt.Sprintf("Point3D(%s, %s, %s)", p.X, p.Y, p.Z)
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment2D(%s, %s)", s.P1, s.P2)
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle(%s, %s)", c.Center, c.Radius)
}

func (e Ellipse) String() string {
	return fmt.Sprintf("Ellipse(%s, %s, %s)", e.Center, e.HRadius, e.VRadius)
}

func (p Polygon) String() string {
	parts := make([]string, len(p.Vertices))
	for i, v := range p.Vertices {
		parts[i] = v.String()
	}
	return "Polygon(" + strings.Join(parts, ", ") + ")"
}

func (p Plane) String() string {
	return fmt.Sprintf("Plane(%s, (%s, %s, %s))", p.P, p.Normal[0], p.Normal[1], p.Normal[2])
}

func (p Point2) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Point2D}\left(%s, %s\right)`, p.X.LaTeX(), p.Y.LaTeX())
}

func (p Point3) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Point3D}\left(%s, %s, %s\right)`, p.X.LaTeX(), p.Y.LaTeX(), p.Z.LaTeX())
}

func (s Segment) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Segment2D}\left(%s, %s\right)`, s.P1.LaTeX(), s.P2.LaTeX())
}

func (c Circle) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Circle}\left(%s, %s\right)`, c.Center.LaTeX(), c.Radius.LaTeX())
}

func (e Ellipse) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Ellipse}\left(%s, %s, %s\right)`, e.Center.LaTeX(), e.HRadius.LaTeX(), e.VRadius.LaTeX())
}

func (p Polygon) LaTeX() string {
	parts := make([]string, len(p.Vertices))
	for i, v := range p.Vertices {
		parts[i] = v.LaTeX()
	}
	return `\operatorname{Polygon}\left(` + strings.Join(parts, ", ") + `\right)`
}

func (p Plane) LaTeX() string {
	return fmt.Sprintf(`\operatorname{Plane}\left(%s, \left(%s, %s, %s\right)\right)`,
		p.P.LaTeX(), p.Normal[0].LaTeX(), p.Normal[1].LaTeX(), p.Normal[2].LaTeX())
}

// scalar evaluates a coordinate expression after substituting params.
// It fails if symbols remain unbound or the value is not real.
func scalar(e expr.Expr, params map[string]float64) (float64, error) {
	if e == nil {
		return 0, fmt.Errorf("missing coordinate")
	}
	sub := expr.SubsNumbers(e, params)
	v, ok := expr.Constant(sub)
	if !ok {
		if free := expr.FreeVars(sub); len(free) > 0 {
			return 0, fmt.Errorf("coordinate %s: unbound symbols %s", e, strings.Join(free, ", "))
		}
		return 0, fmt.Errorf("coordinate %s is not constant", e)
	}
	if imag(v) != 0 {
		return 0, fmt.Errorf("coordinate %s is not real", e)
	}
	return real(v), nil
}

// Resolve substitutes params into the coordinates and returns their
// numeric values.
func (p Point2) Resolve(params map[string]float64) (x, y float64, err error) {
	if x, err = scalar(p.X, params); err != nil {
		return 0, 0, err
	}
	if y, err = scalar(p.Y, params); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// Resolve substitutes params into the coordinates and returns their
// numeric values.
func (p Point3) Resolve(params map[string]float64) (x, y, z float64, err error) {
	if x, err = scalar(p.X, params); err != nil {
		return 0, 0, 0, err
	}
	if y, err = scalar(p.Y, params); err != nil {
		return 0, 0, 0, err
	}
	if z, err = scalar(p.Z, params); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}

// Resolve returns the numeric endpoints of the segment.
func (s Segment) Resolve(params map[string]float64) (x1, y1, x2, y2 float64, err error) {
	if x1, y1, err = s.P1.Resolve(params); err != nil {
		return 0, 0, 0, 0, err
	}
	if x2, y2, err = s.P2.Resolve(params); err != nil {
		return 0, 0, 0, 0, err
	}
	return x1, y1, x2, y2, nil
}

// Resolve returns the numeric center and radius of the circle.
// The radius must be positive.
func (c Circle) Resolve(params map[string]float64) (cx, cy, r float64, err error) {
	if cx, cy, err = c.Center.Resolve(params); err != nil {
		return 0, 0, 0, err
	}
	if r, err = scalar(c.Radius, params); err != nil {
		return 0, 0, 0, err
	}
	if r <= 0 {
		return 0, 0, 0, fmt.Errorf("circle radius %v is not positive", r)
	}
	return cx, cy, r, nil
}

// Resolve returns the numeric center and semi-axes of the ellipse.
// Both semi-axes must be positive.
func (e Ellipse) Resolve(params map[string]float64) (cx, cy, hr, vr float64, err error) {
	if cx, cy, err = e.Center.Resolve(params); err != nil {
		return 0, 0, 0, 0, err
	}
	if hr, err = scalar(e.HRadius, params); err != nil {
		return 0, 0, 0, 0, err
	}
	if vr, err = scalar(e.VRadius, params); err != nil {
		return 0, 0, 0, 0, err
	}
	if hr <= 0 || vr <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("ellipse radii (%v, %v) are not positive", hr, vr)
	}
	return cx, cy, hr, vr, nil
}

// Resolve returns the numeric vertex coordinates in order. A polygon
// needs at least three vertices.
func (p Polygon) Resolve(params map[string]float64) (xs, ys []float64, err error) {
	if len(p.Vertices) < 3 {
		return nil, nil, fmt.Errorf("polygon has %d vertices, need at least 3", len(p.Vertices))
	}
	xs = make([]float64, len(p.Vertices))
	ys = make([]float64, len(p.Vertices))
	for i, v := range p.Vertices {
		if xs[i], ys[i], err = v.Resolve(params); err != nil {
			return nil, nil, err
		}
	}
	return xs, ys, nil
}

// Resolve returns the numeric base point and normal vector of the plane.
// The normal must not be the zero vector.
func (p Plane) Resolve(params map[string]float64) (px, py, pz, a, b, c float64, err error) {
	if px, py, pz, err = p.P.Resolve(params); err != nil {
		return
	}
	if a, err = scalar(p.Normal[0], params); err != nil {
		return
	}
	if b, err = scalar(p.Normal[1], params); err != nil {
		return
	}
	if c, err = scalar(p.Normal[2], params); err != nil {
		return
	}
	if a == 0 && b == 0 && c == 0 {
		err = fmt.Errorf("plane normal is the zero vector")
	}
	return
}

// FreeVars returns the union of the free symbols of the entity's
// coordinates, sorted.
func FreeVars(e Entity) []string {
	var exprs []expr.Expr
	switch e := e.(type) {
	case Point2:
		exprs = []expr.Expr{e.X, e.Y}
	case Point3:
		exprs = []expr.Expr{e.X, e.Y, e.Z}
	case Segment:
		exprs = []expr.Expr{e.P1.X, e.P1.Y, e.P2.X, e.P2.Y}
	case Circle:
		exprs = []expr.Expr{e.Center.X, e.Center.Y, e.Radius}
	case Ellipse:
		exprs = []expr.Expr{e.Center.X, e.Center.Y, e.HRadius, e.VRadius}
	case Polygon:
		for _, v := range e.Vertices {
			exprs = append(exprs, v.X, v.Y)
		}
	case Plane:
		exprs = []expr.Expr{e.P.X, e.P.Y, e.P.Z, e.Normal[0], e.Normal[1], e.Normal[2]}
	}
	seen := make(map[string]bool)
	var all []string
	for _, x := range exprs {
		if x == nil {
			continue
		}
		for _, v := range expr.FreeVars(x) {
			if !seen[v] {
				seen[v] = true
				all = append(all, v)
			}
		}
	}
	sort.Strings(all)
	return all
}
