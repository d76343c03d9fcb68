// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

// Build constructs the series kind implied by the shape of its inputs:
// the number of expressions and ranges picks the family, and the
// AbsArg, ThreeD and Slice options disambiguate within it.
//
//	exprs x ranges   kind
//	1 x 1 (real)     line, or abs-arg line with AbsArg
//	1 x 1 (complex)  complex surface, or domain coloring with AbsArg
//	1 x 2            surface; contour with ThreeD(false); implicit
//	                 region when the expression is boolean
//	1 x 3            implicit surface
//	2 x 1            2D parametric line
//	2 x 2            2D vector field
//	3 x 1            3D parametric line
//	3 x 2            parametric surface
//	3 x 3            3D vector field, sliced when Slice is given
//
// Geometry entities and literal coordinate lists have their own
// constructors.
func Build(exprs []expr.Expr, ranges []grid.Range, opts ...Option) (Series, error) {
	probe := probeBase(opts)
	switch len(exprs) {
	case 1:
		e := exprs[0]
		switch len(ranges) {
		case 1:
			if ranges[0].IsComplex() {
				if probe.absarg {
					return DomainColoring(e, ranges[0], opts...)
				}
				return ComplexSurface(e, ranges[0], opts...)
			}
			if probe.absarg {
				return AbsArgLine(e, ranges[0], opts...)
			}
			return Line(e, ranges[0], opts...)
		case 2:
			if expr.IsBoolean(e) {
				return Implicit2D(e, ranges[0], ranges[1], opts...)
			}
			if probe.threeDSet && !probe.threeD {
				return Contour(e, ranges[0], ranges[1], opts...)
			}
			return Surface(e, ranges[0], ranges[1], opts...)
		case 3:
			return Implicit3D(e, ranges[0], ranges[1], ranges[2], opts...)
		}
	case 2:
		switch len(ranges) {
		case 1:
			return Parametric2D(exprs[0], exprs[1], ranges[0], opts...)
		case 2:
			return Vector2D(exprs[0], exprs[1], ranges[0], ranges[1], opts...)
		}
	case 3:
		switch len(ranges) {
		case 1:
			return Parametric3D(exprs[0], exprs[1], exprs[2], ranges[0], opts...)
		case 2:
			return ParametricSurface(exprs[0], exprs[1], exprs[2], ranges[0], ranges[1], opts...)
		case 3:
			if probe.slice != nil {
				return SlicedVector3D(nil, exprs[0], exprs[1], exprs[2], ranges[0], ranges[1], ranges[2], opts...)
			}
			return Vector3D(exprs[0], exprs[1], exprs[2], ranges[0], ranges[1], ranges[2], opts...)
		}
	}
	return nil, configErrf("no series kind takes %d expressions over %d ranges", len(exprs), len(ranges))
}

// probeBase applies opts to a throwaway base so Build can read the
// flags that pick a kind. Option errors resurface in the kind
// constructor.
func probeBase(opts []Option) base {
	var b base
	b.rkw = make(map[string]interface{})
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
