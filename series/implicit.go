// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
)

// An Implicit2DSeries plots the region or curve described by a boolean
// relation over the (x, y) plane.
type Implicit2DSeries struct {
	base
	expr expr.Expr
	diff expr.Expr // lhs-rhs for equalities, nil for region masks
}

var _ Series = (*Implicit2DSeries)(nil)

// Implicit2D returns a series plotting the relation e over rx and ry.
// An equality (or a plain expression e, read as e = 0) produces the
// signed field lhs-rhs for an external contour tracer; an inequality or
// boolean combination produces a 1/0 region mask. Implicit relations
// need symbolic structure, so a wrapped plain function is rejected.
func Implicit2D(e expr.Expr, rx, ry grid.Range, opts ...Option) (*Implicit2DSeries, error) {
	if expr.IsOpaque(e) {
		return nil, unsupportedErrf("implicit series requires a symbolic relation, not a plain function")
	}
	s := &Implicit2DSeries{expr: e}
	s.base = newBase(KindImplicit2D, []grid.Range{rx, ry})
	if op, lhs, rhs, ok := expr.Relation(e); ok && op == expr.OpEq {
		s.diff = expr.Sub(lhs, rhs)
	} else if !expr.IsBoolean(e) {
		// A bare expression is the zero set e = 0.
		s.diff = e
	}
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

func (s *Implicit2DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive Implicit expression: %s with ranges %s and parameters %s",
			s.expr, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("Implicit expression: %s for %s and %s",
		s.expr, rangeOver(s.ranges[0]), rangeOver(s.ranges[1]))
}

// Implicit2DData is the result of Implicit2DSeries.Data. Xs and Ys are
// the axis vectors and F has shape (len(Ys), len(Xs)). When Filled is
// true F is a 1/0 region mask to fill; otherwise F is a signed field
// whose zero level is the curve to trace.
type Implicit2DData struct {
	Xs, Ys []float64
	F      grid.Array
	Filled bool
}

// Data discretizes the plane and evaluates the relation over it.
func (s *Implicit2DSeries) Data() (*Implicit2DData, error) {
	e := s.diff
	if e == nil {
		e = s.expr
	}
	p, err := s.progFor(e, s.ranges[0].Var, s.ranges[1].Var)
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
	F := s.realParts(s.evalMesh(p, X, Y))
	return &Implicit2DData{Xs: xs, Ys: ys, F: F, Filled: s.diff == nil}, nil
}

// An Implicit3DSeries plots the isosurface f = 0 of an expression of
// three variables.
type Implicit3DSeries struct {
	base
	expr expr.Expr
	diff expr.Expr
}

var _ Series = (*Implicit3DSeries)(nil)

// Implicit3D returns a series plotting the zero isosurface of e over the
// ranges rx, ry and rz. e may be a plain expression or an equality;
// inequalities have no isosurface and are rejected.
func Implicit3D(e expr.Expr, rx, ry, rz grid.Range, opts ...Option) (*Implicit3DSeries, error) {
	s := &Implicit3DSeries{expr: e, diff: e}
	s.base = newBase(KindImplicit3D, []grid.Range{rx, ry, rz})
	if op, lhs, rhs, ok := expr.Relation(e); ok {
		if op != expr.OpEq {
			return nil, unsupportedErrf("implicit surface requires an expression or equality")
		}
		s.diff = expr.Sub(lhs, rhs)
	} else if expr.IsBoolean(e) {
		return nil, unsupportedErrf("implicit surface requires an expression or equality")
	}
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{rx.Var, ry.Var, rz.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *Implicit3DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive implicit surface series: %s with ranges %s and parameters %s",
			s.expr, rangeTuples(s.ranges, rangeTuple), s.paramTuple())
	}
	return fmt.Sprintf("implicit surface series: %s for %s and %s and %s",
		s.expr, rangeOver(s.ranges[0]), rangeOver(s.ranges[1]), rangeOver(s.ranges[2]))
}

// Implicit3DData is the result of Implicit3DSeries.Data. All arrays have
// shape (N1, N2, N3). A marching-cubes renderer extracts the zero level
// of F.
type Implicit3DData struct {
	X, Y, Z grid.Array
	F       grid.Array
}

// Data discretizes the volume and evaluates the field over it.
func (s *Implicit3DSeries) Data() (*Implicit3DData, error) {
	p, err := s.progFor(s.diff, s.ranges[0].Var, s.ranges[1].Var, s.ranges[2].Var)
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
	F := s.realParts(s.evalMesh(p, X, Y, Z))
	return &Implicit3DData{X: X, Y: Y, Z: Z, F: F}, nil
}
