// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"

	"github.com/aclements/go-symplot/expr"
)

// A List2DSeries plots literal coordinate lists as a polyline or, with
// Point, as markers. There is no separate interactive type: a list
// series with Params resolves its symbolic coordinates on every Data
// call.
type List2DSeries struct {
	base
	xs, ys []expr.Expr
}

var _ Series = (*List2DSeries)(nil)

// List2D returns a series plotting the coordinate lists (xs, ys).
// Entries are numbers or symbolic expressions; symbolic entries must be
// bound by Params. Wrap plain data with expr.Numbers.
func List2D(xs, ys []expr.Expr, opts ...Option) (*List2DSeries, error) {
	s := &List2DSeries{xs: xs, ys: ys}
	s.base = newBase(KindList2D, nil)
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := s.checkList("x", xs, len(xs)); err != nil {
		return nil, err
	}
	if err := s.checkList("y", ys, len(xs)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *List2DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive 2D list plot with parameters %s", s.paramTuple())
	}
	return "2D list plot"
}

// List2DData is the result of List2DSeries.Data.
type List2DData struct {
	X, Y []float64
	// Color is the evaluated color function, present only with UseCM
	// and a configured color function.
	Color []float64
}

// Data resolves the coordinate lists under the current parameter
// bindings. Entries that fail to evaluate become NaN.
func (s *List2DSeries) Data() (*List2DData, error) {
	xs, err := s.resolveList(s.xs)
	if err != nil {
		return nil, err
	}
	ys, err := s.resolveList(s.ys)
	if err != nil {
		return nil, err
	}
	if s.steps {
		xs, ys = stepsLead(xs), stepsTrail(ys)
	}
	var cs []float64
	if s.useCM && s.color.n != 0 {
		cs, err = s.color.apply(xs, ys)
		if err != nil {
			return nil, err
		}
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tp, cs)
	return &List2DData{X: xs, Y: ys, Color: cs}, nil
}

// A List3DSeries plots literal coordinate lists as a curve in space.
type List3DSeries struct {
	base
	xs, ys, zs []expr.Expr
}

var _ Series = (*List3DSeries)(nil)

// List3D returns a series plotting the coordinate lists (xs, ys, zs).
// Entries are numbers or symbolic expressions; symbolic entries must be
// bound by Params.
func List3D(xs, ys, zs []expr.Expr, opts ...Option) (*List3DSeries, error) {
	s := &List3DSeries{xs: xs, ys: ys, zs: zs}
	s.base = newBase(KindList3D, nil)
	s.threeD = true
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := s.checkList("x", xs, len(xs)); err != nil {
		return nil, err
	}
	if err := s.checkList("y", ys, len(xs)); err != nil {
		return nil, err
	}
	if err := s.checkList("z", zs, len(xs)); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *List3DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive 3D list plot with parameters %s", s.paramTuple())
	}
	return "3D list plot"
}

// List3DData is the result of List3DSeries.Data.
type List3DData struct {
	X, Y, Z []float64
	// Color is the evaluated color function, present only with UseCM
	// and a configured color function.
	Color []float64
}

// Data resolves the coordinate lists under the current parameter
// bindings.
func (s *List3DSeries) Data() (*List3DData, error) {
	xs, err := s.resolveList(s.xs)
	if err != nil {
		return nil, err
	}
	ys, err := s.resolveList(s.ys)
	if err != nil {
		return nil, err
	}
	zs, err := s.resolveList(s.zs)
	if err != nil {
		return nil, err
	}
	if s.steps {
		xs, ys = stepsLead(xs), stepsLead(ys)
		zs = stepsTrail(zs)
	}
	var cs []float64
	if s.useCM && s.color.n != 0 {
		cs, err = s.color.apply(xs, ys, zs)
		if err != nil {
			return nil, err
		}
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tz, zs)
	applyT(s.tp, cs)
	return &List3DData{X: xs, Y: ys, Z: zs, Color: cs}, nil
}

// checkList validates one coordinate axis of a list series: the length
// must match the first axis, entries must be closed-form, and every
// free symbol must be bound by a parameter.
func (b *base) checkList(axis string, es []expr.Expr, n int) error {
	if len(es) == 0 {
		return configErrf("list series needs at least one point")
	}
	if len(es) != n {
		return configErrf("coordinate lists have mismatched lengths: len(%s) = %d, want %d", axis, len(es), n)
	}
	for _, e := range es {
		if expr.IsOpaque(e) {
			return unsupportedErrf("list series cannot plot wrapped functions")
		}
		for _, v := range expr.FreeVars(e) {
			if _, ok := b.params[v]; !ok {
				if len(b.params) == 0 {
					return configErrf("coordinate %s has free symbols, pass Params to bind them", e)
				}
				return configErrf("coordinate %s: symbol %s is not a parameter", e, v)
			}
		}
	}
	return nil
}

// resolveList evaluates one coordinate list under the current parameter
// bindings.
func (b *base) resolveList(es []expr.Expr) ([]float64, error) {
	out := make([]float64, len(es))
	for i, e := range es {
		p, err := expr.Compile(expr.SubsNumbers(e, b.params), nil)
		if err != nil {
			return nil, configErrf("coordinate %s: %v", e, err)
		}
		out[i] = b.realPart(b.evalC(p))
	}
	return out, nil
}
