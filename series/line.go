// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"math/cmplx"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/sample"
)

// A LineSeries plots an expression of one variable as y over x.
type LineSeries struct {
	base
	expr expr.Expr
}

var _ Series = (*LineSeries)(nil)

// Line returns a series plotting e over the real range r. With Adaptive
// the domain is refined where e changes fastest; otherwise it is sampled
// uniformly at N points.
func Line(e expr.Expr, r grid.Range, opts ...Option) (*LineSeries, error) {
	s := &LineSeries{expr: e}
	s.base = newBase(KindLine, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{r.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *LineSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive cartesian line: %s with ranges %s and parameters %s",
			s.expr, rangeTuple(s.ranges[0]), s.paramTuple())
	}
	return fmt.Sprintf("cartesian line: %s for %s", s.expr, rangeOver(s.ranges[0]))
}

// LineData is the result of LineSeries.Data.
type LineData struct {
	X, Y []float64
	// Color is the evaluated color function, present only when one was
	// configured.
	Color []float64
}

// Data discretizes the domain and evaluates the series. Points where the
// expression is undefined come back as NaN.
func (s *LineSeries) Data() (*LineData, error) {
	p, err := s.progFor(s.expr, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}

	var xs, ys []float64
	if s.adaptive {
		lo, hi := s.ranges[0].Real()
		f := func(t float64) ([]float64, error) {
			if !s.cplx {
				return []float64{p.EvalReal(t)}, nil
			}
			return []float64{s.realPart(s.evalC(p, complex(t, 0)))}, nil
		}
		ts, vs, err := sample.Refine(f, lo, hi, s.refineOpts())
		if err != nil {
			return nil, domainErrf("%v", err)
		}
		xs = ts
		ys = make([]float64, len(vs))
		for i, v := range vs {
			ys[i] = v[0]
		}
	} else {
		xs, err = s.axis(0)
		if err != nil {
			return nil, err
		}
		if s.cplx {
			ys = s.realParts(grid.CFromSlice(s.eval1D(p, xs))).Data
		} else {
			ys = s.eval1DReal(p, xs)
		}
	}

	if s.poles {
		detectPoles(xs, ys, s.eps)
	}
	if s.steps {
		xs, ys = stepsLead(xs), stepsTrail(ys)
	}
	var cs []float64
	if s.color.n != 0 {
		cs, err = s.color.apply(xs, ys)
		if err != nil {
			return nil, err
		}
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tp, cs)
	return &LineData{X: xs, Y: ys, Color: cs}, nil
}

// A Parametric2DSeries plots the planar curve (x(t), y(t)).
type Parametric2DSeries struct {
	base
	ex, ey expr.Expr
}

var _ Series = (*Parametric2DSeries)(nil)

// Parametric2D returns a series plotting (ex, ey) over the parameter
// range r.
func Parametric2D(ex, ey expr.Expr, r grid.Range, opts ...Option) (*Parametric2DSeries, error) {
	s := &Parametric2DSeries{ex: ex, ey: ey}
	s.base = newBase(KindParametric2D, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{r.Var}, ex, ey); err != nil {
		return nil, err
	}
	// With a colormap the label names the parameter; without one it
	// names the curve.
	if s.useCM {
		s.setDefaultLabel(r.Var, r.Var)
	} else {
		s.setDefaultLabel(exprTuple(ex, ey), exprTupleLaTeX(ex, ey))
	}
	return s, nil
}

func (s *Parametric2DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive parametric cartesian line: (%s, %s) with ranges %s and parameters %s",
			s.ex, s.ey, rangeTuple(s.ranges[0]), s.paramTuple())
	}
	return fmt.Sprintf("parametric cartesian line: (%s, %s) for %s",
		s.ex, s.ey, rangeOver(s.ranges[0]))
}

// Parametric2DData is the result of Parametric2DSeries.Data.
type Parametric2DData struct {
	X, Y []float64
	// Param is the colormap channel: the parameter values, or the color
	// function output when one is configured.
	Param []float64
}

// Data discretizes the parameter range and evaluates both coordinates.
// With Polar the result is converted to (angle, radius) pairs.
func (s *Parametric2DSeries) Data() (*Parametric2DData, error) {
	px, err := s.progFor(s.ex, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}
	py, err := s.progFor(s.ey, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}

	var ts, xs, ys []float64
	if s.adaptive {
		lo, hi := s.ranges[0].Real()
		f := func(t float64) ([]float64, error) {
			if !s.cplx {
				return []float64{px.EvalReal(t), py.EvalReal(t)}, nil
			}
			zt := complex(t, 0)
			return []float64{s.realPart(s.evalC(px, zt)), s.realPart(s.evalC(py, zt))}, nil
		}
		var vs [][]float64
		ts, vs, err = sample.Refine(f, lo, hi, s.refineOpts())
		if err != nil {
			return nil, domainErrf("%v", err)
		}
		xs = make([]float64, len(ts))
		ys = make([]float64, len(ts))
		for i, v := range vs {
			xs[i], ys[i] = v[0], v[1]
		}
	} else {
		ts, err = s.axis(0)
		if err != nil {
			return nil, err
		}
		if s.cplx {
			xs = s.realParts(grid.CFromSlice(s.eval1D(px, ts))).Data
			ys = s.realParts(grid.CFromSlice(s.eval1D(py, ts))).Data
		} else {
			xs = s.eval1DReal(px, ts)
			ys = s.eval1DReal(py, ts)
		}
	}

	ps, err := s.paramChannel(ts, xs, ys)
	if err != nil {
		return nil, err
	}
	if s.polar {
		toPolar(xs, ys)
	}
	if s.poles {
		detectPoles(xs, ys, s.eps)
	}
	if s.steps {
		xs, ys, ps = stepsLead(xs), stepsTrail(ys), stepsTrail(ps)
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tp, ps)
	return &Parametric2DData{X: xs, Y: ys, Param: ps}, nil
}

// paramChannel computes the colormap channel of a 2D parametric line:
// the parameter itself, unless a color function replaces it.
func (s *Parametric2DSeries) paramChannel(ts, xs, ys []float64) ([]float64, error) {
	switch s.color.n {
	case 0:
		return append([]float64(nil), ts...), nil
	case 1:
		return s.color.apply(ts)
	case 2:
		return s.color.apply(xs, ys)
	}
	return s.color.apply(xs, ys, ts)
}

// A Parametric3DSeries plots the space curve (x(t), y(t), z(t)).
type Parametric3DSeries struct {
	base
	ex, ey, ez expr.Expr
}

var _ Series = (*Parametric3DSeries)(nil)

// Parametric3D returns a series plotting (ex, ey, ez) over the parameter
// range r.
func Parametric3D(ex, ey, ez expr.Expr, r grid.Range, opts ...Option) (*Parametric3DSeries, error) {
	s := &Parametric3DSeries{ex: ex, ey: ey, ez: ez}
	s.base = newBase(KindParametric3D, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, false); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{r.Var}, ex, ey, ez); err != nil {
		return nil, err
	}
	if s.useCM {
		s.setDefaultLabel(r.Var, r.Var)
	} else {
		s.setDefaultLabel(exprTuple(ex, ey, ez), exprTupleLaTeX(ex, ey, ez))
	}
	return s, nil
}

func (s *Parametric3DSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive 3D parametric cartesian line: (%s, %s, %s) with ranges %s and parameters %s",
			s.ex, s.ey, s.ez, rangeTuple(s.ranges[0]), s.paramTuple())
	}
	return fmt.Sprintf("3D parametric cartesian line: (%s, %s, %s) for %s",
		s.ex, s.ey, s.ez, rangeOver(s.ranges[0]))
}

// Parametric3DData is the result of Parametric3DSeries.Data.
type Parametric3DData struct {
	X, Y, Z []float64
	// Param is the colormap channel: the parameter values, or the color
	// function output when one is configured.
	Param []float64
}

// Data discretizes the parameter range and evaluates all three
// coordinates.
func (s *Parametric3DSeries) Data() (*Parametric3DData, error) {
	px, err := s.progFor(s.ex, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}
	py, err := s.progFor(s.ey, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}
	pz, err := s.progFor(s.ez, s.ranges[0].Var)
	if err != nil {
		return nil, err
	}

	var ts, xs, ys, zs []float64
	if s.adaptive {
		lo, hi := s.ranges[0].Real()
		f := func(t float64) ([]float64, error) {
			if !s.cplx {
				return []float64{px.EvalReal(t), py.EvalReal(t), pz.EvalReal(t)}, nil
			}
			zt := complex(t, 0)
			return []float64{
				s.realPart(s.evalC(px, zt)),
				s.realPart(s.evalC(py, zt)),
				s.realPart(s.evalC(pz, zt)),
			}, nil
		}
		var vs [][]float64
		ts, vs, err = sample.Refine(f, lo, hi, s.refineOpts())
		if err != nil {
			return nil, domainErrf("%v", err)
		}
		xs = make([]float64, len(ts))
		ys = make([]float64, len(ts))
		zs = make([]float64, len(ts))
		for i, v := range vs {
			xs[i], ys[i], zs[i] = v[0], v[1], v[2]
		}
	} else {
		ts, err = s.axis(0)
		if err != nil {
			return nil, err
		}
		if s.cplx {
			xs = s.realParts(grid.CFromSlice(s.eval1D(px, ts))).Data
			ys = s.realParts(grid.CFromSlice(s.eval1D(py, ts))).Data
			zs = s.realParts(grid.CFromSlice(s.eval1D(pz, ts))).Data
		} else {
			xs = s.eval1DReal(px, ts)
			ys = s.eval1DReal(py, ts)
			zs = s.eval1DReal(pz, ts)
		}
	}

	ps, err := s.paramChannel(ts, xs, ys, zs)
	if err != nil {
		return nil, err
	}
	if s.steps {
		xs, ys = stepsLead(xs), stepsLead(ys)
		zs, ps = stepsTrail(zs), stepsTrail(ps)
	}
	applyT(s.tx, xs)
	applyT(s.ty, ys)
	applyT(s.tz, zs)
	applyT(s.tp, ps)
	return &Parametric3DData{X: xs, Y: ys, Z: zs, Param: ps}, nil
}

func (s *Parametric3DSeries) paramChannel(ts, xs, ys, zs []float64) ([]float64, error) {
	switch s.color.n {
	case 0:
		return append([]float64(nil), ts...), nil
	case 1:
		return s.color.apply(ts)
	case 3:
		return s.color.apply(xs, ys, zs)
	}
	return s.color.apply(xs, ys, zs, ts)
}

// An AbsArgSeries plots the modulus of a complex-valued expression as a
// line, with the argument as an extra colormap channel.
type AbsArgSeries struct {
	base
	expr expr.Expr
}

var _ Series = (*AbsArgSeries)(nil)

// AbsArgLine returns a series plotting |e| and arg(e) over r. The range
// may have complex bounds, in which case e is sampled along the straight
// segment between them and the x coordinates are the samples' real parts.
func AbsArgLine(e expr.Expr, r grid.Range, opts ...Option) (*AbsArgSeries, error) {
	s := &AbsArgSeries{expr: e}
	s.base = newBase(KindAbsArg, []grid.Range{r})
	if err := s.applyOptions(opts); err != nil {
		return nil, err
	}
	if err := checkRanges(s.ranges, true); err != nil {
		return nil, err
	}
	if err := s.checkVars([]string{r.Var}, e); err != nil {
		return nil, err
	}
	s.setDefaultLabel(e.String(), e.LaTeX())
	return s, nil
}

func (s *AbsArgSeries) String() string {
	if s.Interactive() {
		return fmt.Sprintf("interactive cartesian abs-arg line: %s with ranges %s and parameters %s",
			s.expr, rangeTupleC(s.ranges[0]), s.paramTuple())
	}
	return fmt.Sprintf("cartesian abs-arg line: %s for %s", s.expr, rangeOverC(s.ranges[0]))
}

// AbsArgData is the result of AbsArgSeries.Data.
type AbsArgData struct {
	X, Abs, Arg []float64
}

// Data samples the expression through the complex plane and splits the
// result into modulus and argument.
func (s *AbsArgSeries) Data() (*AbsArgData, error) {
	r := s.ranges[0]
	p, err := s.progFor(s.expr, r.Var)
	if err != nil {
		return nil, err
	}

	var xs, as, gs []float64
	if s.adaptive && !r.IsComplex() {
		lo, hi := r.Real()
		f := func(t float64) ([]float64, error) {
			v := s.evalC(p, complex(t, 0))
			return []float64{cmplx.Abs(v), cmplx.Phase(v)}, nil
		}
		ts, vs, err := sample.Refine(f, lo, hi, s.refineOpts())
		if err != nil {
			return nil, domainErrf("%v", err)
		}
		xs = ts
		as = make([]float64, len(ts))
		gs = make([]float64, len(ts))
		for i, v := range vs {
			as[i], gs[i] = v[0], v[1]
		}
	} else {
		var zs []complex128
		if r.IsComplex() {
			zs = complexSegment(r, s.n[0])
			xs = make([]float64, len(zs))
			for i, z := range zs {
				xs[i] = real(z)
			}
		} else {
			xs, err = s.axis(0)
			if err != nil {
				return nil, err
			}
			zs = make([]complex128, len(xs))
			for i, x := range xs {
				zs[i] = complex(x, 0)
			}
		}
		vs := s.eval1DC(p, zs)
		as = make([]float64, len(vs))
		gs = make([]float64, len(vs))
		for i, v := range vs {
			as[i] = cmplx.Abs(v)
			gs[i] = cmplx.Phase(v)
		}
	}

	if s.poles {
		detectPoles(xs, as, s.eps)
	}
	if s.steps {
		xs, as, gs = stepsLead(xs), stepsTrail(as), stepsTrail(gs)
	}
	applyT(s.tx, xs)
	applyT(s.ty, as)
	applyT(s.tz, gs)
	return &AbsArgData{X: xs, Abs: as, Arg: gs}, nil
}

// exprTuple renders expressions the way a tuple prints:
// "(cos(x), sin(x))", with a trailing comma when there is only one
// element.
func exprTuple(es ...expr.Expr) string {
	s := "("
	for i, e := range es {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	if len(es) == 1 {
		s += ","
	}
	return s + ")"
}

func exprTupleLaTeX(es ...expr.Expr) string {
	s := `\left(`
	for i, e := range es {
		if i > 0 {
			s += ", "
		}
		s += e.LaTeX()
	}
	if len(es) == 1 {
		s += ","
	}
	return s + `\right)`
}
