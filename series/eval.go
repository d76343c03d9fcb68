// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"

	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/sample"
)

// progFor compiles e over the given domain variables with the current
// parameter values substituted. Interactive series call it on every
// Data so a SetParams takes effect.
func (b *base) progFor(e expr.Expr, vars ...string) (*expr.Program, error) {
	p, err := expr.Compile(expr.SubsNumbers(e, b.params), vars)
	if err != nil {
		return nil, configErrf("%v", err)
	}
	return p, nil
}

// checkVars verifies that every free symbol of the given expressions is
// either a domain variable or a declared parameter.
func (b *base) checkVars(vars []string, es ...expr.Expr) error {
	for _, e := range es {
		for _, v := range expr.FreeVars(e) {
			if containsStr(vars, v) {
				continue
			}
			if _, ok := b.params[v]; ok {
				continue
			}
			return configErrf("symbol %s is neither a plot variable nor a parameter", v)
		}
	}
	return nil
}

func containsStr(ss []string, s string) bool {
	for _, t := range ss {
		if t == s {
			return true
		}
	}
	return false
}

// checkRanges verifies the domain ranges are usable: non-degenerate and,
// unless complex bounds are expected, real.
func checkRanges(ranges []grid.Range, allowComplex bool) error {
	for _, r := range ranges {
		if r.Degenerate() {
			return configErrf("range %s is a single point", r.Var)
		}
		if !allowComplex && r.IsComplex() {
			return configErrf("range %s has complex bounds", r.Var)
		}
	}
	return nil
}

var cNaN = complex(math.NaN(), math.NaN())

// evalC evaluates the program at one point through the configured
// backend. Failures become NaN, never an error.
func (b *base) evalC(p *expr.Program, args ...complex128) complex128 {
	if b.precise {
		v, err := p.EvalPrec(b.prec, args...)
		if err != nil {
			return cNaN
		}
		return v
	}
	return p.Eval(args...)
}

// eval1D evaluates the program over one real coordinate vector.
func (b *base) eval1D(p *expr.Program, ts []float64) []complex128 {
	out := make([]complex128, len(ts))
	for i, t := range ts {
		out[i] = b.evalC(p, complex(t, 0))
	}
	return out
}

// eval1DReal evaluates the program over the reals only: results carry no
// imaginary part, and real-domain failures (sqrt of a negative, log of
// zero) are NaN.
func (b *base) eval1DReal(p *expr.Program, ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = p.EvalReal(t)
	}
	return out
}

// eval1DC evaluates the program over complex sample points.
func (b *base) eval1DC(p *expr.Program, zs []complex128) []complex128 {
	out := make([]complex128, len(zs))
	for i, z := range zs {
		out[i] = b.evalC(p, z)
	}
	return out
}

// evalMesh evaluates the program over parallel coordinate meshes. The
// result has the shape of the first mesh.
func (b *base) evalMesh(p *expr.Program, meshes ...grid.Array) grid.CArray {
	out := grid.CZeros(meshes[0].Shape...)
	args := make([]complex128, len(meshes))
	for i := range out.Data {
		for d, m := range meshes {
			args[d] = complex(m.Data[i], 0)
		}
		out.Data[i] = b.evalC(p, args...)
	}
	return out
}

// evalMeshReal is evalMesh restricted to the real backend.
func (b *base) evalMeshReal(p *expr.Program, meshes ...grid.Array) grid.Array {
	out := grid.Zeros(meshes[0].Shape...)
	args := make([]float64, len(meshes))
	for i := range out.Data {
		for d, m := range meshes {
			args[d] = m.Data[i]
		}
		out.Data[i] = p.EvalReal(args...)
	}
	return out
}

// gridVals evaluates p at every grid point and projects the results to
// real values with the configured evaluation backend.
func (b *base) gridVals(p *expr.Program, meshes ...grid.Array) grid.Array {
	if !b.cplx {
		return b.evalMeshReal(p, meshes...)
	}
	return b.realParts(b.evalMesh(p, meshes...))
}

// evalCGrid evaluates p at every point of a complex sample grid.
func (b *base) evalCGrid(p *expr.Program, zs grid.CArray) grid.CArray {
	out := grid.CZeros(zs.Shape...)
	for i, z := range zs.Data {
		out.Data[i] = b.evalC(p, z)
	}
	return out
}

// realParts projects complex results to their real parts, recording
// whether a non-trivial imaginary component was discarded. NaN anywhere
// in a sample makes the projected value NaN.
func (b *base) realParts(zs grid.CArray) grid.Array {
	if !zs.IsReal(1e-8) {
		b.imagDropped = true
	}
	out := grid.Zeros(zs.Shape...)
	for i, z := range zs.Data {
		if math.IsNaN(imag(z)) {
			out.Data[i] = math.NaN()
			continue
		}
		out.Data[i] = real(z)
	}
	return out
}

// realPart projects one complex result under the same rules as
// realParts. Adaptive samplers use it point by point.
func (b *base) realPart(z complex128) float64 {
	if math.IsNaN(imag(z)) {
		return math.NaN()
	}
	if im := math.Abs(imag(z)); im > 1e-8 && im > 1e-8*math.Abs(real(z)) {
		b.imagDropped = true
	}
	return real(z)
}

// axis discretizes domain range i into a coordinate vector.
func (b *base) axis(i int) ([]float64, error) {
	r := b.ranges[i]
	lo, hi := r.Real()
	if b.onlyInts {
		xs := grid.Integers(lo, hi)
		if len(xs) == 0 {
			return nil, configErrf("no integer coordinates in [%g, %g]", lo, hi)
		}
		return xs, nil
	}
	xs, err := grid.Points(lo, hi, b.n[i], b.scales[i])
	if err != nil {
		return nil, domainErrf("%s axis: %v", r.Var, err)
	}
	return xs, nil
}

// realAxis discretizes an arbitrary real interval with the spacing of
// domain axis i.
func (b *base) realAxis(i int, lo, hi float64) ([]float64, error) {
	if b.onlyInts {
		xs := grid.Integers(lo, hi)
		if len(xs) == 0 {
			return nil, configErrf("no integer coordinates in [%g, %g]", lo, hi)
		}
		return xs, nil
	}
	xs, err := grid.Points(lo, hi, b.n[i], b.scales[i])
	if err != nil {
		return nil, domainErrf("%v", err)
	}
	return xs, nil
}

// complexGrid discretizes a complex rectangle range into real and
// imaginary coordinate meshes of shape (n2, n1) plus the complex sample
// grid, honoring per-axis spacing and integer sampling.
func (b *base) complexGrid(r grid.Range) (X, Y grid.Array, Z grid.CArray, err error) {
	xs, err := b.realAxis(0, real(r.Lo), real(r.Hi))
	if err != nil {
		return X, Y, Z, err
	}
	ys, err := b.realAxis(1, imag(r.Lo), imag(r.Hi))
	if err != nil {
		return X, Y, Z, err
	}
	X, Y = grid.Mesh2D(xs, ys)
	Z = grid.CZeros(X.Shape...)
	for i := range Z.Data {
		Z.Data[i] = complex(X.Data[i], Y.Data[i])
	}
	return X, Y, Z, nil
}

// complexSegment returns n sample points linearly interpolated between
// the complex bounds of r.
func complexSegment(r grid.Range, n int) []complex128 {
	out := make([]complex128, n)
	d := r.Hi - r.Lo
	for i := range out {
		t := float64(i) / float64(n-1)
		out[i] = r.Lo + complex(t, 0)*d
	}
	return out
}

// refineOpts assembles the adaptive sampler configuration.
func (b *base) refineOpts() sample.Options {
	return sample.Options{
		Loss:     b.loss,
		Goal:     b.goal,
		GoalFunc: b.goalFn,
	}
}
