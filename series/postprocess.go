// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"

	"github.com/aclements/go-symplot/grid"
)

// colorFn wraps a user color function of fixed arity. The zero value
// means no color function is set.
type colorFn struct {
	n  int
	f1 func(a []float64) []float64
	f2 func(a, b []float64) []float64
	f3 func(a, b, c []float64) []float64
	f4 func(a, b, c, d []float64) []float64
	f5 func(a, b, c, d, e []float64) []float64
}

// apply evaluates the color function over the leading arity channels.
// A length-1 result broadcasts to the channel length.
func (c colorFn) apply(args ...[]float64) ([]float64, error) {
	if c.n == 0 {
		return nil, configErrf("no color function set")
	}
	if len(args) < c.n {
		return nil, configErrf("color function wants %d channels, have %d", c.n, len(args))
	}
	var out []float64
	switch c.n {
	case 1:
		out = c.f1(args[0])
	case 2:
		out = c.f2(args[0], args[1])
	case 3:
		out = c.f3(args[0], args[1], args[2])
	case 4:
		out = c.f4(args[0], args[1], args[2], args[3])
	case 5:
		out = c.f5(args[0], args[1], args[2], args[3], args[4])
	}
	n := len(args[0])
	if len(out) == 1 && n != 1 {
		v := out[0]
		out = make([]float64, n)
		for i := range out {
			out[i] = v
		}
	}
	if len(out) != n {
		return nil, configErrf("color function returned %d values for %d points", len(out), n)
	}
	return out, nil
}

// applyA evaluates the color function over array channels, keeping the
// shape of the first argument.
func (c colorFn) applyA(args ...grid.Array) (grid.Array, error) {
	flat := make([][]float64, len(args))
	for i, a := range args {
		flat[i] = a.Data
	}
	out, err := c.apply(flat...)
	if err != nil {
		return grid.Array{}, err
	}
	return grid.Array{Shape: args[0].Shape, Data: out}, nil
}

// detectPoles breaks a line at jump discontinuities: where the slope
// between consecutive samples exceeds 1/eps the right endpoint becomes
// NaN. The x coordinates are never altered.
func detectPoles(x, y []float64, eps float64) {
	thr := 1 / eps
	flag := make([]bool, len(y))
	for i := 0; i+1 < len(x); i++ {
		dx := math.Abs(x[i+1] - x[i])
		if dx == 0 {
			continue
		}
		if math.Abs(y[i+1]-y[i])/dx > thr {
			flag[i+1] = true
		}
	}
	for i, f := range flag {
		if f {
			y[i] = math.NaN()
		}
	}
}

// stepsLead expands samples into the advancing side of a staircase:
// v0, v1, v1, v2, v2, ... (2n-1 points).
func stepsLead(v []float64) []float64 {
	if len(v) == 0 {
		return v
	}
	out := make([]float64, 2*len(v)-1)
	out[0] = v[0]
	for i := 1; i < len(v); i++ {
		out[2*i-1] = v[i]
		out[2*i] = v[i]
	}
	return out
}

// stepsTrail expands samples into the held side of a staircase:
// v0, v0, v1, v1, ... (2n-1 points).
func stepsTrail(v []float64) []float64 {
	if len(v) == 0 {
		return v
	}
	out := make([]float64, 2*len(v)-1)
	for i := 0; i < len(v)-1; i++ {
		out[2*i] = v[i]
		out[2*i+1] = v[i]
	}
	out[2*len(v)-2] = v[len(v)-1]
	return out
}

// applyT applies an elementwise transform in place; nil is identity.
func applyT(f func(float64) float64, v []float64) {
	if f == nil {
		return
	}
	for i, x := range v {
		v[i] = f(x)
	}
}

func applyTA(f func(float64) float64, a grid.Array) {
	applyT(f, a.Data)
}

// toPolar converts cartesian line coordinates in place to
// (angle, radius) pairs.
func toPolar(x, y []float64) {
	for i := range x {
		th := math.Atan2(y[i], x[i])
		y[i] = math.Hypot(x[i], y[i])
		x[i] = th
	}
}

// polarMesh reinterprets surface meshes sampled on a (radius, angle)
// domain as cartesian coordinate meshes.
func polarMesh(R, T grid.Array) (X, Y grid.Array) {
	X, Y = grid.Zeros(R.Shape...), grid.Zeros(R.Shape...)
	for i, r := range R.Data {
		X.Data[i] = r * math.Cos(T.Data[i])
		Y.Data[i] = r * math.Sin(T.Data[i])
	}
	return X, Y
}
