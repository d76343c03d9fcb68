// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sample

import "math"

// A Point is one evaluated sample: a parameter value and the vector of
// outputs at that parameter. A nil or NaN-valued V marks a point where
// evaluation failed.
type Point struct {
	T float64
	V []float64
}

func finite(p Point) bool {
	if p.V == nil {
		return false
	}
	for _, v := range p.V {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// An Interval is a candidate for bisection: two adjacent points plus, when
// available, the next point outward on each side so a loss can estimate
// local curvature. Losses receive intervals rescaled so the parameter and
// every output component span the unit box.
type Interval struct {
	L, R           Point
	OuterL, OuterR *Point
}

// A Loss scores an interval; refinement always bisects the interval with
// the largest loss. The interval is pre-scaled to the unit box.
type Loss func(iv Interval) float64

// DistanceLoss is the default loss: the Euclidean length of the interval
// in scaled (t, outputs...) space. Long or fast-changing intervals score
// high, so refinement distributes points by arc length.
func DistanceLoss(iv Interval) float64 {
	d := (iv.R.T - iv.L.T) * (iv.R.T - iv.L.T)
	for i := range iv.L.V {
		dv := iv.R.V[i] - iv.L.V[i]
		d += dv * dv
	}
	return math.Sqrt(d)
}

// CurvatureLoss scores an interval by the area of the triangles it forms
// with its outer neighbors, plus a small fraction of its length. Smooth
// stretches score near zero, so the same goal terminates with fewer
// points than DistanceLoss; tight bends still attract refinement.
func CurvatureLoss(iv Interval) float64 {
	area := 0.0
	if iv.OuterL != nil && finite(*iv.OuterL) {
		area = math.Max(area, triangleArea(*iv.OuterL, iv.L, iv.R))
	}
	if iv.OuterR != nil && finite(*iv.OuterR) {
		area = math.Max(area, triangleArea(iv.L, iv.R, *iv.OuterR))
	}
	if iv.OuterL == nil && iv.OuterR == nil {
		return DistanceLoss(iv)
	}
	return area + 0.02*DistanceLoss(iv)
}

// triangleArea returns the area of the triangle p q r in (t, V...) space.
func triangleArea(p, q, r Point) float64 {
	// area = 1/2 sqrt(|u|^2 |v|^2 - (u.v)^2) with u = q-p, v = r-p.
	var uu, vv, uv float64
	du, dv := q.T-p.T, r.T-p.T
	uu, vv, uv = du*du, dv*dv, du*dv
	for i := range p.V {
		du, dv = q.V[i]-p.V[i], r.V[i]-p.V[i]
		uu += du * du
		vv += dv * dv
		uv += du * dv
	}
	s := uu*vv - uv*uv
	if s <= 0 {
		return 0
	}
	return 0.5 * math.Sqrt(s)
}
