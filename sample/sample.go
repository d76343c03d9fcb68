// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sample implements adaptive 1D refinement for plotting. Starting
// from a small uniform seed, it repeatedly bisects the interval with the
// greatest loss until a goal is met, concentrating samples where the
// function changes fastest.
package sample

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
)

// Defaults used by Refine when the corresponding Options field is zero.
const (
	DefaultGoal      = 0.01
	DefaultMaxPoints = 8192
	defaultSeed      = 9
)

// Stats describes the state of a refinement run for goal predicates.
type Stats struct {
	// Points is the number of evaluated points so far.
	Points int
	// MaxLoss is the largest loss among current intervals.
	MaxLoss float64
}

// Options configure Refine.
type Options struct {
	// Loss scores intervals. Nil means DistanceLoss.
	Loss Loss

	// Goal stops refinement once every interval's loss is at or below
	// it. Zero means DefaultGoal. Ignored if GoalFunc is set.
	Goal float64

	// GoalFunc, if set, replaces the numeric goal: refinement stops as
	// soon as it returns true.
	GoalFunc func(Stats) bool

	// MaxPoints caps the total number of evaluations regardless of the
	// goal. Zero means DefaultMaxPoints.
	MaxPoints int

	// Seed is the size of the initial uniform sample. Zero means a
	// small default; values below 2 are raised to 2.
	Seed int
}

type entry struct {
	iv   Interval
	loss float64
}

type ivHeap []entry

func (h ivHeap) Len() int      { return len(h) }
func (h ivHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h ivHeap) Less(i, j int) bool {
	// Max-heap on loss; ties resolve leftmost-first so runs are
	// deterministic.
	if h[i].loss != h[j].loss {
		return h[i].loss > h[j].loss
	}
	return h[i].iv.L.T < h[j].iv.L.T
}
func (h *ivHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *ivHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Refine adaptively samples f over [lo, hi]. It returns the parameter
// values in increasing order and the output vector at each parameter.
//
// f reports a point it cannot evaluate by returning an error; the point
// is recorded with NaN outputs and the refinement continues. Intervals
// touching an undefined or non-finite point are scored by their plain
// width so the region around a failure is localized rather than chased
// forever.
//
// Runs are deterministic: the same inputs produce the same points, and a
// stricter numeric goal never yields fewer points than a looser one.
func Refine(f func(t float64) ([]float64, error), lo, hi float64, opt Options) ([]float64, [][]float64, error) {
	if !(lo < hi) {
		return nil, nil, fmt.Errorf("invalid interval [%g, %g]", lo, hi)
	}
	loss := opt.Loss
	if loss == nil {
		loss = DistanceLoss
	}
	goalFn := opt.GoalFunc
	if goalFn == nil {
		goal := opt.Goal
		if goal <= 0 {
			goal = DefaultGoal
		}
		goalFn = func(s Stats) bool { return s.MaxLoss <= goal }
	}
	maxPoints := opt.MaxPoints
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	seed := opt.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	if seed < 2 {
		seed = 2
	}
	if maxPoints < seed {
		maxPoints = seed
	}

	r := &refiner{f: f, lo: lo, hi: hi, loss: loss, dim: -1}
	pts := make([]Point, seed)
	for i, t := range vec.Linspace(lo, hi, seed) {
		pts[i] = r.eval(t)
	}
	h := make(ivHeap, 0, seed-1)
	for i := 0; i+1 < len(pts); i++ {
		iv := Interval{L: pts[i], R: pts[i+1]}
		if i > 0 {
			iv.OuterL = &pts[i-1]
		}
		if i+2 < len(pts) {
			iv.OuterR = &pts[i+1+1]
		}
		h = append(h, entry{iv, r.score(iv)})
	}
	heap.Init(&h)

	for len(h) > 0 {
		if goalFn(Stats{len(pts), h[0].loss}) || len(pts) >= maxPoints {
			break
		}
		e := heap.Pop(&h).(entry)
		tm := (e.iv.L.T + e.iv.R.T) / 2
		if !(e.iv.L.T < tm && tm < e.iv.R.T) {
			// No representable midpoint; the interval cannot be
			// split further.
			continue
		}
		pm := r.eval(tm)
		pts = append(pts, pm)
		l := e.iv.L
		rr := e.iv.R
		left := Interval{L: l, R: pm, OuterL: e.iv.OuterL, OuterR: &rr}
		right := Interval{L: pm, R: rr, OuterL: &l, OuterR: e.iv.OuterR}
		heap.Push(&h, entry{left, r.score(left)})
		heap.Push(&h, entry{right, r.score(right)})
	}

	sort.Slice(pts, func(i, j int) bool { return pts[i].T < pts[j].T })
	dim := r.dim
	if dim < 0 {
		dim = 1
	}
	ts := make([]float64, len(pts))
	vs := make([][]float64, len(pts))
	for i, p := range pts {
		ts[i] = p.T
		if p.V == nil {
			p.V = make([]float64, dim)
			for j := range p.V {
				p.V[j] = math.NaN()
			}
		}
		vs[i] = p.V
	}
	return ts, vs, nil
}

type refiner struct {
	f          func(float64) ([]float64, error)
	lo, hi     float64
	loss       Loss
	dim        int
	vmin, vmax []float64
}

func (r *refiner) eval(t float64) Point {
	v, err := r.f(t)
	if err != nil || v == nil {
		return Point{T: t}
	}
	if r.dim == -1 {
		r.dim = len(v)
		r.vmin = append([]float64(nil), v...)
		r.vmax = append([]float64(nil), v...)
	} else if len(v) != r.dim {
		panic(fmt.Sprintf("sample: function returned %d outputs, previously %d", len(v), r.dim))
	}
	// Infinities deliberately poison the scale: once a pole has been
	// seen, value deltas stop mattering and refinement degrades to
	// width, which terminates.
	for i, x := range v {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(r.vmin[i]) {
			r.vmin[i], r.vmax[i] = x, x
			continue
		}
		r.vmin[i] = math.Min(r.vmin[i], x)
		r.vmax[i] = math.Max(r.vmax[i], x)
	}
	return Point{t, v}
}

// score computes the loss of iv, rescaling it to the unit box first.
// Intervals with an undefined or non-finite endpoint score by plain
// normalized width.
func (r *refiner) score(iv Interval) float64 {
	if !finite(iv.L) || !finite(iv.R) {
		return (iv.R.T - iv.L.T) / (r.hi - r.lo)
	}
	s := Interval{L: r.scalePoint(iv.L), R: r.scalePoint(iv.R)}
	if iv.OuterL != nil && finite(*iv.OuterL) {
		p := r.scalePoint(*iv.OuterL)
		s.OuterL = &p
	}
	if iv.OuterR != nil && finite(*iv.OuterR) {
		p := r.scalePoint(*iv.OuterR)
		s.OuterR = &p
	}
	return r.loss(s)
}

func (r *refiner) scalePoint(p Point) Point {
	q := Point{T: (p.T - r.lo) / (r.hi - r.lo), V: make([]float64, len(p.V))}
	for i, v := range p.V {
		if d := r.vmax[i] - r.vmin[i]; d > 0 && !math.IsInf(d, 0) {
			q.V[i] = (v - r.vmin[i]) / d
		} else {
			q.V[i] = 0
		}
	}
	return q
}
