// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid turns plot ranges into discretized sample coordinates:
// 1D point vectors with linear, logarithmic or integer spacing, and 2D/3D
// mesh arrays in the layouts the series types expect.
package grid

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// A Range is a named interval of a plot variable. For most series Lo and
// Hi are real. For complex-domain series they are opposite corners of a
// rectangle in the complex plane: the real parts bound the real axis and
// the imaginary parts bound the imaginary axis.
type Range struct {
	Var    string
	Lo, Hi complex128
}

// R returns a real range for variable v.
func R(v string, lo, hi float64) Range {
	return Range{v, complex(lo, 0), complex(hi, 0)}
}

// CR returns a complex rectangle range for variable v.
func CR(v string, lo, hi complex128) Range {
	return Range{v, lo, hi}
}

// IsComplex reports whether the range spans a complex rectangle rather
// than a real interval.
func (r Range) IsComplex() bool {
	return imag(r.Lo) != 0 || imag(r.Hi) != 0
}

// Real returns the real bounds of the range.
func (r Range) Real() (lo, hi float64) {
	return real(r.Lo), real(r.Hi)
}

// Degenerate reports whether the range is empty or a single point and
// therefore cannot be discretized.
func (r Range) Degenerate() bool {
	return r.Lo == r.Hi
}

// Spacing selects how sample points are distributed over a range.
type Spacing int

const (
	// Lin spaces points evenly.
	Lin Spacing = iota
	// Log spaces points evenly in log10 of the coordinate. The range
	// bounds must be positive.
	Log
)

// Points returns n sample coordinates from lo to hi inclusive. n must be
// at least 2. With Log spacing, lo and hi must both be positive, since
// log spacing cannot cross or touch zero.
func Points(lo, hi float64, n int, s Spacing) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 points, have %d", n)
	}
	switch s {
	case Lin:
		return vec.Linspace(lo, hi, n), nil
	case Log:
		if lo <= 0 || hi <= 0 {
			return nil, fmt.Errorf("log spacing requires positive bounds, have [%g, %g]", lo, hi)
		}
		return vec.Logspace(math.Log10(lo), math.Log10(hi), n, 10), nil
	}
	panic(fmt.Sprintf("grid: bad spacing %d", s))
}

// Integers returns the integer coordinates in [lo, hi]: ceil(lo) through
// floor(hi) step 1. The result is empty if the interval contains no
// integer. Any requested resolution is irrelevant; the count is fixed by
// the interval.
func Integers(lo, hi float64) []float64 {
	a, b := math.Ceil(lo), math.Floor(hi)
	if b < a {
		return nil
	}
	out := make([]float64, 0, int(b-a)+1)
	for v := a; v <= b; v++ {
		out = append(out, v)
	}
	return out
}
