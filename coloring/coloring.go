// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coloring maps complex function values to pixel colors for
// domain coloring plots.
//
// A domain coloring image encodes the argument of f(z) as hue. The
// Enhanced scheme additionally shades brightness by the fractional part
// of log2 of the magnitude, which draws a ring at every doubling and
// makes zeros and poles easy to spot. The package keeps no shared
// palette state: multi-series colors are indexed explicitly with Cycle.
package coloring

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aclements/go-symplot/grid"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// A Scheme selects how complex values map to pixel colors.
type Scheme int

const (
	// Enhanced encodes the argument as hue and shades brightness by
	// the magnitude. Zeros are black, poles saturate to full
	// brightness, and a ring appears at every magnitude doubling.
	Enhanced Scheme = iota

	// Phase encodes the argument as hue at full brightness and
	// ignores the magnitude.
	Phase
)

func (s Scheme) String() string {
	switch s {
	case Enhanced:
		return "enhanced"
	case Phase:
		return "phase"
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// pixel colors one sample. Hue sweeps the full color circle as arg runs
// over (-pi, pi]. NaN samples are fully transparent.
func pixel(mag, arg float64, s Scheme) color.NRGBA {
	if math.IsNaN(mag) || math.IsNaN(arg) {
		return color.NRGBA{}
	}
	hue := (arg + math.Pi) / (2 * math.Pi) * 360
	if hue >= 360 {
		hue -= 360
	}
	v := 1.0
	if s == Enhanced {
		switch {
		case mag == 0:
			v = 0
		case math.IsInf(mag, 1):
			v = 1
		default:
			l := math.Log2(mag)
			v = 0.5 + 0.5*(l-math.Floor(l))
		}
	}
	r, g, b := colorful.Hsv(hue, 1, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Image renders magnitude and argument grids as an image. The grids
// must share an (ny, nx) shape. Row 0 maps to the bottom scanline so
// the result reads like a plot with y increasing upward. Samples that
// failed to evaluate (NaN) come out fully transparent.
func Image(mag, arg grid.Array, s Scheme) *image.NRGBA {
	if len(mag.Shape) != 2 || !mag.SameShape(arg) {
		panic("coloring: magnitude and argument grids must share a 2D shape")
	}
	ny, nx := mag.Shape[0], mag.Shape[1]
	img := image.NewNRGBA(image.Rect(0, 0, nx, ny))
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			img.SetNRGBA(j, ny-1-i, pixel(mag.At(i, j), arg.At(i, j), s))
		}
	}
	return img
}

// Colorscale returns an n-entry palette sweeping the argument over
// (-pi, pi) at unit magnitude. Renderers draw it as the legend next to
// an Image of the same scheme.
func Colorscale(s Scheme, n int) []color.NRGBA {
	ps := make([]color.NRGBA, n)
	for i := range ps {
		arg := -math.Pi + 2*math.Pi*(float64(i)+0.5)/float64(n)
		ps[i] = pixel(1, arg, s)
	}
	return ps
}

// goldenAngle spaces consecutive Cycle hues so that nearby indices stay
// far apart on the color circle.
const goldenAngle = 137.50776405003785

// Cycle returns the color for the i'th series of a plot. The palette is
// a deterministic function of i; callers track their own series index,
// so independent plots never perturb each other's colors.
func Cycle(i int) color.NRGBA {
	hue := math.Mod(217+goldenAngle*float64(i), 360)
	if hue < 0 {
		hue += 360
	}
	r, g, b := colorful.Hsv(hue, 0.6, 0.75).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
