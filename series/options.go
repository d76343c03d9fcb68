// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"

	"github.com/aclements/go-symplot/coloring"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/sample"
)

// An Option configures a series at construction time. Options that do
// not apply to the series kind are ignored, matching the permissive
// keyword handling of plotting front ends.
type Option func(*base) error

// N sets the number of discretization points on every domain axis.
func N(n int) Option {
	return func(b *base) error {
		if n < 2 {
			return configErrf("n = %d, need at least 2 points", n)
		}
		b.n = [3]int{n, n, n}
		return nil
	}
}

// N1 sets the number of points along the first domain axis.
func N1(n int) Option { return setN(0, n) }

// N2 sets the number of points along the second domain axis.
func N2(n int) Option { return setN(1, n) }

// N3 sets the number of points along the third domain axis.
func N3(n int) Option { return setN(2, n) }

func setN(axis, n int) Option {
	return func(b *base) error {
		if n < 2 {
			return configErrf("n = %d, need at least 2 points", n)
		}
		b.n[axis] = n
		return nil
	}
}

// Adaptive selects adaptive refinement instead of uniform sampling.
// Only line-like series refine; other kinds ignore it.
func Adaptive(on bool) Option {
	return func(b *base) error {
		b.adaptive = on
		return nil
	}
}

// Goal sets the adaptive refinement target: refinement stops once the
// largest remaining interval loss drops below goal.
func Goal(goal float64) Option {
	return func(b *base) error {
		if goal <= 0 || math.IsNaN(goal) {
			return configErrf("adaptive goal %v is not positive", goal)
		}
		b.goal = goal
		return nil
	}
}

// GoalFunc sets a predicate that stops adaptive refinement, replacing
// the numeric goal.
func GoalFunc(f func(sample.Stats) bool) Option {
	return func(b *base) error {
		b.goalFn = f
		return nil
	}
}

// Loss sets the adaptive interval loss function.
func Loss(l sample.Loss) Option {
	return func(b *base) error {
		b.loss = l
		return nil
	}
}

// OnlyIntegers samples only the integer coordinates inside each range,
// ignoring the configured number of points.
func OnlyIntegers(on bool) Option {
	return func(b *base) error {
		b.onlyInts = on
		return nil
	}
}

// DetectPoles enables pole detection on line data: after evaluation,
// any step whose slope exceeds 1/eps is broken with a NaN.
func DetectPoles(on bool) Option {
	return func(b *base) error {
		b.poles = on
		return nil
	}
}

// PoleEps sets the pole detection sensitivity. Smaller values require
// steeper jumps. The default is 0.01.
func PoleEps(eps float64) Option {
	return func(b *base) error {
		if eps <= 0 || math.IsNaN(eps) {
			return configErrf("pole eps %v is not positive", eps)
		}
		b.eps = eps
		return nil
	}
}

// Steps renders line data as a staircase: n samples become 2n-1 points.
func Steps(on bool) Option {
	return func(b *base) error {
		b.steps = on
		return nil
	}
}

// Polar requests polar interpretation. For 2D parametric lines the
// computed cartesian points are converted to (angle, radius) pairs; for
// surfaces the first range is the radius and the second the angle.
func Polar(on bool) Option {
	return func(b *base) error {
		b.polar = on
		return nil
	}
}

// XScale sets the spacing of the first domain axis (the parameter axis
// for parametric lines).
func XScale(s grid.Spacing) Option { return setScale(0, s) }

// YScale sets the spacing of the second domain axis.
func YScale(s grid.Spacing) Option { return setScale(1, s) }

// ZScale sets the spacing of the third domain axis.
func ZScale(s grid.Spacing) Option { return setScale(2, s) }

func setScale(axis int, s grid.Spacing) Option {
	return func(b *base) error {
		b.scales[axis] = s
		return nil
	}
}

// Precise evaluates through the multiple-precision backend instead of
// complex128. Branch cuts follow the convention that the argument of a
// negative real is +pi regardless of zero signs.
func Precise(on bool) Option {
	return func(b *base) error {
		b.precise = on
		return nil
	}
}

// Prec sets the precision, in mantissa bits, of the multiple-precision
// backend. It implies Precise.
func Prec(bits uint) Option {
	return func(b *base) error {
		if bits == 0 {
			return configErrf("precision must be positive")
		}
		b.precise = true
		b.prec = bits
		return nil
	}
}

// ComplexEval controls whether line series evaluate through the complex
// codomain (keeping branch-cut behavior and discarding the imaginary
// part afterwards) or purely over the reals. Complex evaluation is the
// default.
func ComplexEval(on bool) Option {
	return func(b *base) error {
		b.cplx = on
		return nil
	}
}

// UseCM controls whether the series maps a value channel through a
// colormap. With it off, color functions are ignored and the solid
// render color applies.
func UseCM(on bool) Option {
	return func(b *base) error {
		b.useCM = on
		return nil
	}
}

// ColorFunc1 sets a one-argument color function. The channel it
// receives depends on the kind: the x coordinates for lines and
// surfaces, the parameter for parametric lines, the first parameter
// grid for parametric surfaces. The result must have the input length,
// or length 1 to broadcast a constant.
func ColorFunc1(f func(a []float64) []float64) Option {
	return func(b *base) error {
		b.color = colorFn{n: 1, f1: f}
		return nil
	}
}

// ColorFunc2 sets a two-argument color function.
func ColorFunc2(f func(a, b []float64) []float64) Option {
	return func(b *base) error {
		b.color = colorFn{n: 2, f2: f}
		return nil
	}
}

// ColorFunc3 sets a three-argument color function.
func ColorFunc3(f func(a, b, c []float64) []float64) Option {
	return func(b *base) error {
		b.color = colorFn{n: 3, f3: f}
		return nil
	}
}

// ColorFunc4 sets a four-argument color function.
func ColorFunc4(f func(a, b, c, d []float64) []float64) Option {
	return func(b *base) error {
		b.color = colorFn{n: 4, f4: f}
		return nil
	}
}

// ColorFunc5 sets a five-argument color function.
func ColorFunc5(f func(a, b, c, d, e []float64) []float64) Option {
	return func(b *base) error {
		b.color = colorFn{n: 5, f5: f}
		return nil
	}
}

// LineColor sets the solid line color rendering hint. A color function
// value becomes the series color function instead and no hint is
// stored.
func LineColor(v interface{}) Option { return styleColor("line_color", v) }

// SurfaceColor sets the solid surface color rendering hint. Function
// values become the color function, as with LineColor.
func SurfaceColor(v interface{}) Option { return styleColor("surface_color", v) }

func styleColor(key string, v interface{}) Option {
	return func(b *base) error {
		switch f := v.(type) {
		case func(a []float64) []float64:
			b.color = colorFn{n: 1, f1: f}
		case func(a, b []float64) []float64:
			b.color = colorFn{n: 2, f2: f}
		case func(a, b, c []float64) []float64:
			b.color = colorFn{n: 3, f3: f}
		default:
			b.rkw[key] = v
		}
		return nil
	}
}

// TX, TY, TZ and TP set transforms applied element-wise to the
// corresponding output channel after all other processing. TP applies
// to the parameter channel of parametric lines; for abs-arg lines TZ
// applies to the argument channel.

func TX(f func(float64) float64) Option {
	return func(b *base) error { b.tx = f; return nil }
}

func TY(f func(float64) float64) Option {
	return func(b *base) error { b.ty = f; return nil }
}

func TZ(f func(float64) float64) Option {
	return func(b *base) error { b.tz = f; return nil }
}

func TP(f func(float64) float64) Option {
	return func(b *base) error { b.tp = f; return nil }
}

// Label sets a custom legend label, overriding the expression-derived
// default. An empty custom label is legal and suppresses the legend
// entry text.
func Label(label string) Option {
	return func(b *base) error {
		b.label = label
		b.hasLabel = true
		return nil
	}
}

// RenderKw attaches backend-specific rendering hints.
func RenderKw(kw map[string]interface{}) Option {
	return func(b *base) error {
		for k, v := range kw {
			b.rkw[k] = v
		}
		return nil
	}
}

// Params declares the interactive parameters and their initial values.
// Every free symbol that is not a range variable must appear here.
func Params(params map[string]float64) Option {
	return func(b *base) error {
		if len(params) == 0 {
			return nil
		}
		if b.params == nil {
			b.params = make(map[string]float64, len(params))
		}
		for k, v := range params {
			b.params[k] = v
		}
		return nil
	}
}

// Point renders the samples as markers instead of a connected line.
func Point(on bool) Option {
	return func(b *base) error {
		b.point = on
		return nil
	}
}

// Filled controls marker fill for point series, region fill for contour
// and geometry series.
func Filled(on bool) Option {
	return func(b *base) error {
		b.filled = on
		return nil
	}
}

// Legend controls whether the series appears in the plot legend.
func Legend(on bool) Option {
	return func(b *base) error {
		b.legend = on
		return nil
	}
}

// Normalize rescales the vectors of a vector series to unit length,
// preserving direction. Zero vectors come out as NaN.
func Normalize(on bool) Option {
	return func(b *base) error {
		b.normalize = on
		return nil
	}
}

// QuiverSolidColor controls whether 2D quivers without a colormap render
// in a single solid color.
func QuiverSolidColor(on bool) Option {
	return func(b *base) error {
		b.quiverSolid = on
		return nil
	}
}

// NaNClip controls whether plane series replace points outside the
// requested z-range with NaN. It is on by default.
func NaNClip(on bool) Option {
	return func(b *base) error {
		b.nanClip = on
		return nil
	}
}

// ThreeD selects the 3D variant of complex surface and domain coloring
// series; otherwise they describe a 2D contour-style plot. In the Build
// factory it also chooses between surface and contour for a real
// two-range expression.
func ThreeD(on bool) Option {
	return func(b *base) error {
		b.threeD = on
		b.threeDSet = true
		return nil
	}
}

// AbsArg directs the Build factory to plot magnitude and argument: a
// single expression over a real range becomes an abs-arg line, over a
// complex range a domain coloring.
func AbsArg(on bool) Option {
	return func(b *base) error {
		b.absarg = on
		return nil
	}
}

// Coloring selects the domain coloring scheme.
func Coloring(s coloring.Scheme) Option {
	return func(b *base) error {
		b.scheme = s
		return nil
	}
}

// Slice restricts a 3D vector field to a slice surface: a geom.Plane,
// an expression of two of the plot variables, or a surface series. With
// three expressions and three ranges it directs Build to a sliced
// vector field.
func Slice(v interface{}) Option {
	return func(b *base) error {
		b.slice = v
		return nil
	}
}
