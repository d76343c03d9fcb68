// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series turns symbolic expressions, geometric entities and raw
// point lists into the numeric data sets a plotting backend consumes.
// Each series kind discretizes its domain, evaluates its expressions over
// it and post-processes the result (pole detection, staircase steps,
// polar conversion, color mapping and coordinate transforms).
//
// A series constructed with parameters is interactive: SetParams rebinds
// the parameter values and the next Data call re-evaluates with them.
package series

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-symplot/coloring"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/sample"
)

// Kind identifies what a series plots.
type Kind int

const (
	KindLine Kind = iota
	KindParametric2D
	KindParametric3D
	KindAbsArg
	KindSurface
	KindContour
	KindParametricSurface
	KindImplicit2D
	KindImplicit3D
	KindVector2D
	KindVector3D
	KindSlicedVector3D
	KindComplexSurface
	KindDomainColoring
	KindComplexPoints
	KindList2D
	KindList3D
	KindGeometry
	KindPlane

	numKinds
)

var kindNames = [numKinds]string{
	"line", "parametric2d", "parametric3d", "absarg",
	"surface", "contour", "parametricsurface",
	"implicit2d", "implicit3d",
	"vector2d", "vector3d", "slicedvector3d",
	"complexsurface", "domaincoloring", "complexpoints",
	"list2d", "list3d", "geometry", "plane",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// KindByName returns the kind with the given name, as printed by
// Kind.String.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// kindSpec captures the per-kind constraints the constructors enforce.
type kindSpec struct {
	colorArity  []int // allowed color function arities; nil means none
	allowOpaque bool
	adaptive    bool // kind supports adaptive refinement
	defaultCM   bool
	parametric  bool // inherently parametric: the data carries a parameter channel
}

var kindSpecs = [numKinds]kindSpec{
	KindLine:              {colorArity: []int{1, 2}, allowOpaque: true, adaptive: true},
	KindParametric2D:      {colorArity: []int{1, 2, 3}, allowOpaque: true, adaptive: true, defaultCM: true, parametric: true},
	KindParametric3D:      {colorArity: []int{1, 3, 4}, allowOpaque: true, adaptive: true, defaultCM: true, parametric: true},
	KindAbsArg:            {allowOpaque: true, adaptive: true, defaultCM: true, parametric: true},
	KindSurface:           {colorArity: []int{1, 2, 3}, allowOpaque: true},
	KindContour:           {colorArity: []int{1, 2, 3}, allowOpaque: true},
	KindParametricSurface: {colorArity: []int{1, 2, 3, 5}, allowOpaque: true, defaultCM: true, parametric: true},
	KindImplicit2D:        {},
	KindImplicit3D:        {allowOpaque: true},
	KindVector2D:          {defaultCM: true},
	KindVector3D:          {defaultCM: true},
	KindSlicedVector3D:    {defaultCM: true},
	KindComplexSurface:    {},
	KindDomainColoring:    {allowOpaque: true},
	KindComplexPoints:     {colorArity: []int{2}, defaultCM: true},
	KindList2D:            {colorArity: []int{2}},
	KindList3D:            {colorArity: []int{3}},
	KindGeometry:          {},
	KindPlane:             {},
}

// Settings holds the process-wide defaults every constructor starts
// from. Options override them per series. Restore the initial values by
// assigning Defaults = DefaultSettings(). The variable is consulted at
// construction time only and is not synchronized.
type Settings struct {
	NLine     int     // line, parametric line and abs-arg kinds
	NSurface  int     // surface, contour, parametric surface, implicit 2D
	NImplicit int     // implicit 3D
	NVector2D int     // 2D vector fields
	NVector3D int     // 3D and sliced vector fields
	NComplex  int     // complex surface and domain coloring
	NGeometry int     // geometric entity boundaries
	NPlane    int     // plane meshes
	Adaptive  bool    // line kinds refine instead of sampling uniformly
	Goal      float64 // adaptive refinement goal
	PoleEps   float64 // pole detection sensitivity
}

// DefaultSettings returns the initial process-wide defaults.
func DefaultSettings() Settings {
	return Settings{
		NLine:     1000,
		NSurface:  100,
		NImplicit: 60,
		NVector2D: 25,
		NVector3D: 10,
		NComplex:  300,
		NGeometry: 200,
		NPlane:    20,
		Goal:      sample.DefaultGoal,
		PoleEps:   0.01,
	}
}

// Defaults are the process-wide series defaults.
var Defaults = DefaultSettings()

func defaultN(kind Kind) int {
	switch kind {
	case KindLine, KindParametric2D, KindParametric3D, KindAbsArg:
		return Defaults.NLine
	case KindSurface, KindContour, KindParametricSurface, KindImplicit2D:
		return Defaults.NSurface
	case KindImplicit3D:
		return Defaults.NImplicit
	case KindVector2D:
		return Defaults.NVector2D
	case KindVector3D, KindSlicedVector3D:
		return Defaults.NVector3D
	case KindComplexSurface, KindDomainColoring:
		return Defaults.NComplex
	case KindGeometry:
		return Defaults.NGeometry
	case KindPlane:
		return Defaults.NPlane
	}
	// List and point kinds take their length from the data.
	return 0
}

// A Series produces plot-ready numeric data from a symbolic description.
// The concrete types add a Data method returning kind-specific arrays.
type Series interface {
	// Kind reports what the series plots.
	Kind() Kind
	// String describes the series, e.g.
	// "cartesian line: cos(x) for x over (-4.0, 3.0)".
	String() string
	// Label returns the legend label: the custom label if one was set,
	// otherwise a rendering of the expression ($-wrapped when latex is
	// true).
	Label(latex bool) string
	// SetLabel overrides the default label.
	SetLabel(label string)
	// Params returns the current parameter bindings. The map is shared;
	// use SetParams to change values.
	Params() map[string]float64
	// SetParams rebinds the interactive parameters. The keys must match
	// the set the series was constructed with.
	SetParams(params map[string]float64) error
	// Interactive reports whether the series has parameters.
	Interactive() bool

	// N1, N2, N3 report the number of discretization points along each
	// domain axis.
	N1() int
	N2() int
	N3() int

	// Flags backends use to pick a drawing routine.
	Is2DLine() bool
	Is3DLine() bool
	Is3DSurface() bool
	Is3D() bool
	IsVector() bool
	IsPoint() bool
	IsFilled() bool
	// IsParametric reports whether Data carries a parameter or color
	// channel mapped through a colormap.
	IsParametric() bool
	InLegend() bool
	UseCM() bool
	Normalized() bool
	// RenderKw returns backend-specific rendering hints. The map may be
	// modified in place.
	RenderKw() map[string]interface{}
}

// base carries the state shared by every series kind.
type base struct {
	kind     Kind
	label    string
	hasLabel bool
	defLabel string // default label, from the expression
	defLaTeX string
	ranges   []grid.Range
	params   map[string]float64

	n           [3]int
	adaptive    bool
	goal        float64
	goalFn      func(sample.Stats) bool
	loss        sample.Loss
	onlyInts    bool
	poles       bool
	eps         float64
	steps       bool
	polar       bool
	scales      [3]grid.Spacing
	precise     bool
	prec        uint
	cplx        bool // evaluate through the complex codomain
	useCM       bool
	color       colorFn
	tx, ty, tz  func(float64) float64
	tp          func(float64) float64
	rkw         map[string]interface{}
	point       bool
	filled      bool
	legend      bool
	normalize   bool
	quiverSolid bool
	nanClip     bool
	threeD      bool
	threeDSet   bool // ThreeD option was given; Build disambiguates on it
	absarg      bool
	scheme      coloring.Scheme
	slice       interface{} // sliced vector fields: the slice surface

	imagDropped bool
}

// newBase seeds a base with the kind's defaults before options apply.
func newBase(kind Kind, ranges []grid.Range) base {
	n := defaultN(kind)
	return base{
		kind:        kind,
		ranges:      ranges,
		n:           [3]int{n, n, n},
		adaptive:    Defaults.Adaptive,
		goal:        Defaults.Goal,
		eps:         Defaults.PoleEps,
		prec:        DefaultPrec,
		cplx:        true,
		useCM:       kindSpecs[kind].defaultCM,
		filled:      true,
		legend:      true,
		quiverSolid: true,
		nanClip:     true,
		rkw:         make(map[string]interface{}),
	}
}

// DefaultPrec is the precision, in bits, of the multiple-precision
// evaluation backend when none is configured.
const DefaultPrec = 128

func (b *base) applyOptions(opts []Option) error {
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return err
		}
	}
	// Integer sampling fixes the coordinates, so there is nothing to
	// refine.
	if b.onlyInts {
		b.adaptive = false
	}
	if !kindSpecs[b.kind].adaptive {
		b.adaptive = false
	}
	if b.color.n != 0 {
		ok := false
		for _, a := range kindSpecs[b.kind].colorArity {
			if a == b.color.n {
				ok = true
			}
		}
		if !ok {
			return configErrf("%s series does not accept a %d-argument color function", b.kind, b.color.n)
		}
	}
	return nil
}

func (b *base) Kind() Kind { return b.kind }

func (b *base) Label(latex bool) string {
	if b.hasLabel {
		return b.label
	}
	if latex {
		if b.defLaTeX == "" {
			return ""
		}
		return "$" + b.defLaTeX + "$"
	}
	return b.defLabel
}

func (b *base) SetLabel(label string) {
	b.label = label
	b.hasLabel = true
}

// setDefaultLabel records the label to use when no custom one is set.
func (b *base) setDefaultLabel(plain, latex string) {
	b.defLabel = plain
	b.defLaTeX = latex
}

func (b *base) Params() map[string]float64 { return b.params }

func (b *base) SetParams(params map[string]float64) error {
	if len(params) != len(b.params) {
		return configErrf("got %d parameters, want %d", len(params), len(b.params))
	}
	for k := range params {
		if _, ok := b.params[k]; !ok {
			return configErrf("unknown parameter %q", k)
		}
	}
	for k, v := range params {
		b.params[k] = v
	}
	return nil
}

func (b *base) Interactive() bool { return len(b.params) > 0 }

func (b *base) N1() int { return b.n[0] }
func (b *base) N2() int { return b.n[1] }
func (b *base) N3() int { return b.n[2] }

func (b *base) Is2DLine() bool {
	switch b.kind {
	case KindLine, KindParametric2D, KindAbsArg, KindList2D, KindComplexPoints, KindGeometry:
		return true
	}
	return false
}

func (b *base) Is3DLine() bool {
	return b.kind == KindParametric3D || b.kind == KindList3D
}

func (b *base) Is3DSurface() bool {
	switch b.kind {
	case KindSurface, KindParametricSurface, KindImplicit3D, KindPlane:
		return true
	case KindComplexSurface, KindDomainColoring:
		return b.threeD
	}
	return false
}

func (b *base) Is3D() bool {
	return b.Is3DLine() || b.Is3DSurface() ||
		b.kind == KindVector3D || b.kind == KindSlicedVector3D
}

func (b *base) IsVector() bool {
	switch b.kind {
	case KindVector2D, KindVector3D, KindSlicedVector3D:
		return true
	}
	return false
}

func (b *base) IsPoint() bool  { return b.point }
func (b *base) IsFilled() bool { return b.filled }

// IsParametric reports whether Data carries a parameter channel:
// parametric kinds always do, other kinds only when a color function
// feeds a colormap.
func (b *base) IsParametric() bool {
	if kindSpecs[b.kind].parametric {
		return true
	}
	return b.useCM && b.color.n != 0
}

func (b *base) InLegend() bool   { return b.legend }
func (b *base) UseCM() bool      { return b.useCM }
func (b *base) Normalized() bool { return b.normalize }

func (b *base) RenderKw() map[string]interface{} { return b.rkw }

// ImagDropped reports whether the last Data call discarded a non-trivial
// imaginary component when projecting complex values to the reals.
func (b *base) ImagDropped() bool { return b.imagDropped }

// paramNames returns the parameter names in sorted order.
func (b *base) paramNames() []string {
	names := make([]string, 0, len(b.params))
	for k := range b.params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// paramTuple renders the parameter names in tuple form: "(u,)" for one
// parameter, "(u, v)" for several.
func (b *base) paramTuple() string {
	names := b.paramNames()
	if len(names) == 1 {
		return "(" + names[0] + ",)"
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// paramList renders the parameter names in list form: "[z]".
func (b *base) paramList() string {
	return "[" + strings.Join(b.paramNames(), ", ") + "]"
}

// fmtF renders a float the way the series descriptions expect:
// integral values keep one decimal ("-4.0"), others print shortest.
func fmtF(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsNaN(v) && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}

// fmtC renders a complex bound, e.g. "(-5+2j)", "(3+0j)" or "2j".
func fmtC(z complex128) string {
	re, im := real(z), imag(z)
	part := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	if re == 0 {
		return part(im) + "j"
	}
	sign := "+"
	if math.Signbit(im) {
		sign = "-"
		im = -im
	}
	return "(" + part(re) + sign + part(im) + "j)"
}

// fmtI renders a bound preferring bare integers: "-5", "4", "2.5".
func fmtI(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// rangeOver renders "x over (-4.0, 3.0)".
func rangeOver(r grid.Range) string {
	lo, hi := r.Real()
	return fmt.Sprintf("%s over (%s, %s)", r.Var, fmtF(lo), fmtF(hi))
}

// rangeOverC renders "x over ((-5+2j), (5+2j))".
func rangeOverC(r grid.Range) string {
	return fmt.Sprintf("%s over (%s, %s)", r.Var, fmtC(r.Lo), fmtC(r.Hi))
}

// rangeTuple renders "(x, -4.0, 3.0)".
func rangeTuple(r grid.Range) string {
	lo, hi := r.Real()
	return fmt.Sprintf("(%s, %s, %s)", r.Var, fmtF(lo), fmtF(hi))
}

// rangeTupleInt renders "(x, -5, 4)", keeping integral bounds bare.
func rangeTupleInt(r grid.Range) string {
	lo, hi := r.Real()
	return fmt.Sprintf("(%s, %s, %s)", r.Var, fmtI(lo), fmtI(hi))
}

// rangeTupleC renders "(x, (-4+0j), (3+0j))".
func rangeTupleC(r grid.Range) string {
	return fmt.Sprintf("(%s, %s, %s)", r.Var, fmtC(r.Lo), fmtC(r.Hi))
}

func rangeTuples(rs []grid.Range, f func(grid.Range) string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = f(r)
	}
	return strings.Join(parts, ", ")
}
