// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command symplot discretizes symbolic expressions into plot-ready data
// and renders it.
//
// The expression and plot ranges come from flags:
//
//	symplot -expr "sin(x^2)" -range x:-4:4 -adaptive -o plot.svg
//	symplot -expr "cos(t)" -expr "sin(t)" -range t:0:6.28 -o curve.svg
//	symplot -expr "1/z" -range z:-2-2i:2+2i -kind domaincoloring -o plot.png
//	symplot -expr "cos(u*x)" -range x:-5:5 -params u=1 -http :8080
//
// With no -o flag the series table prints to standard output. SVG
// output draws line and point kinds, PNG output draws domain colorings
// and CSV takes any kind. -http serves the rendering instead of writing
// a file; query parameters rebind the -params values, so a browser can
// drive an interactive series (for the last example above, /?u=3).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-symplot/export"
	"github.com/aclements/go-symplot/expr"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/series"
	"golang.org/x/image/draw"
)

const svgWidth, svgHeight = 800, 500

func main() {
	log.SetPrefix("symplot: ")
	log.SetFlags(0)

	var exprs exprList
	var ranges rangeList
	flag.Var(&exprs, "expr", "plot `expression` (repeat for parametric and vector kinds)")
	flag.Var(&ranges, "range", "plot range `v:lo:hi` (repeat per axis; complex bounds like z:-2-2i:2+2i)")
	var (
		flagKind     = flag.String("kind", "auto", "series `kind`: auto, line, absarg, surface, contour, domaincoloring, ...")
		flagN        = flag.Int("n", 0, "sample `points` along every axis (0 = kind default)")
		flagN1       = flag.Int("n1", 0, "sample `points` along the first axis")
		flagN2       = flag.Int("n2", 0, "sample `points` along the second axis")
		flagN3       = flag.Int("n3", 0, "sample `points` along the third axis")
		flagAdaptive = flag.Bool("adaptive", false, "refine lines adaptively instead of sampling uniformly")
		flagGoal     = flag.Float64("goal", 0, "adaptive refinement `goal` (implies -adaptive)")
		flagLog      = flag.String("log", "", "log-scale the given `axes` (subset of \"xyz\")")
		flagIntegers = flag.Bool("integers", false, "sample at integer coordinates only")
		flagPoles    = flag.Bool("poles", false, "break lines at detected poles")
		flagEps      = flag.Float64("eps", 0.01, "pole detection `sensitivity` for -poles")
		flagParams   = flag.String("params", "", "parameter `bindings`, e.g. \"u=1,v=2\"")
		flagPrecise  = flag.Bool("precise", false, "evaluate with the multiple-precision backend")
		flagPrec     = flag.Uint("prec", 0, "precision `bits` for -precise (0 = default)")
		flagSteps    = flag.Bool("steps", false, "draw a staircase between samples")
		flagOut      = flag.String("o", "", "write output to `file` (.svg, .png or .csv; default: print the table)")
		flagScale    = flag.Int("scale", 1, "upscale domain coloring images by integer `factor`")
		flagHTTP     = flag.String("http", "", "serve the rendering at `address` instead of writing a file")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -expr expression [-range v:lo:hi]... [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 0 || len(exprs) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts, err := seriesOptions(flagSet{
		n: [4]int{*flagN, *flagN1, *flagN2, *flagN3}, adaptive: *flagAdaptive,
		goal: *flagGoal, logAxes: *flagLog, integers: *flagIntegers,
		poles: *flagPoles, eps: *flagEps, params: *flagParams,
		precise: *flagPrecise, prec: *flagPrec, steps: *flagSteps,
	})
	if err != nil {
		log.Fatal(err)
	}
	s, err := buildSeries(exprs, ranges, *flagKind, opts)
	if err != nil {
		log.Fatal(err)
	}

	if *flagHTTP != "" {
		serve(*flagHTTP, s, *flagScale)
		return
	}

	if *flagOut == "" {
		g, err := export.Table(s)
		if err != nil {
			log.Fatal(err)
		}
		table.Fprint(os.Stdout, g)
		return
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	switch ext := filepath.Ext(*flagOut); ext {
	case ".svg":
		err = export.SVG(f, svgWidth, svgHeight, s)
	case ".png":
		err = writePNG(f, s, *flagScale)
	case ".csv":
		err = export.CSV(f, s)
	default:
		log.Fatalf("unknown output format %q (want .svg, .png or .csv)", ext)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// flagSet carries the parsed option flags to seriesOptions.
type flagSet struct {
	n        [4]int // -n, -n1, -n2, -n3
	adaptive bool
	goal     float64
	logAxes  string
	integers bool
	poles    bool
	eps      float64
	params   string
	precise  bool
	prec     uint
	steps    bool
}

// seriesOptions translates flags into series options.
func seriesOptions(f flagSet) ([]series.Option, error) {
	var opts []series.Option
	if f.n[0] > 0 {
		opts = append(opts, series.N(f.n[0]))
	}
	for i, set := range []func(int) series.Option{series.N1, series.N2, series.N3} {
		if f.n[i+1] > 0 {
			opts = append(opts, set(f.n[i+1]))
		}
	}
	if f.adaptive || f.goal > 0 {
		opts = append(opts, series.Adaptive(true))
	}
	if f.goal > 0 {
		opts = append(opts, series.Goal(f.goal))
	}
	for _, c := range f.logAxes {
		switch c {
		case 'x':
			opts = append(opts, series.XScale(grid.Log))
		case 'y':
			opts = append(opts, series.YScale(grid.Log))
		case 'z':
			opts = append(opts, series.ZScale(grid.Log))
		default:
			return nil, fmt.Errorf("-log: unknown axis %q", string(c))
		}
	}
	if f.integers {
		opts = append(opts, series.OnlyIntegers(true))
	}
	if f.poles {
		opts = append(opts, series.DetectPoles(true), series.PoleEps(f.eps))
	}
	if f.params != "" {
		m, err := parseParams(f.params)
		if err != nil {
			return nil, err
		}
		opts = append(opts, series.Params(m))
	}
	if f.precise {
		opts = append(opts, series.Precise(true))
	}
	if f.prec > 0 {
		opts = append(opts, series.Prec(f.prec))
	}
	if f.steps {
		opts = append(opts, series.Steps(true))
	}
	return opts, nil
}

// buildSeries constructs the series for the given expressions and
// ranges. An explicit -kind adds the options that steer the dispatch
// and then double-checks the result.
func buildSeries(es []expr.Expr, rs []grid.Range, kind string, opts []series.Option) (series.Series, error) {
	switch kind {
	case "auto":
	case "absarg", "domaincoloring":
		opts = append(opts, series.AbsArg(true))
	case "contour":
		opts = append(opts, series.ThreeD(false))
	default:
		if _, ok := series.KindByName(kind); !ok {
			return nil, fmt.Errorf("unknown kind %q", kind)
		}
	}
	if kind == "complexpoints" || (kind == "auto" && len(rs) == 0) {
		return series.ComplexPoints(es, opts...)
	}
	s, err := series.Build(es, rs, opts...)
	if err != nil {
		return nil, err
	}
	if kind != "auto" && s.Kind().String() != kind {
		return nil, fmt.Errorf("%d expressions over %d ranges make a %s series, not %s",
			len(es), len(rs), s.Kind(), kind)
	}
	return s, nil
}

// parseParams parses "u=1,v=2" bindings.
func parseParams(s string) (map[string]float64, error) {
	m := make(map[string]float64)
	for _, kv := range strings.Split(s, ",") {
		name, val, ok := strings.Cut(strings.TrimSpace(kv), "=")
		if !ok {
			return nil, fmt.Errorf("bad parameter binding %q (want name=value)", kv)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %v", name, err)
		}
		m[strings.TrimSpace(name)] = v
	}
	return m, nil
}

// writePNG renders a domain coloring series, upscaled by factor with
// Catmull-Rom interpolation.
func writePNG(w io.Writer, s series.Series, factor int) error {
	dc, ok := s.(*series.DomainColoringSeries)
	if !ok {
		return fmt.Errorf("png output draws domaincoloring series, have %s", s.Kind())
	}
	d, err := dc.Data()
	if err != nil {
		return err
	}
	if factor <= 1 {
		return png.Encode(w, d.Img)
	}
	sb := d.Img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx()*factor, sb.Dy()*factor))
	draw.CatmullRom.Scale(dst, dst.Bounds(), d.Img, sb, draw.Src, nil)
	return png.Encode(w, dst)
}

// serve renders the series over HTTP. Query parameters matching the
// series' parameter names rebind them for that request.
func serve(addr string, s series.Series, scale int) {
	// SetParams mutates the series, so requests are serialized.
	var mu sync.Mutex
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if len(s.Params()) > 0 {
			next := make(map[string]float64, len(s.Params()))
			for k, v := range s.Params() {
				next[k] = v
			}
			for k := range next {
				qv := r.URL.Query().Get(k)
				if qv == "" {
					continue
				}
				v, err := strconv.ParseFloat(qv, 64)
				if err != nil {
					http.Error(w, fmt.Sprintf("parameter %s: %v", k, err), http.StatusBadRequest)
					return
				}
				next[k] = v
			}
			if err := s.SetParams(next); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if _, ok := s.(*series.DomainColoringSeries); ok {
			w.Header().Set("Content-Type", "image/png")
			if err := writePNG(w, s, scale); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		if err := export.SVG(w, svgWidth, svgHeight, s); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	log.Fatal(http.ListenAndServe(addr, nil))
}

// exprList collects repeated -expr flags, parsed eagerly.
type exprList []expr.Expr

func (l *exprList) String() string { return fmt.Sprint([]expr.Expr(*l)) }

func (l *exprList) Set(s string) error {
	e, err := expr.Parse(s)
	if err != nil {
		return err
	}
	*l = append(*l, e)
	return nil
}

// rangeList collects repeated -range flags of the form "v:lo:hi".
// Bounds parse as floats or as complex numbers like -2-2i.
type rangeList []grid.Range

func (l *rangeList) String() string { return fmt.Sprint([]grid.Range(*l)) }

func (l *rangeList) Set(s string) error {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" {
		return fmt.Errorf("want v:lo:hi, have %q", s)
	}
	lo, err := parseBound(parts[1])
	if err != nil {
		return err
	}
	hi, err := parseBound(parts[2])
	if err != nil {
		return err
	}
	*l = append(*l, grid.CR(parts[0], lo, hi))
	return nil
}

func parseBound(s string) (complex128, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return complex(v, 0), nil
	}
	return strconv.ParseComplex(s, 128)
}
