// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package export bridges evaluated series to tabular and rendered
// output. Table flattens any series into a column table, CSV writes
// that table as text, and SVG draws 2D line and point kinds as a plot.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-symplot/coloring"
	"github.com/aclements/go-symplot/grid"
	"github.com/aclements/go-symplot/series"
)

// col is one named column of series output. Nil values mark an optional
// channel the series did not produce.
type col struct {
	name string
	vals []float64
}

func cols(cs ...col) table.Grouping {
	b := table.NewBuilder(nil)
	for _, c := range cs {
		if c.vals == nil {
			continue
		}
		b.Add(c.name, c.vals)
	}
	return b.Done()
}

// Table evaluates the series and flattens its data into a column table.
// Line-like kinds produce one row per sample; gridded kinds produce one
// row per mesh node in row-major order. Optional channels (a color
// function, geometry z coordinates) appear only when present.
func Table(s series.Series) (table.Grouping, error) {
	switch s := s.(type) {
	case *series.LineSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"color", d.Color}), nil

	case *series.Parametric2DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"param", d.Param}), nil

	case *series.Parametric3DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"z", d.Z}, col{"param", d.Param}), nil

	case *series.AbsArgSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"abs", d.Abs}, col{"arg", d.Arg}), nil

	case *series.SurfaceSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data}), nil

	case *series.ParametricSurfaceSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data},
			col{"u", d.U.Data}, col{"v", d.V.Data}), nil

	case *series.Implicit2DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		X, Y := grid.Mesh2D(d.Xs, d.Ys)
		return cols(col{"x", X.Data}, col{"y", Y.Data}, col{"f", d.F.Data}), nil

	case *series.Implicit3DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data}, col{"f", d.F.Data}), nil

	case *series.Vector2DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data},
			col{"u", d.U.Data}, col{"v", d.V.Data}), nil

	case *series.Vector3DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data},
			col{"u", d.U.Data}, col{"v", d.V.Data}, col{"w", d.W.Data}), nil

	case *series.SlicedVector3DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data},
			col{"u", d.U.Data}, col{"v", d.V.Data}, col{"w", d.W.Data}), nil

	case *series.ComplexSurfaceSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data}), nil

	case *series.DomainColoringSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data},
			col{"abs", d.Mag.Data}, col{"arg", d.Arg.Data}), nil

	case *series.ComplexPointSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"color", d.Color}), nil

	case *series.List2DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"color", d.Color}), nil

	case *series.List3DSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"z", d.Z}, col{"color", d.Color}), nil

	case *series.GeometrySeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X}, col{"y", d.Y}, col{"z", d.Z}), nil

	case *series.PlaneSeries:
		d, err := s.Data()
		if err != nil {
			return nil, err
		}
		return cols(col{"x", d.X.Data}, col{"y", d.Y.Data}, col{"z", d.Z.Data}), nil
	}
	return nil, fmt.Errorf("export: no table form for %s series", s.Kind())
}

// xyCols picks the two table columns a series draws with in a 2D plot.
func xyCols(s series.Series) (x, y string, err error) {
	switch s.Kind() {
	case series.KindLine, series.KindParametric2D, series.KindComplexPoints,
		series.KindList2D, series.KindGeometry:
		return "x", "y", nil
	case series.KindAbsArg:
		return "x", "abs", nil
	}
	return "", "", fmt.Errorf("export: %s series does not draw as a 2D line", s.Kind())
}

// SVG renders 2D line and point series into one plot. Series are
// colored by position: the i'th series draws in coloring.Cycle(i).
func SVG(w io.Writer, width, height int, ss ...series.Series) error {
	if len(ss) == 0 {
		return fmt.Errorf("export: no series to plot")
	}
	var plot *gg.Plot
	for i, s := range ss {
		xc, yc, err := xyCols(s)
		if err != nil {
			return err
		}
		t, err := Table(s)
		if err != nil {
			return err
		}
		if plot == nil {
			plot = gg.NewPlot(t)
		} else {
			plot.SetData(t)
		}
		c := plot.Const(coloring.Cycle(i))
		if s.IsPoint() {
			plot.Add(gg.LayerPoints{X: xc, Y: yc, Color: c})
		} else {
			plot.Add(gg.LayerPaths{X: xc, Y: yc, Color: c})
		}
	}
	if len(ss) == 1 {
		if l := ss[0].Label(false); l != "" {
			plot.Add(gg.Title(l))
		}
	}
	return plot.WriteSVG(w, width, height)
}

// CSV writes the series table in CSV form: a header row of column
// names, then one row per sample. NaN values become empty fields.
func CSV(w io.Writer, s series.Series) error {
	g, err := Table(s)
	if err != nil {
		return err
	}
	t := g.Table(table.RootGroupID)
	names := t.Columns()
	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	data := make([][]float64, len(names))
	for i, name := range names {
		data[i] = t.Column(name).([]float64)
	}
	row := make([]string, len(names))
	for r := 0; r < t.Len(); r++ {
		for c := range data {
			v := data[c][r]
			if math.IsNaN(v) {
				row[c] = ""
			} else {
				row[c] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
