// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-symplot/expr"
)

func TestString(t *testing.T) {
	tests := []struct {
		e    Entity
		want string
	}{
		{P2(0, 0), "Point2D(0, 0)"},
		{P2(-1.5, 2), "Point2D(-1.5, 2)"},
		{P3(0, 0, 0), "Point3D(0, 0, 0)"},
		{Segment{P2(0, 0), P2(1, 1)}, "Segment2D(Point2D(0, 0), Point2D(1, 1))"},
		{Circle{P2(0, 0), expr.Number(5)}, "Circle(Point2D(0, 0), 5)"},
		{Circle{Point2{expr.Var("x"), expr.Number(0)}, expr.Number(5)}, "Circle(Point2D(x, 0), 5)"},
		{Ellipse{P2(0, 0), expr.Number(5), expr.Number(3)}, "Ellipse(Point2D(0, 0), 5, 3)"},
		{Polygon{[]Point2{P2(0, 0), P2(1, 0), P2(0, 1)}}, "Polygon(Point2D(0, 0), Point2D(1, 0), Point2D(0, 1))"},
		{Plane{P3(0, 0, 0), NormalV(1, 1, 1)}, "Plane(Point3D(0, 0, 0), (1, 1, 1))"},
		{Plane{Point3{expr.Var("z"), expr.Number(0), expr.Number(0)}, NormalV(1, 1, 1)}, "Plane(Point3D(z, 0, 0), (1, 1, 1))"},
	}
	for _, test := range tests {
		if got := test.e.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestResolve(t *testing.T) {
	x := expr.Var("x")

	cx, cy, r, err := Circle{P2(1, 2), expr.Number(5)}.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cx != 1 || cy != 2 || r != 5 {
		t.Errorf("Resolve = (%v, %v, %v), want (1, 2, 5)", cx, cy, r)
	}

	// Symbolic radius with a parameter binding.
	c := Circle{P2(0, 0), expr.Mul(expr.Number(2), x)}
	_, _, r, err = c.Resolve(map[string]float64{"x": 3})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r != 6 {
		t.Errorf("radius = %v, want 6", r)
	}

	// Unbound symbol.
	_, _, _, err = c.Resolve(nil)
	if err == nil || !strings.Contains(err.Error(), "unbound") {
		t.Errorf("Resolve error = %v, want unbound symbol error", err)
	}

	// Non-positive radius.
	_, _, _, err = Circle{P2(0, 0), expr.Number(-1)}.Resolve(nil)
	if err == nil {
		t.Errorf("Resolve accepted negative radius")
	}

	px, py, pz, a, b, cc, err := Plane{P3(-2, 4, 6), NormalV(1, 0, 0)}.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if px != -2 || py != 4 || pz != 6 || a != 1 || b != 0 || cc != 0 {
		t.Errorf("Resolve = (%v, %v, %v), (%v, %v, %v)", px, py, pz, a, b, cc)
	}

	_, _, _, _, _, _, err = Plane{P3(0, 0, 0), NormalV(0, 0, 0)}.Resolve(nil)
	if err == nil {
		t.Errorf("Resolve accepted a zero normal")
	}

	// Trig in a coordinate.
	p := Point2{expr.Cos(expr.Number(0)), expr.Sin(expr.Number(0))}
	gx, gy, err := p.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if gx != 1 || gy != 0 {
		t.Errorf("Resolve = (%v, %v), want (1, 0)", gx, gy)
	}
}

func TestResolvePolygon(t *testing.T) {
	xs, ys, err := Polygon{[]Point2{P2(0, 0), P2(2, 0), P2(2, 1), P2(0, 1)}}.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := []float64{0, 2, 2, 0}; !reflect.DeepEqual(xs, want) {
		t.Errorf("xs = %v, want %v", xs, want)
	}
	if want := []float64{0, 0, 1, 1}; !reflect.DeepEqual(ys, want) {
		t.Errorf("ys = %v, want %v", ys, want)
	}

	_, _, err = Polygon{[]Point2{P2(0, 0), P2(1, 1)}}.Resolve(nil)
	if err == nil {
		t.Errorf("Resolve accepted a 2-vertex polygon")
	}
}

func TestResolveEllipse(t *testing.T) {
	cx, cy, hr, vr, err := Ellipse{P2(1, -1), expr.Number(5), expr.Number(3)}.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cx != 1 || cy != -1 || hr != 5 || vr != 3 {
		t.Errorf("Resolve = (%v, %v, %v, %v), want (1, -1, 5, 3)", cx, cy, hr, vr)
	}
}

func TestResolveSegment(t *testing.T) {
	x1, y1, x2, y2, err := Segment{P2(0, 0), P2(3, 4)}.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if x1 != 0 || y1 != 0 || x2 != 3 || y2 != 4 {
		t.Errorf("Resolve = (%v, %v)-(%v, %v), want (0, 0)-(3, 4)", x1, y1, x2, y2)
	}
	if d := math.Hypot(x2-x1, y2-y1); d != 5 {
		t.Errorf("length = %v, want 5", d)
	}
}

func TestFreeVars(t *testing.T) {
	x, u := expr.Var("x"), expr.Var("u")

	tests := []struct {
		e    Entity
		want []string
	}{
		{Circle{P2(0, 0), expr.Number(5)}, nil},
		{Circle{Point2{x, expr.Number(0)}, expr.Mul(u, expr.Number(5))}, []string{"u", "x"}},
		{Plane{Point3{expr.Var("z"), expr.Number(0), expr.Number(0)}, NormalV(1, 1, 1)}, []string{"z"}},
		{Segment{Point2{x, x}, P2(1, 1)}, []string{"x"}},
	}
	for _, test := range tests {
		if got := FreeVars(test.e); !reflect.DeepEqual(got, test.want) {
			t.Errorf("FreeVars(%s) = %v, want %v", test.e, got, test.want)
		}
	}
}
