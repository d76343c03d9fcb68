// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"
	"reflect"
	"testing"
)

func TestArray(t *testing.T) {
	a := Zeros(2, 3)
	if a.Len() != 6 {
		t.Fatalf("Len = %d, want 6", a.Len())
	}
	a.Set(42, 1, 2)
	if got := a.At(1, 2); got != 42 {
		t.Errorf("At(1,2) = %v, want 42", got)
	}
	if got := a.Data[5]; got != 42 {
		t.Errorf("Data[5] = %v, want 42 (row-major)", got)
	}

	c := Const(7, 2, 2)
	if !reflect.DeepEqual(c.Data, []float64{7, 7, 7, 7}) {
		t.Errorf("Const data = %v", c.Data)
	}

	m := c.Map(func(v float64) float64 { return v * 2 })
	if m.At(1, 1) != 14 || c.At(1, 1) != 7 {
		t.Error("Map modified the receiver or returned wrong values")
	}

	if !a.SameShape(Zeros(2, 3)) || a.SameShape(Zeros(3, 2)) || a.SameShape(Zeros(6)) {
		t.Error("SameShape misreports")
	}

	s := []float64{1, 2, 3}
	f := FromSlice(s)
	f.Set(9, 1)
	if s[1] != 9 {
		t.Error("FromSlice copied instead of aliasing")
	}
}

func TestArrayPanics(t *testing.T) {
	check := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic", name)
			}
		}()
		f()
	}
	a := Zeros(2, 3)
	check("out of range", func() { a.At(2, 0) })
	check("wrong dims", func() { a.At(1) })
	check("negative index", func() { a.At(0, -1) })
}

func TestCArray(t *testing.T) {
	a := CZeros(2, 2)
	a.Set(3+4i, 0, 1)
	a.Set(-1, 1, 0)
	if got := a.At(0, 1); got != 3+4i {
		t.Errorf("At = %v, want 3+4i", got)
	}
	if got := a.Abs().At(0, 1); got != 5 {
		t.Errorf("Abs = %v, want 5", got)
	}
	if got := a.Re().At(0, 1); got != 3 {
		t.Errorf("Re = %v, want 3", got)
	}
	if got := a.Im().At(0, 1); got != 4 {
		t.Errorf("Im = %v, want 4", got)
	}
	if got := a.Arg().At(1, 0); got != math.Pi {
		t.Errorf("Arg(-1) = %v, want pi", got)
	}
}

func TestCArrayIsReal(t *testing.T) {
	a := CFromSlice([]complex128{1, 2.5, -3})
	if !a.IsReal(1e-8) {
		t.Error("real data reported as complex")
	}
	b := CFromSlice([]complex128{1, 2 + 1e-12i})
	if !b.IsReal(1e-8) {
		t.Error("negligible imaginary part reported as complex")
	}
	c := CFromSlice([]complex128{1, 2 + 1i})
	if c.IsReal(1e-8) {
		t.Error("complex data reported as real")
	}
	d := CFromSlice([]complex128{complex(math.NaN(), math.NaN()), 2})
	if !d.IsReal(1e-8) {
		t.Error("NaN points should not count as complex")
	}
}

func TestMesh2D(t *testing.T) {
	X, Y := Mesh2D([]float64{1, 2, 3}, []float64{10, 20})
	wantShape := []int{2, 3}
	if !reflect.DeepEqual(X.Shape, wantShape) || !reflect.DeepEqual(Y.Shape, wantShape) {
		t.Fatalf("shapes = %v, %v, want %v", X.Shape, Y.Shape, wantShape)
	}
	if !reflect.DeepEqual(X.Data, []float64{1, 2, 3, 1, 2, 3}) {
		t.Errorf("X.Data = %v", X.Data)
	}
	if !reflect.DeepEqual(Y.Data, []float64{10, 10, 10, 20, 20, 20}) {
		t.Errorf("Y.Data = %v", Y.Data)
	}
	// X varies along columns, Y along rows.
	if X.At(1, 2) != 3 || Y.At(1, 2) != 20 {
		t.Errorf("At(1,2) = %v, %v, want 3, 20", X.At(1, 2), Y.At(1, 2))
	}
}

func TestMesh3D(t *testing.T) {
	X, Y, Z := Mesh3D([]float64{1, 2}, []float64{3, 4, 5}, []float64{6, 7})
	wantShape := []int{2, 3, 2}
	if !reflect.DeepEqual(X.Shape, wantShape) {
		t.Fatalf("shape = %v, want %v", X.Shape, wantShape)
	}
	// Matrix indexing: the first axis scans xs.
	if X.At(1, 0, 0) != 2 {
		t.Errorf("X.At(1,0,0) = %v, want 2", X.At(1, 0, 0))
	}
	if Y.At(0, 2, 1) != 5 {
		t.Errorf("Y.At(0,2,1) = %v, want 5", Y.At(0, 2, 1))
	}
	if Z.At(1, 1, 1) != 7 {
		t.Errorf("Z.At(1,1,1) = %v, want 7", Z.At(1, 1, 1))
	}
}
