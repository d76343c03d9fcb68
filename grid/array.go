// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"fmt"
	"math"
	"math/cmplx"
)

// An Array is a dense row-major array of float64 with up to three
// dimensions. The zero value is an empty array. Indexing past the shape
// panics; Array is a plotting data container, not a general tensor.
type Array struct {
	Shape []int
	Data  []float64
}

// Zeros returns a zero-filled array of the given shape.
func Zeros(shape ...int) Array {
	return Array{append([]int(nil), shape...), make([]float64, size(shape))}
}

// Const returns an array of the given shape with every element v.
func Const(v float64, shape ...int) Array {
	a := Zeros(shape...)
	a.Fill(v)
	return a
}

// FromSlice wraps xs as a 1D array without copying.
func FromSlice(xs []float64) Array {
	return Array{[]int{len(xs)}, xs}
}

func size(shape []int) int {
	n := 1
	for _, s := range shape {
		if s < 0 {
			panic(fmt.Sprintf("grid: negative dimension %d", s))
		}
		n *= s
	}
	return n
}

// Len returns the total number of elements.
func (a Array) Len() int { return len(a.Data) }

// At returns the element at the given index, which must have one
// coordinate per dimension.
func (a Array) At(idx ...int) float64 { return a.Data[offset(a.Shape, idx)] }

// Set sets the element at the given index.
func (a Array) Set(v float64, idx ...int) { a.Data[offset(a.Shape, idx)] = v }

func offset(shape, idx []int) int {
	if len(idx) != len(shape) {
		panic(fmt.Sprintf("grid: %d-d index into %d-d array", len(idx), len(shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= shape[d] {
			panic(fmt.Sprintf("grid: index %d out of range [0, %d)", i, shape[d]))
		}
		off = off*shape[d] + i
	}
	return off
}

// Fill sets every element to v.
func (a Array) Fill(v float64) {
	for i := range a.Data {
		a.Data[i] = v
	}
}

// Map returns a new array of the same shape with f applied elementwise.
func (a Array) Map(f func(float64) float64) Array {
	out := Zeros(a.Shape...)
	for i, v := range a.Data {
		out.Data[i] = f(v)
	}
	return out
}

// SameShape reports whether a and b have identical shapes.
func (a Array) SameShape(b Array) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i, s := range a.Shape {
		if b.Shape[i] != s {
			return false
		}
	}
	return true
}

// A CArray is the complex128 twin of Array.
type CArray struct {
	Shape []int
	Data  []complex128
}

// CZeros returns a zero-filled complex array of the given shape.
func CZeros(shape ...int) CArray {
	return CArray{append([]int(nil), shape...), make([]complex128, size(shape))}
}

// CFromSlice wraps zs as a 1D complex array without copying.
func CFromSlice(zs []complex128) CArray {
	return CArray{[]int{len(zs)}, zs}
}

// Len returns the total number of elements.
func (a CArray) Len() int { return len(a.Data) }

// At returns the element at the given index.
func (a CArray) At(idx ...int) complex128 {
	return a.Data[offset(a.Shape, idx)]
}

// Set sets the element at the given index.
func (a CArray) Set(v complex128, idx ...int) {
	a.Data[offset(a.Shape, idx)] = v
}

func (a CArray) project(f func(complex128) float64) Array {
	out := Zeros(a.Shape...)
	for i, v := range a.Data {
		out.Data[i] = f(v)
	}
	return out
}

// Re returns the elementwise real parts.
func (a CArray) Re() Array { return a.project(func(v complex128) float64 { return real(v) }) }

// Im returns the elementwise imaginary parts.
func (a CArray) Im() Array { return a.project(func(v complex128) float64 { return imag(v) }) }

// Abs returns the elementwise moduli.
func (a CArray) Abs() Array { return a.project(cmplx.Abs) }

// Arg returns the elementwise arguments in (-pi, pi].
func (a CArray) Arg() Array { return a.project(cmplx.Phase) }

// IsReal reports whether every finite element has a negligible imaginary
// part relative to tol (an element is negligible when |im| <= tol or
// |im| <= tol*|re|).
func (a CArray) IsReal(tol float64) bool {
	for _, v := range a.Data {
		im := math.Abs(imag(v))
		if math.IsNaN(real(v)) || math.IsNaN(im) {
			continue
		}
		if im > tol && im > tol*math.Abs(real(v)) {
			return false
		}
	}
	return true
}

// Mesh2D builds coordinate matrices from the axis vectors xs and ys. The
// result shape is (len(ys), len(xs)): rows scan ys, columns scan xs, so
// X[i,j] = xs[j] and Y[i,j] = ys[i].
func Mesh2D(xs, ys []float64) (X, Y Array) {
	n1, n2 := len(xs), len(ys)
	X, Y = Zeros(n2, n1), Zeros(n2, n1)
	for i := 0; i < n2; i++ {
		copy(X.Data[i*n1:(i+1)*n1], xs)
		for j := 0; j < n1; j++ {
			Y.Data[i*n1+j] = ys[i]
		}
	}
	return X, Y
}

// Mesh3D builds coordinate volumes from the axis vectors xs, ys and zs.
// The result shape is (len(xs), len(ys), len(zs)) with matrix indexing:
// X[i,j,k] = xs[i], Y[i,j,k] = ys[j], Z[i,j,k] = zs[k].
func Mesh3D(xs, ys, zs []float64) (X, Y, Z Array) {
	n1, n2, n3 := len(xs), len(ys), len(zs)
	X, Y, Z = Zeros(n1, n2, n3), Zeros(n1, n2, n3), Zeros(n1, n2, n3)
	p := 0
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			for k := 0; k < n3; k++ {
				X.Data[p] = xs[i]
				Y.Data[p] = ys[j]
				Z.Data[p] = zs[k]
				p++
			}
		}
	}
	return X, Y, Z
}
