// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import (
	"math"
	"reflect"
	"testing"
)

func TestDpofa(t *testing.T) {

	// A = RᵀR with R = [[2,6,-8],[0,1,5],[0,0,3]]
	a := []float64{
		4, 12, -16,
		12, 37, -43,
		-16, -43, 98,
	}

	if info := dpofa(a, 3, 3); info != 0 {
		t.Fatal("TestDpofa: unexpected info", info)
	}

	want := []float64{
		2, 6, -8,
		12, 1, 5, // strict lower triangle unaltered
		-16, -43, 3,
	}
	if !almostEqual(a, want, 1e-14) {
		t.Fatal("TestDpofa: bad factor", a)
	}
}

func TestDpofaNotPosDef(t *testing.T) {

	// Leading minor of order 2 is negative.
	a := []float64{
		1, 2,
		2, 1,
	}
	if info := dpofa(a, 2, 2); info != 2 {
		t.Fatal("TestDpofaNotPosDef: unexpected info", info)
	}
}

func TestDtrsu(t *testing.T) {

	r := []float64{
		2, 6, -8,
		0, 1, 5,
		0, 0, 3,
	}

	// R * x = b with x = (1,2,3)
	b := []float64{-10, 17, 9}
	if info := dtrsu(r, 3, 3, b, false); info != 0 {
		t.Fatal("TestDtrsu: unexpected info", info)
	}
	if want := []float64{1, 2, 3}; !almostEqual(b, want, 1e-14) {
		t.Fatal("TestDtrsu: bad solution", b)
	}

	// Rᵀ * x = b with x = (1,2,3)
	b = []float64{2, 8, 11}
	if info := dtrsu(r, 3, 3, b, true); info != 0 {
		t.Fatal("TestDtrsu: unexpected info", info)
	}
	if want := []float64{1, 2, 3}; !almostEqual(b, want, 1e-14) {
		t.Fatal("TestDtrsu: bad transpose solution", b)
	}
}

func TestDtrsuSingular(t *testing.T) {

	r := []float64{
		2, 6,
		0, 0,
	}
	b := []float64{1, 1}
	if info := dtrsu(r, 2, 2, b, false); info != 2 {
		t.Fatal("TestDtrsuSingular: unexpected info", info)
	}
	if want := []float64{1, 1}; !reflect.DeepEqual(b, want) {
		t.Fatal("TestDtrsuSingular: b was altered", b)
	}
}

func TestDgemv(t *testing.T) {

	A := []float64{
		1, 2, 3,
		4, 5, 6,
	}

	x := []float64{1, 1, 1}
	y := []float64{0, 0}
	dgemv(2, 3, 1.0, A, false, x, 0.0, y)
	if e := []float64{6, 15}; !reflect.DeepEqual(y, e) {
		t.Fatal("GEMV Test failed! Expected:", e, "Got:", y)
	}

	x = []float64{1, 1}
	y = []float64{0, 0, 0}
	dgemv(2, 3, 1.0, A, true, x, 0.0, y)
	if e := []float64{5, 7, 9}; !reflect.DeepEqual(y, e) {
		t.Fatal("GEMV Test failed! Expected:", e, "Got:", y)
	}

	// y = α·A·x + β·y
	x = []float64{1, 1, 1}
	y = []float64{1, 1}
	dgemv(2, 3, 1.0, A, false, x, 2.0, y)
	if e := []float64{8, 17}; !reflect.DeepEqual(y, e) {
		t.Fatal("GEMV Test failed! Expected:", e, "Got:", y)
	}

	// residual form: y = b, then y = A·x - y
	y = []float64{1, 1}
	dgemv(2, 3, 1.0, A, false, x, -1.0, y)
	if e := []float64{5, 14}; !reflect.DeepEqual(y, e) {
		t.Fatal("GEMV Test failed! Expected:", e, "Got:", y)
	}
}

func almostEqual[T float64 | []float64](a, b T, tol float64) bool {
	equalWithinAbs := func(a, b float64) bool {
		return a == b || math.Abs(a-b) <= tol
	}
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float64:
		return equalWithinAbs(any(a).(float64), any(b).(float64))
	case reflect.Slice:
		a, b := any(a).([]float64), any(b).([]float64)
		if len(a) != len(b) {
			return false
		}
		for i, a := range a {
			if !equalWithinAbs(a, b[i]) {
				return false
			}
		}
		return true
	default:
		panic("unknown type")
	}
}
