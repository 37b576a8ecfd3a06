// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import (
	"errors"
	"testing"
)

func TestGramFactor(t *testing.T) {

	// AAᵀ = [[2,1],[1,2]]
	a := []float64{
		1, 0, 1,
		0, 1, 1,
	}

	f, err := newGramFactor(a, 2, 3)
	if err != nil {
		t.Fatal("TestGramFactor: unexpected error", err)
	}

	// (AAᵀ)z = (3,3) has solution z = (1,1)
	z := []float64{3, 3}
	f.solve(z)
	if want := []float64{1, 1}; !almostEqual(z, want, 1e-14) {
		t.Fatal("TestGramFactor: bad solution", z)
	}

	// Repeated solves reuse the same factor.
	z = []float64{4, 5}
	f.solve(z)
	if want := []float64{1, 2}; !almostEqual(z, want, 1e-14) {
		t.Fatal("TestGramFactor: bad second solution", z)
	}
}

func TestGramFactorRankDeficient(t *testing.T) {

	// The second row is a multiple of the first, so AAᵀ is singular.
	a := []float64{
		1, 2, 3,
		2, 4, 6,
	}

	f, err := newGramFactor(a, 2, 3)
	switch {
	case f != nil:
		t.Fatal("TestGramFactorRankDeficient: non-nil factor")
	case !errors.Is(err, ErrNotPositiveDefinite):
		t.Fatal("TestGramFactorRankDeficient: unexpected error", err)
	}
}
