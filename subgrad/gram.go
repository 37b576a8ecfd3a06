// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import "fmt"

// gramFactor holds the Cholesky factor of the constraint Gram matrix
//
//	AAᵀ = RᵀR
//
// with the upper triangular R stored row-major in r. The Gram matrix does
// not change across iterations, so the O(m³) factorization is paid once
// per Optimizer and every projection solve afterwards costs O(m²).
//
// A gramFactor is read-only after construction and may be shared by any
// number of concurrent workspaces.
type gramFactor struct {
	m int
	r []float64 // m×m, upper triangle holds R
}

// newGramFactor forms AAᵀ for the m×n row-major matrix a and factors it.
// A failed factorization means A is not of full row rank (or close enough
// to rank deficiency that AAᵀ is numerically indefinite).
func newGramFactor(a []float64, m, n int) (*gramFactor, error) {

	if m <= 0 || m*n > len(a) {
		panic("bound check error")
	}

	// Only the upper triangle is referenced by dpofa.
	g := make([]float64, m*m)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			g[i*m+j] = ddot(n, a[i*n:], 1, a[j*n:], 1)
		}
	}

	if k := dpofa(g, m, m); k != 0 {
		return nil, fmt.Errorf("%w: leading minor of order %d", ErrNotPositiveDefinite, k)
	}
	return &gramFactor{m: m, r: g}, nil
}

// solve overwrites z with the solution of (AAᵀ)x = z using the cached
// factor: a forward sweep Rᵀw = z followed by a backward sweep Rx = w.
func (f *gramFactor) solve(z []float64) {
	if dtrsu(f.r, f.m, f.m, z, true) != 0 {
		panic("singular cholesky factor")
	}
	if dtrsu(f.r, f.m, f.m, z, false) != 0 {
		panic("singular cholesky factor")
	}
}
