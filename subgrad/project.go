// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

// project overwrites x with the Euclidean projection of y onto the
// affine constraint set {x : Ax = b}:
//
//	x = y - Aᵀ(AAᵀ)⁻¹(Ay - b)
//
// This is the closed form of 𝚖𝚒𝚗 ‖x - y‖₂ s.t. Ax = b via Lagrange
// multipliers: the residual Ay - b measures the infeasibility of y, the
// Gram solve maps it through (AAᵀ)⁻¹, and Aᵀ lifts the minimal correction
// back into ℝⁿ. The returned x satisfies Ax = b to numerical precision
// however infeasible y was.
//
// r is an m-vector scratch for the residual and multiplier. x and y may
// not alias.
func project(y, x []float64, spec *iterSpec, r []float64) {

	m, n, a, b := spec.m, spec.n, spec.a, spec.b
	if n > len(x) || n > len(y) || m > len(r) || m > len(b) {
		panic("bound check error")
	}

	// r = Ay - b
	dcopy(m, b, 1, r, 1)
	dgemv(m, n, one, a, false, y, -one, r)

	// r = (AAᵀ)⁻¹(Ay - b)
	spec.gram.solve(r)

	// x = y - Aᵀr
	dcopy(n, y, 1, x, 1)
	dgemv(m, n, -one, a, true, r, one, x)
}

// nullProject overwrites w with the projection of g onto 𝚗𝚞𝚕𝚕(A):
//
//	w = g - Aᵀ(AAᵀ)⁻¹Ag
//
// For the basis-pursuit objective, w = 0 with g the chosen subgradient
// certifies that g lies in 𝚛𝚊𝚗𝚐𝚎(Aᵀ), which is the KKT condition at the
// current iterate. The check is one-sided: with the sgn(0) = 0 policy it
// can stay nonzero at a minimizer whose certificate requires a nonzero
// subgradient component at a zero entry.
//
// r is an m-vector scratch. w and g may not alias.
func nullProject(g, w []float64, spec *iterSpec, r []float64) {

	m, n, a := spec.m, spec.n, spec.a
	if n > len(w) || n > len(g) || m > len(r) {
		panic("bound check error")
	}

	dgemv(m, n, one, a, false, g, zero, r)
	spec.gram.solve(r)

	dcopy(n, g, 1, w, 1)
	dgemv(m, n, -one, a, true, r, one, w)
}
