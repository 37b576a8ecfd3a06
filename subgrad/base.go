// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

const (
	zero = 0.0
	one  = 1.0
)

// iterTask encodes the state of an optimization run.
// The zero value keeps the main loop going; every terminal state carries
// either the iterConv bit (normal convergence) or the iterStop bit
// (the run was cut short and the best iterate so far is reported).
type iterTask int

const (
	iterLoop iterTask = 0
	iterConv iterTask = 1 << 8
	iterStop iterTask = 1 << 9
)

const (
	// ConvIterStall successive iterates stopped moving: ‖xₖ - xₖ₊₁‖∞ < ε.
	// This detects stalled progress, which can also occur away from a
	// minimizer once the step size is small.
	ConvIterStall iterTask = iterConv | 1
	// ConvKKTResidual the subgradient projected onto 𝚗𝚞𝚕𝚕(A) vanished,
	// certifying optimality of the current iterate.
	ConvKKTResidual iterTask = iterConv | 2
	// OverIterLimit the iteration ceiling was reached before any
	// convergence criterion triggered.
	OverIterLimit iterTask = iterStop | 1
	// StopNaN the objective value became NaN or ±Inf.
	StopNaN iterTask = iterStop | 2
)

// iterSpec is the immutable description of one basis-pursuit instance,
// shared by every workspace fitted against the same Optimizer.
type iterSpec struct {
	// the constraint matrix shape: A is m×n with m < n
	m, n int
	// the constraint matrix A, row-major dense
	a []float64
	// the right hand side b, within 𝚛𝚊𝚗𝚐𝚎(A)
	b []float64
	// the Cholesky factor of the Gram matrix AAᵀ
	gram *gramFactor
	// stop condition
	stop Termination
	// optional progress side channel
	watch *Progress
}

// iterLoc tracks the trajectory of a single run.
type iterLoc struct {
	// current objective ‖xₖ‖₁
	f float64
	// current iterate, feasible after every projection
	x []float64 // n
	// the minimum objective observed so far, +Inf before the first iteration
	fBest float64
	// the earliest iterate that achieved fBest
	xBest []float64 // n
	// one objective value per completed iteration, returned to the caller
	history []float64
}

// iterCtx holds the per-workspace scratch vectors.
// All of them are allocated once by Init and reused across iterations,
// so the loop body itself is allocation free.
type iterCtx struct {
	// iteration counter
	iter int
	// subgradient of ‖·‖₁ at the current iterate
	g []float64 // n
	// the unconstrained step xₖ - αₖgₖ
	y []float64 // n
	// the projected next iterate
	z []float64 // n
	// residual and multiplier scratch for the projection solve
	r []float64 // m
}

func (c *iterCtx) init(m, n int) {
	c.g = make([]float64, n)
	c.y = make([]float64, n)
	c.z = make([]float64, n)
	c.r = make([]float64, m)
}

func (c *iterCtx) clear() {
	c.iter = 0
}

// stepSize is the diminishing step schedule αₖ = 1/(1+k): strictly
// decreasing with αₖ → 0 while Σαₖ diverges, which is what the
// subgradient convergence analysis requires since subgradient steps need
// not decrease the objective.
func stepSize(k int) float64 {
	return one / float64(1+k)
}

// sgn is the subgradient policy for ‖·‖₁: componentwise sign with
// sgn(0) = 0. Any value in [-1,1] would be a valid subgradient at zero,
// but the zero choice is fixed so runs are reproducible.
func sgn(v float64) float64 {
	switch {
	case v > zero:
		return one
	case v < zero:
		return -one
	}
	return zero
}
