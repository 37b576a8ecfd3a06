// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// iterDriver is the main driver for iterations in an optimization run,
// responsible for managing the flow of the projected subgradient loop.
type iterDriver struct {
	optimizer *Optimizer
	workspace *Workspace
	location  *iterLoc
}

// mainLoop runs the projected subgradient iteration until a terminal
// state is reached. The raw objective sequence is not monotone, so the
// loop follows the full trajectory and the best tracker in iterLoc
// reports the best point seen.
func (d *iterDriver) mainLoop() (task iterTask) {

	ctx := &d.workspace.iterCtx
	ctx.clear()

	for task = iterLoop; task == iterLoop; {
		d.nextIterate()
		task = d.checkConvergence()
		task = d.newIteration(task)
	}
	return
}

// nextIterate performs one subgradient step and restores feasibility:
// it forms the subgradient at xₖ, steps with the diminishing step size,
// projects back onto {x : Ax = b} and evaluates the objective there.
func (d *iterDriver) nextIterate() {

	spec := &d.optimizer.iterSpec
	ctx := &d.workspace.iterCtx
	loc := d.location

	n := spec.n
	x, g, y := loc.x, ctx.g, ctx.y
	if n > len(x) || n > len(g) || n > len(y) {
		panic("bound check error")
	}

	// gₖ[i] = 𝚜𝚐𝚗(xₖ[i])
	for i, v := range x[:n] {
		g[i] = sgn(v)
	}

	// αₖ = 1/(1+k)
	alpha := stepSize(ctx.iter)

	// y = xₖ - αₖgₖ
	dcopy(n, x, 1, y, 1)
	daxpy(n, -alpha, g, 1, y, 1)

	// xₖ₊₁ = Π(y)
	project(y, ctx.z, spec, ctx.r)

	// fₖ₊₁ = ‖xₖ₊₁‖₁
	loc.f = floats.Norm(ctx.z[:n], 1)
	loc.history = append(loc.history, loc.f)
}

// checkConvergence updates the best tracker, applies the stopping rules
// and advances the trajectory to the new iterate.
func (d *iterDriver) checkConvergence() (task iterTask) {

	spec := &d.optimizer.iterSpec
	ctx := &d.workspace.iterCtx
	loc := d.location
	n := spec.n

	if math.IsNaN(loc.f) || math.IsInf(loc.f, 0) {
		// The iteration completed, so it counts, but the trajectory is
		// not advanced and the reported best iterate stays finite.
		ctx.iter++
		return StopNaN
	}

	// Strict improvement only: ties keep the earliest best iterate.
	if loc.f < loc.fBest {
		loc.fBest = loc.f
		dcopy(n, ctx.z, 1, loc.xBest, 1)
	}

	// The certified criterion takes priority over the stall heuristic:
	// at an optimum both can trigger on the same iteration.
	if tol := spec.stop.KKTTolerance; tol > zero && d.checkKKT(tol) {
		task = ConvKKTResidual
	} else if floats.Distance(loc.x[:n], ctx.z[:n], math.Inf(1)) < spec.stop.StallTolerance {
		// Stall heuristic ‖xₖ - xₖ₊₁‖∞ < ε.
		task = ConvIterStall
	}

	// xₖ₊₁ becomes xₖ whether or not it improved fBest.
	dcopy(n, ctx.z, 1, loc.x, 1)
	ctx.iter++

	if w := spec.watch; w != nil && ctx.iter%w.Stride == 0 {
		w.Watch(ctx.iter, loc.f)
	}
	return
}

// checkKKT reports whether the subgradient at the new iterate, projected
// onto 𝚗𝚞𝚕𝚕(A), vanishes within tol. Reuses the subgradient and step
// buffers as scratch: both are dead until the next iteration.
func (d *iterDriver) checkKKT(tol float64) bool {

	spec := &d.optimizer.iterSpec
	ctx := &d.workspace.iterCtx
	n := spec.n

	for i, v := range ctx.z[:n] {
		ctx.g[i] = sgn(v)
	}
	nullProject(ctx.g, ctx.y, spec, ctx.r)
	return floats.Norm(ctx.y[:n], math.Inf(1)) <= tol
}

// newIteration checks the iteration ceiling. Hitting the ceiling is a
// normal outcome: the best iterate found so far is still returned.
func (d *iterDriver) newIteration(task iterTask) iterTask {
	o, w := d.optimizer, d.workspace
	if task == iterLoop && w.iter >= o.stop.MaxIterations {
		task = OverIterLimit
	}
	return task
}
