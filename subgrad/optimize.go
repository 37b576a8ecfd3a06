// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subgrad solves the basis-pursuit problem
//
//	𝚖𝚒𝚗𝚒𝚖𝚒𝚣𝚎 ‖𝐱‖₁ subject to A𝐱 = 𝐛
//
// for an underdetermined full-row-rank system with a projected
// subgradient method.
package subgrad

import (
	"fmt"
	"io"
	"math"
	"slices"
)

// Progress is an optional diagnostic side channel: Watch receives the
// number of completed iterations and the objective value there, every
// Stride iterations. It is purely observational and must not be used to
// influence the run.
type Progress struct {
	// Stride is the number of iterations between callbacks. Must be positive.
	Stride int
	// Watch receives (iterations completed, current objective ‖xₖ‖₁).
	Watch func(iter int, f float64)
}

// LogProgress returns a Progress that prints one line to w every stride
// iterations. The writer must be safe for the caller's use of the run.
func LogProgress(w io.Writer, stride int) *Progress {
	return &Progress{
		Stride: stride,
		Watch: func(iter int, f float64) {
			_, _ = fmt.Fprintf(w, "At iterate %5d    f= %12.5e\n", iter, f)
		},
	}
}

// Termination specifies the stopping criteria for the optimization loop.
type Termination struct {
	// The iteration stop when the number of iterations exceeds the limit.
	// Zero selects the default of 1e6.
	MaxIterations int
	// The iteration will stop when successive iterates stall:
	//   ‖ xₖ - xₖ₊₁ ‖∞ < 𝚎𝚙𝚜
	// This detects that the trajectory is no longer moving; it is not a
	// certified optimality condition. Zero selects the default of 1e-6.
	StallTolerance float64
	// The iteration will stop when the subgradient projected onto
	// 𝚗𝚞𝚕𝚕(A) satisfies:
	//   ‖ gₖ - Aᵀ(AAᵀ)⁻¹Agₖ ‖∞ ≤ 𝚔𝚔𝚝𝚝𝚘𝚕
	// which certifies optimality of the iterate. Zero disables the check.
	KKTTolerance float64
}

// Problem specifies a basis-pursuit instance for the subgradient optimizer.
type Problem struct {
	M, N int // A is m×n with m < n and full row rank

	A []float64 // The constraint matrix, m×n row-major
	B []float64 // The right-hand side, length m, must lie in 𝚛𝚊𝚗𝚐𝚎(A)

	Stop   Termination // Stop condition
	Report *Progress   // Optional progress side channel
}

const (
	defaultMaxIterations  = 1_000_000
	defaultStallTolerance = 1e-6
)

// New validates the problem, copies A and b, and factors the Gram matrix
// AAᵀ. Input failures wrap ErrInvalidInput; a Gram matrix that is not
// numerically positive definite wraps ErrNotPositiveDefinite. Both are
// fatal and reported before any iteration could run.
func (p *Problem) New() (optimizer *Optimizer, err error) {

	m, n := p.M, p.N
	stop := p.Stop

	if stop.MaxIterations == 0 {
		stop.MaxIterations = defaultMaxIterations
	}
	if stop.StallTolerance == 0 {
		stop.StallTolerance = defaultStallTolerance
	}

	switch {
	case m <= 0 || n <= 0:
		err = errInput("dimensions %d×%d must be positive", m, n)
	case m >= n:
		err = errInput("system %d×%d is not underdetermined", m, n)
	case len(p.A) != m*n:
		err = errInput("matrix has %d entries, want %d×%d", len(p.A), m, n)
	case len(p.B) != m:
		err = errInput("right-hand side has %d entries, want %d", len(p.B), m)
	case stop.MaxIterations < 0:
		err = errInput("max iterations must not be negative")
	case stop.StallTolerance < 0 || math.IsNaN(stop.StallTolerance):
		err = errInput("stall tolerance must not be negative")
	case stop.KKTTolerance < 0 || math.IsNaN(stop.KKTTolerance):
		err = errInput("kkt tolerance must not be negative")
	case p.Report != nil && p.Report.Stride <= 0:
		err = errInput("progress stride must be positive")
	case p.Report != nil && p.Report.Watch == nil:
		err = errInput("progress callback is required")
	}
	if err != nil {
		return
	}

	a := slices.Repeat(p.A, 1)
	b := slices.Repeat(p.B, 1)

	gram, err := newGramFactor(a, m, n)
	if err != nil {
		return nil, err
	}

	optimizer = &Optimizer{
		iterSpec{
			m: m, n: n,
			a: a, b: b,
			gram:  gram,
			stop:  stop,
			watch: p.Report,
		},
	}
	return
}

// Optimizer implements the projected subgradient method for basis pursuit.
//
// Each iteration k takes a step along a subgradient of the ℓ1 objective
// and restores feasibility with an exact Euclidean projection:
//
//	gₖ = 𝚜𝚐𝚗(xₖ)                    subgradient of ‖·‖₁, 𝚜𝚐𝚗(0) = 0
//	y  = xₖ - gₖ/(1+k)              diminishing, non-summable step
//	xₖ₊₁ = y - Aᵀ(AAᵀ)⁻¹(Ay - 𝐛)    projection onto {x : Ax = 𝐛}
//
// The objective sequence ‖xₖ‖₁ is not monotone, so the minimum observed
// value and the iterate that achieved it are tracked separately and
// reported as the solution.
type Optimizer struct {
	iterSpec
}

// Workspace contains the state and scratch vectors of one run.
// Total work space is float64[3×n + m] plus the per-run history.
type Workspace struct {
	m, n int
	iterCtx
}

// Result contains the final result of the optimization process.
type Result struct {
	OK      bool      // Whether a convergence criterion terminated the run.
	F       float64   // Best objective value ‖x‖₁ observed.
	X       []float64 // The iterate that achieved F.
	History []float64 // Objective value of every completed iteration.
	Summary           // Optimization summary.
}

// Summary contains a summary of the optimization process.
type Summary struct {
	Status  iterTask // Terminal status of the run.
	NumIter int      // Number of iterations performed.
}

// Init allocates the workspace for the optimizer.
// To avoid race conditions, separate workspaces need to be created for
// each goroutine. But multiple workspaces could share one optimizer:
// the Gram factor is read-only after New.
func (o *Optimizer) Init() *Workspace {
	w := new(Workspace)
	w.m, w.n = o.m, o.n
	w.init(o.m, o.n)
	return w
}

// Fit runs the optimization from the initial point x0 using workspace w.
// x0 need not be feasible: the first projection lands the trajectory on
// the constraint set. The returned Result is non-nil whenever the run
// started; hitting the iteration ceiling is a normal outcome, not an error.
func (o *Optimizer) Fit(x0 []float64, w *Workspace) (*Result, error) {

	if len(x0) != o.n {
		return nil, errInput("initial point has %d components, want %d", len(x0), o.n)
	}
	if w == nil || w.m != o.m || w.n != o.n {
		return nil, errInput("workspace does not match a %d×%d problem", o.m, o.n)
	}

	loc := iterLoc{
		x:       slices.Repeat(x0, 1),
		xBest:   make([]float64, o.n),
		fBest:   math.Inf(1),
		history: make([]float64, 0, 64),
	}

	driver := iterDriver{
		optimizer: o,
		workspace: w,
		location:  &loc,
	}

	task := driver.mainLoop()
	return &Result{
		OK:      task&iterConv > 0,
		F:       loc.fBest,
		X:       loc.xBest,
		History: loc.history,
		Summary: Summary{
			Status:  task,
			NumIter: w.iter,
		},
	}, nil
}
