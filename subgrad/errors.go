// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the solver. Specific failures wrap one of
// these roots, so callers match with errors.Is.
var (
	// ErrInvalidInput indicates a malformed problem or starting point:
	// dimension mismatches among A, b and x0, a system that is not
	// underdetermined (m ≥ n), or an unusable configuration value.
	// Always detected before the first iteration.
	ErrInvalidInput = errors.New("subgrad: invalid input")

	// ErrNotPositiveDefinite indicates that AAᵀ failed the Cholesky
	// factorization, which means A is rank deficient or severely
	// ill-conditioned. Detected once at setup and fatal to the run:
	// retrying with the same A cannot succeed.
	ErrNotPositiveDefinite = errors.New("subgrad: gram matrix AAᵀ is not positive definite")
)

func errInput(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, a...))
}
