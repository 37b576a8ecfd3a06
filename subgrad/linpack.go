// Copyright ©2026 anev-aau. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subgrad

import "math"

// dpofa factors a symmetric positive definite matrix A = Rᵀ * R.
//
//	on entry
//
//	   a       double precision(n, lda)
//	           the symmetric matrix to be factored.  only the
//	           diagonal and upper triangle are used.
//
//	   lda     integer
//	           the leading dimension of the array  a .
//
//	   n       integer
//	           the order of the matrix  a .
//
//	on return
//
//	   a       an upper triangular matrix  R  so that  A = Rᵀ * R.
//	           the strict lower triangle is unaltered.
//	           if  info .ne. 0 , the factorization is not complete.
//
//	   info    integer
//	           = 0  for normal return.
//	           = k  signals an error condition.  the leading minor
//	                of order  k  is not positive definite.
func dpofa(a []float64, lda, n int) (info int) {
	if n > len(a) {
		panic("bound check error")
	}
	for j := 0; j < n; j++ {
		info = j + 1
		s := 0.0
		for k := 0; k < j; k++ {
			t := a[k*lda+j] - ddot(k, a[k:], lda, a[j:], lda)
			t /= a[k*lda+k]
			a[k*lda+j] = t
			s += t * t
		}
		s = a[j*lda+j] - s
		if s <= 0.0 {
			return
		}
		a[j*lda+j] = math.Sqrt(s)
	}
	return 0
}

// dtrsu solves the triangular system
//
//	R * x = b   or   Rᵀ * x = b
//
// where R is the order-n upper triangular matrix stored in the upper
// triangle of the row-major array r with leading dimension ldr, as
// produced by dpofa. The strict lower triangle is never referenced.
//
// On return b contains the solution if info == 0; otherwise b is
// unaltered and info is the index (1-based) of the first zero diagonal
// element of R.
func dtrsu(r []float64, ldr, n int, b []float64, trans bool) (info int) {

	rn := uint(ldr * n)
	if len(r) <= 0 || len(b) < n || rn > uint(len(r)) {
		panic("bound check error")
	}

	// Check for zero diagonal elements
	for idx := uint(0); idx < rn; idx += uint(1 + ldr) {
		if r[idx] == 0.0 {
			info = 1 + int(idx)/(1+ldr)
			return
		}
	}

	if trans {
		// Solve Rᵀ * x = b with forward substitution
		b[0] /= r[0]
		for j := 1; j < n; j++ {
			t := ddot(j, r[j:], ldr, b, 1)
			b[j] = (b[j] - t) / r[j*ldr+j]
		}
	} else {
		// Solve R * x = b with backward substitution
		b[n-1] /= r[(n-1)*ldr+(n-1)]
		for j := n - 2; j >= 0; j-- {
			t := -b[j+1]
			daxpy(j+1, t, r[j+1:], ldr, b, 1)
			b[j] /= r[j*ldr+j]
		}
	}
	return
}

// dgemv computes the matrix-vector product
//
//	y = α * op(A) * x + β * y
//
// for the dense row-major m×n matrix A, where op(A) is A when trans is
// false and Aᵀ otherwise. The β = 0 case overwrites y without reading it.
func dgemv(m, n int, alpha float64, a []float64, trans bool, x []float64, beta float64, y []float64) {

	lx, ly := n, m
	if trans {
		lx, ly = m, n
	}
	if m*n > len(a) || lx > len(x) || ly > len(y) {
		panic("bound check error")
	}

	if beta == zero {
		for i := range y[:ly] {
			y[i] = zero
		}
	} else if beta != one {
		for i := range y[:ly] {
			y[i] *= beta
		}
	}

	if trans {
		for i := 0; i < m; i++ {
			daxpy(n, alpha*x[i], a[i*n:], 1, y, 1)
		}
	} else {
		for i := 0; i < m; i++ {
			y[i] += alpha * ddot(n, a[i*n:], 1, x, 1)
		}
	}
}

// daxpy performs constant times a vector plus a vector operation.
func daxpy(n int, da float64, dx []float64, incx int, dy []float64, incy int) {
	if n <= 0 || da == 0.0 {
		return
	}
	if incx == 1 && incy == 1 {
		m := uint(n % 4)
		if m > uint(len(dx)) || m > uint(len(dy)) {
			panic("bound check error")
		}
		for i := uint(0); i < m; i++ {
			dy[i] += da * dx[i]
		}
		if n < 4 {
			return
		}
		for i := m; i < uint(n); i += 4 {
			x := dx[i : i+4 : i+4]
			y := dy[i : i+4 : i+4]
			y[0] += da * x[0]
			y[1] += da * x[1]
			y[2] += da * x[2]
			y[3] += da * x[3]
		}
	} else {
		lx, ly := uint(incx*(n-1)), uint(incy*(n-1))
		if lx >= uint(len(dx)) || ly >= uint(len(dy)) {
			panic("bound check error")
		}
		ix, iy := uint(0), uint(0)
		for ix <= lx && iy <= ly {
			dy[iy] += da * dx[ix]
			ix += uint(incx)
			iy += uint(incy)
		}
	}
}

// ddot computes the dot product of two vectors.
func ddot(n int, dx []float64, incx int, dy []float64, incy int) (dot float64) {
	if n <= 0 {
		return 0.0
	}
	if incx == 1 && incy == 1 {
		m := uint(n % 5)
		if m > uint(len(dx)) || m > uint(len(dy)) {
			panic("bound check error")
		}
		for i := uint(0); i < m; i++ {
			dot += dx[i] * dy[i]
		}
		if n < 5 {
			return dot
		}
		for i := m; i < uint(n); i += 5 {
			x := dx[i : i+5 : i+5]
			y := dy[i : i+5 : i+5]
			dot += x[0]*y[0] + x[1]*y[1] + x[2]*y[2] + x[3]*y[3] + x[4]*y[4]
		}
	} else {
		lx, ly := uint(incx*(n-1)), uint(incy*(n-1))
		if lx >= uint(len(dx)) || ly >= uint(len(dy)) {
			panic("bound check error")
		}
		ix, iy := uint(0), uint(0)
		for ix <= lx && iy <= ly {
			dot += dx[ix] * dy[iy]
			ix += uint(incx)
			iy += uint(incy)
		}
	}
	return dot
}

// dcopy copies a vector, x, to a vector, y.
func dcopy(n int, dx []float64, incx int, dy []float64, incy int) {
	if n <= 0 {
		return
	}
	if incx == 1 && incy == 1 {
		copy(dy[:n], dx[:n])
	} else {
		lx, ly := uint(incx*(n-1)), uint(incy*(n-1))
		if lx >= uint(len(dx)) || ly >= uint(len(dy)) {
			panic("bound check error")
		}
		ix, iy := uint(0), uint(0)
		for ix <= lx && iy <= ly {
			dy[iy] = dx[ix]
			ix += uint(incx)
			iy += uint(incy)
		}
	}
}
