/*
 * Copyright (c) 2024, wmcodec contributors
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 *  * Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 *
 *  * Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

// Package dct implements the frequency-domain modality: a watermark pattern
// added to the mid-band coefficients of a whole-plane 2-D DCT of the luma plane,
// recoverable only as a presence/absence signal via correlation - there is
// no way to reconstruct the original bits from a lossy frequency-domain
// embed, so this modality only ever answers "is this watermark present".
package dct

import "math"

// Forward2D computes the 2-D DCT-II of a rows x cols block of samples,
// matching the separable row/column formulation in Rao & Yip, "Discrete
// Cosine Transform: Algorithms, Advantages, Applications" (Academic Press,
// 1990). The block need not be square.
func Forward2D(block [][]float64) [][]float64 {
	return separable2D(block, dct1D)
}

// Inverse2D computes the 2-D inverse DCT (DCT-III) of a coefficient block,
// the inverse of Forward2D.
func Inverse2D(block [][]float64) [][]float64 {
	return separable2D(block, idct1D)
}

func separable2D(block [][]float64, transform func([]float64) []float64) [][]float64 {
	rows := len(block)
	if rows == 0 {
		return nil
	}
	cols := len(block[0])

	tmp := make([][]float64, rows)
	for i := range tmp {
		tmp[i] = transform(block[i])
	}

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = tmp[i][j]
		}
		transformed := transform(col)
		for i := 0; i < rows; i++ {
			out[i][j] = transformed[i]
		}
	}
	return out
}

// dct1D computes the 1-D DCT-II of x with orthonormal scaling.
func dct1D(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += x[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		alpha := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			alpha = math.Sqrt(1.0 / float64(n))
		}
		out[k] = alpha * sum
	}
	return out
}

// idct1D computes the 1-D inverse DCT (DCT-III) of x, the inverse of dct1D.
func idct1D(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < n; k++ {
			alpha := math.Sqrt(2.0 / float64(n))
			if k == 0 {
				alpha = math.Sqrt(1.0 / float64(n))
			}
			sum += alpha * x[k] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		out[i] = sum
	}
	return out
}
