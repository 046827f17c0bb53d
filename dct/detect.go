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

package dct

import (
	"math"

	"github.com/imagewm/wmcodec/pixelbuf"
)

// DetectionThreshold is the minimum normalized correlation between buf's
// mid-band coefficients and a freshly generated pattern for Detect to
// report the watermark as present. Chosen empirically against the
// patternScale used by Embed: high enough to reject an unwatermarked
// image's incidental correlation, low enough to tolerate the coefficient
// drift a PNG round-trip introduces.
const DetectionThreshold = 0.15

// Detect reports whether buf carries the frequency-domain watermark for
// the given seed, strength and text, by regenerating the same pattern
// Embed would have used and correlating it against buf's mid-band DCT
// coefficients. Unlike the pixel-carrying modalities this never recovers
// the original record; it only answers present or absent.
func Detect(buf *pixelbuf.Buffer, seed uint32, strength int, text string) (bool, error) {
	if strength < 0 || strength > 100 {
		return false, ErrInvalidStrength
	}

	luma := lumaPlane(buf)
	coeffs := Forward2D(luma)
	p := pattern(buf.Height, buf.Width, seed, text)

	r0, r1, c0, c1 := midBand(buf.Height, buf.Width)
	return correlate(coeffs, p, r0, r1, c0, c1) >= DetectionThreshold, nil
}

// correlate computes the Pearson correlation coefficient between two
// coefficient planes restricted to the [r0,r1) x [c0,c1) sub-block.
func correlate(a, b [][]float64, r0, r1, c0, c1 int) float64 {
	var sumA, sumB, sumAB, sumA2, sumB2 float64
	n := 0
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			av, bv := a[i][j], b[i][j]
			sumA += av
			sumB += bv
			sumAB += av * bv
			sumA2 += av * av
			sumB2 += bv * bv
			n++
		}
	}
	if n == 0 {
		return 0
	}
	fn := float64(n)
	numerator := fn*sumAB - sumA*sumB
	denominator := math.Sqrt((fn*sumA2 - sumA*sumA) * (fn*sumB2 - sumB*sumB))
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
