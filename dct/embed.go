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
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math"

	"github.com/imagewm/wmcodec/pixelbuf"
	"github.com/imagewm/wmcodec/wmrand"
)

// ErrInvalidStrength is returned when strength is outside [0,100].
var ErrInvalidStrength = errors.New("dct: strength must be in [0,100]")

// patternScale is the multiplier applied to the PRNG-generated pattern
// before it is added to the mid-band coefficients. Chosen empirically: high
// enough to survive PNG requantization, low enough to keep the mean
// luminance deviation within the imperceptibility budget.
const patternScale = 10.0

// textSeed folds text into a 32-bit value so that a pattern embedded for
// one piece of text does not correlate with one embedded for another, even
// under the same key.
func textSeed(text string) uint32 {
	sum := sha256.Sum256([]byte(text))
	return binary.BigEndian.Uint32(sum[:4])
}

// midBand returns the row/col bounds of the mid-frequency quadrant of an
// rows x cols coefficient block: the central half along each axis, which
// carries texture detail without the low-frequency energy a viewer would
// notice if disturbed.
func midBand(rows, cols int) (r0, r1, c0, c1 int) {
	return rows / 4, 3 * rows / 4, cols / 4, 3 * cols / 4
}

// pattern generates the PRNG-seeded mid-band watermark pattern for a
// rows x cols plane. The same seed and text always produce the same
// pattern, which is what lets Detect correlate against a freshly generated
// copy instead of needing to store the original.
func pattern(rows, cols int, seed uint32, text string) [][]float64 {
	src := wmrand.New(seed ^ textSeed(text))
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	r0, r1, c0, c1 := midBand(rows, cols)
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			// Box-Muller gives a pattern closer to white noise than a
			// uniform draw, which correlates better against itself after
			// lossy requantization.
			u1 := src.NextUnit()
			u2 := src.NextUnit()
			if u1 < 1e-12 {
				u1 = 1e-12
			}
			out[i][j] = gaussianFromUniform(u1, u2)
		}
	}
	return out
}

func gaussianFromUniform(u1, u2 float64) float64 {
	r := math.Sqrt(-2.0 * math.Log(u1))
	return r * math.Cos(2.0*math.Pi*u2)
}

// Embed adds a PRNG-seeded pattern to the mid-band DCT coefficients of
// buf's luma plane, scaled by strength/100, then inverse-transforms and
// clamps back to 8-bit samples. It returns a freshly owned buffer; buf
// itself is not modified. Embedding is presence-only: there is no bit
// stream to recover, only a statistical signal Detect can test for.
func Embed(buf *pixelbuf.Buffer, seed uint32, strength int, text string) (*pixelbuf.Buffer, error) {
	if strength < 0 || strength > 100 {
		return nil, ErrInvalidStrength
	}

	luma := lumaPlane(buf)
	coeffs := Forward2D(luma)

	p := pattern(buf.Height, buf.Width, seed, text)
	scale := patternScale * float64(strength) / 100.0
	r0, r1, c0, c1 := midBand(buf.Height, buf.Width)
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			coeffs[i][j] += p[i][j] * scale
		}
	}

	restored := Inverse2D(coeffs)
	out := buf.Clone()
	writeLuma(out, restored)
	return out, nil
}

// lumaPlane extracts a float64 luma plane from buf, per ITU-R BT.601: for
// RGB buffers, Y = 0.299R + 0.587G + 0.114B; for single-channel buffers the
// sole channel is already luma.
func lumaPlane(buf *pixelbuf.Buffer) [][]float64 {
	out := make([][]float64, buf.Height)
	for row := 0; row < buf.Height; row++ {
		out[row] = make([]float64, buf.Width)
		for col := 0; col < buf.Width; col++ {
			if buf.Channels == 1 {
				out[row][col] = float64(buf.At(row, col, 0))
				continue
			}
			r := float64(buf.At(row, col, 0))
			g := float64(buf.At(row, col, 1))
			b := float64(buf.At(row, col, 2))
			out[row][col] = 0.299*r + 0.587*g + 0.114*b
		}
	}
	return out
}

// writeLuma writes a modified luma plane back into buf. For RGB buffers the
// per-pixel delta from the original luma is added equally to all three
// channels, preserving chroma while carrying the watermark's luminance
// perturbation.
func writeLuma(buf *pixelbuf.Buffer, luma [][]float64) {
	for row := 0; row < buf.Height; row++ {
		for col := 0; col < buf.Width; col++ {
			if buf.Channels == 1 {
				buf.Set(row, col, 0, clamp8(luma[row][col]))
				continue
			}
			orig := 0.299*float64(buf.At(row, col, 0)) + 0.587*float64(buf.At(row, col, 1)) + 0.114*float64(buf.At(row, col, 2))
			delta := luma[row][col] - orig
			for c := 0; c < buf.Channels && c < 3; c++ {
				buf.Set(row, col, c, clamp8(float64(buf.At(row, col, c))+delta))
			}
		}
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
