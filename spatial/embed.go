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

// Package spatial implements the invisible modality: a single-channel LSB
// embed/extract, pixel selection gated by a strength-as-probability
// thinning. It is the simplest of the three pixel-carrying modalities.
package spatial

import (
	"github.com/imagewm/wmcodec/payload"
	"github.com/imagewm/wmcodec/pixelbuf"
	"github.com/imagewm/wmcodec/wmrand"
)

// Embed writes frame's bits into buf's blue (or sole, for grayscale)
// channel LSBs at pixels selected by a PRNG seeded from seed, thinned by
// strength/100. It returns a freshly owned buffer; buf itself is not
// modified. CapacityExceededError is returned if strength's thinning does
// not select enough pixels to carry the whole frame.
func Embed(buf *pixelbuf.Buffer, frame payload.FramedPayload, seed uint32, strength int) (*pixelbuf.Buffer, error) {
	if strength < 0 || strength > 100 {
		return nil, ErrInvalidStrength
	}

	out := buf.Clone()
	picker := wmrand.NewPixelPicker(seed, strength)
	channel := out.BlueOrGray()

	bitIdx := 0
rows:
	for row := 0; row < out.Height; row++ {
		for col := 0; col < out.Width; col++ {
			if bitIdx >= len(frame) {
				break rows
			}
			if picker.Selected() {
				v := out.At(row, col, channel)
				if frame[bitIdx] {
					v |= 1
				} else {
					v &^= 1
				}
				out.Set(row, col, channel, v)
				bitIdx++
			}
		}
	}

	if bitIdx < len(frame) {
		return nil, CapacityExceededError{Need: len(frame), Have: bitIdx}
	}
	return out, nil
}
