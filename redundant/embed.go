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

// Package redundant implements the steganography modality: each payload bit
// is replicated across several pixel slots and decoded back by majority
// vote, trading capacity for resilience against localized pixel tampering.
package redundant

import (
	"github.com/imagewm/wmcodec/payload"
	"github.com/imagewm/wmcodec/pixelbuf"
	"github.com/imagewm/wmcodec/wmrand"
)

// Factor returns the redundancy factor for a given strength: each bit is
// replicated Factor(strength) times. It is never less than 1.
func Factor(strength int) int {
	r := strength / 25
	if r < 1 {
		r = 1
	}
	return r
}

// pixelWalker advances through buf in row-major order, one pixel per call,
// independent of any selection probability - every pixel is a candidate
// slot for a replicated bit.
type pixelWalker struct {
	buf *pixelbuf.Buffer
	row int
	col int
}

func (w *pixelWalker) next() (row, col int, ok bool) {
	if w.row >= w.buf.Height {
		return 0, 0, false
	}
	row, col = w.row, w.col
	w.col++
	if w.col >= w.buf.Width {
		w.col = 0
		w.row++
	}
	return row, col, true
}

func channelFor(buf *pixelbuf.Buffer, picker *wmrand.ChannelPicker) int {
	if buf.Channels == 1 {
		return 0
	}
	return int(picker.Next())
}

// Embed writes frame's bits into buf, each bit replicated Factor(strength)
// times across pixel LSBs chosen by a channel picker seeded from seed. It
// returns a freshly owned buffer; buf itself is not modified.
// CapacityExceededError is returned if the buffer does not have enough
// pixel slots for frame's bits at this redundancy factor.
func Embed(buf *pixelbuf.Buffer, frame payload.FramedPayload, seed uint32, strength int) (*pixelbuf.Buffer, error) {
	if strength < 0 || strength > 100 {
		return nil, ErrInvalidStrength
	}

	r := Factor(strength)
	out := buf.Clone()
	walker := &pixelWalker{buf: out}
	picker := wmrand.NewChannelPicker(seed)

	written := 0
	for _, bit := range frame {
		for i := 0; i < r; i++ {
			row, col, ok := walker.next()
			if !ok {
				return nil, CapacityExceededError{Need: len(frame) * r, Have: written}
			}
			channel := channelFor(out, picker)
			v := out.At(row, col, channel)
			if bit {
				v |= 1
			} else {
				v &^= 1
			}
			out.Set(row, col, channel, v)
			written++
		}
	}

	return out, nil
}
