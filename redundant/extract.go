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

package redundant

import (
	"encoding/binary"

	"github.com/imagewm/wmcodec/payload"
	"github.com/imagewm/wmcodec/pixelbuf"
	"github.com/imagewm/wmcodec/wmrand"
)

// voteReader shares a single pixelWalker and ChannelPicker across the whole
// extraction, so that reading the replicated length header and then the
// rest of the frame never restarts or re-seeds the picker - the channel
// stream must stay continuous for the per-bit channel assignment to match
// what Embed produced.
type voteReader struct {
	buf    *pixelbuf.Buffer
	walker *pixelWalker
	picker *wmrand.ChannelPicker
	factor int
}

func newVoteReader(buf *pixelbuf.Buffer, seed uint32, strength int) *voteReader {
	return &voteReader{
		buf:    buf,
		walker: &pixelWalker{buf: buf},
		picker: wmrand.NewChannelPicker(seed),
		factor: Factor(strength),
	}
}

// bit reads one majority-voted bit from r.factor replicated pixel slots.
// Ties (possible when factor is even) resolve to 0. ok is false if the
// buffer ran out of pixels before factor votes could be collected.
func (r *voteReader) bit() (bit bool, ok bool) {
	votes := 0
	for i := 0; i < r.factor; i++ {
		row, col, walkOK := r.walker.next()
		if !walkOK {
			return false, false
		}
		channel := channelFor(r.buf, r.picker)
		if r.buf.At(row, col, channel)&1 == 1 {
			votes++
		}
	}
	return votes*2 > r.factor, true
}

func (r *voteReader) collect(n int) ([]bool, int, bool) {
	bits := make([]bool, 0, n)
	for len(bits) < n {
		b, ok := r.bit()
		if !ok {
			return bits, len(bits), false
		}
		bits = append(bits, b)
	}
	return bits, n, true
}

// Extract recovers and decrypts a SignatureRecord from buf, using the same
// seed and strength that were used at Embed time.
func Extract(buf *pixelbuf.Buffer, secret []byte, seed uint32, strength int) (payload.Record, error) {
	if strength < 0 || strength > 100 {
		return payload.Record{}, ErrInvalidStrength
	}

	reader := newVoteReader(buf, seed, strength)

	header, got, ok := reader.collect(32)
	if !ok {
		return payload.Record{}, InsufficientSelectedPixelsError{Have: got}
	}

	lengthBits := bitsToUint32(header)
	if lengthBits < payload.MinLengthBits || lengthBits > payload.MaxLengthBits {
		return payload.Record{}, ErrWrongKeyOrStrength
	}

	rest, got, ok := reader.collect(int(lengthBits))
	if !ok {
		return payload.Record{}, payload.UnderrunedStreamError{Need: 32 + int(lengthBits), Have: 32 + got}
	}

	frame := make(payload.FramedPayload, 0, len(header)+len(rest))
	frame = append(frame, header...)
	frame = append(frame, rest...)

	return payload.Decode(frame, secret)
}

func bitsToUint32(bits []bool) uint32 {
	var buf [4]byte
	for i := 0; i < 4; i++ {
		var b byte
		for j := 0; j < 8; j++ {
			if bits[i*8+j] {
				b |= 1 << uint(7-j)
			}
		}
		buf[i] = b
	}
	return binary.BigEndian.Uint32(buf[:])
}
