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

// Package wmrand is the deterministic, keyed PRNG the codec treats as an
// oracle for pixel selection and channel selection. Unlike csrand (which is
// backed by crypto/rand and never reproducible), every Source here is
// seeded from keyderiv.Derive's 32-bit seed and replays bit-for-bit
// identically at embed and at extract time — a single divergent draw
// desynchronizes the whole stream, so nothing in this package may reseed
// itself mid-operation.
package wmrand

import "math/rand"

// Source is a seeded uniform random source. It wraps math/rand so that
// NextUnit and NextInt always advance the same underlying state, as spec'd.
type Source struct {
	rng *rand.Rand
}

// New creates a Source seeded deterministically from seed. The same seed
// always produces the same draw sequence on a given Go toolchain version
// (math/rand's algorithm is part of its documented compatibility promise
// for a fixed source implementation).
func New(seed uint32) *Source {
	return &Source{rng: rand.New(rand.NewSource(int64(seed)))}
}

// NextUnit returns a pseudo-random float64 in [0,1).
func (s *Source) NextUnit() float64 {
	return s.rng.Float64()
}

// NextInt returns a pseudo-random uint32 in [0,bound).
func (s *Source) NextInt(bound uint32) uint32 {
	return uint32(s.rng.Intn(int(bound)))
}

// PixelPicker draws one Bernoulli(strength/100) trial per call, in lockstep
// with the row-major pixel iteration order used by both the spatial
// embedder and extractor. Sharing one Picker type between the two call
// sites is what keeps their PRNG draw counts identical pixel-for-pixel.
type PixelPicker struct {
	src  *Source
	prob float64
}

// NewPixelPicker creates a picker seeded from seed with thinning probability
// strength/100. The caller rejects strength outside [0,100] before this is
// reached (spatial validates it).
func NewPixelPicker(seed uint32, strength int) *PixelPicker {
	return &PixelPicker{src: New(seed), prob: float64(strength) / 100.0}
}

// Selected draws the next Bernoulli trial and reports whether the pixel at
// the current iteration step is selected for embedding/extraction.
func (p *PixelPicker) Selected() bool {
	return p.src.NextUnit() < p.prob
}

// ChannelPicker draws one channel index in [0,3) per call. A single
// ChannelPicker instance is created once per embed or extract operation and
// consulted continuously from the first bit to the last — it is never
// recreated or reseeded partway through, which is what makes the redundant
// modality's two-phase extraction (decode the length, then decode the rest)
// safe: phase two simply keeps drawing from where phase one left off,
// instead of restarting the whole sequence from scratch.
type ChannelPicker struct {
	src *Source
}

// NewChannelPicker creates a channel picker seeded from seed.
func NewChannelPicker(seed uint32) *ChannelPicker {
	return &ChannelPicker{src: New(seed)}
}

// Next draws and returns the next channel index in [0,3).
func (c *ChannelPicker) Next() uint8 {
	return uint8(c.src.NextInt(3))
}
