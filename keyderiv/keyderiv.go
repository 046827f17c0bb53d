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

// Package keyderiv maps a caller-supplied secret to the two pieces of
// derived material every other package in this module needs: a 32-bit PRNG
// seed, and a 16-hex-character key hint committed into the signature
// payload so that a foreign-key extraction can be distinguished from no
// watermark at all.
//
// Both values come from a single SHA-256(secret) digest; there is no
// per-call randomness and no I/O, so Derive is pure and safe to call from
// multiple goroutines concurrently (each gets its own independent digest).
package keyderiv

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// HintLength is the number of hex characters kept from SHA-256(secret) as
// the KeyHint.
const HintLength = 16

// Derive computes the PRNG seed and key hint for secret. The seed is the
// first four bytes of SHA-256(secret) read big-endian; the hint is the
// first HintLength lowercase hex characters of the same digest.
//
// Two distinct secrets collide in Seed with probability 2^-32 and in Hint
// with probability 2^-64; both are tolerated by design (spec: a collision
// only reduces an attacker's key-selection advantage, it does not forge a
// payload, since the payload is still authenticated under the full-strength
// HKDF-derived cipher key).
func Derive(secret []byte) (seed uint32, hint string) {
	h := sha256.Sum256(secret)
	seed = binary.BigEndian.Uint32(h[0:4])
	hint = hex.EncodeToString(h[:])[:HintLength]
	return seed, hint
}

// Hint computes only the key hint for secret, for callers (such as
// verify-key checks) that never need the PRNG seed.
func Hint(secret []byte) string {
	h := sha256.Sum256(secret)
	return hex.EncodeToString(h[:])[:HintLength]
}
