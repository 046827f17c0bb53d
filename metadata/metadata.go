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

// Package metadata implements the metadata modality: a claim-of-ownership
// record carried alongside an image rather than inside its pixels. It is
// the only modality with no dependency on image content at all, and the
// only one that survives an arbitrary lossy re-encode of the carrier image.
package metadata

import (
	"github.com/google/uuid"

	"github.com/imagewm/wmcodec/keyderiv"
)

// Record is a non-pixel claim-of-ownership sidecar: it travels next to an
// image (in a database row, a file header, a manifest) rather than inside
// it.
type Record struct {
	Text      string
	Timestamp string
	KeyHash   string
	Signature string
}

// Embed produces a new metadata Record for text, stamped with timestamp and
// bound to secret via its key hash. Signature is a freshly generated random
// token, distinct on every call even for identical text and secret, so that
// two claims over the same content remain distinguishable.
func Embed(text, timestamp string, secret []byte) Record {
	return Record{
		Text:      text,
		Timestamp: timestamp,
		KeyHash:   keyderiv.Hint(secret),
		Signature: uuid.New().String(),
	}
}

// Extract returns rec unchanged; the metadata modality carries its payload
// directly, so there is nothing to recover from a carrier image.
func Extract(rec Record) Record {
	return rec
}

// VerifyKey reports whether secret is consistent with rec's key hash. A
// record produced before key hashes existed (KeyHash empty) verifies
// against any secret, preserving compatibility with records written by an
// older sidecar format.
func VerifyKey(rec Record, secret []byte) bool {
	if rec.KeyHash == "" {
		return true
	}
	return rec.KeyHash == keyderiv.Hint(secret)
}
