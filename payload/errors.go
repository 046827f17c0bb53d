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

package payload

import (
	"errors"
	"fmt"
)

// InvalidLengthError is returned when a decoded length prefix is <= 0 or
// greater than the 100,000-bit sanity ceiling. In practice this almost
// always means the wrong secret (or wrong strength) was used to extract.
type InvalidLengthError int

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("payload: invalid length prefix: %d", int(e))
}

// UnderrunedStreamError is returned when fewer bits are available than the
// frame (32-bit length prefix plus ciphertext) requires.
type UnderrunedStreamError struct {
	Need int
	Have int
}

func (e UnderrunedStreamError) Error() string {
	return fmt.Sprintf("payload: stream underrun: need %d bits, have %d", e.Need, e.Have)
}

// BytesNotAlignedError is returned when the decoded bit-length is not a
// multiple of 8, which cannot correspond to a byte-oriented ciphertext and
// is itself a wrong-key symptom.
type BytesNotAlignedError int

func (e BytesNotAlignedError) Error() string {
	return fmt.Sprintf("payload: length %d bits is not byte-aligned", int(e))
}

// ErrDecryptionFailed is returned when the AEAD authentication tag does not
// verify. This is indistinguishable from "wrong key" by design: no partial
// plaintext is ever returned.
var ErrDecryptionFailed = errors.New("payload: decryption failed")

// ErrMalformedRecord is returned when decrypted bytes fail to parse as a
// canonical SignatureRecord.
var ErrMalformedRecord = errors.New("payload: malformed record")

const (
	// MinLengthBits and MaxLengthBits bound a decoded length prefix. The
	// upper bound matches spec's 100,000-bit sanity ceiling.
	MinLengthBits = 1
	MaxLengthBits = 100000
)
