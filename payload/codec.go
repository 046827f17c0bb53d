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

//
// Package payload implements the signature record's framing and
// authenticated encryption: PayloadCodec from the design. The shared secret
// format fed into the AEAD key schedule is:
//
//	HKDF-SHA256(secret, salt="wmcodec/v1", info="payload-key") -> 32 byte key
//
// The ciphertext format this codec produces (and is the only thing that
// goes into the 32-bit-length-prefixed frame) is:
//
//	uint8_t[24] NaCl SecretBox nonce
//	NaCl SecretBox (Poly1305/XSalsa20) containing:
//	  uint8_t[16] tag (part of the SecretBox construct)
//	  uint8_t[]   canonical signature record bytes
//
// Unlike a network framing codec, there is no running nonce counter: the
// nonce is derived from HMAC-SHA256(secret, canonical plaintext), truncated
// to 24 bytes, rather than drawn from crypto/rand. Apply must be a pure
// function of (secret, text, strength, image, timestamp) - a random nonce
// would make two Encode calls over the same record produce different
// ciphertexts and break that determinism. Binding the nonce to the
// plaintext instead of a counter is safe here because a canonical record
// always differs across distinct (text, timestamp) pairs, which is the
// only thing that varies between two honest calls with the same secret.
package payload

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	hkdfSalt = "wmcodec/v1"
	hkdfInfo = "payload-key"

	nonceSalt = "wmcodec/v1/nonce"

	nonceLength = 24
	keyLength   = 32
)

// deriveCipherKey computes the AEAD key deterministically from secret, so
// that any holder of the same Secret can reproduce it - the §9 redesign:
// never a process-global fixed key.
func deriveCipherKey(secret []byte) ([keyLength]byte, error) {
	var key [keyLength]byte
	hk := hkdf.New(sha256.New, secret, []byte(hkdfSalt), []byte(hkdfInfo))
	if _, err := io.ReadFull(hk, key[:]); err != nil {
		return key, err
	}
	return key, nil
}

// deriveNonce computes the SecretBox nonce deterministically from secret and
// the canonical plaintext it is about to seal, so that Encode is a pure
// function of its inputs instead of drawing fresh randomness on every call.
func deriveNonce(secret, plaintext []byte) [nonceLength]byte {
	var nonce [nonceLength]byte
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(nonceSalt))
	mac.Write(plaintext)
	copy(nonce[:], mac.Sum(nil))
	return nonce
}

// Encode canonicalizes record, encrypts it under a key derived from secret,
// and frames the result as a 32-bit bit-length prefix followed by the
// ciphertext bits, each byte MSB-first.
func Encode(record Record, secret []byte) (FramedPayload, error) {
	key, err := deriveCipherKey(secret)
	if err != nil {
		return nil, err
	}

	plaintext := record.Canonical()
	nonce := deriveNonce(secret, plaintext)
	sealed := secretbox.Seal(nil, plaintext, &nonce, &key)

	ciphertext := make([]byte, 0, nonceLength+len(sealed))
	ciphertext = append(ciphertext, nonce[:]...)
	ciphertext = append(ciphertext, sealed...)

	lengthBits := uint32(len(ciphertext) * 8)
	frame := make(FramedPayload, 0, 32+len(ciphertext)*8)
	frame = append(frame, uint32ToBits(lengthBits)...)
	frame = append(frame, bytesToBits(ciphertext)...)
	return frame, nil
}

// Decode parses a length prefix out of bits, extracts exactly that many
// following bits, and decrypts them under a key derived from secret.
//
// Errors returned (in the order they are checked): UnderrunedStreamError if
// fewer than 32 bits are available, InvalidLengthError if the parsed length
// is outside (0, MaxLengthBits], UnderrunedStreamError again if the full
// frame isn't available, BytesNotAlignedError if the length isn't a
// multiple of 8, ErrDecryptionFailed if the AEAD tag doesn't verify, and
// ErrMalformedRecord if the decrypted bytes aren't a canonical Record.
func Decode(bits []bool, secret []byte) (Record, error) {
	if len(bits) < 32 {
		return Record{}, UnderrunedStreamError{Need: 32, Have: len(bits)}
	}

	lengthBits := bitsToUint32(bits[:32])
	if lengthBits < MinLengthBits || lengthBits > MaxLengthBits {
		return Record{}, InvalidLengthError(lengthBits)
	}

	total := 32 + int(lengthBits)
	if len(bits) < total {
		return Record{}, UnderrunedStreamError{Need: total, Have: len(bits)}
	}

	if lengthBits%8 != 0 {
		return Record{}, BytesNotAlignedError(lengthBits)
	}

	ciphertext := bitsToBytes(bits[32:total])
	if len(ciphertext) < nonceLength+secretbox.Overhead {
		return Record{}, ErrDecryptionFailed
	}

	var nonce [nonceLength]byte
	copy(nonce[:], ciphertext[:nonceLength])
	box := ciphertext[nonceLength:]

	key, err := deriveCipherKey(secret)
	if err != nil {
		return Record{}, err
	}

	plaintext, ok := secretbox.Open(nil, box, &nonce, &key)
	if !ok {
		return Record{}, ErrDecryptionFailed
	}

	record, err := ParseCanonical(plaintext)
	if err != nil {
		return Record{}, ErrMalformedRecord
	}
	return record, nil
}
