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

// Package wmproc is the WatermarkProcessor façade: it picks a modality
// package (spatial, redundant, dct, metadata), builds the canonical
// SignatureRecord, and dispatches to that modality's Embed/Extract, so that
// callers never touch payload, pixelbuf or wmrand directly.
package wmproc

import (
	"crypto/sha256"
	"encoding/hex"
	"image"

	"github.com/imagewm/wmcodec/csrand"
	"github.com/imagewm/wmcodec/dct"
	"github.com/imagewm/wmcodec/keyderiv"
	"github.com/imagewm/wmcodec/metadata"
	"github.com/imagewm/wmcodec/payload"
	"github.com/imagewm/wmcodec/pixelbuf"
	"github.com/imagewm/wmcodec/redundant"
	"github.com/imagewm/wmcodec/spatial"
)

// Modality names one of the four watermarking techniques this package
// exposes.
type Modality string

const (
	ModalityInvisible       Modality = "invisible"
	ModalitySteganography   Modality = "steganography"
	ModalityFrequencyDomain Modality = "frequency"
	ModalityMetadata        Modality = "metadata"
)

// fallbackOrder is the fixed retry order ExtractWithFallback walks when the
// caller does not know which modality produced a given image.
var fallbackOrder = []Modality{
	ModalityInvisible,
	ModalitySteganography,
	ModalityFrequencyDomain,
	ModalityMetadata,
}

// Result is the recovered watermark, normalized across all four
// modalities. Signature is populated only for ModalityMetadata results;
// the pixel-carrying modalities have no equivalent field.
type Result struct {
	Text            string
	Timestamp       string
	Method          Modality
	ProtectionLevel int
	KeyHash         string
	Signature       string
}

// Apply embeds text into img under the given modality, strength and
// secret, returning the watermarked image. For ModalityMetadata, img is
// returned unchanged and the caller is responsible for storing the
// returned metadata.Record alongside it; the returned record is nil for
// every other modality.
func Apply(img image.Image, text, timestamp string, secret []byte, modality Modality, strength int) (image.Image, *metadata.Record, error) {
	if strength < 0 || strength > 100 {
		return nil, nil, ErrInvalidStrength
	}

	seed, hint := keyderiv.Derive(secret)

	if modality == ModalityMetadata {
		rec := metadata.Embed(text, timestamp, secret)
		return img, &rec, nil
	}

	buf, err := pixelbuf.FromImage(img)
	if err != nil {
		return nil, nil, err
	}

	method, err := payloadMethod(modality)
	if err != nil {
		return nil, nil, err
	}

	if modality == ModalityFrequencyDomain {
		out, err := dct.Embed(buf, seed, strength, text)
		if err != nil {
			return nil, nil, err
		}
		return out.ToImage(), nil, nil
	}

	rec := payload.Record{
		Text:      text,
		Timestamp: timestamp,
		Method:    method,
		KeyHash:   hint,
	}
	switch modality {
	case ModalityInvisible:
		rec.Dimensions = buf.Dimensions()
		rec.ProtectionLevel = strength
	case ModalitySteganography:
		rec.Checksum = textChecksum(text)
	}
	frame, err := payload.Encode(rec, secret)
	if err != nil {
		return nil, nil, err
	}

	var out *pixelbuf.Buffer
	switch modality {
	case ModalityInvisible:
		out, err = spatial.Embed(buf, frame, seed, strength)
	case ModalitySteganography:
		out, err = redundant.Embed(buf, frame, seed, strength)
	default:
		return nil, nil, InvalidModalityError{Modality: modality}
	}
	if err != nil {
		return nil, nil, err
	}
	return out.ToImage(), nil, nil
}

// Extract recovers a Result from img under the given modality, strength and
// secret. The frequency-domain modality never carries a text payload, and
// Extract returns InvalidModalityError for it; DetectFrequencyDomain answers
// presence for that modality given the expected text.
func Extract(img image.Image, secret []byte, modality Modality, strength int) (Result, error) {
	if strength < 0 || strength > 100 {
		return Result{}, ErrInvalidStrength
	}
	seed, _ := keyderiv.Derive(secret)

	if modality == ModalityFrequencyDomain {
		return Result{}, InvalidModalityError{Modality: modality}
	}

	buf, err := pixelbuf.FromImage(img)
	if err != nil {
		return Result{}, err
	}

	var rec payload.Record
	switch modality {
	case ModalityInvisible:
		rec, err = spatial.Extract(buf, secret, seed, strength)
	case ModalitySteganography:
		rec, err = redundant.Extract(buf, secret, seed, strength)
	default:
		return Result{}, InvalidModalityError{Modality: modality}
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Text:            rec.Text,
		Timestamp:       rec.Timestamp,
		Method:          modality,
		ProtectionLevel: rec.ProtectionLevel,
		KeyHash:         rec.KeyHash,
	}, nil
}

// DetectFrequencyDomain reports whether img carries a frequency-domain
// watermark for the given seed material, strength and text. Unlike
// Extract, the frequency-domain modality cannot recover its own text, so
// the caller must supply the text it expects to verify against.
func DetectFrequencyDomain(img image.Image, secret []byte, strength int, text string) (bool, error) {
	seed, _ := keyderiv.Derive(secret)
	buf, err := pixelbuf.FromImage(img)
	if err != nil {
		return false, err
	}
	return dct.Detect(buf, seed, strength, text)
}

// ExtractMetadata returns rec unchanged, mirroring Extract's shape for the
// metadata modality, whose Record travels outside img entirely.
func ExtractMetadata(rec metadata.Record) Result {
	got := metadata.Extract(rec)
	return Result{
		Text:      got.Text,
		Timestamp: got.Timestamp,
		Method:    ModalityMetadata,
		KeyHash:   got.KeyHash,
		Signature: got.Signature,
	}
}

// VerifyKey reports whether secret is consistent with result's key hash,
// applying the metadata modality's legacy no-hash-means-valid rule
// uniformly across all four modalities.
func VerifyKey(result Result, secret []byte) bool {
	if result.KeyHash == "" {
		return true
	}
	return result.KeyHash == keyderiv.Hint(secret)
}

// GenerateSecret returns a freshly generated, hex-encoded random secret
// suitable for use as the key material to Apply/Extract. It is a
// convenience for callers with no existing secret of their own to reuse.
func GenerateSecret() (string, error) {
	return csrand.Token(32)
}

// ExtractWithFallback tries every modality in the fixed order invisible,
// steganography, frequency, metadata - skipping tried, which the caller has
// already attempted and knows failed - and returns the first one that
// recovers a record (for metadata: whose key hash verifies against
// secret). metaRec must be supplied
// when metadata is still in the fallback order; it is consulted rather
// than extracted from img, since the metadata modality carries no pixel
// payload at all.
func ExtractWithFallback(img image.Image, secret []byte, strength int, text string, tried Modality, metaRec *metadata.Record) (Result, error) {
	for _, modality := range fallbackOrder {
		if modality == tried {
			continue
		}
		switch modality {
		case ModalityInvisible, ModalitySteganography:
			result, err := Extract(img, secret, modality, strength)
			if err == nil {
				return result, nil
			}
		case ModalityFrequencyDomain:
			present, err := DetectFrequencyDomain(img, secret, strength, text)
			if err == nil && present {
				return Result{Method: ModalityFrequencyDomain, Text: text}, nil
			}
		case ModalityMetadata:
			if metaRec != nil && VerifyKey(ExtractMetadata(*metaRec), secret) {
				return ExtractMetadata(*metaRec), nil
			}
		}
	}
	return Result{}, ErrNoModalitySucceeded
}

func payloadMethod(modality Modality) (payload.Method, error) {
	switch modality {
	case ModalityInvisible:
		return payload.MethodInvisible, nil
	case ModalitySteganography:
		return payload.MethodSteganography, nil
	case ModalityFrequencyDomain:
		return payload.MethodFrequencyDomain, nil
	default:
		return "", InvalidModalityError{Modality: modality}
	}
}

// textChecksum is the steganography-modality record's binding to the text
// it carries: the first 16 hex characters of SHA-256(text), matching the
// truncation keyderiv.Hint applies to the key hash.
func textChecksum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}
