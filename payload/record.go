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
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Method is the closed tagged union of signature-record kinds. It mirrors
// the modality that produced the record, but is spelled out the way the
// record itself spells it (frequency_domain, not frequency).
type Method string

const (
	MethodInvisible       Method = "invisible"
	MethodSteganography   Method = "steganography"
	MethodFrequencyDomain Method = "frequency_domain"
)

// Record is the canonical plaintext signature embedded under AEAD. Which
// optional fields are populated is dictated by Method; Canonical only
// serializes the fields that apply to the record's own Method, matching
// watermark_processor.py's three distinct signature_data dicts.
type Record struct {
	Text            string
	Timestamp       string
	Method          Method
	Dimensions      string // "WxH", invisible only
	ProtectionLevel int    // invisible only
	Checksum        string // steganography only (SHA-256(text)[:16])
	Strength        int    // frequency_domain only
	KeyHash         string
}

// Canonical serializes the record to its bit-exact canonical form: UTF-8,
// lexicographically sorted keys, no insignificant whitespace. Text is
// normalized to NFC first so that canonically-equivalent but byte-distinct
// UTF-8 inputs always serialize identically (testable property: canonical
// form stability).
func (r Record) Canonical() []byte {
	fields := map[string]string{
		"text":      norm.NFC.String(r.Text),
		"timestamp": r.Timestamp,
		"method":    string(r.Method),
		"key_hash":  r.KeyHash,
	}

	switch r.Method {
	case MethodInvisible:
		fields["dimensions"] = r.Dimensions
		fields["protection_level"] = strconv.Itoa(r.ProtectionLevel)
	case MethodSteganography:
		fields["checksum"] = r.Checksum
	case MethodFrequencyDomain:
		fields["strength"] = strconv.Itoa(r.Strength)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(quoteJSON(k))
		b.WriteByte(':')
		b.Write(quoteJSON(fields[k]))
	}
	b.WriteByte('}')
	return []byte(b.String())
}

// quoteJSON reuses encoding/json only for its string-escaping rules; the
// surrounding object structure (key order, separators, whitespace) is
// built by Canonical itself so the wire form stays a deliberate contract
// rather than an accident of encoding/json's map iteration.
func quoteJSON(s string) []byte {
	out, _ := json.Marshal(s)
	return out
}

// ParseCanonical parses bytes produced by Canonical back into a Record. It
// returns ErrMalformedRecord for anything that isn't a well-formed record
// for a known Method.
func ParseCanonical(data []byte) (Record, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, ErrMalformedRecord
	}

	method, ok := raw["method"]
	if !ok {
		return Record{}, ErrMalformedRecord
	}

	r := Record{
		Text:      raw["text"],
		Timestamp: raw["timestamp"],
		Method:    Method(method),
		KeyHash:   raw["key_hash"],
	}
	if r.KeyHash == "" {
		return Record{}, ErrMalformedRecord
	}

	switch r.Method {
	case MethodInvisible:
		r.Dimensions = raw["dimensions"]
		lvl, err := strconv.Atoi(raw["protection_level"])
		if err != nil {
			return Record{}, ErrMalformedRecord
		}
		r.ProtectionLevel = lvl
	case MethodSteganography:
		r.Checksum = raw["checksum"]
		if r.Checksum == "" {
			return Record{}, ErrMalformedRecord
		}
	case MethodFrequencyDomain:
		s, err := strconv.Atoi(raw["strength"])
		if err != nil {
			return Record{}, ErrMalformedRecord
		}
		r.Strength = s
	default:
		return Record{}, ErrMalformedRecord
	}

	return r, nil
}
