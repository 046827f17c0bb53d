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

package spatial

import (
	"errors"
	"fmt"
)

// CapacityExceededError is returned by Embed when the payload is longer
// than the number of pixels the strength thinning selects.
type CapacityExceededError struct {
	Need int
	Have int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("spatial: capacity exceeded: need %d selected pixels, strength selected only %d", e.Need, e.Have)
}

// InsufficientSelectedPixelsError is returned by Extract when fewer than 32
// pixels are selected by the strength thinning - not even the length
// header can be recovered.
type InsufficientSelectedPixelsError struct {
	Have int
}

func (e InsufficientSelectedPixelsError) Error() string {
	return fmt.Sprintf("spatial: only %d pixels selected, need at least 32 to recover the length header", e.Have)
}

// ErrWrongKeyOrStrength is returned when the 32-bit length header decodes
// to a value outside the sane range - almost always a sign that extraction
// was attempted with the wrong secret or the wrong strength.
var ErrWrongKeyOrStrength = errors.New("spatial: recovered length header is invalid (wrong key or strength?)")

// ErrInvalidStrength is returned when strength is outside [0,100].
var ErrInvalidStrength = errors.New("spatial: strength must be in [0,100]")
