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

// Package pixelbuf is the data-model leaf every embedder/extractor reads
// and writes: a rectangular array of 8-bit samples, one or three channels,
// with no notion of file format. Decoding/encoding to a real image.Image is
// a boundary concern (spec: "the HTTP surface... is out of scope"), but the
// conversion functions here are what that boundary, and this module's own
// test fixtures and CLI, build on.
package pixelbuf

import (
	"fmt"
	"image"
	"image/color"
)

// Buffer is a rectangular array of 8-bit samples. Channels is 1
// (grayscale) or 3 (RGB); Pix is row-major, Channels samples per pixel.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed Buffer of the given dimensions and channel count.
func New(width, height, channels int) (*Buffer, error) {
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("pixelbuf: unsupported channel count %d", channels)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixelbuf: invalid dimensions %dx%d", width, height)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}, nil
}

// Clone returns a deep copy, so that an embed operation can hand back a
// freshly owned output buffer while leaving the caller's input untouched.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Width: b.Width, Height: b.Height, Channels: b.Channels}
	out.Pix = append([]uint8(nil), b.Pix...)
	return out
}

// At returns the sample at (row, col, channel). Channel must be 0 for a
// single-channel buffer.
func (b *Buffer) At(row, col, channel int) uint8 {
	return b.Pix[(row*b.Width+col)*b.Channels+channel]
}

// Set writes the sample at (row, col, channel).
func (b *Buffer) Set(row, col, channel int, v uint8) {
	b.Pix[(row*b.Width+col)*b.Channels+channel] = v
}

// BlueOrGray returns the channel index spatial/redundant treat as the
// default single-channel LSB carrier: channel 2 (blue) for RGB, channel 0
// for grayscale.
func (b *Buffer) BlueOrGray() int {
	if b.Channels == 3 {
		return 2
	}
	return 0
}

// FromImage converts a decoded image.Image into a Buffer. RGBA images
// (and anything else) are flattened to 3-channel RGB; Gray images stay
// single-channel. This is the only place stdlib's image/color conversion
// functions are used in this module - no library in the retrieved example
// pack performs colorspace conversion or raster decode/encode.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		buf, err := New(width, height, 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				buf.Set(y, x, 0, gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return buf, nil
	}

	buf, err := New(width, height, 3)
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Set(y, x, 0, uint8(r>>8))
			buf.Set(y, x, 1, uint8(g>>8))
			buf.Set(y, x, 2, uint8(bl>>8))
		}
	}
	return buf, nil
}

// ToImage converts a Buffer back into an image.Image of the matching kind.
func (b *Buffer) ToImage() image.Image {
	if b.Channels == 1 {
		img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: b.At(y, x, 0)})
			}
		}
		return img
	}

	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: b.At(y, x, 0),
				G: b.At(y, x, 1),
				B: b.At(y, x, 2),
				A: 0xff,
			})
		}
	}
	return img
}

// Dimensions renders the buffer's WxH string, as stored verbatim in a
// SignatureRecord's diagnostic-only Dimensions field.
func (b *Buffer) Dimensions() string {
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}
