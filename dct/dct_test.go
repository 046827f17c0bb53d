package dct

import (
	"math"
	"testing"

	"github.com/imagewm/wmcodec/pixelbuf"
)

func TestForwardInverseRoundTrip(t *testing.T) {
	block := [][]float64{
		{52, 55, 61, 66},
		{70, 61, 64, 73},
		{63, 59, 55, 90},
		{67, 61, 68, 104},
	}
	coeffs := Forward2D(block)
	back := Inverse2D(coeffs)

	for i := range block {
		for j := range block[i] {
			if math.Abs(back[i][j]-block[i][j]) > 1e-6 {
				t.Errorf("back[%d][%d] = %v, want %v", i, j, back[i][j], block[i][j])
			}
		}
	}
}

func TestForwardInverseRectangular(t *testing.T) {
	block := [][]float64{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 17, 18},
	}
	back := Inverse2D(Forward2D(block))
	for i := range block {
		for j := range block[i] {
			if math.Abs(back[i][j]-block[i][j]) > 1e-6 {
				t.Errorf("back[%d][%d] = %v, want %v", i, j, back[i][j], block[i][j])
			}
		}
	}
}

func fillBuffer(width, height, channels int, value uint8) *pixelbuf.Buffer {
	buf, err := pixelbuf.New(width, height, channels)
	if err != nil {
		panic(err)
	}
	for i := range buf.Pix {
		buf.Pix[i] = value
	}
	return buf
}

func TestEmbedPreservesDimensionsAndValidRange(t *testing.T) {
	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, 12345, 60, "ownership claim")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if out.Width != buf.Width || out.Height != buf.Height || out.Channels != buf.Channels {
		t.Fatalf("dimensions changed")
	}
	for _, v := range out.Pix {
		if v > 255 {
			t.Fatalf("pixel value %d out of 8-bit range", v)
		}
	}
}

func TestEmbedMeanDeviationBounded(t *testing.T) {
	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, 12345, 60, "ownership claim")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	var total float64
	for i := range buf.Pix {
		total += math.Abs(float64(out.Pix[i]) - float64(buf.Pix[i]))
	}
	mean := total / float64(len(buf.Pix))
	if mean > 6 {
		t.Errorf("mean absolute pixel deviation = %v, want <= 6", mean)
	}
}

func TestDetectFindsEmbeddedWatermark(t *testing.T) {
	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, 999, 80, "claim")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	present, err := Detect(out, 999, 80, "claim")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !present {
		t.Error("Detect did not find the watermark that was just embedded")
	}
}

func TestDetectRejectsUnwatermarkedImage(t *testing.T) {
	buf := fillBuffer(64, 64, 3, 128)
	present, err := Detect(buf, 999, 80, "claim")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if present {
		t.Error("Detect reported a watermark present in an untouched image")
	}
}

func TestDetectRejectsWrongKey(t *testing.T) {
	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, 999, 80, "claim")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	present, err := Detect(out, 1000, 80, "claim")
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if present {
		t.Error("Detect reported a watermark present under the wrong seed")
	}
}
