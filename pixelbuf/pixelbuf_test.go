package pixelbuf

import "testing"

func TestCloneIsIndependent(t *testing.T) {
	b, err := New(4, 4, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.Set(0, 0, 2, 7)

	clone := b.Clone()
	clone.Set(0, 0, 2, 200)

	if b.At(0, 0, 2) != 7 {
		t.Errorf("mutating the clone changed the original buffer")
	}
}

func TestRoundTripThroughImage(t *testing.T) {
	b, err := New(3, 2, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := range b.Pix {
		b.Pix[i] = uint8(i * 17)
	}

	img := b.ToImage()
	back, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}

	if back.Width != b.Width || back.Height != b.Height || back.Channels != b.Channels {
		t.Fatalf("dimensions changed: got %dx%dx%d, want %dx%dx%d",
			back.Width, back.Height, back.Channels, b.Width, b.Height, b.Channels)
	}
	for i := range b.Pix {
		if back.Pix[i] != b.Pix[i] {
			t.Errorf("pixel %d = %d, want %d", i, back.Pix[i], b.Pix[i])
		}
	}
}

func TestBlueOrGray(t *testing.T) {
	rgb, _ := New(1, 1, 3)
	if rgb.BlueOrGray() != 2 {
		t.Errorf("RGB BlueOrGray() = %d, want 2", rgb.BlueOrGray())
	}
	gray, _ := New(1, 1, 1)
	if gray.BlueOrGray() != 0 {
		t.Errorf("gray BlueOrGray() = %d, want 0", gray.BlueOrGray())
	}
}

func TestDimensionsString(t *testing.T) {
	b, _ := New(64, 32, 1)
	if got := b.Dimensions(); got != "64x32" {
		t.Errorf("Dimensions() = %q, want 64x32", got)
	}
}
