package wmproc

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(width, height int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestApplyExtractInvisible(t *testing.T) {
	secret := []byte("hunter2")
	img := solidImage(64, 64, color.RGBA{128, 128, 128, 255})

	out, meta, err := Apply(img, "hello", "2026-07-30T00:00:00Z", secret, ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if meta != nil {
		t.Fatalf("invisible modality should not produce a metadata record")
	}

	got, err := Extract(out, secret, ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "hello" {
		t.Errorf("got text %q, want hello", got.Text)
	}
}

func TestApplyExtractSteganography(t *testing.T) {
	secret := []byte("hunter2")
	img := solidImage(64, 64, color.RGBA{100, 100, 100, 255})

	out, _, err := Apply(img, "stega", "t", secret, ModalitySteganography, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := Extract(out, secret, ModalitySteganography, 80)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "stega" {
		t.Errorf("got text %q, want stega", got.Text)
	}
}

func TestApplyDetectFrequencyDomain(t *testing.T) {
	secret := []byte("hunter2")
	img := solidImage(64, 64, color.RGBA{128, 128, 128, 255})

	out, meta, err := Apply(img, "freq claim", "t", secret, ModalityFrequencyDomain, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if meta != nil {
		t.Fatalf("frequency modality should not produce a metadata record")
	}

	present, err := DetectFrequencyDomain(out, secret, 80, "freq claim")
	if err != nil {
		t.Fatalf("DetectFrequencyDomain: %v", err)
	}
	if !present {
		t.Error("DetectFrequencyDomain did not find the watermark just applied")
	}
}

func TestApplyMetadata(t *testing.T) {
	secret := []byte("hunter2")
	img := solidImage(32, 32, color.RGBA{0, 0, 0, 255})

	out, meta, err := Apply(img, "metadata claim", "t", secret, ModalityMetadata, 50)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if meta == nil {
		t.Fatal("metadata modality must produce a metadata record")
	}
	if out != img {
		t.Error("metadata modality must not alter the image")
	}

	result := ExtractMetadata(*meta)
	if result.Text != "metadata claim" {
		t.Errorf("got text %q, want metadata claim", result.Text)
	}
	if !VerifyKey(result, secret) {
		t.Error("VerifyKey rejected the secret used to produce the metadata record")
	}
}

func TestVerifyKeyRejectsWrongSecret(t *testing.T) {
	secret := []byte("hunter2")
	wrong := []byte("hunter3")
	img := solidImage(64, 64, color.RGBA{128, 128, 128, 255})

	out, _, err := Apply(img, "hello", "t", secret, ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got, err := Extract(out, secret, ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if VerifyKey(got, wrong) {
		t.Error("VerifyKey accepted a secret that was never used to embed")
	}
}

func TestExtractWithFallbackFindsSteganography(t *testing.T) {
	secret := []byte("hunter2")
	img := solidImage(64, 64, color.RGBA{100, 100, 100, 255})

	out, _, err := Apply(img, "fallback test", "t", secret, ModalitySteganography, 80)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	result, err := ExtractWithFallback(out, secret, 80, "fallback test", ModalityInvisible, nil)
	if err != nil {
		t.Fatalf("ExtractWithFallback: %v", err)
	}
	if result.Text != "fallback test" || result.Method != ModalitySteganography {
		t.Errorf("got %+v, want text=fallback test method=steganography", result)
	}
}

func TestGenerateSecretProducesUsableSecret(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	if len(secret) == 0 {
		t.Fatal("GenerateSecret returned an empty secret")
	}

	img := solidImage(64, 64, color.RGBA{128, 128, 128, 255})
	out, _, err := Apply(img, "generated", "t", []byte(secret), ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Apply with generated secret: %v", err)
	}
	got, err := Extract(out, []byte(secret), ModalityInvisible, 80)
	if err != nil {
		t.Fatalf("Extract with generated secret: %v", err)
	}
	if got.Text != "generated" {
		t.Errorf("got text %q, want generated", got.Text)
	}
}
