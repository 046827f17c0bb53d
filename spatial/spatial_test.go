package spatial

import (
	"testing"

	"github.com/imagewm/wmcodec/keyderiv"
	"github.com/imagewm/wmcodec/payload"
	"github.com/imagewm/wmcodec/pixelbuf"
)

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

func TestRoundTrip(t *testing.T) {
	secret := []byte("hunter2")
	seed, hint := keyderiv.Derive(secret)

	rec := payload.Record{
		Text:            "hi",
		Timestamp:       "2026-07-30T00:00:00Z",
		Method:          payload.MethodInvisible,
		Dimensions:      "64x64",
		ProtectionLevel: 100,
		KeyHash:         hint,
	}
	frame, err := payload.Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, err := Extract(out, secret, seed, 100)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "hi" || got.KeyHash != hint {
		t.Errorf("got %+v, want text=hi key_hash=%s", got, hint)
	}
}

func TestDimensionPreservation(t *testing.T) {
	secret := []byte("s")
	seed, hint := keyderiv.Derive(secret)
	rec := payload.Record{Text: "x", Timestamp: "t", Method: payload.MethodInvisible, Dimensions: "64x64", ProtectionLevel: 100, KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(64, 64, 3, 10)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if out.Width != buf.Width || out.Height != buf.Height || out.Channels != buf.Channels {
		t.Errorf("dimensions changed: got %dx%dx%d, want %dx%dx%d",
			out.Width, out.Height, out.Channels, buf.Width, buf.Height, buf.Channels)
	}
}

func TestGrayscaleRoundTrip(t *testing.T) {
	secret := []byte("gray-secret")
	seed, hint := keyderiv.Derive(secret)
	rec := payload.Record{Text: "mono", Timestamp: "t", Method: payload.MethodInvisible, Dimensions: "64x64", ProtectionLevel: 100, KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(64, 64, 1, 50)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if out.Channels != 1 {
		t.Fatalf("output channels = %d, want 1", out.Channels)
	}

	got, err := Extract(out, secret, seed, 100)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "mono" {
		t.Errorf("got text %q, want mono", got.Text)
	}
}

func TestWrongSecretFailsDecryption(t *testing.T) {
	secret := []byte("hunter2")
	wrong := []byte("hunter3")
	seed, hint := keyderiv.Derive(secret)
	wrongSeed, _ := keyderiv.Derive(wrong)

	rec := payload.Record{Text: "hi", Timestamp: "t", Method: payload.MethodInvisible, Dimensions: "64x64", ProtectionLevel: 100, KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	_, err = Extract(out, wrong, wrongSeed, 100)
	switch err.(type) {
	case payload.InvalidLengthError, payload.BytesNotAlignedError:
	default:
		if err != payload.ErrDecryptionFailed && err != ErrWrongKeyOrStrength {
			t.Errorf("wrong-secret extract returned %v (%T), want one of InvalidLength/BytesNotAligned/DecryptionFailed/WrongKeyOrStrength", err, err)
		}
	}
}

func TestCapacityExceeded(t *testing.T) {
	secret := []byte("s")
	seed, hint := keyderiv.Derive(secret)
	rec := payload.Record{Text: "a long enough message to blow a tiny buffer's capacity for sure", Timestamp: "t", Method: payload.MethodInvisible, Dimensions: "2x2", ProtectionLevel: 100, KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(2, 2, 3, 0)
	_, err := Embed(buf, frame, seed, 100)
	if _, ok := err.(CapacityExceededError); !ok {
		t.Fatalf("err = %v (%T), want CapacityExceededError", err, err)
	}
}

func TestExtractWithLowerStrengthFails(t *testing.T) {
	secret := []byte("s")
	seed, hint := keyderiv.Derive(secret)
	rec := payload.Record{Text: "hi", Timestamp: "t", Method: payload.MethodInvisible, Dimensions: "64x64", ProtectionLevel: 50, KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(64, 64, 3, 128)
	out, err := Embed(buf, frame, seed, 50)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	_, err = Extract(out, secret, seed, 10)
	if err == nil {
		t.Fatal("expected an error extracting at a lower strength than was embedded with")
	}
}
