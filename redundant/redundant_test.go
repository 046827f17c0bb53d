package redundant

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

func TestFactorMonotonicity(t *testing.T) {
	if Factor(0) != 1 {
		t.Errorf("Factor(0) = %d, want 1", Factor(0))
	}
	if Factor(100) < Factor(50) {
		t.Errorf("Factor(100)=%d should be >= Factor(50)=%d", Factor(100), Factor(50))
	}
}

func TestRoundTrip(t *testing.T) {
	secret := []byte("hunter2")
	seed, hint := keyderiv.Derive(secret)

	rec := payload.Record{
		Text:      "stega",
		Timestamp: "2026-07-30T00:00:00Z",
		Method:    payload.MethodSteganography,
		Checksum:  "deadbeefdeadbeef",
		KeyHash:   hint,
	}
	frame, err := payload.Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	buf := fillBuffer(128, 128, 3, 100)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	got, err := Extract(out, secret, seed, 100)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Text != "stega" || got.KeyHash != hint {
		t.Errorf("got %+v, want text=stega key_hash=%s", got, hint)
	}
}

// TestResilientToBitFlips verifies the core value proposition of
// redundancy: corrupting at most r/2 of a bit's r replicated votes must
// not change the majority-decoded value.
func TestResilientToBitFlips(t *testing.T) {
	secret := []byte("flip-secret")
	seed, hint := keyderiv.Derive(secret)

	rec := payload.Record{
		Text:      "resilient",
		Timestamp: "t",
		Method:    payload.MethodSteganography,
		Checksum:  "deadbeefdeadbeef",
		KeyHash:   hint,
	}
	frame, err := payload.Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	buf := fillBuffer(128, 128, 3, 100)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	r := Factor(100)
	minority := r / 2
	flipped := 0
	walker := &pixelWalker{buf: out}
	// Flip r/2 LSBs at the very start of the pixel stream, at most half of
	// the first bit's vote count - the majority vote for that bit must
	// still survive.
	for i := 0; i < minority; i++ {
		row, col, ok := walker.next()
		if !ok {
			break
		}
		v := out.At(row, col, 0)
		out.Set(row, col, 0, v^1)
		flipped++
	}

	got, err := Extract(out, secret, seed, 100)
	if err != nil {
		t.Fatalf("Extract after minority bit flips: %v", err)
	}
	if got.Text != "resilient" {
		t.Errorf("got text %q, want resilient", got.Text)
	}
}

func TestCapacityExceeded(t *testing.T) {
	secret := []byte("s")
	seed, hint := keyderiv.Derive(secret)
	rec := payload.Record{Text: "a long enough message to blow a tiny buffer's redundant capacity", Timestamp: "t", Method: payload.MethodSteganography, Checksum: "deadbeefdeadbeef", KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(2, 2, 3, 0)
	_, err := Embed(buf, frame, seed, 100)
	if _, ok := err.(CapacityExceededError); !ok {
		t.Fatalf("err = %v (%T), want CapacityExceededError", err, err)
	}
}

func TestWrongSecretFails(t *testing.T) {
	secret := []byte("hunter2")
	wrong := []byte("hunter3")
	seed, hint := keyderiv.Derive(secret)
	wrongSeed, _ := keyderiv.Derive(wrong)

	rec := payload.Record{Text: "hi", Timestamp: "t", Method: payload.MethodSteganography, Checksum: "deadbeefdeadbeef", KeyHash: hint}
	frame, _ := payload.Encode(rec, secret)

	buf := fillBuffer(128, 128, 3, 128)
	out, err := Embed(buf, frame, seed, 100)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	_, err = Extract(out, wrong, wrongSeed, 100)
	if err == nil {
		t.Fatal("expected an error extracting with the wrong secret")
	}
}
