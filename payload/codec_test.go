package payload

import "testing"

func sampleRecord() Record {
	return Record{
		Text:            "hi",
		Timestamp:       "2026-07-30T00:00:00Z",
		Method:          MethodInvisible,
		Dimensions:      "8x8",
		ProtectionLevel: 100,
		KeyHash:         "deadbeefdeadbeef",
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	secret := []byte("hunter2")
	rec := sampleRecord()

	frame, err := Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(frame, secret)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Text != rec.Text || got.KeyHash != rec.KeyHash || got.Dimensions != rec.Dimensions {
		t.Errorf("decoded record = %+v, want %+v", got, rec)
	}
}

func TestDecodeWrongSecretFails(t *testing.T) {
	rec := sampleRecord()
	frame, err := Encode(rec, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, err = Decode(frame, []byte("hunter3"))
	if err != ErrDecryptionFailed {
		t.Errorf("Decode with wrong secret: err = %v, want ErrDecryptionFailed", err)
	}
}

func TestDecodeShortStreamUnderruns(t *testing.T) {
	_, err := Decode(make([]bool, 10), []byte("k"))
	if _, ok := err.(UnderrunedStreamError); !ok {
		t.Errorf("err = %v (%T), want UnderrunedStreamError", err, err)
	}
}

func TestDecodeTamperedCiphertextFails(t *testing.T) {
	rec := sampleRecord()
	frame, err := Encode(rec, []byte("hunter2"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tampered := append(FramedPayload{}, frame...)
	tampered[40] = !tampered[40]

	_, err = Decode(tampered, []byte("hunter2"))
	if err != ErrDecryptionFailed {
		t.Errorf("Decode tampered frame: err = %v, want ErrDecryptionFailed", err)
	}
}

func TestCanonicalIsStableAcrossFieldOrder(t *testing.T) {
	a := Record{Text: "x", Timestamp: "t", Method: MethodFrequencyDomain, Strength: 50, KeyHash: "aa"}
	b := Record{KeyHash: "aa", Strength: 50, Method: MethodFrequencyDomain, Timestamp: "t", Text: "x"}

	if string(a.Canonical()) != string(b.Canonical()) {
		t.Errorf("canonical form depends on struct literal field order")
	}
}

func TestCanonicalNormalizesUnicode(t *testing.T) {
	// "e" + combining acute accent (NFD) vs precomposed "é" (NFC).
	nfd := Record{Text: "café", Method: MethodSteganography, Checksum: "c", KeyHash: "h"}
	nfc := Record{Text: "café", Method: MethodSteganography, Checksum: "c", KeyHash: "h"}

	if string(nfd.Canonical()) != string(nfc.Canonical()) {
		t.Errorf("canonically-equivalent text serialized differently")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	secret := []byte("hunter2")
	rec := sampleRecord()

	a, err := Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := Encode(rec, secret)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("repeated Encode produced different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated Encode of the same record diverged at bit %d; Encode must be a pure function of (record, secret)", i)
		}
	}
}

func TestParseCanonicalRejectsMissingKeyHash(t *testing.T) {
	_, err := ParseCanonical([]byte(`{"method":"invisible","text":"x","timestamp":"t","dimensions":"1x1","protection_level":"5"}`))
	if err != ErrMalformedRecord {
		t.Errorf("err = %v, want ErrMalformedRecord", err)
	}
}
