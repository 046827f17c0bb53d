package metadata

import "testing"

func TestEmbedExtractRoundTrip(t *testing.T) {
	secret := []byte("hunter2")
	rec := Embed("owned by alice", "2026-07-30T00:00:00Z", secret)

	got := Extract(rec)
	if got.Text != "owned by alice" {
		t.Errorf("got text %q, want %q", got.Text, "owned by alice")
	}
	if got.Signature == "" {
		t.Error("Signature was left empty")
	}
}

func TestSignaturesAreDistinct(t *testing.T) {
	secret := []byte("hunter2")
	a := Embed("same text", "t", secret)
	b := Embed("same text", "t", secret)
	if a.Signature == b.Signature {
		t.Error("two Embed calls over identical input produced the same signature")
	}
}

func TestVerifyKeyMatchingSecret(t *testing.T) {
	secret := []byte("hunter2")
	rec := Embed("x", "t", secret)
	if !VerifyKey(rec, secret) {
		t.Error("VerifyKey rejected the secret used to produce the record")
	}
}

func TestVerifyKeyWrongSecret(t *testing.T) {
	rec := Embed("x", "t", []byte("hunter2"))
	if VerifyKey(rec, []byte("hunter3")) {
		t.Error("VerifyKey accepted a secret that was never used to produce the record")
	}
}

func TestVerifyKeyLegacyRecordWithoutHash(t *testing.T) {
	rec := Record{Text: "legacy", Timestamp: "t"}
	if !VerifyKey(rec, []byte("anything")) {
		t.Error("a record with no key hash should verify against any secret")
	}
}
