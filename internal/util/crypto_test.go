package util

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plain := []byte(`{"version":1,"users":[]}`)

	enc, err := EncryptAES("backup-pass", plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(enc, plain) {
		t.Error("ciphertext contains plaintext")
	}

	dec, err := DecryptAES("backup-pass", enc)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(dec, plain) {
		t.Errorf("round trip mismatch: %q", dec)
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	enc, err := EncryptAES("right", []byte("data"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := DecryptAES("wrong", enc); err == nil {
		t.Error("wrong passphrase should fail")
	}
}

func TestDecryptShortCipher(t *testing.T) {
	if _, err := DecryptAES("k", []byte("short")); err == nil {
		t.Error("short cipher should fail")
	}
}

func TestDecryptTampered(t *testing.T) {
	enc, err := EncryptAES("k", []byte("data"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	enc[len(enc)-1] ^= 0xFF
	if _, err := DecryptAES("k", enc); err == nil {
		t.Error("tampered cipher should fail")
	}
}

// Each encryption draws a fresh salt and nonce, so identical inputs never
// produce identical blobs.
func TestEncryptUnique(t *testing.T) {
	a, err := EncryptAES("k", []byte("data"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := EncryptAES("k", []byte("data"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same data should differ")
	}
}
