package crypto

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"s3cret-api-key",
		"chave com acentuação e espaços",
		strings.Repeat("x", 4096),
	}
	for _, plaintext := range cases {
		encoded, err := Encrypt(plaintext, "passphrase")
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", plaintext, err)
		}
		if parts := strings.Split(encoded, ":"); len(parts) != 4 {
			t.Fatalf("expected 4 segments, got %d", len(parts))
		}
		got, err := Decrypt(encoded, "passphrase")
		if err != nil {
			t.Fatalf("Decrypt error: %v", err)
		}
		if got != plaintext {
			t.Errorf("round trip mismatch: got %q want %q", got, plaintext)
		}
	}
}

func TestEncryptIsNonDeterministic(t *testing.T) {
	a, err := Encrypt("same value", "passphrase")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt("same value", "passphrase")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct ciphertexts for repeated encryption")
	}
}

func TestDecryptRejectsTamperedTag(t *testing.T) {
	encoded, err := Encrypt("payload", "passphrase")
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(encoded, ":")

	// Flip one byte of the auth tag.
	tag, err := hex.DecodeString(parts[2])
	if err != nil {
		t.Fatal(err)
	}
	tag[0] ^= 0xff
	parts[2] = hex.EncodeToString(tag)

	if _, err := Decrypt(strings.Join(parts, ":"), "passphrase"); err == nil {
		t.Error("expected tampered ciphertext to fail authentication")
	}
}

func TestDecryptRejectsWrongPassphrase(t *testing.T) {
	encoded, err := Encrypt("payload", "passphrase")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt(encoded, "other"); err == nil {
		t.Error("expected wrong passphrase to fail")
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "a:b", "a:b:c:d:e", "zz:zz:zz:zz"} {
		if _, err := Decrypt(in, "passphrase"); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
