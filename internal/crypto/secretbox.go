// Package crypto implements the at-rest encryption for settings credential
// fields. Values are encrypted with AES-256-GCM under a PBKDF2-derived key
// and serialized as salt:iv:authTag:ciphertext, each part hex encoded.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltSize   = 16
	nonceSize  = 12
	tagSize    = 16
	keySize    = 32
	iterations = 100_000
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// Encrypt encrypts plaintext under the passphrase. Each call uses a fresh
// random salt and nonce, so encrypting the same value twice yields distinct
// outputs.
func Encrypt(plaintext, passphrase string) (string, error) {
	if passphrase == "" {
		return "", errors.New("empty passphrase")
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	// Seal returns ciphertext||tag; the serialized format carries the tag
	// as its own segment.
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	ct := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(salt),
		hex.EncodeToString(nonce),
		hex.EncodeToString(tag),
		hex.EncodeToString(ct),
	}, ":"), nil
}

// Decrypt reverses Encrypt. Tampered input (including a flipped bit in the
// auth tag) fails authentication and returns an error, never corrupted
// plaintext.
func Decrypt(encoded, passphrase string) (string, error) {
	if passphrase == "" {
		return "", errors.New("empty passphrase")
	}

	parts := strings.Split(encoded, ":")
	if len(parts) != 4 {
		return "", ErrMalformedCiphertext
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil || len(salt) != saltSize {
		return "", ErrMalformedCiphertext
	}
	nonce, err := hex.DecodeString(parts[1])
	if err != nil || len(nonce) != nonceSize {
		return "", ErrMalformedCiphertext
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil || len(tag) != tagSize {
		return "", ErrMalformedCiphertext
	}
	ct, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", ErrMalformedCiphertext
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, nonce, append(ct, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	return string(plaintext), nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return gcm, nil
}
