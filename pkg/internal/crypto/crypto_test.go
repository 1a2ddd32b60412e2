package crypto_test

import (
	"bytes"
	crand "crypto/rand"
	"errors"
	"testing"

	"github.com/yeisme/sharevault/pkg/internal/crypto"
)

func newTestCipher(t *testing.T) *crypto.Cipher {
	t.Helper()

	key := make([]byte, crypto.KeySize)
	if _, err := crand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}

	c, err := crypto.NewCipher(key)
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	return c
}

func TestCipherRoundTrip(t *testing.T) {
	c := newTestCipher(t)

	plaintexts := [][]byte{
		[]byte("hello"),
		{},
		bytes.Repeat([]byte{0xAB}, 1<<16),
	}

	for _, pt := range plaintexts {
		ct, err := c.Encrypt(pt)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}

		if bytes.Contains(ct, pt) && len(pt) > 4 {
			t.Fatalf("ciphertext contains plaintext")
		}

		got, err := c.Decrypt(ct)
		if err != nil {
			t.Fatalf("decrypt: %v", err)
		}

		if !bytes.Equal(got, pt) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(pt))
		}
	}
}

func TestCipherNonceUnique(t *testing.T) {
	c := newTestCipher(t)

	pt := []byte("same plaintext")

	ct1, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	ct2, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if bytes.Equal(ct1, ct2) {
		t.Fatalf("two encryptions of same plaintext produced identical ciphertext")
	}
}

func TestCipherTamperDetected(t *testing.T) {
	c := newTestCipher(t)

	ct, err := c.Encrypt([]byte("sensitive"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	ct[len(ct)-1] ^= 0x01

	if _, err := c.Decrypt(ct); !errors.Is(err, crypto.ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}

func TestCipherWrongKey(t *testing.T) {
	c1 := newTestCipher(t)
	c2 := newTestCipher(t)

	ct, err := c1.Encrypt([]byte("sensitive"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if _, err := c2.Decrypt(ct); !errors.Is(err, crypto.ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}

func TestCipherTruncatedCiphertext(t *testing.T) {
	c := newTestCipher(t)

	if _, err := c.Decrypt([]byte{0x01, 0x02}); !errors.Is(err, crypto.ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}

func TestNewCipherBadKeySize(t *testing.T) {
	if _, err := crypto.NewCipher(make([]byte, 16)); !errors.Is(err, crypto.ErrInvalidKey) {
		t.Fatalf("want ErrInvalidKey, got %v", err)
	}
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := crypto.HashPassword("folder-secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if hash == "folder-secret" {
		t.Fatalf("hash equals plaintext")
	}

	if !crypto.CheckPassword(hash, "folder-secret") {
		t.Fatalf("correct password rejected")
	}

	if crypto.CheckPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}
