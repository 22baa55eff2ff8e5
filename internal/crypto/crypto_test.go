package crypto

import (
	"path/filepath"
	"strings"
	"testing"
)

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := testKey(1)

	ct, err := EncryptString("sk-secret-value", key)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if ct == "" || ct == "sk-secret-value" {
		t.Fatalf("ciphertext looks wrong: %q", ct)
	}

	pt, err := DecryptString(ct, key)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if pt != "sk-secret-value" {
		t.Errorf("round trip lost the value: %q", pt)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	ct, err := EncryptString("sk-secret-value", testKey(1))
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	if _, err := DecryptString(ct, testKey(2)); err == nil {
		t.Error("decryption with the wrong key succeeded")
	}
}

func TestDecryptRejectsTamperedCiphertext(t *testing.T) {
	key := testKey(1)
	ct, err := EncryptString("sk-secret-value", key)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	// Flip one hex digit past the nonce
	tampered := []byte(ct)
	last := len(tampered) - 1
	if tampered[last] == 'a' {
		tampered[last] = 'b'
	} else {
		tampered[last] = 'a'
	}
	if _, err := DecryptString(string(tampered), key); err == nil {
		t.Error("tampered ciphertext decrypted")
	}

	if _, err := DecryptString("00", key); err == nil || !strings.Contains(err.Error(), "too short") {
		t.Errorf("expected too-short error, got %v", err)
	}
}

func TestEmptyStringPassthrough(t *testing.T) {
	key := testKey(1)

	ct, err := EncryptString("", key)
	if err != nil || ct != "" {
		t.Errorf("empty plaintext: got %q, %v", ct, err)
	}
	pt, err := DecryptString("", key)
	if err != nil || pt != "" {
		t.Errorf("empty ciphertext: got %q, %v", pt, err)
	}
}

func TestGetEncryptionKeyPersists(t *testing.T) {
	t.Setenv("AGENTKIT_ENCRYPTION_KEY", "")
	dir := filepath.Join(t.TempDir(), "data")

	first, err := GetEncryptionKey(dir)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	if len(first) != 32 {
		t.Fatalf("expected 32-byte key, got %d", len(first))
	}

	second, err := GetEncryptionKey(dir)
	if err != nil {
		t.Fatalf("key reload failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("key not stable across loads")
	}
}
