package vault_test

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"keyward/internal/vault"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, plaintext := range []string{
		"5JRaypasxMx1L97ZUX7YuC5Psb5EAbF821kkAGtBj7xCJFQcbLg",
		"short",
		"", // empty secrets round-trip losslessly
	} {
		sealed, err := vault.EncryptData([]byte(plaintext), "hunter2-master")
		if err != nil {
			t.Fatalf("EncryptData(%q): %v", plaintext, err)
		}
		got, err := vault.DecryptData(sealed, "hunter2-master")
		if err != nil {
			t.Fatalf("DecryptData(%q): %v", plaintext, err)
		}
		if string(got) != plaintext {
			t.Fatalf("round trip: want %q, got %q", plaintext, got)
		}
	}
}

func TestEncryptIsNondeterministic(t *testing.T) {
	a, err := vault.EncryptData([]byte("same input"), "same password")
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}
	b, err := vault.EncryptData([]byte("same input"), "same password")
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}
	if a == b {
		t.Fatal("two encryptions of identical input serialized identically")
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	sealed, err := vault.EncryptData([]byte("secret"), "right password")
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}
	_, err = vault.DecryptData(sealed, "wrong password")
	if !errors.Is(err, vault.ErrDecryptionFailed) {
		t.Fatalf("want ErrDecryptionFailed, got %v", err)
	}
}

func TestDecryptRejectsMalformedRecords(t *testing.T) {
	sealed, err := vault.EncryptData([]byte("secret"), "pw")
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}
	var rec struct{ Data, Salt, Nonce string }
	if err := json.Unmarshal([]byte(sealed), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}

	mk := func(data, salt, nonce string) string {
		b, _ := json.Marshal(map[string]string{"data": data, "salt": salt, "nonce": nonce})
		return string(b)
	}

	cases := map[string]string{
		"not json":        "definitely not a record",
		"empty record":    "{}",
		"bad data hex":    mk("zz"+rec.Data[2:], rec.Salt, rec.Nonce),
		"bad salt hex":    mk(rec.Data, "nothex!!", rec.Nonce),
		"short salt":      mk(rec.Data, rec.Salt[2:], rec.Nonce),
		"bad nonce hex":   mk(rec.Data, rec.Salt, "xx"),
		"short nonce":     mk(rec.Data, rec.Salt, rec.Nonce[2:]),
		"missing fields":  mk("", rec.Salt, rec.Nonce),
		"tampered cipher": mk(flipHex(rec.Data), rec.Salt, rec.Nonce),
	}
	for name, record := range cases {
		if _, err := vault.DecryptData(record, "pw"); !errors.Is(err, vault.ErrDecryptionFailed) {
			t.Errorf("%s: want ErrDecryptionFailed, got %v", name, err)
		}
	}
}

// flipHex flips one bit of the first byte, keeping valid hex.
func flipHex(s string) string {
	raw, _ := hex.DecodeString(s)
	raw[0] ^= 0x01
	return hex.EncodeToString(raw)
}

func TestHashAndValidatePassword(t *testing.T) {
	salt, err := vault.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	hash := vault.HashPassword("correct horse", salt)
	if len(hash) != 64 {
		t.Fatalf("want 64 hex chars, got %d", len(hash))
	}
	if hash != vault.HashPassword("correct horse", salt) {
		t.Fatal("hash is not deterministic for fixed (password, salt)")
	}
	if !vault.ValidatePassword("correct horse", hash, salt) {
		t.Fatal("correct password rejected")
	}
	if vault.ValidatePassword("battery staple", hash, salt) {
		t.Fatal("wrong password accepted")
	}
}

func TestGenerateSalt(t *testing.T) {
	a, err := vault.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	b, err := vault.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(a) != vault.SaltSize || len(b) != vault.SaltSize {
		t.Fatalf("want %d-byte salts, got %d and %d", vault.SaltSize, len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatal("two salts are identical")
	}
}
