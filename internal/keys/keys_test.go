package keys_test

import (
	"crypto/rand"
	"strings"
	"testing"

	"github.com/mr-tron/base58"

	"keyward/internal/keys"
)

// makeKey builds a well-formed encoded public key for tests.
func makeKey(t *testing.T) string {
	t.Helper()
	for i := 0; i < 200; i++ {
		raw := make([]byte, 37)
		if _, err := rand.Read(raw); err != nil {
			t.Fatalf("rand: %v", err)
		}
		enc := base58.Encode(raw)
		if len(enc) == keys.EncodedLength-len(keys.Prefix) {
			return keys.Prefix + enc
		}
	}
	t.Fatal("could not build a fixed-length key")
	return ""
}

func TestValidate(t *testing.T) {
	valid := makeKey(t)
	if !keys.Validate(valid) {
		t.Fatalf("well-formed key rejected: %s", valid)
	}

	cases := map[string]string{
		"empty":          "",
		"wrong prefix":   "TST" + valid[3:],
		"no prefix":      valid[3:],
		"too short":      valid[:keys.EncodedLength-1],
		"too long":       valid + "1",
		"bad base58":     valid[:3] + strings.Repeat("0", keys.EncodedLength-3), // '0' is not base58
		"prefix only":    keys.Prefix,
		"inner mutation": valid[:10] + "l" + valid[11:], // 'l' is not base58 either
	}
	for name, key := range cases {
		if keys.Validate(key) {
			t.Errorf("%s: malformed key accepted: %q", name, key)
		}
	}
}

func TestFingerprintIsShortAndStable(t *testing.T) {
	key := makeKey(t)
	fp := keys.Fingerprint(key)
	if len(fp) != 20 {
		t.Fatalf("want 20 hex chars, got %d", len(fp))
	}
	if fp != keys.Fingerprint(key) {
		t.Fatal("fingerprint is not stable")
	}
	if fp == keys.Fingerprint(makeKey(t)) {
		t.Fatal("distinct keys share a fingerprint")
	}
}
