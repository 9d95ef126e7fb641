// Package keys validates and fingerprints network-encoded public keys.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mr-tron/base58"
)

const (
	// Prefix is the fixed network prefix of an encoded public key.
	Prefix = "STM"
	// EncodedLength is the fixed total length of an encoded public key.
	EncodedLength = 53

	// payload is a 33-byte compressed key plus a 4-byte checksum.
	payloadLength = 37
)

// Validate reports whether pub matches the network public-key format:
// fixed prefix, fixed length, base58 payload of the expected size.
func Validate(pub string) bool {
	if len(pub) != EncodedLength || !strings.HasPrefix(pub, Prefix) {
		return false
	}
	raw, err := base58.Decode(pub[len(Prefix):])
	if err != nil {
		return false
	}
	return len(raw) == payloadLength
}

// Fingerprint returns a short hex fingerprint of an encoded key, safe for
// logs.
func Fingerprint(pub string) string {
	sum := sha256.Sum256([]byte(pub))
	return hex.EncodeToString(sum[:10])
}
