package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// SaltSize is the salt length for both key derivation and password hashing.
	SaltSize = 16
	// NonceSize is the AEAD nonce length.
	NonceSize = chacha20poly1305.NonceSize

	keySize = chacha20poly1305.KeySize

	// argon2id parameters for the encryption key derivation.
	kdfTime     = 2
	kdfMemoryKB = 64 * 1024
	kdfThreads  = 1
)

// ErrDecryptionFailed is returned whenever a record cannot be decrypted:
// unparseable record, malformed field, or failed authentication. The caller
// never sees partial or unauthenticated plaintext.
var ErrDecryptionFailed = errors.New("vault: decryption failed")

// record is the persisted text form of an encrypted secret. All fields are
// lowercase hex; anything else is rejected at load time.
type record struct {
	Data  string `json:"data"`
	Salt  string `json:"salt"`
	Nonce string `json:"nonce"`
}

// GenerateSalt returns a fresh random salt.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// HashPassword returns a deterministic hex digest of (salt, password) for
// password verification only. It is deliberately fast: it gates the UI
// unlock, while offline brute-force cost is carried by the encryption KDF.
func HashPassword(password string, salt []byte) string {
	h := sha256.New()
	h.Write(salt)
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// ValidatePassword recomputes the digest and compares in constant time.
func ValidatePassword(password, hash string, salt []byte) bool {
	computed := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// EncryptData seals plaintext under a key derived from (password, fresh
// salt) and returns the serialized record. Salt and nonce are fresh on
// every call, so identical inputs never produce identical records.
func EncryptData(plaintext []byte, password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	key := deriveKey(password, salt)
	defer wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	raw, err := json.Marshal(record{
		Data:  hex.EncodeToString(ciphertext),
		Salt:  hex.EncodeToString(salt),
		Nonce: hex.EncodeToString(nonce),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecryptData opens a serialized record with password. Any parse failure,
// malformed field, or authentication failure yields ErrDecryptionFailed.
func DecryptData(serialized, password string) ([]byte, error) {
	var rec record
	if err := json.Unmarshal([]byte(serialized), &rec); err != nil {
		return nil, fmt.Errorf("%w: malformed record", ErrDecryptionFailed)
	}
	ciphertext, err := hex.DecodeString(rec.Data)
	if err != nil || len(ciphertext) == 0 {
		return nil, fmt.Errorf("%w: malformed data field", ErrDecryptionFailed)
	}
	salt, err := hex.DecodeString(rec.Salt)
	if err != nil || len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: malformed salt field", ErrDecryptionFailed)
	}
	nonce, err := hex.DecodeString(rec.Nonce)
	if err != nil || len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: malformed nonce field", ErrDecryptionFailed)
	}

	key := deriveKey(password, salt)
	defer wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
	}
	return plaintext, nil
}

// deriveKey stretches password with argon2id. Memory-hard by intent:
// offline guessing pays the full derivation per attempt.
func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, kdfTime, kdfMemoryKB, kdfThreads, keySize)
}
