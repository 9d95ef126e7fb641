// Package vault encrypts and decrypts secret payloads at rest under a user
// password.
//
// Contents
//
//   - Password-based authenticated encryption of arbitrary secrets
//     (EncryptData, DecryptData) as hex-field text records
//   - Fast password verification digests (HashPassword, ValidatePassword)
//   - Salt generation (GenerateSalt)
//   - The unlocked-session secret holder (Session)
//
// # Notes
//
// Encryption derives its key with argon2id from the password and a fresh
// per-record salt, then seals with ChaCha20-Poly1305. Two encryptions of
// the same input therefore never serialize identically. Decryption fails
// closed with ErrDecryptionFailed; it never returns unauthenticated or
// partial plaintext. The verification digest is independent of the
// encryption KDF: neither is relied on to secure the other.
package vault
