package vault

import (
	"sync"

	"keyward/internal/domain"
)

// Session holds the master password between operations once the user has
// unlocked the keychain. Locking wipes the secret; privileged operations
// fail their authentication check while no session is unlocked.
type Session struct {
	mu     sync.Mutex
	secret []byte
}

// NewSession returns a locked session.
func NewSession() *Session { return &Session{} }

// Unlock validates password against the stored hash and keeps it as the
// session secret. The error is authentication-kind so callers can flatten
// it into a failure response.
func (s *Session) Unlock(password, storedHash string, salt []byte) error {
	if !ValidatePassword(password, storedHash, salt) {
		return domain.E(domain.KindAuthentication, "Invalid password")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wipe(s.secret)
	s.secret = []byte(password)
	return nil
}

// Lock wipes and drops the session secret.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	wipe(s.secret)
	s.secret = nil
}

// Secret returns the unlocked session secret, or ok=false when locked.
func (s *Session) Secret() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.secret == nil {
		return "", false
	}
	return string(s.secret), true
}

var _ domain.SecretProvider = (*Session)(nil)
