package vault_test

import (
	"testing"

	"keyward/internal/vault"
)

func TestSessionUnlockLock(t *testing.T) {
	salt, err := vault.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	hash := vault.HashPassword("master", salt)

	s := vault.NewSession()
	if _, ok := s.Secret(); ok {
		t.Fatal("fresh session is unlocked")
	}

	if err := s.Unlock("not the password", hash, salt); err == nil {
		t.Fatal("wrong password unlocked the session")
	}
	if _, ok := s.Secret(); ok {
		t.Fatal("failed unlock left a secret behind")
	}

	if err := s.Unlock("master", hash, salt); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	secret, ok := s.Secret()
	if !ok || secret != "master" {
		t.Fatalf("want session secret %q, got %q (ok=%v)", "master", secret, ok)
	}

	s.Lock()
	if _, ok := s.Secret(); ok {
		t.Fatal("locked session still exposes a secret")
	}
}
