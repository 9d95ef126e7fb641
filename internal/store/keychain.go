package store

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"keyward/internal/domain"
	"keyward/internal/keys"
	"keyward/internal/vault"
)

const keychainFile = "keychain.json"

var (
	// ErrNotInitialized is returned before a master password has been set.
	ErrNotInitialized = errors.New("keychain is not initialized")
	// ErrAlreadyInitialized is returned when init would clobber a keychain.
	ErrAlreadyInitialized = errors.New("keychain is already initialized")
	// ErrCorrupted is returned when the persisted keychain fails validation.
	ErrCorrupted = errors.New("keychain file is corrupted")
)

// keychainRecord is the on-disk shape. Salt is hex; role-key privates are
// vault records, never clear key material.
type keychainRecord struct {
	PasswordHash string                   `json:"password_hash"`
	Salt         string                   `json:"salt"`
	Accounts     map[string]accountRecord `json:"accounts"`
}

type accountRecord struct {
	Keys        map[string]domain.RoleKey   `json:"keys"`
	Authorities map[string]domain.Authority `json:"authorities,omitempty"`
}

// FileStore persists the keychain under a single JSON file in dir.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

func (s *FileStore) path() string { return filepath.Join(s.dir, keychainFile) }

// load reads and validates the keychain file.
func (s *FileStore) load() (*keychainRecord, error) {
	var rec keychainRecord
	if err := readJSON(s.path(), &rec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	salt, err := hex.DecodeString(rec.Salt)
	if err != nil || len(salt) != vault.SaltSize || rec.PasswordHash == "" {
		return nil, ErrCorrupted
	}
	if rec.Accounts == nil {
		rec.Accounts = map[string]accountRecord{}
	}
	return &rec, nil
}

// Initialize sets the master password for a fresh keychain.
func (s *FileStore) Initialize(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path()); err == nil {
		return ErrAlreadyInitialized
	}
	salt, err := vault.GenerateSalt()
	if err != nil {
		return err
	}
	rec := keychainRecord{
		PasswordHash: vault.HashPassword(password, salt),
		Salt:         hex.EncodeToString(salt),
		Accounts:     map[string]accountRecord{},
	}
	return writeJSON(s.path(), rec, 0o600)
}

// Credentials returns the stored password hash and salt for unlocking.
func (s *FileStore) Credentials() (hash string, salt []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return "", nil, err
	}
	salt, _ = hex.DecodeString(rec.Salt) // validated in load
	return rec.PasswordHash, salt, nil
}

// ImportAccount stores an account after validating the master password and
// every supplied key. Clear private keys in acct are encrypted before they
// touch disk and are never persisted as given.
func (s *FileStore) ImportAccount(password string, acct domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	salt, _ := hex.DecodeString(rec.Salt)
	if !vault.ValidatePassword(password, rec.PasswordHash, salt) {
		return domain.E(domain.KindAuthentication, "Invalid password")
	}
	if acct.Name == "" {
		return domain.E(domain.KindValidation, "Account name is required")
	}

	stored := accountRecord{Keys: map[string]domain.RoleKey{}}
	for role, key := range acct.Keys {
		if _, ok := domain.ParseRole(string(role)); !ok {
			return domain.E(domain.KindValidation, "Invalid role: "+string(role))
		}
		if !keys.Validate(key.Public) {
			return domain.E(domain.KindValidation, "Invalid public key format")
		}
		if key.Private != "" {
			sealed, err := vault.EncryptData([]byte(key.Private), password)
			if err != nil {
				return err
			}
			key.Private = sealed
		}
		stored.Keys[string(role)] = key
	}
	if len(acct.Authorities) > 0 {
		stored.Authorities = map[string]domain.Authority{}
		for role, auth := range acct.Authorities {
			stored.Authorities[string(role)] = auth.Clone()
		}
	}

	rec.Accounts[acct.Name] = stored
	return writeJSON(s.path(), rec, 0o600)
}

// ImportKey merges one role key into an account, creating the account on
// first import. The clear private key is encrypted before it touches disk.
func (s *FileStore) ImportKey(password, username string, role domain.Role, key domain.RoleKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	salt, _ := hex.DecodeString(rec.Salt)
	if !vault.ValidatePassword(password, rec.PasswordHash, salt) {
		return domain.E(domain.KindAuthentication, "Invalid password")
	}
	if username == "" {
		return domain.E(domain.KindValidation, "Account name is required")
	}
	if _, ok := domain.ParseRole(string(role)); !ok {
		return domain.E(domain.KindValidation, "Invalid role: "+string(role))
	}
	if !keys.Validate(key.Public) {
		return domain.E(domain.KindValidation, "Invalid public key format")
	}
	if key.Private != "" {
		sealed, err := vault.EncryptData([]byte(key.Private), password)
		if err != nil {
			return err
		}
		key.Private = sealed
	}

	stored, ok := rec.Accounts[username]
	if !ok {
		stored = accountRecord{Keys: map[string]domain.RoleKey{}}
	}
	stored.Keys[string(role)] = key
	rec.Accounts[username] = stored
	return writeJSON(s.path(), rec, 0o600)
}

// RemoveAccount deletes an account and its key material.
func (s *FileStore) RemoveAccount(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := rec.Accounts[name]; !ok {
		return domain.E(domain.KindNotFound, "Account not found in keychain")
	}
	delete(rec.Accounts, name)
	return writeJSON(s.path(), rec, 0o600)
}

// GetAccount resolves an account; private keys stay encrypted in the
// returned copy. A missing account is (nil, nil).
func (s *FileStore) GetAccount(name string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	stored, ok := rec.Accounts[name]
	if !ok {
		return nil, nil
	}

	acct := &domain.Account{Name: name, Keys: map[domain.Role]domain.RoleKey{}}
	for role, key := range stored.Keys {
		r, ok := domain.ParseRole(role)
		if !ok {
			return nil, ErrCorrupted
		}
		acct.Keys[r] = key
	}
	if len(stored.Authorities) > 0 {
		acct.Authorities = map[domain.Role]domain.Authority{}
		for role, auth := range stored.Authorities {
			r, ok := domain.ParseRole(role)
			if !ok {
				return nil, ErrCorrupted
			}
			acct.Authorities[r] = auth.Clone()
		}
	}
	return acct, nil
}

// ListAccounts returns stored account names, sorted.
func (s *FileStore) ListAccounts() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rec.Accounts))
	for name := range rec.Accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

var _ domain.AccountStore = (*FileStore)(nil)
