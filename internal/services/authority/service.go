package authority

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"keyward/internal/domain"
	"keyward/internal/keys"
	"keyward/internal/vault"
)

const accountCacheSize = 256

// Service validates and executes key-authority operations. Every call is a
// linear validate-then-execute pipeline; the check order is part of the
// contract, and a validation failure produces zero submitter calls.
type Service struct {
	secrets   domain.SecretProvider
	accounts  domain.AccountStore
	submitter domain.TransactionSubmitter
	cache     *lru.Cache[string, *domain.Account]
	log       *slog.Logger
}

// New returns a key-authority service over the given collaborators.
func New(
	secrets domain.SecretProvider,
	accounts domain.AccountStore,
	submitter domain.TransactionSubmitter,
	logger *slog.Logger,
) (*Service, error) {
	cache, err := lru.New[string, *domain.Account](accountCacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		secrets:   secrets,
		accounts:  accounts,
		submitter: submitter,
		cache:     cache,
		log:       logger,
	}, nil
}

// HandleAddKeyAuthority grants req.AuthorizedKey the requested weight on
// the target role. Failures are returned values, never panics, and always
// echo the original request id.
func (s *Service) HandleAddKeyAuthority(ctx context.Context, req domain.KeyAuthorityRequest) domain.Response {
	return s.handle(ctx, req, true)
}

// HandleRemoveKeyAuthority revokes req.AuthorizedKey from the target role.
func (s *Service) HandleRemoveKeyAuthority(ctx context.Context, req domain.KeyAuthorityRequest) domain.Response {
	return s.handle(ctx, req, false)
}

func (s *Service) handle(ctx context.Context, req domain.KeyAuthorityRequest, add bool) domain.Response {
	// 1. Authenticated session.
	secret, ok := s.secrets.Secret()
	if !ok {
		return domain.Fail(req.RequestID, "User not authenticated")
	}

	// 2. Required fields, reported in declared order.
	if msg := missingParams(req, add); msg != "" {
		return domain.Fail(req.RequestID, msg)
	}

	// 3. Role.
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return domain.Fail(req.RequestID, fmt.Sprintf(
			"Invalid role: %s. Must be one of: Active, Posting, Owner, Memo", req.Role))
	}

	// 4. Key format.
	if !keys.Validate(req.AuthorizedKey) {
		return domain.Fail(req.RequestID, "Invalid public key format")
	}

	// 5. Account.
	account, err := s.getAccount(req.Username)
	if err != nil {
		return domain.Fail(req.RequestID, err.Error())
	}
	if account == nil {
		return domain.Fail(req.RequestID, "Account not found in keychain")
	}

	// 6. Authority changes are always signed with the Active key.
	activeKey, ok := account.Key(domain.RoleActive)
	if !ok || activeKey.Private == "" {
		return domain.Fail(req.RequestID, "Active key not available for this account")
	}
	signingKey, err := vault.DecryptData(activeKey.Private, secret)
	if err != nil {
		s.log.Warn("active key decryption failed", "account", account.Name)
		return domain.Fail(req.RequestID, err.Error())
	}
	defer clear(signingKey)

	// 7. Construct and submit the account update.
	auth := account.Authority(role)
	if add {
		auth.KeyAuths[req.AuthorizedKey] = *req.Weight
	} else {
		delete(auth.KeyAuths, req.AuthorizedKey)
	}
	op := domain.Operation{
		Type:      "account_update",
		Account:   account.Name,
		Role:      role,
		Authority: auth,
	}
	receipt, err := s.submitter.SendOperation(ctx, op, string(signingKey))
	if err != nil {
		s.log.Info("authority update rejected",
			"account", account.Name, "role", role, "key", keys.Fingerprint(req.AuthorizedKey))
		return domain.Fail(req.RequestID, err.Error())
	}

	s.log.Info("authority updated",
		"account", account.Name, "role", role,
		"key", keys.Fingerprint(req.AuthorizedKey), "add", add, "trx", receipt.ID)
	return domain.Ok(req.RequestID, receipt)
}

// missingParams reports absent required fields in declared order, or "".
func missingParams(req domain.KeyAuthorityRequest, add bool) string {
	var missing []string
	if req.RequestID == 0 {
		missing = append(missing, "request_id")
	}
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.AuthorizedKey == "" {
		missing = append(missing, "authorizedKey")
	}
	if req.Role == "" {
		missing = append(missing, "role")
	}
	if add && req.Weight == nil {
		missing = append(missing, "weight")
	}
	if len(missing) == 0 {
		return ""
	}
	return "Missing required parameters: " + strings.Join(missing, ", ")
}

// getAccount resolves via the LRU cache before hitting the store.
func (s *Service) getAccount(name string) (*domain.Account, error) {
	if account, ok := s.cache.Get(name); ok {
		return account, nil
	}
	account, err := s.accounts.GetAccount(name)
	if err != nil {
		return nil, err
	}
	if account != nil {
		s.cache.Add(name, account)
	}
	return account, nil
}
