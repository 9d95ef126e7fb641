package domain

import "context"

// AccountStore resolves an account by name. A missing account is reported
// as (nil, nil), not as an error.
type AccountStore interface {
	GetAccount(name string) (*Account, error)
}

// TransactionSubmitter signs and sends a constructed operation to the
// network with the given authorizing key, returning a receipt or a
// submission failure.
type TransactionSubmitter interface {
	SendOperation(ctx context.Context, op Operation, authorizingKey string) (Receipt, error)
}

// SecretProvider exposes the unlocked session secret, if any.
type SecretProvider interface {
	Secret() (string, bool)
}
