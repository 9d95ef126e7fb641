package app

import (
	"context"
	"log/slog"
	"net/http"

	"keyward/internal/bridge"
	"keyward/internal/broker"
	"keyward/internal/chain"
	"keyward/internal/domain"
	"keyward/internal/page"
	"keyward/internal/services/authority"
	"keyward/internal/store"
	"keyward/internal/vault"
)

// Wire bundles the stores, services, broker and page stub for the CLI.
type Wire struct {
	Keychain  *store.FileStore
	Session   *vault.Session
	Authority *authority.Service
	Broker    *broker.Broker
	Stub      *page.Stub
	Submitter domain.TransactionSubmitter

	cancel context.CancelFunc
	pipe   *bridge.Endpoint
}

// NewWire constructs the dependency graph from cfg and starts the broker
// and stub loops. Close must be called when done.
func NewWire(cfg Config, logger *slog.Logger) (*Wire, error) {
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	keychain := store.NewFileStore(cfg.Home)
	session := vault.NewSession()
	submitter := chain.NewClient(cfg.GatewayURL, httpClient)

	authsvc, err := authority.New(session, keychain, submitter, logger)
	if err != nil {
		return nil, err
	}

	b := broker.New(broker.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, logger)
	b.Handle(domain.EventAddKeyAuthority, authsvc.HandleAddKeyAuthority)
	b.Handle(domain.EventRemoveKeyAuthority, authsvc.HandleRemoveKeyAuthority)

	pageEnd, extEnd := bridge.NewPipe()
	stub := page.NewStub(pageEnd, cfg.Origin, cfg.RequestTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx, extEnd)
	go stub.Run()

	return &Wire{
		Keychain:  keychain,
		Session:   session,
		Authority: authsvc,
		Broker:    b,
		Stub:      stub,
		Submitter: submitter,
		cancel:    cancel,
		pipe:      pageEnd,
	}, nil
}

// Close tears down the broker loop and the bridge.
func (w *Wire) Close() {
	w.cancel()
	w.pipe.Close()
	w.Session.Lock()
}

// Unlock validates the master password against the stored credentials and
// opens the session.
func (w *Wire) Unlock(password string) error {
	hash, salt, err := w.Keychain.Credentials()
	if err != nil {
		return err
	}
	return w.Session.Unlock(password, hash, salt)
}
