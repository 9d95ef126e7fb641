package page

import (
	"encoding/json"
	"sync"
	"time"

	"keyward/internal/bridge"
	"keyward/internal/broker"
	"keyward/internal/domain"
)

// Stub is the handle page code uses to talk to the keychain. It forwards
// operations through the bridge with a per-call callback contract: every
// call resolves exactly once, bounded by the correlator's timeout.
type Stub struct {
	c      *broker.Correlator
	ep     *bridge.Endpoint
	origin string

	mu        sync.Mutex
	handshake func()
}

// NewStub attaches a stub to the page end of the bridge. origin identifies
// the caller for the broker's rate limiting; timeout <= 0 selects the
// default 30 seconds.
func NewStub(ep *bridge.Endpoint, origin string, timeout time.Duration) *Stub {
	return &Stub{
		c:      broker.NewCorrelator(timeout),
		ep:     ep,
		origin: origin,
	}
}

// Run consumes inbound envelopes until the pipe closes, routing responses
// to their pending callbacks and handshake echoes to the one-shot
// handshake callback.
func (s *Stub) Run() {
	for {
		select {
		case <-s.ep.Done():
			return
		case env := <-s.ep.Recv():
			switch env.Type {
			case domain.EnvelopeResponse:
				if env.Response != nil {
					// Unmatched responses are dropped inside Resolve.
					s.c.Resolve(*env.Response)
				}
			case domain.EnvelopeHandshake:
				s.fireHandshake()
			}
		}
	}
}

// Handshake sends a presence probe; cb fires once when the keychain echoes
// it back. It lives outside the correlation table.
func (s *Stub) Handshake(cb func()) error {
	s.mu.Lock()
	s.handshake = cb
	s.mu.Unlock()
	return s.ep.Send(domain.Envelope{Type: domain.EnvelopeHandshake})
}

func (s *Stub) fireHandshake() {
	s.mu.Lock()
	cb := s.handshake
	s.handshake = nil
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// RequestAddKeyAuthority asks the keychain to grant authorizedKey the given
// weight on role for username. cb receives the single outcome.
func (s *Stub) RequestAddKeyAuthority(username, authorizedKey, role string, weight uint32, cb broker.Callback) {
	s.request(domain.EventAddKeyAuthority, domain.KeyAuthorityRequest{
		Type:          domain.EventAddKeyAuthority,
		Username:      username,
		AuthorizedKey: authorizedKey,
		Role:          role,
		Weight:        &weight,
	}, cb)
}

// RequestRemoveKeyAuthority asks the keychain to revoke authorizedKey from
// role for username. cb receives the single outcome.
func (s *Stub) RequestRemoveKeyAuthority(username, authorizedKey, role string, cb broker.Callback) {
	s.request(domain.EventRemoveKeyAuthority, domain.KeyAuthorityRequest{
		Type:          domain.EventRemoveKeyAuthority,
		Username:      username,
		AuthorizedKey: authorizedKey,
		Role:          role,
	}, cb)
}

// request registers the callback, attaches the assigned correlation id as
// the outbound request_id, and forwards the envelope. A transport failure
// resolves the call immediately instead of waiting out the timeout.
func (s *Stub) request(event string, req domain.KeyAuthorityRequest, cb broker.Callback) {
	id := s.c.Register(cb)
	req.RequestID = id

	data, err := json.Marshal(req)
	if err != nil {
		s.c.Fail(id, "Communication error", err.Error())
		return
	}
	env := domain.Envelope{
		Type:   domain.EnvelopeRequest,
		Event:  event,
		Origin: s.origin,
		Data:   data,
	}
	if err := s.ep.Send(env); err != nil {
		s.c.Fail(id, "Communication error", err.Error())
	}
}

// Pending reports how many calls are awaiting resolution.
func (s *Stub) Pending() int { return s.c.PendingCount() }
