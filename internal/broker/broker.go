package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"keyward/internal/bridge"
	"keyward/internal/domain"
)

// Handler executes one operation and returns its single result.
type Handler func(ctx context.Context, req domain.KeyAuthorityRequest) domain.Response

// Broker is the privileged-side dispatcher. It decodes inbound request
// envelopes, rate-limits them per origin, routes each to the handler
// registered for its event, and sends exactly one response envelope back.
// Handshake envelopes are echoed without touching the id table.
type Broker struct {
	handlers map[string]Handler
	limiter  *originLimiter
	log      *slog.Logger
}

// Options tunes broker behavior; the zero value disables rate limiting.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// New returns a broker with no handlers registered.
func New(opts Options, logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broker{
		handlers: make(map[string]Handler),
		limiter:  newOriginLimiter(opts.RateLimitRPS, opts.RateLimitBurst, 0),
		log:      logger,
	}
}

// Handle registers h for the given event name.
func (b *Broker) Handle(event string, h Handler) {
	b.handlers[event] = h
}

// Run serves the extension end of the bridge until ctx ends or the pipe
// closes. Requests are handled inline: execution is cooperative, and the
// channel's send order is the only ordering guarantee callers get.
func (b *Broker) Run(ctx context.Context, ep *bridge.Endpoint) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ep.Done():
			return
		case env := <-ep.Recv():
			b.dispatch(ctx, ep, env)
		}
	}
}

func (b *Broker) dispatch(ctx context.Context, ep *bridge.Endpoint, env domain.Envelope) {
	switch env.Type {
	case domain.EnvelopeHandshake:
		if err := ep.Send(domain.Envelope{Type: domain.EnvelopeHandshake}); err != nil {
			b.log.Warn("handshake reply failed", "err", err)
		}

	case domain.EnvelopeRequest:
		resp := b.serve(ctx, env)
		reply := domain.Envelope{Type: domain.EnvelopeResponse, Response: &resp}
		if err := ep.Send(reply); err != nil {
			b.log.Warn("response send failed", "event", env.Event, "err", err)
		}

	default:
		// Unknown envelope types are dropped; the channel is shared with
		// whatever else the page shouts into it.
		b.log.Debug("dropping envelope", "type", env.Type)
	}
}

// serve produces exactly one response for a request envelope.
func (b *Broker) serve(ctx context.Context, env domain.Envelope) domain.Response {
	var req domain.KeyAuthorityRequest
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return domain.Fail(0, "Malformed request payload")
		}
	}

	if !b.limiter.allow(env.Origin, time.Now()) {
		b.log.Warn("request rate limited", "origin", env.Origin, "event", env.Event)
		return domain.Fail(req.RequestID, "Too many requests")
	}

	h, ok := b.handlers[env.Event]
	if !ok {
		return domain.Fail(req.RequestID, "Unknown request type: "+env.Event)
	}
	return h(ctx, req)
}
