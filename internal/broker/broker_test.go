package broker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"keyward/internal/bridge"
	"keyward/internal/broker"
	"keyward/internal/domain"
)

func startBroker(t *testing.T, opts broker.Options, handlers map[string]broker.Handler) *bridge.Endpoint {
	t.Helper()
	b := broker.New(opts, nil)
	for event, h := range handlers {
		b.Handle(event, h)
	}
	pageEnd, extEnd := bridge.NewPipe()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(pageEnd.Close)
	go b.Run(ctx, extEnd)
	return pageEnd
}

func request(t *testing.T, req domain.KeyAuthorityRequest, event, origin string) domain.Envelope {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return domain.Envelope{Type: domain.EnvelopeRequest, Event: event, Origin: origin, Data: data}
}

func awaitResponse(t *testing.T, ep *bridge.Endpoint) domain.Response {
	t.Helper()
	select {
	case env := <-ep.Recv():
		if env.Type != domain.EnvelopeResponse || env.Response == nil {
			t.Fatalf("want response envelope, got %+v", env)
		}
		return *env.Response
	case <-time.After(time.Second):
		t.Fatal("no response envelope")
		return domain.Response{}
	}
}

func TestBrokerRoutesToHandler(t *testing.T) {
	handled := map[string]broker.Handler{
		domain.EventAddKeyAuthority: func(_ context.Context, req domain.KeyAuthorityRequest) domain.Response {
			return domain.Ok(req.RequestID, domain.Receipt{ID: "routed"})
		},
	}
	ep := startBroker(t, broker.Options{}, handled)

	env := request(t, domain.KeyAuthorityRequest{RequestID: 5, Username: "alice"},
		domain.EventAddKeyAuthority, "page")
	if err := ep.Send(env); err != nil {
		t.Fatalf("send: %v", err)
	}

	resp := awaitResponse(t, ep)
	if !resp.Success || resp.RequestID != 5 || resp.Result.ID != "routed" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBrokerRejectsUnknownEvent(t *testing.T) {
	ep := startBroker(t, broker.Options{}, nil)

	env := request(t, domain.KeyAuthorityRequest{RequestID: 2}, "transferEverything", "page")
	if err := ep.Send(env); err != nil {
		t.Fatalf("send: %v", err)
	}

	resp := awaitResponse(t, ep)
	if resp.Success || resp.RequestID != 2 || resp.Error != "Unknown request type: transferEverything" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBrokerRejectsMalformedPayload(t *testing.T) {
	ep := startBroker(t, broker.Options{}, nil)

	env := domain.Envelope{
		Type:  domain.EnvelopeRequest,
		Event: domain.EventAddKeyAuthority,
		Data:  json.RawMessage(`{"request_id": "not a number"`),
	}
	if err := ep.Send(env); err != nil {
		t.Fatalf("send: %v", err)
	}

	resp := awaitResponse(t, ep)
	if resp.Success || resp.Error != "Malformed request payload" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestBrokerEchoesHandshake(t *testing.T) {
	ep := startBroker(t, broker.Options{}, nil)

	if err := ep.Send(domain.Envelope{Type: domain.EnvelopeHandshake}); err != nil {
		t.Fatalf("send: %v", err)
	}
	select {
	case env := <-ep.Recv():
		if env.Type != domain.EnvelopeHandshake {
			t.Fatalf("want handshake echo, got %+v", env)
		}
	case <-time.After(time.Second):
		t.Fatal("no handshake echo")
	}
}

func TestBrokerRateLimitsPerOrigin(t *testing.T) {
	handled := map[string]broker.Handler{
		domain.EventAddKeyAuthority: func(_ context.Context, req domain.KeyAuthorityRequest) domain.Response {
			return domain.Ok(req.RequestID, domain.Receipt{})
		},
	}
	ep := startBroker(t, broker.Options{RateLimitRPS: 0.001, RateLimitBurst: 1}, handled)

	// First request from the origin consumes the burst.
	if err := ep.Send(request(t, domain.KeyAuthorityRequest{RequestID: 1},
		domain.EventAddKeyAuthority, "greedy.example")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp := awaitResponse(t, ep); !resp.Success {
		t.Fatalf("first request rejected: %+v", resp)
	}

	// Second is throttled.
	if err := ep.Send(request(t, domain.KeyAuthorityRequest{RequestID: 2},
		domain.EventAddKeyAuthority, "greedy.example")); err != nil {
		t.Fatalf("send: %v", err)
	}
	resp := awaitResponse(t, ep)
	if resp.Success || resp.Error != "Too many requests" {
		t.Fatalf("want throttle failure, got %+v", resp)
	}
	if resp.RequestID != 2 {
		t.Fatalf("request id not echoed: %d", resp.RequestID)
	}

	// A different origin is unaffected.
	if err := ep.Send(request(t, domain.KeyAuthorityRequest{RequestID: 3},
		domain.EventAddKeyAuthority, "polite.example")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if resp := awaitResponse(t, ep); !resp.Success {
		t.Fatalf("other origin throttled: %+v", resp)
	}
}
