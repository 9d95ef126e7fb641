package domain

import "encoding/json"

// Envelope types on the page/extension channel.
const (
	EnvelopeRequest   = "keychain_request"
	EnvelopeResponse  = "keychain_response"
	EnvelopeHandshake = "keychain_handshake"
)

// Envelope is the single message shape carried by the transport in both
// directions. Requests carry Event and Data; responses carry Response;
// handshakes carry neither.
type Envelope struct {
	Type     string          `json:"type"`
	Event    string          `json:"event,omitempty"`
	Origin   string          `json:"origin,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
	Response *Response       `json:"response,omitempty"`
}
