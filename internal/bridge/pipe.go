// Package bridge carries envelopes between the page side and the extension
// side of the keychain. It is the in-process stand-in for the extension
// message channel: delivery preserves send order on each direction, sends
// fail once the pipe is closed, and nothing else is guaranteed.
package bridge

import (
	"errors"
	"sync"

	"keyward/internal/domain"
)

// ErrClosed is returned by Send after the pipe has been closed.
var ErrClosed = errors.New("bridge: pipe is closed")

const defaultBuffer = 16

// Endpoint is one side of a duplex envelope pipe.
type Endpoint struct {
	send chan<- domain.Envelope
	recv <-chan domain.Envelope
	done chan struct{}
	once *sync.Once
}

// NewPipe returns the two connected endpoints of a fresh pipe.
func NewPipe() (page, extension *Endpoint) {
	toExt := make(chan domain.Envelope, defaultBuffer)
	toPage := make(chan domain.Envelope, defaultBuffer)
	done := make(chan struct{})
	once := &sync.Once{}

	page = &Endpoint{send: toExt, recv: toPage, done: done, once: once}
	extension = &Endpoint{send: toPage, recv: toExt, done: done, once: once}
	return page, extension
}

// Send queues env for the other side; it fails with ErrClosed once either
// side has closed the pipe.
func (e *Endpoint) Send(env domain.Envelope) error {
	select {
	case <-e.done:
		return ErrClosed
	default:
	}
	select {
	case e.send <- env:
		return nil
	case <-e.done:
		return ErrClosed
	}
}

// Recv exposes the inbound envelope stream.
func (e *Endpoint) Recv() <-chan domain.Envelope { return e.recv }

// Done is closed when the pipe shuts down.
func (e *Endpoint) Done() <-chan struct{} { return e.done }

// Close shuts the pipe down for both sides. Safe to call more than once.
func (e *Endpoint) Close() {
	e.once.Do(func() { close(e.done) })
}
