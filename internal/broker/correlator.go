package broker

import (
	"fmt"
	"sync"
	"time"

	"keyward/internal/domain"
)

// DefaultTimeout bounds how long a request may stay pending.
const DefaultTimeout = 30 * time.Second

// Callback receives the single resolution of a request.
type Callback func(domain.Response)

// Correlator owns the pending-request table: it assigns correlation ids,
// arms per-request timers, and guarantees each id resolves exactly once,
// with whichever of response, timeout, or transport failure fires first.
type Correlator struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]*pendingRequest
	timeout time.Duration
}

type pendingRequest struct {
	cb    Callback
	timer *time.Timer
}

// NewCorrelator returns a correlator with the given timeout; zero or
// negative selects DefaultTimeout. Ids start at 1 and increase for the
// lifetime of the instance.
func NewCorrelator(timeout time.Duration) *Correlator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Correlator{
		nextID:  1,
		pending: make(map[uint64]*pendingRequest),
		timeout: timeout,
	}
}

// Register assigns the next id to cb and arms its timeout.
func (c *Correlator) Register(cb Callback) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.pending[id] = &pendingRequest{
		cb:    cb,
		timer: time.AfterFunc(c.timeout, func() { c.expire(id) }),
	}
	return id
}

// Resolve delivers an inbound response to its pending callback and cancels
// the timer. A response for an unknown or already-resolved id is a no-op.
func (c *Correlator) Resolve(resp domain.Response) bool {
	p := c.take(resp.RequestID)
	if p == nil {
		return false
	}
	p.cb(resp)
	return true
}

// Fail resolves a pending request immediately with a failure, used when the
// transport breaks before any response can arrive.
func (c *Correlator) Fail(id uint64, errMsg, message string) bool {
	p := c.take(id)
	if p == nil {
		return false
	}
	p.cb(domain.Response{
		Success:   false,
		RequestID: id,
		Error:     errMsg,
		Message:   message,
	})
	return true
}

// expire fires when a request's timer lapses with the entry still pending.
func (c *Correlator) expire(id uint64) {
	p := c.take(id)
	if p == nil {
		return
	}
	p.cb(domain.Response{
		Success:   false,
		RequestID: id,
		Error:     "Request timeout",
		Message:   fmt.Sprintf("The request timed out after %d seconds", int(c.timeout/time.Second)),
	})
}

// take removes and returns the pending entry for id, stopping its timer.
// Removal happens under the lock before any callback runs, which is what
// makes resolution exactly-once across response, timeout, and failure.
func (c *Correlator) take(id uint64) *pendingRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pending[id]
	if !ok {
		return nil
	}
	delete(c.pending, id)
	p.timer.Stop()
	return p
}

// PendingCount reports how many requests are awaiting resolution.
func (c *Correlator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
