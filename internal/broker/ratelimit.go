package broker

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// originLimiter applies a token bucket per caller origin and periodically
// evicts idle entries.
type originLimiter struct {
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
	byKey   map[string]*originEntry
	hits    uint64
	idleTTL time.Duration
}

type originEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newOriginLimiter creates an origin-keyed limiter; returns nil (unlimited)
// if args are invalid.
func newOriginLimiter(rps float64, burst int, idleTTL time.Duration) *originLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &originLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		byKey:   make(map[string]*originEntry),
		idleTTL: idleTTL,
	}
}

// allow reports whether one token can be consumed for the origin at now.
// An empty origin is never limited.
func (l *originLimiter) allow(origin string, now time.Time) bool {
	if l == nil {
		return true
	}
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[origin]
	if !ok {
		e = &originEntry{
			limiter:  rate.NewLimiter(l.limit, l.burst),
			lastSeen: now,
		}
		l.byKey[origin] = e
	}
	e.lastSeen = now

	l.hits++
	if l.hits%1024 == 0 {
		l.evictIdle(now)
	}
	return e.limiter.AllowN(now, 1)
}

// evictIdle drops entries not seen within idleTTL. Caller holds the lock.
func (l *originLimiter) evictIdle(now time.Time) {
	for k, e := range l.byKey {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.byKey, k)
		}
	}
}
