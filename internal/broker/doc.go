// Package broker correlates asynchronous requests with their single
// eventual responses.
//
// The Correlator owns the pending table: correlation ids count up from 1
// for the lifetime of the process, each callback-bearing request gets a
// timer, and the entry is atomically removed by whichever of response,
// timeout, or transport failure arrives first. No callback ever fires
// twice, no call hangs past the timeout, and a late or unknown response is
// a silent no-op.
//
// The Broker is the privileged dispatcher on the extension side of the
// bridge: it decodes request envelopes into typed operations, applies
// per-origin rate limiting, and replies with exactly one response per
// request. Correlation is strictly by id, never by arrival order.
package broker
