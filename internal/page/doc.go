// Package page implements the untrusted-side handle exposed to page code.
//
// The stub never touches key material: it forwards typed operation
// requests through the bridge and surfaces each result through the
// caller's callback, exactly once. Extension presence is detected with a
// handshake round-trip that lives outside the correlation table.
package page
