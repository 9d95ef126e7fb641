// Package authority validates and executes grant/revoke signing-authority
// operations.
//
// Each operation runs a fixed early-exit validation pipeline (session,
// required fields, role, key format, account, Active key) before the
// account update is constructed and submitted. The authorizing key is
// always the account's Active key, regardless of which role is modified.
// Failures never escape as errors; every call returns exactly one
// structured result echoing the request id.
package authority
