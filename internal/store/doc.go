// Package store provides file-based persistence for the keychain.
//
// It holds the master password digest and the imported accounts in a single
// JSON file under the configured home directory. Private keys are stored
// only as vault records, encrypted under the master password. All methods
// are concurrency-safe via internal locking; writes go through a temp file
// and atomic rename.
package store
