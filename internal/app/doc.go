// Package app wires application dependencies for the CLI.
//
// It builds the concrete store, vault session, authority service, broker
// and page stub from Config, exposing them via the Wire struct for
// commands to use.
package app
