// Package commands defines the keyward CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init       Create the keychain and set its master password
//   - import     Store an account role key, encrypted at rest
//   - accounts   List stored accounts
//   - grant      Grant a key signing authority on a role
//   - revoke     Revoke a key's signing authority on a role
//   - handshake  Check keychain presence over the bridge
//
// # Implementation
//
// The root command loads the config and builds the dependency graph
// (keychain store, vault session, authority service, broker, page stub)
// before any subcommand runs. grant and revoke drive the full request
// path: page stub, bridge, broker, authority service, gateway.
package commands
