// Package cli provides the interactive Nexus command-line client.
//
// It wires configuration, the session database, the HTTP API client, and the
// connection store into an interactive REPL. Typical flow: restore a saved
// session (or prompt for credentials), then execute user commands against the
// locally synchronized connection list.
//
// Key features:
//   - Login / Logout with session persistence across restarts
//   - List / search / tag-filter the connection list
//   - Add, edit, tag, and remove connections; create brand-new contacts
//   - Browse the user directory and edit the own profile
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
