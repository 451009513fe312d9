// Package api contains the transport layer of the Nexus client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the Nexus
//     backend: login, user directory reads/search, profile updates, the
//     connection list, recent tags, and connection/contact mutations.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that issues
//     context-aware requests against a base URL, logs each call with a
//     correlation id, and maps failures to the internal/common taxonomy.
//
// # Error Handling
//
// Errors can be matched with errors.Is: common.ErrNetwork (transport failure),
// common.ErrDecode (unexpected body), common.ErrInvalidCredentials (401 on
// login), common.ErrNotFound (404 on user-scoped reads), and common.ErrServer
// via *common.ServerError for any other non-2xx status.
//
// Wire bodies are snake_case JSON; see the request types in this package and
// the structs in internal/client/models.
package api
