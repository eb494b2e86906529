// Package remote is the client for the catalog/license service. It
// authenticates, fetches the owned-titles catalog, and streams installer
// payloads. Session tokens live in memory only and are never persisted.
//
// Failures are typed: an expired or rejected token surfaces as
// ErrAuthExpired, transport-level failures as *NetworkError. Neither is
// retried here; retry policy belongs to the caller.
package remote
