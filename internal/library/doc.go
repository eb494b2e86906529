// Package library holds the session-scoped view of the user's titles: the
// catalog mirror (the last successful fetch from the remote service) and
// the status reconciler, which merges mirror entries with stored install
// records and live disk probes into an authoritative per-title status.
package library
