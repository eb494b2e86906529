// Package lifecycle drives per-title transitions: download, install,
// uninstall. Side effects (network fetch, backend execution, filesystem
// writes) all happen before a single late commit to the record store, so a
// failed or interrupted operation leaves the last committed state intact
// and every operation is safe to retry.
package lifecycle
