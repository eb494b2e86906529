// Package updater checks GitHub releases for a newer attic build and
// prints a non-blocking startup banner. The check result is cached for a
// day; a stale cache is refreshed in the background for the next
// invocation. This is informational only — nothing is downloaded.
package updater
