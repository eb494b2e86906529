// Package store persists per-title install records in a local SQLite table.
//
// The database is the single durable source of truth for what is installed
// where. Every mutating call commits before returning, and SQLite's file
// locking (plus a busy timeout) serializes concurrent invocations of the
// tool against the same records file.
package store
