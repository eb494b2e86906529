// Package installer provides the backends that turn a downloaded payload
// into an on-disk installation: in-process archive extraction, or running
// the vendor's setup program under a compatibility runtime. Backends are
// the dominant failure point of an install; any abnormal outcome surfaces
// as a *BackendError carrying the diagnostic output the backend produced.
package installer
