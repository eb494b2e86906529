package remote

import (
	"errors"
	"fmt"
)

// ErrAuthExpired indicates the service rejected the session token (or the
// login credentials). The caller should log in again.
var ErrAuthExpired = errors.New("session rejected by catalog service")

// NetworkError wraps a transport-level failure: the request never completed.
type NetworkError struct {
	Op  string // the operation being attempted, e.g. "fetching catalog"
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
