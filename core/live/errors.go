package live

import "errors"

// ErrMissingCredential reports that the transport credential is absent. A
// connect attempt must not be started at all in that case.
var ErrMissingCredential = errors.New("live transport credential missing")

// OpenError reports that the session failed to open.
type OpenError struct {
	Err error
}

func (e *OpenError) Error() string { return "failed to open live session: " + e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

// RuntimeError reports a mid-session transport failure. The session is dead
// after one of these.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string { return "live session error: " + e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }
