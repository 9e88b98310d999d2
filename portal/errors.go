// Package portal is the client core of the system: a typed API client with
// an explicit session object, the catalog store and its filter engine, and
// the refresh glue that re-fetches after every mutation. Any UI layer calls
// into it and renders from its results; nothing here draws anything.
package portal

import "fmt"

// ValidationError reports input rejected locally, before any remote call is
// issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError surfaces a non-success response from the API. Msg carries
// the server's message verbatim when one was provided, so it is safe to show
// to the user.
type ConflictError struct {
	Msg    string
	Status int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("server rejected the request (%d): %s", e.Status, e.Msg)
}

// TransportError covers an unreachable server and responses whose shape does
// not match the expected schema. Callers show a generic connectivity message
// and let the user retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot talk to the server: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
