package nationstates

import "errors"

// Structural errors. These are caller mistakes and are returned before any
// request is sent.
var (
	// ErrInvalidNation is returned for an empty nation name or one containing
	// characters outside [a-z0-9_-].
	ErrInvalidNation = errors.New("invalid nation name")

	// ErrNoCredential is returned when no credential is supplied.
	ErrNoCredential = errors.New("no credential supplied")

	// ErrAmbiguousCredential is returned when more than one credential is supplied.
	ErrAmbiguousCredential = errors.New("more than one credential supplied")

	// ErrNoAgent is returned when no user agent has been configured.
	ErrNoAgent = errors.New("user agent not set")
)
