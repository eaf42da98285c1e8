package service

import "errors"

// Service-level sentinel errors. Handlers map these onto HTTP statuses;
// everything else surfaces as an internal error.
var (
	ErrIDRequired = errors.New("id is required")
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("resource not found")
	ErrEmailInUse = errors.New("email already in use")

	// ErrActiveReportExists rejects a second missing report for a pet that
	// already has one active.
	ErrActiveReportExists = errors.New("an active missing report already exists for this pet")

	// ErrUpstream wraps failures of external dependencies (identity provider,
	// place search, object storage, mail relay).
	ErrUpstream = errors.New("upstream service failure")
)
