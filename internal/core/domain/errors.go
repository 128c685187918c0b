package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIneligibleQuery indicates a query below the minimum search length.
	// It is never surfaced to users as an error; the picker simply stays idle.
	ErrIneligibleQuery = errors.New("query too short to search")

	// Geocoding Errors.

	// ErrTransport indicates the geocoding request or its decoding failed.
	ErrTransport = errors.New("geocoding transport failure")

	// ErrUpstream indicates the geocoding provider answered with an error status.
	ErrUpstream = errors.New("geocoding provider error")

	// ErrRateLimited indicates the provider quota was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrMissingCredentials indicates no provider account is configured.
	ErrMissingCredentials = errors.New("geocoding username not configured")

	// Selection Errors.

	// ErrMalformedSelection indicates a persisted selection value could not be decoded.
	// Decode failures are reported as *DecodeError, which matches this sentinel.
	ErrMalformedSelection = errors.New("malformed selection")
)
