// Package catalog holds what every content catalog adapter shares.
package catalog

import "errors"

var (
	// ErrUnavailable means the catalog could not be reached or answered
	// with a server error. The turn should be retried later.
	ErrUnavailable = errors.New("catalog unavailable")

	// ErrCircuitOpen means recent failures tripped the breaker and the
	// request was not attempted.
	ErrCircuitOpen = errors.New("catalog circuit open")

	// ErrNotConfigured means the adapter is missing credentials.
	ErrNotConfigured = errors.New("catalog not configured")

	// ErrNotFound is returned for lookups of unknown items.
	ErrNotFound = errors.New("catalog item not found")
)
