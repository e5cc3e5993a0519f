package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthenticationFailed is returned when credentials are rejected or the
	// session could not be re-established after the single automatic retry
	ErrAuthenticationFailed = errors.New("authentication to store failed")

	// ErrNoProductResolved is returned when a free-text checklist item cannot
	// be mapped to any product id
	ErrNoProductResolved = errors.New("unable to resolve item to a product")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreAPIFailure is returned when a store API request fails at the
	// transport level
	ErrStoreAPIFailure = errors.New("store API request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// RequestError is a non-success HTTP outcome from the store, carrying the
// numeric status for caller-side branching.
type RequestError struct {
	Status int
	Path   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("store error (%d) while requesting %s", e.Status, e.Path)
}

// Is lets errors.Is match any RequestError against ErrStoreAPIFailure.
func (e *RequestError) Is(target error) bool {
	return target == ErrStoreAPIFailure
}
