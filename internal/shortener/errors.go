package shortener

import "errors"

var (
	// ErrInvalidURL is returned when the submitted destination is not a well-formed absolute URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrNotFound is returned when a code was never stored (or has been reclaimed).
	ErrNotFound = errors.New("short url not found")
	// ErrExpired is returned when a code exists but its TTL has elapsed.
	ErrExpired = errors.New("short url expired")
	// ErrDuplicateKey is returned by a Repository when the code is already a live key.
	ErrDuplicateKey = errors.New("short code already in use")
	// ErrAllocationExhausted is returned when no free code was found within the retry budget.
	ErrAllocationExhausted = errors.New("short code allocation exhausted")
)
