package domain

import "errors"

var (
	// ErrItemNotFound is returned when an identifier cannot be resolved in the catalog
	ErrItemNotFound = errors.New("item not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUpstreamUnavailable is returned when the dining feed fails or answers
	// with a status/error document instead of a detail record
	ErrUpstreamUnavailable = errors.New("dining feed unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
