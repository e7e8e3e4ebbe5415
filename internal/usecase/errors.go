package usecase

import "errors"

// Caller-visible failures. Source outages never reach callers as errors
// except where a whole endpoint depends on one source.
var (
	// ErrInvalidInput maps to 400.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound maps to 404: an unknown player in a valuation lookup or
	// no rankings snapshot yet.
	ErrNotFound = errors.New("resource not found")
	// ErrDependencyUnavailable maps to 503 for endpoints that are a thin view
	// over one upstream, such as breakouts or the MLB schedule.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
