package domain

import "errors"

var (
	// ErrRateLimited is a soft, per-window denial. It is user facing and
	// recoverable; it is never logged above info level.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUnauthorized is a business-level denial for privileged actions.
	// Callers see a generic refusal; the audit trail keeps the details.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCacheUnavailable marks a cache backend failure. It never crosses
	// the session store boundary; the store degrades to memory instead.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrUserNotFound is returned by the user repository on a miss.
	ErrUserNotFound = errors.New("user not found")
)
