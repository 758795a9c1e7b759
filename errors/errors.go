package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrNotAuthenticated indicates a missing, invalid or expired token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRateLimited indicates the hosting service throttled requests.
	ErrRateLimited = errors.New("rate limited")

	// ErrConnectionFailed indicates the server is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrServiceUnavailable indicates a transient server-side failure.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrBadConfig indicates a malformed configuration file or reference.
	ErrBadConfig = errors.New("bad configuration")
)
