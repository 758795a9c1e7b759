// Package errors turns resolution failures into user-facing CLI errors
// with an actionable suggestion.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common scenarios:
//   - ErrNotAuthenticated: The hosting service rejected the token
//   - ErrPermissionDenied: The token cannot read the repository
//   - ErrRateLimited: The hosting service throttled the request
//   - ErrServiceUnavailable: The hosting service failed; retrying may help
//   - ErrConnectionFailed: The hosting service is unreachable
//   - ErrBadConfig: A configuration file or _extends value is malformed
//
// Example usage:
//
//	cfg, err := resolver.Resolve(ctx, repo, "stale.yml", nil, nil)
//	if err != nil {
//	    return errors.Explain(err, errors.WithServerURL(baseURL))
//	}
//
//	// Check error types
//	if errors.IsAuthError(err) {
//	    // Handle auth-related error
//	}
package errors
