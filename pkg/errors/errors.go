package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes that are fatal for a run. Recoverable
// failures (a single metric group fetch) are never surfaced through these;
// they are defaulted to zero at the point of failure.
var (
	ErrSecretAccess   = errors.New("secret access denied")
	ErrUpstreamFetch  = errors.New("upstream fetch failed")
	ErrUpload         = errors.New("upload failed")
	ErrInvalidRequest = errors.New("invalid request")
	ErrTokenScopes    = errors.New("access token missing required scopes")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsRetryableStatus reports whether an HTTP status code indicates a transient
// upstream condition worth retrying.
func IsRetryableStatus(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 500, 502, 503, 504:
		return true
	case 400, 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}
