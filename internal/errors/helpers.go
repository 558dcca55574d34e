package errors

import (
	stderrors "errors"
)

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsRetryable reports whether the error is marked retryable.
func IsRetryable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Retryable
	}
	return false
}

// ExitCode returns the process exit code an error maps to: 0 for nil,
// the AppError's own code when set, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := AsAppError(err); ok && appErr.ExitCode != 0 {
		return appErr.ExitCode
	}
	return 1
}

// Stderr returns the captured child stderr carried by a process
// failure, or "" when the error holds none.
func Stderr(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return ""
	}
	if s, ok := appErr.Details["stderr"].(string); ok {
		return s
	}
	return ""
}
