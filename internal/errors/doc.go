// Package errors provides unified error handling for the alexops CLIs.
// It implements structured error types with machine-readable codes,
// process exit-code mapping, and retryable detection.
package errors
