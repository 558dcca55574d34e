// Package resilience provides retry with exponential backoff and
// condition polling for operations against external systems.
//
// The database layer retries its initial connection through Retry, and
// the dev stack supervisor polls service health endpoints through
// WaitUntil. Retry classification is pluggable; RetryIfRetryable wires
// it to the error codes in internal/errors.
package resilience
