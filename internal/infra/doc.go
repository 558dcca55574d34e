// Package infra tears down the platform's cloud footprint: it empties
// the account's alex-* S3 buckets, runs terraform destroy, and removes
// local build artifacts. Every step is best-effort so a partial failure
// leaves the operator with the largest possible amount of cleanup done
// and a note about what is left.
package infra
