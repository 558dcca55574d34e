// Package storage wraps the AWS clients the infrastructure teardown
// needs: STS for resolving the account id and S3 for emptying the
// platform buckets before terraform can delete them.
package storage
