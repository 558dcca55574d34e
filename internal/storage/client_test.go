package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/kbukum/alexops/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: "error", Format: "console"}, "storage-test")
}

type fakeS3 struct {
	pages      []awss3.ListObjectsV2Output
	pageIndex  int
	listInputs []*awss3.ListObjectsV2Input
	deleted    [][]string
	delErrors  []s3types.Error
	headErr    error
	listErr    error
}

func (f *fakeS3) HeadBucket(context.Context, *awss3.HeadBucketInput, ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &awss3.HeadBucketOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	f.listInputs = append(f.listInputs, in)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.pageIndex >= len(f.pages) {
		return &awss3.ListObjectsV2Output{}, nil
	}
	page := f.pages[f.pageIndex]
	f.pageIndex++
	return &page, nil
}

func (f *fakeS3) DeleteObjects(_ context.Context, in *awss3.DeleteObjectsInput, _ ...func(*awss3.Options)) (*awss3.DeleteObjectsOutput, error) {
	keys := make([]string, 0, len(in.Delete.Objects))
	for _, obj := range in.Delete.Objects {
		keys = append(keys, aws.ToString(obj.Key))
	}
	f.deleted = append(f.deleted, keys)
	return &awss3.DeleteObjectsOutput{Errors: f.delErrors}, nil
}

type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(context.Context, *awssts.GetCallerIdentityInput, ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &awssts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

func objects(keys ...string) []s3types.Object {
	out := make([]s3types.Object, 0, len(keys))
	for _, k := range keys {
		out = append(out, s3types.Object{Key: aws.String(k)})
	}
	return out
}

func TestAccountID(t *testing.T) {
	client := NewWithAPIs(&fakeS3{}, &fakeSTS{account: "123456789012"}, testLogger())

	id, err := client.AccountID(context.Background())
	if err != nil {
		t.Fatalf("AccountID failed: %v", err)
	}
	if id != "123456789012" {
		t.Errorf("expected account 123456789012, got %q", id)
	}
}

func TestAccountIDError(t *testing.T) {
	client := NewWithAPIs(&fakeS3{}, &fakeSTS{err: errors.New("no credentials")}, testLogger())

	if _, err := client.AccountID(context.Background()); err == nil {
		t.Fatal("expected AccountID to fail")
	}
}

func TestBucketExists(t *testing.T) {
	client := NewWithAPIs(&fakeS3{}, &fakeSTS{}, testLogger())

	ok, err := client.BucketExists(context.Background(), "alex-frontend-123")
	if err != nil {
		t.Fatalf("BucketExists failed: %v", err)
	}
	if !ok {
		t.Error("expected bucket to exist")
	}
}

func TestBucketExistsMissing(t *testing.T) {
	client := NewWithAPIs(&fakeS3{headErr: &s3types.NotFound{}}, &fakeSTS{}, testLogger())

	ok, err := client.BucketExists(context.Background(), "alex-frontend-123")
	if err != nil {
		t.Fatalf("a missing bucket must not be an error, got: %v", err)
	}
	if ok {
		t.Error("expected bucket to be missing")
	}
}

func TestBucketExistsOtherError(t *testing.T) {
	client := NewWithAPIs(&fakeS3{headErr: errors.New("access denied")}, &fakeSTS{}, testLogger())

	if _, err := client.BucketExists(context.Background(), "alex-frontend-123"); err == nil {
		t.Fatal("expected a non-404 head failure to surface")
	}
}

func TestEmptyBucketPaginates(t *testing.T) {
	s3fake := &fakeS3{
		pages: []awss3.ListObjectsV2Output{
			{
				Contents:              objects("a", "b", "c"),
				IsTruncated:           aws.Bool(true),
				NextContinuationToken: aws.String("token-1"),
			},
			{
				Contents:    objects("d", "e"),
				IsTruncated: aws.Bool(false),
			},
		},
	}
	client := NewWithAPIs(s3fake, &fakeSTS{}, testLogger())

	deleted, err := client.EmptyBucket(context.Background(), "alex-vector-123")
	if err != nil {
		t.Fatalf("EmptyBucket failed: %v", err)
	}
	if deleted != 5 {
		t.Errorf("expected 5 deleted objects, got %d", deleted)
	}
	if len(s3fake.deleted) != 2 {
		t.Fatalf("expected 2 delete batches, got %d", len(s3fake.deleted))
	}
	if len(s3fake.deleted[0]) != 3 || len(s3fake.deleted[1]) != 2 {
		t.Errorf("unexpected batch sizes: %v", s3fake.deleted)
	}
	if len(s3fake.listInputs) != 2 {
		t.Fatalf("expected 2 list calls, got %d", len(s3fake.listInputs))
	}
	if got := aws.ToString(s3fake.listInputs[1].ContinuationToken); got != "token-1" {
		t.Errorf("second list call missing continuation token, got %q", got)
	}
}

func TestEmptyBucketAlreadyEmpty(t *testing.T) {
	s3fake := &fakeS3{pages: []awss3.ListObjectsV2Output{{IsTruncated: aws.Bool(false)}}}
	client := NewWithAPIs(s3fake, &fakeSTS{}, testLogger())

	deleted, err := client.EmptyBucket(context.Background(), "alex-vector-123")
	if err != nil {
		t.Fatalf("EmptyBucket failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deleted objects, got %d", deleted)
	}
	if len(s3fake.deleted) != 0 {
		t.Errorf("expected no delete calls, got %v", s3fake.deleted)
	}
}

func TestEmptyBucketCountsPartialFailures(t *testing.T) {
	s3fake := &fakeS3{
		pages: []awss3.ListObjectsV2Output{
			{Contents: objects("a", "b", "c"), IsTruncated: aws.Bool(false)},
		},
		delErrors: []s3types.Error{
			{Key: aws.String("b"), Message: aws.String("access denied")},
		},
	}
	client := NewWithAPIs(s3fake, &fakeSTS{}, testLogger())

	deleted, err := client.EmptyBucket(context.Background(), "alex-vector-123")
	if err != nil {
		t.Fatalf("EmptyBucket failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted objects with 1 failure, got %d", deleted)
	}
}

func TestEmptyBucketListError(t *testing.T) {
	client := NewWithAPIs(&fakeS3{listErr: errors.New("no such bucket")}, &fakeSTS{}, testLogger())

	if _, err := client.EmptyBucket(context.Background(), "gone"); err == nil {
		t.Fatal("expected EmptyBucket to surface the list error")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Region != DefaultRegion {
		t.Errorf("expected default region %s, got %s", DefaultRegion, cfg.Region)
	}

	cfg = Config{Region: "eu-west-1"}
	cfg.ApplyDefaults()
	if cfg.Region != "eu-west-1" {
		t.Errorf("expected region to be preserved, got %s", cfg.Region)
	}
}
