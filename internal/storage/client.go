package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/kbukum/alexops/internal/logger"
)

// S3API is the S3 surface the teardown uses.
type S3API interface {
	HeadBucket(ctx context.Context, params *awss3.HeadBucketInput, optFns ...func(*awss3.Options)) (*awss3.HeadBucketOutput, error)
	ListObjectsV2(ctx context.Context, params *awss3.ListObjectsV2Input, optFns ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *awss3.DeleteObjectsInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectsOutput, error)
}

// STSAPI is the STS surface used to resolve the account.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error)
}

// Client wraps the AWS clients used by infrastructure teardown.
type Client struct {
	s3  S3API
	sts STSAPI
	log *logger.Logger
}

// New creates an AWS client from the given config. Credentials come
// from the config when set, otherwise from the default chain.
func New(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	var s3Opts []func(*awss3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *awss3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Client{
		s3:  awss3.NewFromConfig(awsCfg, s3Opts...),
		sts: awssts.NewFromConfig(awsCfg),
		log: log.WithComponent("storage"),
	}, nil
}

// NewWithAPIs creates a client over explicit API implementations.
func NewWithAPIs(s3api S3API, stsapi STSAPI, log *logger.Logger) *Client {
	return &Client{s3: s3api, sts: stsapi, log: log.WithComponent("storage")}
}

// AccountID resolves the AWS account id of the current credentials.
func (c *Client) AccountID(ctx context.Context) (string, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &awssts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("storage: get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}

// BucketExists checks whether the bucket exists. A missing bucket is
// (false, nil); any other failure is an error.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("storage: head bucket %s: %w", bucket, err)
	}
	return true, nil
}

// EmptyBucket deletes every object in the bucket, paging through
// ListObjectsV2 and deleting in batches. Returns how many objects were
// deleted. Per-object delete failures are logged and skipped so one
// stuck object does not leave the rest of the bucket full.
func (c *Client) EmptyBucket(ctx context.Context, bucket string) (int, error) {
	input := &awss3.ListObjectsV2Input{Bucket: aws.String(bucket)}

	deleted := 0
	for {
		page, err := c.s3.ListObjectsV2(ctx, input)
		if err != nil {
			return deleted, fmt.Errorf("storage: list objects in %s: %w", bucket, err)
		}

		if len(page.Contents) > 0 {
			ids := make([]s3types.ObjectIdentifier, 0, len(page.Contents))
			for _, obj := range page.Contents {
				ids = append(ids, s3types.ObjectIdentifier{Key: obj.Key})
			}

			out, err := c.s3.DeleteObjects(ctx, &awss3.DeleteObjectsInput{
				Bucket: aws.String(bucket),
				Delete: &s3types.Delete{Objects: ids, Quiet: aws.Bool(true)},
			})
			if err != nil {
				return deleted, fmt.Errorf("storage: delete batch in %s: %w", bucket, err)
			}
			for _, delErr := range out.Errors {
				c.log.Warn("Object delete failed", map[string]interface{}{
					"bucket": bucket,
					"key":    aws.ToString(delErr.Key),
					"error":  aws.ToString(delErr.Message),
				})
			}
			deleted += len(ids) - len(out.Errors)
		}

		if !aws.ToBool(page.IsTruncated) {
			break
		}
		input.ContinuationToken = page.NextContinuationToken
	}

	return deleted, nil
}
