package export

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vrender/internal/config"
	"github.com/vango-dev/vrender/internal/errors"
)

// PutObjectAPI is the part of the S3 client used by S3Sink.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads files to an S3 bucket.
//
// Example usage:
//
//	client := export.NewS3Client(cfg.Export)
//	sink, err := export.NewS3Sink(client, "my-site", "v2/")
type S3Sink struct {
	client       PutObjectAPI
	bucket       string
	prefix       string
	cacheControl string
}

// NewS3Sink creates a sink that stores objects in bucket, with prefix
// prepended to every key.
func NewS3Sink(client PutObjectAPI, bucket, prefix string) (*S3Sink, error) {
	if bucket == "" {
		return nil, errors.New("X202").
			WithSuggestion("Set export.bucket in vrender.json, VRENDER_S3_BUCKET, or pass --bucket")
	}
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// WithCacheControl sets the Cache-Control header stored with each object.
func (s *S3Sink) WithCacheControl(v string) *S3Sink {
	s.cacheControl = v
	return s
}

// Put uploads body under prefix+key.
func (s *S3Sink) Put(ctx context.Context, key string, body []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.prefix + key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", s.prefix+key, err)
	}
	return nil
}

// NewS3Client builds an S3 client from the export settings. Credentials
// come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
// AWS_SESSION_TOKEN. A custom endpoint switches to path-style
// addressing, which S3-compatible stores expect.
func NewS3Client(cfg config.ExportConfig) *s3.Client {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials(ctx context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}, nil
}
