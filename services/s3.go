package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/launchit-app/launchit/backend/config"
)

// DefaultMediaBucket is the bucket holding all user-submitted media.
const DefaultMediaBucket = "startup-media"

// S3Store is the production ObjectStore, writing to the startup-media bucket.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds an S3-backed object store from the environment.
// MEDIA_PUBLIC_BASE_URL overrides the derived bucket URL when media is served
// through a CDN.
func NewS3Store(ctx context.Context, cfg map[string]string) (*S3Store, error) {
	region := config.GetString(cfg, "AWS_REGION", "us-east-1")
	bucket := config.GetString(cfg, "MEDIA_BUCKET", DefaultMediaBucket)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	baseURL := config.GetString(cfg, "MEDIA_PUBLIC_BASE_URL",
		fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region))

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *S3Store) BaseURL() string {
	return s.baseURL
}
