package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/anotherclass/colortherock/internal/config"
)

// MediaStore hands out short-lived URLs for board videos kept in object storage.
type MediaStore interface {
	VideoURL(ctx context.Context, key string) (string, error)
}

// S3MediaStore presigns GET requests against one bucket.
type S3MediaStore struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewS3MediaStore(ctx context.Context, cfg *config.Config) (*S3MediaStore, error) {
	if !cfg.StorageEnabled() {
		return nil, errors.New("object storage is not configured")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3MediaStore{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		expiry:    cfg.S3PresignExpiry,
	}, nil
}

func (s *S3MediaStore) VideoURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign video %s: %w", key, err)
	}
	return req.URL, nil
}
