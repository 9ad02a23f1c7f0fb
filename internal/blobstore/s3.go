package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/teamforge/profile-extractor/internal/common"
)

// S3Store implements BlobStore against S3 or any S3-compatible endpoint
// (R2, MinIO, Supabase storage gateway).
type S3Store struct {
	client   *s3.Client
	presign  *s3.PresignClient
	endpoint string
	ttl      time.Duration
	logger   *slog.Logger
}

func NewS3Store(ctx context.Context, cfg common.BlobConfig, logger *slog.Logger) (*S3Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.SignedURLTTL <= 0 {
		cfg.SignedURLTTL = 5 * time.Minute
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:   client,
		presign:  s3.NewPresignClient(client),
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		ttl:      cfg.SignedURLTTL,
		logger:   logger,
	}, nil
}

func (s *S3Store) SignedReadURL(ctx context.Context, bucket, path string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		s.logger.Error("blob.presign_error", "bucket", bucket, "path", path, "error", err)
		return "", fmt.Errorf("presign get object: %w", err)
	}
	return req.URL, nil
}

func (s *S3Store) Upload(ctx context.Context, bucket, path string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		s.logger.Error("blob.upload_error", "bucket", bucket, "path", path, "bytes", len(data), "error", err)
		return fmt.Errorf("put object: %w", err)
	}
	s.logger.Info("blob.upload_ok", "bucket", bucket, "path", path, "bytes", len(data))
	return nil
}

func (s *S3Store) PublicURL(bucket, path string) string {
	return s.endpoint + "/" + bucket + "/" + path
}
