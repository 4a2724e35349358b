package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"shirupic/internal/config"
	"shirupic/internal/middleware"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ObjectStore は AWS S3 を使う ObjectStore の実装です
type S3ObjectStore struct {
	client *s3.Client
	cfg    *config.StorageConfig
}

// NewS3ObjectStore は設定に応じて認証方法を切り替えてS3クライアントを生成します
func NewS3ObjectStore(cfg *config.Config) (ObjectStore, error) {
	var awsCfgOpts []func(*awsconfig.LoadOptions) error

	awsCfgOpts = append(awsCfgOpts, awsconfig.WithRegion(cfg.Storage.Region))

	switch cfg.Storage.AuthType {
	case "static_credentials":
		slog.Info("Configuring S3 with static credentials.")
		if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
			return nil, fmt.Errorf("storage auth_type is 'static_credentials' but access_key_id or secret_access_key is missing")
		}
		creds := credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			"",
		)
		awsCfgOpts = append(awsCfgOpts, awsconfig.WithCredentialsProvider(creds))

	case "iam_role":
		slog.Info("Configuring S3 with IAM Role credentials.")

	default:
		slog.Warn("Unknown storage auth_type specified, defaulting to IAM Role.", "type", cfg.Storage.AuthType)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsCfgOpts...)
	if err != nil {
		slog.Error("Failed to load AWS config for S3", "error", err)
		return nil, err
	}

	return &S3ObjectStore{
		client: s3.NewFromConfig(awsCfg),
		cfg:    &cfg.Storage,
	}, nil
}

// Upload はオブジェクトをS3に保存し、公開URLを返します
func (s *S3ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	logger := middleware.GetLogger(ctx)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.Error("Failed to upload object to S3", "error", err, "key", key)
		return "", fmt.Errorf("S3ObjectStore.Upload: %w", err)
	}

	logger.Info("Object uploaded to S3", "key", key, "bytes", len(data))
	return s.PublicURL(key), nil
}

// Delete はオブジェクトをS3から削除します
func (s *S3ObjectStore) Delete(ctx context.Context, key string) error {
	logger := middleware.GetLogger(ctx)

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}

	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		logger.Error("Failed to delete object from S3", "error", err, "key", key)
		return fmt.Errorf("S3ObjectStore.Delete: %w", err)
	}

	logger.Info("Object deleted from S3", "key", key)
	return nil
}

// PublicURL は保存済みオブジェクトの公開URLを組み立てます
func (s *S3ObjectStore) PublicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
