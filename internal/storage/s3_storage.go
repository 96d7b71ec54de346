package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	aws_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/hoang-11jjk/RealEstatePro/internal/config"
)

// s3Storage implements IAssetStorage over an S3 bucket.
type s3Storage struct {
	cfg      *config.Config
	s3Client *s3.Client
}

// NewS3Storage creates a new S3-backed asset storage.
func NewS3Storage(cfg *config.Config) (IAssetStorage, error) {
	awsCfg, err := aws_config.LoadDefaultConfig(context.TODO(),
		aws_config.WithRegion(cfg.AwsRegion),
		// Use static credentials from config for simplicity
		// For production, prefer IAM roles or other secure credential methods
		aws_config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AwsAccessKeyID,
			cfg.AwsSecretAccessKey,
			"", // session token
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3Storage{
		cfg:      cfg,
		s3Client: s3.NewFromConfig(awsCfg),
	}, nil
}

// Save uploads the object and returns its public URL. When UploadBaseURL is
// set (e.g. a CDN in front of the bucket), URLs are built from it; otherwise
// the bucket's virtual-hosted S3 URL is used.
func (s *s3Storage) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	key := "uploads/" + objectKey(filename)

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AwsS3Bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	if s.cfg.UploadBaseURL != "" && s.cfg.UploadBaseURL != "/uploads" {
		return s.cfg.UploadBaseURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AwsS3Bucket, s.cfg.AwsRegion, key), nil
}
