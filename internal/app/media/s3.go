package media

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3Config holds the S3 media backend configuration.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 stores media objects under {prefix}/{mediaID}.
type S3 struct {
	client *s3.Client
	cfg    S3Config
	log    *zap.Logger
}

// NewS3 builds the S3 backend. With no explicit credentials the default
// AWS credential chain is used.
func NewS3(ctx context.Context, cfg S3Config, log *zap.Logger) (*S3, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3{client: s3.NewFromConfig(awsCfg), cfg: cfg, log: log}, nil
}

func (s *S3) key(mediaID string) string {
	return path.Join(s.cfg.Prefix, mediaID)
}

// Delete removes an asset. S3 DeleteObject succeeds for missing keys, so a
// repeated reclamation converges silently.
func (s *S3) Delete(ctx context.Context, mediaID string) (bool, error) {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.key(mediaID)),
	})
	if err != nil {
		return false, fmt.Errorf("delete object %s: %w", mediaID, err)
	}
	s.log.Debug("media asset deleted", zap.String("media_id", mediaID))
	return true, nil
}
