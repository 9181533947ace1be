package s3impl

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/chapala/instagram-story-metrics/internal/storage"
	"github.com/chapala/instagram-story-metrics/pkg/config"
	errs "github.com/chapala/instagram-story-metrics/pkg/errors"
	"github.com/chapala/instagram-story-metrics/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type S3Impl struct {
	s3     s3iface.S3API
	bucket string
	logger logger.Logger
}

var _ storage.Uploader = (*S3Impl)(nil)

func New(opts Opts) (*S3Impl, error) {
	awsCfg := aws.NewConfig().WithRegion(opts.Config.AWS.Region)
	if opts.Config.AWS.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(opts.Config.AWS.Endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &S3Impl{
		s3:     s3.New(sess),
		bucket: opts.Config.AWS.Bucket,
		logger: opts.Logger.WithComponent("S3Uploader"),
	}, nil
}

func (s *S3Impl) Upload(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("Failed to upload object", "bucket", s.bucket, "key", key, "error", err)
		return fmt.Errorf("%w: s3://%s/%s: %v", errs.ErrUpload, s.bucket, key, err)
	}

	s.logger.Info("Uploaded object", "bucket", s.bucket, "key", key, "bytes", len(body))
	return nil
}
