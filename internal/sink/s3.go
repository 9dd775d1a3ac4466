package sink

import (
	"bytes"
	"context"
	"fmt"

	"wc-order-export/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Sink uploads the rendered CSV to an S3 object.
type s3Sink struct {
	client *s3.Client
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Sink creates an S3-backed sink using the default AWS credential chain.
func NewS3Sink(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Sink, error) {
	logger = logger.With().Str("sink", "s3").Logger()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &s3Sink{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// Write uploads the CSV rendering of the rows. Zero rows skip the upload.
func (s *s3Sink) Write(ctx context.Context, rows []model.OutputRow) error {
	if len(rows) == 0 {
		s.logger.Info().Msg("no orders found, skipping S3 upload")
		return nil
	}

	data, err := renderCSV(rows)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to upload CSV to S3")
		return fmt.Errorf("failed to upload CSV to S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}

	s.logger.Info().
		Int("row_count", len(rows)).
		Str("bucket", s.bucket).
		Str("key", s.key).
		Msg("uploaded CSV to S3")

	return nil
}
