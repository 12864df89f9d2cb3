package r2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/vlatan/transcript-store/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type Service interface {
	// DeleteObject removes an object from bucket
	DeleteObject(ctx context.Context, bucket, key string) error
	// ObjectExists checks if the object exists in the bucket
	ObjectExists(ctx context.Context, timeout time.Duration, bucket, key string) error

	// PutObject puts object to bucket having the content
	PutObject(
		ctx context.Context,
		bucket string,
		key string,
		body io.Reader,
		contentType string,
		metadata map[string]string,
	) error
}

type service struct {
	client *s3.Client
}

// New creates a new R2 client
func New(ctx context.Context, cfg *config.Config) Service {

	// Create SDK config for an R2 service
	sdkConfig, err := awsConfig.LoadDefaultConfig(ctx,
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.R2AccessKeyId, cfg.R2SecretAccessKey, ""),
		),
		awsConfig.WithRegion("auto"),
	)

	if err != nil {
		log.Fatalf("failed to load AWS/R2 SDK configuration, %v", err)
	}

	// Create the R2 client
	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		baseEndpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountId)
		o.BaseEndpoint = aws.String(baseEndpoint)
	})

	return &service{client}
}

// DeleteObject removes an object from bucket
func (s *service) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err
}

// ObjectExists checks if the object exists in the bucket
func (s *service) ObjectExists(ctx context.Context, timeout time.Duration, bucket, key string) error {
	return s3.NewObjectExistsWaiter(s.client).Wait(
		ctx,
		&s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		},
		timeout,
	)
}

// PutObject puts object to bucket having the content
func (s *service) PutObject(
	ctx context.Context,
	bucket string,
	key string,
	body io.Reader,
	contentType string,
	metadata map[string]string,
) error {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})

	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "EntityTooLarge" {
			return fmt.Errorf(
				"error while uploading object to %s; The object is too large: %w",
				bucket, err,
			)
		}

		return fmt.Errorf(
			"couldn't upload object %s:%s: %w",
			bucket, key, err,
		)
	}

	if err = s.ObjectExists(ctx, time.Minute, bucket, key); err != nil {
		return fmt.Errorf(
			"failed attempt to wait for object %s:%s to exist: %w",
			bucket, key, err,
		)
	}

	return nil
}
