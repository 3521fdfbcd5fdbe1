package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	sc "delivery-service/pkg/config"
	"delivery-service/prometheus"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client talks to an S3-compatible object store (MinIO or similar) holding
// the image bucket.
type Client struct {
	s3     *s3.Client
	bucket string
}

// NewClient builds an object-store client from the storage configuration.
// Path-style addressing is required for MinIO-style endpoints.
func NewClient(ctx context.Context, cfg *sc.StorageConfig) (*Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.Bucket}, nil
}

// Put stores an object under the given key.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) error {
	defer prometheus.TrackStorageOperation("put")(time.Now())
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	return err
}

// Delete removes the object under the given key. The store reports a missing
// key the same way as any other failure.
func (c *Client) Delete(ctx context.Context, key string) error {
	defer prometheus.TrackStorageOperation("delete")(time.Now())
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	return err
}
