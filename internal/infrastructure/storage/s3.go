// Package storage implements the object storage bridge on any S3-compatible
// API (Google Cloud Storage interoperability, MinIO, AWS S3).
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	DefaultEndpoint      = "https://storage.googleapis.com"
	DefaultPublicBaseURL = "https://storage.googleapis.com"
	defaultRegion        = "auto"
)

// Config describes the target bucket and how to reach it.
type Config struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
	Endpoint        string
	Region          string
	AccessKey       string
	SecretKey       string
	PublicBaseURL   string
	// UsePathStyle addresses objects as <endpoint>/<bucket>/<key>.
	UsePathStyle bool
	// MaxAttempts overrides the SDK retry budget when positive.
	MaxAttempts int
}

// putObjectAPI is the single S3 call the bucket needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Bucket writes objects to one bucket.
type Bucket struct {
	client  putObjectAPI
	bucket  string
	baseURL string
}

// NewBucket loads AWS-style configuration and builds an S3 client for cfg.
// Static keys take precedence over the credentials file.
func NewBucket(ctx context.Context, cfg Config) (*Bucket, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}
	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	switch {
	case cfg.AccessKey != "":
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	case cfg.CredentialsFile != "":
		opts = append(opts, config.WithSharedCredentialsFiles([]string{cfg.CredentialsFile}))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.ProjectID != "" {
			o.AppID = cfg.ProjectID
		}
		if cfg.MaxAttempts > 0 {
			o.RetryMaxAttempts = cfg.MaxAttempts
		}
	})

	return newBucket(client, cfg.Bucket, cfg.PublicBaseURL), nil
}

func newBucket(client putObjectAPI, bucket, baseURL string) *Bucket {
	if baseURL == "" {
		baseURL = DefaultPublicBaseURL
	}
	return &Bucket{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Put uploads body as key, replacing any existing object.
func (b *Bucket) Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", b.bucket, key, err)
	}
	return nil
}

// PublicURL is deterministic in the bucket and object name.
func (b *Bucket) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.baseURL, b.bucket, url.PathEscape(key))
}
