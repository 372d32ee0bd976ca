package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"seniorcare-lead-api/internal/config"
	"seniorcare-lead-api/internal/metrics"
)

// ObjectStorage stores exported grid files and hands out download links
type ObjectStorage interface {
	GenerateExportKey(spaceID uuid.UUID, grid, fileExt string) string
	UploadFile(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignDownload(ctx context.Context, key, fileName string) (string, error)
}

// S3Client wraps the AWS S3 client and implements ObjectStorage
type S3Client struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	endpoint      string
	presignTTL    time.Duration
	metrics       *metrics.Metrics
}

// NewS3Client creates a new S3 client. A custom endpoint (MinIO) requires
// explicit credentials; otherwise the default AWS credential chain is used.
func NewS3Client(cfg *config.S3Config, m *metrics.Metrics) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}
	if cfg.Endpoint != "" && (cfg.AccessKey == "" || cfg.SecretKey == "") {
		return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3Client{
		client:        s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		bucket:        cfg.Bucket,
		endpoint:      cfg.Endpoint,
		presignTTL:    ttl,
		metrics:       m,
	}, nil
}

// GenerateExportKey builds exports/{spaceId}/{yyyy}/{mm}/{grid}_{uuid}{ext}
func (c *S3Client) GenerateExportKey(spaceID uuid.UUID, grid, fileExt string) string {
	return exportKey(time.Now().UTC(), spaceID, grid, fileExt)
}

func exportKey(now time.Time, spaceID uuid.UUID, grid, fileExt string) string {
	if fileExt != "" && !strings.HasPrefix(fileExt, ".") {
		fileExt = "." + fileExt
	}
	return fmt.Sprintf("exports/%s/%04d/%02d/%s_%s%s",
		spaceID, now.Year(), int(now.Month()), grid, uuid.New(), fileExt)
}

// UploadFile uploads body under key
func (c *S3Client) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) error {
	start := time.Now()
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	c.record("PUT", start, err)
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// PresignDownload returns a time limited GET url that downloads key as fileName
func (c *S3Client) PresignDownload(ctx context.Context, key, fileName string) (string, error) {
	req, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(c.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", fileName)),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = c.presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return req.URL, nil
}

func (c *S3Client) record(method string, start time.Time, err error) {
	status := 200
	if err != nil {
		status = 0
	}
	c.metrics.RecordExternalAPICall("s3://"+c.bucket, method, status, time.Since(start), err)
}

var _ ObjectStorage = (*S3Client)(nil)
