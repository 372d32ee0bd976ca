package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockS3Client implements ObjectStorage in memory for tests
type MockS3Client struct {
	Bucket string

	mu      sync.Mutex
	Objects map[string][]byte

	// Optional function overrides for custom test behavior
	UploadFileFunc      func(ctx context.Context, key string, body io.Reader, contentType string) error
	PresignDownloadFunc func(ctx context.Context, key, fileName string) (string, error)
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{Bucket: "test-bucket", Objects: map[string][]byte{}}
}

func (m *MockS3Client) GenerateExportKey(spaceID uuid.UUID, grid, fileExt string) string {
	return exportKey(time.Now().UTC(), spaceID, grid, fileExt)
}

func (m *MockS3Client) UploadFile(ctx context.Context, key string, body io.Reader, contentType string) error {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, body, contentType)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	return nil
}

func (m *MockS3Client) PresignDownload(ctx context.Context, key, fileName string) (string, error) {
	if m.PresignDownloadFunc != nil {
		return m.PresignDownloadFunc(ctx, key, fileName)
	}
	return fmt.Sprintf("https://%s.s3.test.amazonaws.com/%s?X-Amz-Expires=900&X-Amz-Signature=mock", m.Bucket, key), nil
}

// Object returns the stored bytes of key
func (m *MockS3Client) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Objects[key]
	return b, ok
}

var _ ObjectStorage = (*MockS3Client)(nil)
