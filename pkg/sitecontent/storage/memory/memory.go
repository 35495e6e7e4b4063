package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// Backend is an in-memory implementation of the sitecontent.BlobStore
// interface. Useful for tests and local development without MinIO.
type Backend struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates a new in-memory storage backend
func New() sitecontent.BlobStore {
	return &Backend{
		objects: make(map[string][]byte),
	}
}

// GetUploadURL returns a synthetic URL for uploading a media object
func (b *Backend) GetUploadURL(ctx context.Context, objectKey string) (string, error) {
	return fmt.Sprintf("memory://upload/%s", objectKey), nil
}

// Upload stores a media object in memory
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectKey] = data
	return nil
}

// GetDownloadURL returns a synthetic URL for downloading a media object
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", sitecontent.ErrObjectNotFound
	}
	if downloadFilename != "" {
		return fmt.Sprintf("memory://download/%s?filename=%s", objectKey, downloadFilename), nil
	}
	return fmt.Sprintf("memory://download/%s", objectKey), nil
}

// GetPreviewURL returns a synthetic URL for inline playback
func (b *Backend) GetPreviewURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", sitecontent.ErrObjectNotFound
	}
	return fmt.Sprintf("memory://preview/%s", objectKey), nil
}

// Download returns a reader over a stored media object
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, sitecontent.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes a media object from memory
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return sitecontent.ErrObjectNotFound
	}
	delete(b.objects, objectKey)
	return nil
}
