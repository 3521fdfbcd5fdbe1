package service

import (
	"context"
	"fmt"
	"strings"

	"delivery-service/internal/common"
	"delivery-service/pkg/config"

	"github.com/google/uuid"
)

// MaxUploadSize is the largest file the service accepts, in bytes.
const MaxUploadSize = 5 << 20 // 5 MiB

// ObjectStore is the remote-store surface the upload service depends on.
// Implemented by storage.Client.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// UploadResult describes a stored object: its public view URL and the
// opaque id needed to delete it later.
type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
}

// UploadService mediates image bytes to and from the object store and
// derives the public URLs clients embed in their entities.
type UploadService struct {
	store    ObjectStore
	endpoint string
	bucket   string
	project  string
}

// NewUploadService creates an upload service over the given object store.
func NewUploadService(store ObjectStore, cfg *config.StorageConfig) *UploadService {
	return &UploadService{
		store:    store,
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		bucket:   cfg.Bucket,
		project:  cfg.ProjectID,
	}
}

// UploadImage validates the file, stores it under a fresh id and returns
// the view URL. Validation happens before any network call. The echo
// body-limit middleware already caps request size; the size check here
// guards direct callers.
func (s *UploadService) UploadImage(ctx context.Context, data []byte, filename, mimeType string) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, common.NewValidationError("no file content provided")
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, common.NewValidationError("only image files are allowed, got %q", mimeType)
	}
	if len(data) > MaxUploadSize {
		return nil, common.NewValidationError("file exceeds the %d byte limit", MaxUploadSize)
	}

	fileID := uuid.New().String()
	if err := s.store.Put(ctx, fileID, data, mimeType); err != nil {
		return nil, &common.UploadError{Msg: fmt.Sprintf("failed to upload %s", filename), Err: err}
	}

	return &UploadResult{URL: s.viewURL(fileID), FileID: fileID}, nil
}

// DeleteImage removes the stored object. The store reports a missing id the
// same way as any other failure, so both surface as UploadError.
func (s *UploadService) DeleteImage(ctx context.Context, fileID string) error {
	if fileID == "" {
		return common.NewValidationError("fileId is required")
	}
	if err := s.store.Delete(ctx, fileID); err != nil {
		return &common.UploadError{Msg: fmt.Sprintf("failed to delete %s", fileID), Err: err}
	}
	return nil
}

// PreviewURL builds the resized-preview URL for a stored image. Pure URL
// construction; it does not check that the id exists.
func (s *UploadService) PreviewURL(fileID string, width, height int) string {
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 400
	}
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/preview?project=%s&width=%d&height=%d",
		s.endpoint, s.bucket, fileID, s.project, width, height)
}

func (s *UploadService) viewURL(fileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		s.endpoint, s.bucket, fileID, s.project)
}
