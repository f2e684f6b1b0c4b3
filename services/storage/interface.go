package storage

import (
	"context"
	"io"
	"time"

	"bizhub/models"
)

// StorageService defines the interface for document storage operations.
type StorageService interface {
	// UploadDocument streams a file into destFolder and returns the stored document.
	UploadDocument(ctx context.Context, r io.Reader, destFolder string, meta FileMeta) (*models.Document, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error)
}

// FileMeta is what the caller knows about an incoming file.
type FileMeta struct {
	FileName    string
	ContentType string
	Size        int64
}
