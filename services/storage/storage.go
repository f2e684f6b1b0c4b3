package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"bizhub/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// StorageServiceImpl stores documents in Cloudinary.
type StorageServiceImpl struct {
	upload    uploadAPI
	cloudName string
	apiSecret string
	logger    *zap.Logger
}

// NewStorageService creates a new StorageServiceImpl instance.
func NewStorageService(cld *cloudinary.Cloudinary, cloudName, apiSecret string, logger *zap.Logger) *StorageServiceImpl {
	return newStorageService(&cld.Upload, cloudName, apiSecret, logger)
}

func newStorageService(api uploadAPI, cloudName, apiSecret string, logger *zap.Logger) *StorageServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorageServiceImpl{upload: api, cloudName: cloudName, apiSecret: apiSecret, logger: logger}
}

// UploadDocument uploads a file to Cloudinary into the specified folder.
func (s *StorageServiceImpl) UploadDocument(ctx context.Context, r io.Reader, destFolder string, meta FileMeta) (*models.Document, error) {
	base := strings.TrimSuffix(filepath.Base(meta.FileName), filepath.Ext(meta.FileName))
	params := uploader.UploadParams{
		Folder:       destFolder,
		PublicID:     fmt.Sprintf("%s_%d", sanitizeName(base), time.Now().UnixNano()),
		ResourceType: "auto",
	}
	result, err := s.upload.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		if result.Error.Message != "" {
			return nil, fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	size := meta.Size
	if result.Bytes > 0 {
		size = int64(result.Bytes)
	}
	s.logger.Info("document uploaded", zap.String("publicID", result.PublicID), zap.Int64("size", size))
	return &models.Document{
		PublicID:    result.PublicID,
		URL:         result.SecureURL,
		FileName:    meta.FileName,
		ContentType: meta.ContentType,
		Size:        size,
		UploadedAt:  time.Now(),
	}, nil
}

// DeleteFile deletes a file from Cloudinary given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// GetSecureDownloadURL generates a signed, short-lived URL for an authenticated resource.
func (s *StorageServiceImpl) GetSecureDownloadURL(ctx context.Context, resourceType, publicID string, expires time.Duration) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("StorageServiceImpl: public ID is required")
	}
	if resourceType == "" {
		resourceType = "raw"
	}
	expiresAt := time.Now().Add(expires).Unix()
	signature := computeSHA1(fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret))
	return fmt.Sprintf("https://res.cloudinary.com/%s/%s/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, resourceType, signature, expiresAt, publicID), nil
}

// computeSHA1 computes the SHA-1 hash of the input and returns its hex encoding.
func computeSHA1(input string) string {
	h := sha1.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "document"
	}
	return b.String()
}
