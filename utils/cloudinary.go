package utils

import (
	"fmt"

	"bizhub/config"
	"bizhub/services/storage"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// Cloudinary initializes and returns a Cloudinary-based StorageService from AppConfig.
func Cloudinary(logger *zap.Logger) (storage.StorageService, error) {
	c := config.AppConfig
	if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(c.CloudinaryCloudName, c.CloudinaryAPIKey, c.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("utils.Cloudinary: failed to initialize Cloudinary: %w", err)
	}
	return storage.NewStorageService(cld, c.CloudinaryCloudName, c.CloudinaryAPISecret, logger), nil
}
