package businessRepo

import (
	"context"
	"errors"

	"bizhub/models"
)

var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines methods for business data access.
type BusinessRepository interface {
	// GetByID retrieves a business by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Business, error)
	// Create inserts a new business record.
	Create(ctx context.Context, business *models.Business) error
	// Update replaces an existing business record.
	Update(ctx context.Context, business *models.Business) error
}
